// Package docstore maps typed records onto named collections of schemaless
// JSON documents. It is the only place where identifiers are parsed or
// rendered: callers exchange them as opaque strings.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrStoreUnavailable is returned when the store was never connected.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrPersistence wraps any failure reported by the backend.
	ErrPersistence = errors.New("document store operation failed")
	// ErrInvalidID is returned for identifier strings that cannot be parsed.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrNotFound is returned when no document matches an identifier.
	ErrNotFound = errors.New("document not found")
)

// IDField is the key under which identifiers are exposed on read documents.
const IDField = "id"

// internalIDField is stripped from every document crossing the adapter.
const internalIDField = "_id"

// Document is a decoded JSON object.
type Document map[string]any

// Filter selects documents whose fields are exactly equal to the given values.
// An empty filter selects everything.
type Filter map[string]any

// Raw is a document as kept by a backend: its identifier and its JSON body.
type Raw struct {
	ID   uuid.UUID
	Body json.RawMessage
}

// Backend is the storage engine behind a Store. Implementations must be safe
// for concurrent use and must return documents in insertion order.
type Backend interface {
	Insert(ctx context.Context, collection string, body []byte) (uuid.UUID, error)
	Find(ctx context.Context, collection string, filter Filter) ([]Raw, error)
	FindByID(ctx context.Context, collection string, id uuid.UUID) (Raw, bool, error)
	Update(ctx context.Context, collection string, id uuid.UUID, set []byte) (int64, error)
	Delete(ctx context.Context, collection string, id uuid.UUID) (int64, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
	Collections(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Name() string
}

// ObserveFunc receives the outcome of every backend round trip.
type ObserveFunc func(op, collection string, took time.Duration, err error)

type Option func(*Store)

// WithTimeout bounds every backend call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

func WithObserver(fn ObserveFunc) Option {
	return func(s *Store) { s.observe = fn }
}

// Store is the process-wide handle to the document store. A Store built with
// a nil backend behaves as a connection that was never established.
type Store struct {
	backend Backend
	timeout time.Duration
	observe ObserveFunc
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a backend is attached.
func (s *Store) Available() bool {
	return s != nil && s.backend != nil
}

// Name is the backend's database name, empty when unavailable.
func (s *Store) Name() string {
	if !s.Available() {
		return ""
	}
	return s.backend.Name()
}

// ParseID converts an identifier string into its native form.
func ParseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return uid, nil
}

// CreateDocument inserts record into collection and returns its new identifier.
func (s *Store) CreateDocument(ctx context.Context, collection string, record any) (string, error) {
	body, err := encode(record)
	if err != nil {
		return "", fmt.Errorf("encoding %s document: %w", collection, err)
	}

	var id uuid.UUID
	err = s.do(ctx, "insert", collection, func(ctx context.Context) error {
		var err error
		id, err = s.backend.Insert(ctx, collection, body)
		return err
	})
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// GetDocuments returns every document of collection matching filter.
func (s *Store) GetDocuments(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	var raws []Raw
	err := s.do(ctx, "find", collection, func(ctx context.Context) error {
		var err error
		raws, err = s.backend.Find(ctx, collection, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(raws))
	for _, r := range raws {
		d, err := decode(r)
		if err != nil {
			return nil, fmt.Errorf("decoding %s document[%s]: %w", collection, r.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// FindOneByID returns the document with the given identifier.
func (s *Store) FindOneByID(ctx context.Context, collection string, id string) (Document, error) {
	raw, err := s.findRaw(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	d, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s document[%s]: %w", collection, id, err)
	}
	return d, nil
}

// UpdateByID replaces the top-level fields present in set and reports how many
// documents matched.
func (s *Store) UpdateByID(ctx context.Context, collection string, id string, set any) (int64, error) {
	uid, err := ParseID(id)
	if err != nil {
		return 0, err
	}

	body, err := encode(set)
	if err != nil {
		return 0, fmt.Errorf("encoding %s update: %w", collection, err)
	}

	var n int64
	err = s.do(ctx, "update", collection, func(ctx context.Context) error {
		var err error
		n, err = s.backend.Update(ctx, collection, uid, body)
		return err
	})
	return n, err
}

// DeleteByID removes the document with the given identifier and reports how
// many documents were removed.
func (s *Store) DeleteByID(ctx context.Context, collection string, id string) (int64, error) {
	uid, err := ParseID(id)
	if err != nil {
		return 0, err
	}

	var n int64
	err = s.do(ctx, "delete", collection, func(ctx context.Context) error {
		var err error
		n, err = s.backend.Delete(ctx, collection, uid)
		return err
	})
	return n, err
}

func (s *Store) CountDocuments(ctx context.Context, collection string, filter Filter) (int64, error) {
	var n int64
	err := s.do(ctx, "count", collection, func(ctx context.Context) error {
		var err error
		n, err = s.backend.Count(ctx, collection, filter)
		return err
	})
	return n, err
}

func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	var names []string
	err := s.do(ctx, "collections", "", func(ctx context.Context) error {
		var err error
		names, err = s.backend.Collections(ctx)
		return err
	})
	return names, err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.do(ctx, "ping", "", func(ctx context.Context) error {
		return s.backend.Ping(ctx)
	})
}

func (s *Store) findRaw(ctx context.Context, collection string, id string) (Raw, error) {
	uid, err := ParseID(id)
	if err != nil {
		return Raw{}, err
	}

	var (
		raw   Raw
		found bool
	)
	err = s.do(ctx, "find_one", collection, func(ctx context.Context) error {
		var err error
		raw, found, err = s.backend.FindByID(ctx, collection, uid)
		return err
	})
	if err != nil {
		return Raw{}, err
	}
	if !found {
		return Raw{}, fmt.Errorf("%s[%s]: %w", collection, id, ErrNotFound)
	}
	return raw, nil
}

// do runs one backend round trip under the configured timeout.
func (s *Store) do(ctx context.Context, op, collection string, fn func(context.Context) error) error {
	if !s.Available() {
		return ErrStoreUnavailable
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	if s.observe != nil {
		s.observe(op, collection, time.Since(start), err)
	}

	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", op, collection, ErrPersistence, err)
	}
	return nil
}

// encode turns a record into a JSON object without identifier keys.
func encode(record any) ([]byte, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("record is not an object: %w", err)
	}
	if d == nil {
		return nil, errors.New("record is not an object")
	}
	delete(d, IDField)
	delete(d, internalIDField)

	return json.Marshal(d)
}

func decode(r Raw) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()

	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	if d == nil {
		d = Document{}
	}
	delete(d, internalIDField)
	d[IDField] = r.ID.String()
	return d, nil
}
