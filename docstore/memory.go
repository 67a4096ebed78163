package docstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryDoc struct {
	id     uuid.UUID
	body   []byte
	fields map[string]any
}

// Memory is an in-process Backend that keeps every collection in insertion
// order. It backs the tests and the in-memory mode of the server.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]*memoryDoc
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]*memoryDoc)}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Insert(ctx context.Context, collection string, body []byte) (uuid.UUID, error) {
	fields, err := normalize(body)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.collections[collection] = append(m.collections[collection], &memoryDoc{
		id:     id,
		body:   append([]byte(nil), body...),
		fields: fields,
	})
	return id, nil
}

func (m *Memory) Find(ctx context.Context, collection string, filter Filter) ([]Raw, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Raw, 0)
	for _, d := range m.collections[collection] {
		if matches(d.fields, want) {
			out = append(out, Raw{ID: d.id, Body: append([]byte(nil), d.body...)})
		}
	}
	return out, nil
}

func (m *Memory) FindByID(ctx context.Context, collection string, id uuid.UUID) (Raw, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, _ := m.lookup(collection, id)
	if d == nil {
		return Raw{}, false, nil
	}
	return Raw{ID: d.id, Body: append([]byte(nil), d.body...)}, true, nil
}

func (m *Memory) Update(ctx context.Context, collection string, id uuid.UUID, set []byte) (int64, error) {
	patch, err := normalize(set)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, _ := m.lookup(collection, id)
	if d == nil {
		return 0, nil
	}

	fields := make(map[string]any, len(d.fields)+len(patch))
	for k, v := range d.fields {
		fields[k] = v
	}
	for k, v := range patch {
		fields[k] = v
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return 0, err
	}
	d.fields = fields
	d.body = body
	return 1, nil
}

func (m *Memory) Delete(ctx context.Context, collection string, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, i := m.lookup(collection, id)
	if i < 0 {
		return 0, nil
	}

	docs := m.collections[collection]
	m.collections[collection] = append(docs[:i:i], docs[i+1:]...)
	return 1, nil
}

func (m *Memory) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, d := range m.collections[collection] {
		if matches(d.fields, want) {
			n++
		}
	}
	return n, nil
}

// Collections lists every collection that currently holds a document.
func (m *Memory) Collections(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.collections))
	for name, docs := range m.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) lookup(collection string, id uuid.UUID) (*memoryDoc, int) {
	for i, d := range m.collections[collection] {
		if d.id == id {
			return d, i
		}
	}
	return nil, -1
}

func normalize(body []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// normalizeFilter puts filter values into the same shape as decoded documents
// so that equality can be checked structurally.
func normalizeFilter(filter Filter) (map[string]any, error) {
	if len(filter) == 0 {
		return nil, nil
	}

	b, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}
	return normalize(b)
}

func matches(fields, want map[string]any) bool {
	for k, v := range want {
		got, ok := fields[k]
		if !ok || !reflect.DeepEqual(got, v) {
			return false
		}
	}
	return true
}

var _ Backend = (*Memory)(nil)
