package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Collection is a typed view over the documents of one entity type. T is
// expected to expose its identifier as a JSON field named "id".
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection derives the collection name from T: Course maps to "course".
func NewCollection[T any](s *Store) Collection[T] {
	return Collection[T]{store: s, name: CollectionName[T]()}
}

func CollectionName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

func (c Collection[T]) Name() string { return c.name }

func (c Collection[T]) Insert(ctx context.Context, rec T) (string, error) {
	return c.store.CreateDocument(ctx, c.name, rec)
}

func (c Collection[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	docs, err := c.store.GetDocuments(ctx, c.name, filter)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := as[T](d)
		if err != nil {
			return nil, fmt.Errorf("decoding %s[%v]: %w", c.name, d[IDField], err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (c Collection[T]) FindOne(ctx context.Context, id string) (T, error) {
	var zero T

	d, err := c.store.FindOneByID(ctx, c.name, id)
	if err != nil {
		return zero, err
	}

	v, err := as[T](d)
	if err != nil {
		return zero, fmt.Errorf("decoding %s[%s]: %w", c.name, id, err)
	}
	return v, nil
}

func (c Collection[T]) UpdateByID(ctx context.Context, id string, set map[string]any) (int64, error) {
	return c.store.UpdateByID(ctx, c.name, id, set)
}

func (c Collection[T]) DeleteByID(ctx context.Context, id string) (int64, error) {
	return c.store.DeleteByID(ctx, c.name, id)
}

func (c Collection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	return c.store.CountDocuments(ctx, c.name, filter)
}

func as[T any](d Document) (T, error) {
	var v T
	b, err := json.Marshal(d)
	if err != nil {
		return v, err
	}
	err = json.Unmarshal(b, &v)
	return v, err
}
