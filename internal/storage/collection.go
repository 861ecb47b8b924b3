package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection gives typed access to one named collection on top of a Store.
type Collection[T any] struct {
	store Store
	name  string
}

func NewCollection[T any](store Store, name string) Collection[T] {
	return Collection[T]{store: store, name: name}
}

func (c Collection[T]) Name() string { return c.name }

// Get loads and decodes the full collection. The returned version must be
// handed back to Put to close the load-mutate-save cycle.
func (c Collection[T]) Get(ctx context.Context) ([]T, int64, error) {
	doc, err := c.store.Load(ctx, c.name)
	if err != nil {
		return nil, 0, fmt.Errorf("load %s: %w", c.name, err)
	}
	var items []T
	if err := json.Unmarshal(doc.Body, &items); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return items, doc.Version, nil
}

// Put encodes and replaces the full collection.
func (c Collection[T]) Put(ctx context.Context, items []T, expected int64) error {
	if items == nil {
		items = []T{}
	}
	body, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.store.Replace(ctx, c.name, body, expected); err != nil {
		return fmt.Errorf("replace %s: %w", c.name, err)
	}
	return nil
}
