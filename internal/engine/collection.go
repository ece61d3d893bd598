package engine

import (
	"context"
	"sync"

	"lifeplanner/internal/storage"
)

// collection is the shared load/persist/signal cycle behind every list.
// Mutations run against a copy; the copy replaces the live items only
// after it was written to storage.
type collection[T any] struct {
	mu    sync.Mutex
	svc   *Service
	key   string
	kind  Kind
	clone func(T) T
	items []T
}

func newCollection[T any](svc *Service, key string, kind Kind, clone func(T) T) *collection[T] {
	return &collection[T]{svc: svc, key: key, kind: kind, clone: clone, items: []T{}}
}

// load replaces the items with what storage holds. The lock spans the read
// so a concurrent mutate cannot land between the read and the swap.
func (c *collection[T]) load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := storage.LoadList[T](ctx, c.svc.kv, c.key)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}

func (c *collection[T]) copyItems() []T {
	out := make([]T, len(c.items))
	for i := range c.items {
		out[i] = c.clone(c.items[i])
	}
	return out
}

// snapshot returns a deep copy of the items, newest first.
func (c *collection[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyItems()
}

func (c *collection[T]) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// mutate applies fn to a copy of the items. When fn reports a change the
// copy is persisted, swapped in and listeners are notified.
func (c *collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, bool)) (bool, error) {
	c.mu.Lock()
	next, changed := fn(c.copyItems())
	if !changed {
		c.mu.Unlock()
		return false, nil
	}
	if err := storage.SaveList(ctx, c.svc.kv, c.key, next); err != nil {
		c.mu.Unlock()
		return false, err
	}
	c.items = next
	c.mu.Unlock()

	c.svc.notify(c.kind)
	return true, nil
}

func prepend[T any](items []T, item T) []T {
	return append([]T{item}, items...)
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i := range items {
		if match(items[i]) {
			return i
		}
	}
	return -1
}

func removeAt[T any](items []T, i int) []T {
	return append(items[:i], items[i+1:]...)
}
