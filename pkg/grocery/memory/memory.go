// Package memory implements an in-memory grocery repository.
package memory

import (
	"context"
	"slices"
	"sync"

	"groceries/pkg/grocery"
)

// Repository provides an in-memory implementation of grocery.Repository.
// A single lock covers the whole sequence so lookup and mutation happen
// as one step.
type Repository struct {
	mu    sync.RWMutex
	items []grocery.Item
}

// New creates a repository holding the seed items.
func New() *Repository {
	return NewWith(grocery.Seed())
}

// NewWith creates a repository holding a copy of items.
func NewWith(items []grocery.Item) *Repository {
	return &Repository{items: slices.Clone(items)}
}

// List returns all items in insertion order.
func (r *Repository) List(ctx context.Context) ([]grocery.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]grocery.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Get retrieves an item by ID.
func (r *Repository) Get(ctx context.Context, id int) (grocery.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := grocery.Index(r.items, id)
	if i < 0 {
		return grocery.Item{}, grocery.ErrNotFound
	}
	return r.items[i], nil
}

// Create appends a new item with the next free ID.
func (r *Repository) Create(ctx context.Context, name string, price float64) (grocery.Item, error) {
	if err := grocery.Validate(name, price); err != nil {
		return grocery.Item{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	it := grocery.Item{ID: grocery.NextID(r.items), Name: name, Price: price}
	r.items = append(r.items, it)
	return it, nil
}

// Update overwrites the name and price of an existing item.
func (r *Repository) Update(ctx context.Context, id int, name string, price float64) (grocery.Item, error) {
	if err := grocery.Validate(name, price); err != nil {
		return grocery.Item{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := grocery.Index(r.items, id)
	if i < 0 {
		return grocery.Item{}, grocery.ErrNotFound
	}
	r.items[i].Name = name
	r.items[i].Price = price
	return r.items[i], nil
}

// Delete removes an item by ID and returns it as it was.
func (r *Repository) Delete(ctx context.Context, id int) (grocery.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := grocery.Index(r.items, id)
	if i < 0 {
		return grocery.Item{}, grocery.ErrNotFound
	}
	it := r.items[i]
	r.items = slices.Delete(r.items, i, i+1)
	return it, nil
}
