// Package redis stores the grocery collection as a JSON array under a
// single Redis key and mutates it with optimistic transactions.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"groceries/pkg/grocery"
)

// DefaultKey is used when New is given an empty key.
const DefaultKey = "groceries"

const maxRetries = 10

// ErrConflict is returned when a mutation keeps losing the WATCH race.
var ErrConflict = errors.New("grocery collection modified concurrently")

// Repository provides a Redis implementation of grocery.Repository.
type Repository struct {
	client *redis.Client
	key    string
}

// New creates a Redis repository.
func New(client *redis.Client, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{client: client, key: key}
}

// Seed stores the seed items unless the key already holds a collection.
func (r *Repository) Seed(ctx context.Context) error {
	b, err := json.Marshal(grocery.Seed())
	if err != nil {
		return err
	}
	return r.client.SetNX(ctx, r.key, b, 0).Err()
}

// List returns all items in insertion order.
func (r *Repository) List(ctx context.Context) ([]grocery.Item, error) {
	return r.load(ctx, r.client)
}

// Get retrieves an item by ID.
func (r *Repository) Get(ctx context.Context, id int) (grocery.Item, error) {
	items, err := r.load(ctx, r.client)
	if err != nil {
		return grocery.Item{}, err
	}
	i := grocery.Index(items, id)
	if i < 0 {
		return grocery.Item{}, grocery.ErrNotFound
	}
	return items[i], nil
}

// Create appends a new item with the next free ID.
func (r *Repository) Create(ctx context.Context, name string, price float64) (grocery.Item, error) {
	if err := grocery.Validate(name, price); err != nil {
		return grocery.Item{}, err
	}
	return r.mutate(ctx, func(items []grocery.Item) ([]grocery.Item, grocery.Item, error) {
		it := grocery.Item{ID: grocery.NextID(items), Name: name, Price: price}
		return append(items, it), it, nil
	})
}

// Update overwrites the name and price of an existing item.
func (r *Repository) Update(ctx context.Context, id int, name string, price float64) (grocery.Item, error) {
	if err := grocery.Validate(name, price); err != nil {
		return grocery.Item{}, err
	}
	return r.mutate(ctx, func(items []grocery.Item) ([]grocery.Item, grocery.Item, error) {
		i := grocery.Index(items, id)
		if i < 0 {
			return nil, grocery.Item{}, grocery.ErrNotFound
		}
		items[i].Name = name
		items[i].Price = price
		return items, items[i], nil
	})
}

// Delete removes an item by ID and returns it as it was.
func (r *Repository) Delete(ctx context.Context, id int) (grocery.Item, error) {
	return r.mutate(ctx, func(items []grocery.Item) ([]grocery.Item, grocery.Item, error) {
		i := grocery.Index(items, id)
		if i < 0 {
			return nil, grocery.Item{}, grocery.ErrNotFound
		}
		it := items[i]
		return slices.Delete(items, i, i+1), it, nil
	})
}

func (r *Repository) load(ctx context.Context, c redis.Cmdable) ([]grocery.Item, error) {
	b, err := c.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []grocery.Item{}, nil
	}
	if err != nil {
		return nil, err
	}
	items := []grocery.Item{}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	return items, nil
}

type mutation func(items []grocery.Item) ([]grocery.Item, grocery.Item, error)

func (r *Repository) mutate(ctx context.Context, fn mutation) (grocery.Item, error) {
	var out grocery.Item
	txf := func(tx *redis.Tx) error {
		items, err := r.load(ctx, tx)
		if err != nil {
			return err
		}
		next, it, err := fn(items)
		if err != nil {
			return err
		}
		b, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, r.key, b, 0)
			return nil
		})
		if err == nil {
			out = it
		}
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := r.client.Watch(ctx, txf, r.key)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return grocery.Item{}, err
	}
	return grocery.Item{}, ErrConflict
}
