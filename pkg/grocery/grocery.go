// Package grocery defines the grocery item domain shared by every storage backend.
package grocery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Item represents a single grocery entry.
type Item struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Repository defines behavior for storing grocery items. Implementations
// keep insertion order and never reuse an id that is still present.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int) (Item, error)
	Create(ctx context.Context, name string, price float64) (Item, error)
	Update(ctx context.Context, id int, name string, price float64) (Item, error)
	Delete(ctx context.Context, id int) (Item, error)
}

var (
	// ErrNotFound indicates the requested grocery item does not exist.
	ErrNotFound = errors.New("grocery item not found")

	// ErrInvalid indicates a name or price that cannot be stored.
	ErrInvalid = errors.New("invalid grocery item")
)

// Seed returns the collection every store starts with.
func Seed() []Item {
	return []Item{
		{ID: 1, Name: "Milk", Price: 2.99},
		{ID: 2, Name: "Bacon", Price: 3.99},
		{ID: 3, Name: "Eggs", Price: 1.99},
	}
}

// Validate checks the mutable fields of an item.
func Validate(name string, price float64) error {
	err := validation.Errors{
		"name":  validation.Validate(strings.TrimSpace(name), validation.Required, validation.Length(1, 200)),
		"price": validation.Validate(price, validation.Min(0.0), validation.By(finite)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func finite(value interface{}) error {
	f, _ := value.(float64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("must be a finite number")
	}
	return nil
}

// Index returns the position of the first item with the given id, or -1.
func Index(items []Item, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// NextID returns one more than the largest id in items. Deriving the id from
// the length would hand out an id still in use after a delete.
func NextID(items []Item) int {
	highest := 0
	for _, it := range items {
		if it.ID > highest {
			highest = it.ID
		}
	}
	return highest + 1
}
