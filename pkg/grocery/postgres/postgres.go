package postgres

import (
	"context"
	"database/sql"
	"errors"

	"groceries/pkg/grocery"
)

// Schema creates the groceries table. seq keeps insertion order; id and
// price match the width of Go's int and float64.
const Schema = `CREATE TABLE IF NOT EXISTS groceries (
	seq BIGSERIAL PRIMARY KEY,
	id BIGINT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL
)`

// Repository persists grocery items in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the table and seeds it when empty.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return err
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM groceries").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, it := range grocery.Seed() {
		if _, err := db.ExecContext(ctx, "INSERT INTO groceries (id,name,price) VALUES ($1,$2,$3)", it.ID, it.Name, it.Price); err != nil {
			return err
		}
	}
	return nil
}

// List fetches all items in insertion order.
func (r *Repository) List(ctx context.Context) ([]grocery.Item, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id,name,price FROM groceries ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []grocery.Item{}
	for rows.Next() {
		var it grocery.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Get retrieves an item by ID.
func (r *Repository) Get(ctx context.Context, id int) (grocery.Item, error) {
	var it grocery.Item
	err := r.db.QueryRowContext(ctx, "SELECT id,name,price FROM groceries WHERE id=$1", id).Scan(&it.ID, &it.Name, &it.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return grocery.Item{}, grocery.ErrNotFound
	}
	return it, err
}

// Create inserts a new item with the next free ID. The table lock keeps
// concurrent creates from computing the same ID.
func (r *Repository) Create(ctx context.Context, name string, price float64) (grocery.Item, error) {
	if err := grocery.Validate(name, price); err != nil {
		return grocery.Item{}, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return grocery.Item{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "LOCK TABLE groceries IN SHARE ROW EXCLUSIVE MODE"); err != nil {
		return grocery.Item{}, err
	}
	var it grocery.Item
	err = tx.QueryRowContext(ctx,
		"INSERT INTO groceries (id,name,price) SELECT COALESCE(MAX(id),0)+1,$1,$2 FROM groceries RETURNING id,name,price",
		name, price).Scan(&it.ID, &it.Name, &it.Price)
	if err != nil {
		return grocery.Item{}, err
	}
	return it, tx.Commit()
}

// Update changes the name and price of an existing item.
func (r *Repository) Update(ctx context.Context, id int, name string, price float64) (grocery.Item, error) {
	if err := grocery.Validate(name, price); err != nil {
		return grocery.Item{}, err
	}
	var it grocery.Item
	err := r.db.QueryRowContext(ctx,
		"UPDATE groceries SET name=$2, price=$3 WHERE id=$1 RETURNING id,name,price",
		id, name, price).Scan(&it.ID, &it.Name, &it.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return grocery.Item{}, grocery.ErrNotFound
	}
	return it, err
}

// Delete removes an item by ID and returns its last state.
func (r *Repository) Delete(ctx context.Context, id int) (grocery.Item, error) {
	var it grocery.Item
	err := r.db.QueryRowContext(ctx, "DELETE FROM groceries WHERE id=$1 RETURNING id,name,price", id).Scan(&it.ID, &it.Name, &it.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return grocery.Item{}, grocery.ErrNotFound
	}
	return it, err
}
