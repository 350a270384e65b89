package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groceries/pkg/grocery"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestEnsureSchemaSeedsEmptyTable(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(Schema).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT(*) FROM groceries").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	for _, it := range grocery.Seed() {
		mock.ExpectExec("INSERT INTO groceries (id,name,price) VALUES ($1,$2,$3)").
			WithArgs(int64(it.ID), it.Name, it.Price).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaKeepsExistingRows(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(Schema).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT(*) FROM groceries").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	db, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"id", "name", "price"})
	for _, it := range grocery.Seed() {
		rows.AddRow(it.ID, it.Name, it.Price)
	}
	mock.ExpectQuery("SELECT id,name,price FROM groceries ORDER BY seq").WillReturnRows(rows)

	items, err := New(db).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, grocery.Seed(), items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id,name,price FROM groceries WHERE id=$1").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))

	_, err := New(db).Get(context.Background(), 9)
	assert.ErrorIs(t, err, grocery.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("LOCK TABLE groceries IN SHARE ROW EXCLUSIVE MODE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO groceries (id,name,price) SELECT COALESCE(MAX(id),0)+1,$1,$2 FROM groceries RETURNING id,name,price").
		WithArgs("Bread", 2.5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(4, "Bread", 2.5))
	mock.ExpectCommit()

	it, err := New(db).Create(context.Background(), "Bread", 2.5)
	require.NoError(t, err)
	assert.Equal(t, grocery.Item{ID: 4, Name: "Bread", Price: 2.5}, it)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvalidSkipsDatabase(t *testing.T) {
	db, mock := newMock(t)

	_, err := New(db).Create(context.Background(), "", 2.5)
	assert.ErrorIs(t, err, grocery.ErrInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("UPDATE groceries SET name=$2, price=$3 WHERE id=$1 RETURNING id,name,price").
		WithArgs(int64(2), "Turkey Bacon", 4.5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(2, "Turkey Bacon", 4.5))
	mock.ExpectQuery("UPDATE groceries SET name=$2, price=$3 WHERE id=$1 RETURNING id,name,price").
		WithArgs(int64(7), "Turkey Bacon", 4.5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))

	repo := New(db)
	it, err := repo.Update(context.Background(), 2, "Turkey Bacon", 4.5)
	require.NoError(t, err)
	assert.Equal(t, grocery.Item{ID: 2, Name: "Turkey Bacon", Price: 4.5}, it)

	_, err = repo.Update(context.Background(), 7, "Turkey Bacon", 4.5)
	assert.ErrorIs(t, err, grocery.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("DELETE FROM groceries WHERE id=$1 RETURNING id,name,price").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(1, "Milk", 2.99))
	mock.ExpectQuery("DELETE FROM groceries WHERE id=$1 RETURNING id,name,price").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))

	repo := New(db)
	it, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, grocery.Item{ID: 1, Name: "Milk", Price: 2.99}, it)

	_, err = repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, grocery.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaColumnWidths(t *testing.T) {
	assert.Contains(t, Schema, "id BIGINT NOT NULL UNIQUE")
	assert.Contains(t, Schema, "price DOUBLE PRECISION NOT NULL")
}

func TestGetLargeIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id,name,price FROM groceries WHERE id=$1").
		WithArgs(int64(3000000000)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))
	mock.ExpectQuery("DELETE FROM groceries WHERE id=$1 RETURNING id,name,price").
		WithArgs(int64(3000000000)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))

	repo := New(db)
	_, err := repo.Get(context.Background(), 3000000000)
	assert.ErrorIs(t, err, grocery.ErrNotFound)
	_, err = repo.Delete(context.Background(), 3000000000)
	assert.ErrorIs(t, err, grocery.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateKeepsPriceAsGiven(t *testing.T) {
	for _, price := range []float64{2.999, 123456789} {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("LOCK TABLE groceries IN SHARE ROW EXCLUSIVE MODE").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("INSERT INTO groceries (id,name,price) SELECT COALESCE(MAX(id),0)+1,$1,$2 FROM groceries RETURNING id,name,price").
			WithArgs("Bread", price).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(4, "Bread", price))
		mock.ExpectCommit()

		it, err := New(db).Create(context.Background(), "Bread", price)
		require.NoError(t, err)
		assert.Equal(t, price, it.Price)
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}
