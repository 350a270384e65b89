package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groceries/pkg/grocery"
)

func ids(items []grocery.Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, grocery.Seed(), list)

	for _, want := range grocery.Seed() {
		got, err := repo.Get(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
	}

	created, err := repo.Create(ctx, "Bread", 2.50)
	require.NoError(t, err)
	assert.Equal(t, grocery.Item{ID: 4, Name: "Bread", Price: 2.50}, created)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(list))
}

func TestRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := New()

	_, err := repo.Get(ctx, 99)
	assert.ErrorIs(t, err, grocery.ErrNotFound)
	_, err = repo.Update(ctx, 99, "Juice", 1)
	assert.ErrorIs(t, err, grocery.ErrNotFound)
	_, err = repo.Delete(ctx, 99)
	assert.ErrorIs(t, err, grocery.ErrNotFound)

	list, _ := repo.List(ctx)
	assert.Equal(t, grocery.Seed(), list)
}

func TestRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := New()

	got, err := repo.Update(ctx, 2, "Turkey Bacon", 4.50)
	require.NoError(t, err)
	assert.Equal(t, grocery.Item{ID: 2, Name: "Turkey Bacon", Price: 4.50}, got)

	got, err = repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, grocery.Item{ID: 2, Name: "Turkey Bacon", Price: 4.50}, got)

	list, _ := repo.List(ctx)
	assert.Equal(t, grocery.Seed()[0], list[0])
	assert.Equal(t, grocery.Seed()[2], list[2])
}

func TestRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := New()

	removed, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, grocery.Seed()[0], removed)

	_, err = repo.Get(ctx, 1)
	assert.ErrorIs(t, err, grocery.ErrNotFound)

	list, _ := repo.List(ctx)
	assert.Equal(t, []int{2, 3}, ids(list))

	_, err = repo.Delete(ctx, 1)
	assert.ErrorIs(t, err, grocery.ErrNotFound)
}

func TestRepositoryCreateAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := New()

	_, err := repo.Delete(ctx, 2)
	require.NoError(t, err)

	created, err := repo.Create(ctx, "Bread", 2.50)
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	list, _ := repo.List(ctx)
	assert.Equal(t, []int{1, 3, 4}, ids(list))
}

func TestRepositoryInvalid(t *testing.T) {
	ctx := context.Background()
	repo := New()

	_, err := repo.Create(ctx, "", 1)
	assert.ErrorIs(t, err, grocery.ErrInvalid)
	_, err = repo.Update(ctx, 1, "Milk", -1)
	assert.ErrorIs(t, err, grocery.ErrInvalid)

	list, _ := repo.List(ctx)
	assert.Equal(t, grocery.Seed(), list)
}

func TestRepositoryListIsCopy(t *testing.T) {
	ctx := context.Background()
	repo := New()

	list, _ := repo.List(ctx)
	list[0].Name = "Oat Milk"

	got, _ := repo.Get(ctx, 1)
	assert.Equal(t, "Milk", got.Name)
}

func TestRepositoryConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewWith(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, "Apple", 0.5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, _ := repo.List(ctx)
	require.Len(t, list, 50)
	seen := make(map[int]bool)
	for _, it := range list {
		assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
	}
}
