package repositories_test

import (
	"context"
	"sync"
	"testing"

	"catalog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProductRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockProductRepository()

	product := newProduct()
	require.NoError(t, repo.Create(ctx, product))
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, 1, repo.Len())

	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product, fetched)

	deleted, err := repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product, deleted)
	assert.Equal(t, 0, repo.Len())

	_, err = repo.Delete(ctx, product.ID)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestMockProductRepository_ConcurrentDeleteSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockProductRepository()
	product := newProduct()
	require.NoError(t, repo.Create(ctx, product))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Delete(ctx, product.ID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}
