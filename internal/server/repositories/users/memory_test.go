package users

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tokenauth/internal/common"
)

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, johnDoe())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := repo.GetUserByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "$2a$10$hash", byEmail.PasswordHash)

	byID, err := repo.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", byID.Name)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, johnDoe())
	require.NoError(t, err)

	got, err := repo.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repo.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", again.Name)
}

func TestMemoryRepository_ConcurrentDuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()

	const workers = 16
	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := johnDoe()
			u.Name = fmt.Sprintf("John %d", i)
			_, err := repo.Create(context.Background(), u)
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, common.ErrorAlreadyExists):
				dup.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), dup.Load())
}
