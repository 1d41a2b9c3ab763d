package accesstokens

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tokenauth/internal/common"
	"github.com/dmitrijs2005/tokenauth/internal/server/models"
)

// MemoryRepository keeps tokens in process memory. DeleteByUser holds the
// write lock for the whole sweep, so readers see either every token of the
// user or none of them.
type MemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]models.AccessToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]models.AccessToken)}
}

func (r *MemoryRepository) Create(ctx context.Context, token *models.AccessToken) (*models.AccessToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.ID = uuid.NewString()
	token.CreatedAt = time.Now().UTC()
	r.tokens[token.ID] = *token
	return token, nil
}

func (r *MemoryRepository) Find(ctx context.Context, id string) (*models.AccessToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) Touch(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[id]
	if !ok {
		return nil
	}
	t.LastUsedAt = &at
	r.tokens[id] = t
	return nil
}

func (r *MemoryRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

// Count reports how many tokens userID currently owns.
func (r *MemoryRepository) Count(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}
