package repomanager

import (
	"context"

	"github.com/dmitrijs2005/tokenauth/internal/server/repositories/accesstokens"
	"github.com/dmitrijs2005/tokenauth/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves process-local stores. Each repository call
// is atomic on its own; WithTx offers no rollback.
type InMemoryRepositoryManager struct {
	users  *users.MemoryRepository
	tokens *accesstokens.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:  users.NewMemoryRepository(),
		tokens: accesstokens.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Repositories() Repositories {
	return Repositories{Users: m.users, AccessTokens: m.tokens}
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return fn(ctx, m.Repositories())
}

func (m *InMemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Close() error { return nil }

// AccessTokens exposes the concrete token store for assertions.
func (m *InMemoryRepositoryManager) AccessTokens() *accesstokens.MemoryRepository {
	return m.tokens
}
