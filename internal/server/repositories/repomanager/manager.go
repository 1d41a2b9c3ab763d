// Package repomanager hands out repository implementations bound either to
// the shared connection or to a transaction, and owns schema migrations.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/tokenauth/internal/server/repositories/accesstokens"
	"github.com/dmitrijs2005/tokenauth/internal/server/repositories/users"
)

// Repositories groups the stores a unit of work may touch.
type Repositories struct {
	Users        users.Repository
	AccessTokens accesstokens.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error

	// Repositories returns stores bound to the shared connection.
	Repositories() Repositories

	// WithTx runs fn with stores bound to a single transaction. An error from
	// fn rolls the transaction back and is returned unchanged.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
