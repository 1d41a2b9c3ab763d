// Package metadata stores the CLI session (bearer token, signed-in email) as
// key/value pairs in the local SQLite database.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns common.ErrorNotFound for an absent key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
