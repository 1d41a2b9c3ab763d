// Package users declares the credential store and its PostgreSQL and
// in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/tokenauth/internal/server/models"
)

// Repository persists user records.
type Repository interface {
	// Create inserts user and fills in the generated ID and timestamps.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns common.ErrorNotFound when no user has email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns common.ErrorNotFound when id is unknown.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
