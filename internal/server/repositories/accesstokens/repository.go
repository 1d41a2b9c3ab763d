// Package accesstokens declares the bearer token store and its PostgreSQL and
// in-memory implementations.
package accesstokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tokenauth/internal/server/models"
)

// Repository defines issuing, resolving and revoking access tokens.
type Repository interface {
	// Create stores token and fills in its generated ID and CreatedAt.
	Create(ctx context.Context, token *models.AccessToken) (*models.AccessToken, error)

	// Find returns the token with the given ID or common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.AccessToken, error)

	// Touch records that the token authorised a request at the given time.
	Touch(ctx context.Context, id string, at time.Time) error

	// DeleteByUser revokes every token owned by userID in one statement and
	// reports how many were removed. Zero is not an error.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
