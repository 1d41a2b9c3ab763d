// Package common defines shared constants and sentinel errors used across
// the server, its repositories and the CLI client. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthenticated")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Bearer token errors (malformed or unknown token).
	ErrInvalidToken = errors.New("invalid token")
)
