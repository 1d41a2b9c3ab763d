package client

import (
	"context"
	"time"
)

// User is the account as returned by the server.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	City     string `json:"city"`
}

type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	// Login returns the plaintext bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (*User, error)
	Ping(ctx context.Context) error
}
