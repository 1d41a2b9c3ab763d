// Package services contains application services for the CLI. AuthService
// drives the server's register, login, logout and current-user endpoints and
// keeps the resulting bearer token in the local session database.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tokenauth/internal/client/client"
	"github.com/dmitrijs2005/tokenauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tokenauth/internal/common"
	"github.com/dmitrijs2005/tokenauth/internal/dbx"
)

const (
	keyToken = "token"
	keyEmail = "email"
)

// ErrNotLoggedIn is returned when a command needs a session and none is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines the account operations of the CLI.
//
// Contract:
//   - Login stores the issued token; Logout and Me use it.
//   - Logout revokes every token of the user on the server and forgets the
//     local session even if the server already considered it revoked.
//   - Me forgets the local session when the server rejects the token.
type AuthService interface {
	Register(ctx context.Context, req client.RegisterRequest) (*client.User, error)
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*client.User, error)
	SignedInEmail(ctx context.Context) string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) Register(ctx context.Context, req client.RegisterRequest) (*client.User, error) {
	u, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return u, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, keyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, keyEmail, email)
	})
}

func (a *authService) Logout(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	if err := a.client.Logout(ctx, token); err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return fmt.Errorf("logout error: %w", err)
	}

	return a.getMetadataRepo(a.db).Clear(ctx)
}

func (a *authService) Me(ctx context.Context) (*client.User, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}

	u, err := a.client.Me(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if cerr := a.getMetadataRepo(a.db).Clear(ctx); cerr != nil {
				return nil, errors.Join(err, cerr)
			}
		}
		return nil, err
	}
	return u, nil
}

// SignedInEmail returns the email of the stored session or "".
func (a *authService) SignedInEmail(ctx context.Context) string {
	email, err := a.getMetadataRepo(a.db).Get(ctx, keyEmail)
	if err != nil {
		return ""
	}
	return email
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.db.Close()
}

func (a *authService) token(ctx context.Context) (string, error) {
	token, err := a.getMetadataRepo(a.db).Get(ctx, keyToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", ErrNotLoggedIn
		}
		return "", err
	}
	return token, nil
}
