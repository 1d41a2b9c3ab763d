// Package services contains server-side business logic. UserService handles
// registration, login, logout and bearer token authentication.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/tokenauth/internal/common"
	"github.com/dmitrijs2005/tokenauth/internal/logging"
	"github.com/dmitrijs2005/tokenauth/internal/server/auth"
	"github.com/dmitrijs2005/tokenauth/internal/server/config"
	"github.com/dmitrijs2005/tokenauth/internal/server/models"
	"github.com/dmitrijs2005/tokenauth/internal/server/repositories/repomanager"
)

// DefaultTokenName labels tokens issued by Login.
const DefaultTokenName = "API TOKEN"

const defaultTokenBytes = 32

const emailTakenMessage = "The email has already been taken."

// RegisterInput is the raw registration form. Age stays textual until it has
// passed the integer rule.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Age      string `json:"age" validate:"required,integer"`
	City     string `json:"city" validate:"required,max=30"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// IssuedToken is a freshly minted bearer token. PlainText is only available
// at issue time.
type IssuedToken struct {
	PlainText string
	Token     *models.AccessToken
}

type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	validate    *validator.Validate
	tokenBytes  int
	logger      logging.Logger
	now         func() time.Time
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *UserService {
	tokenBytes := cfg.TokenBytes
	if tokenBytes <= 0 {
		tokenBytes = defaultTokenBytes
	}
	return &UserService{
		repomanager: m,
		hasher:      auth.NewPasswordHasher(cfg.BcryptCost),
		validate:    newValidator(),
		tokenBytes:  tokenBytes,
		logger:      l.With("module", "user_service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register validates in, stores the user with a bcrypt password hash and
// returns it. A taken email is reported as a *ValidationError on "email".
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Age = strings.TrimSpace(in.Age)
	in.City = strings.TrimSpace(in.City)

	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	age, _ := strconv.Atoi(in.Age)

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if auth.IsPasswordTooLong(err) {
			return nil, fieldError("password", fmt.Sprintf("The password may not be greater than %d bytes.", auth.MaxPasswordBytes))
		}
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	var user *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		_, err := repos.Users.GetUserByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return fieldError("email", emailTakenMessage)
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		user, err = repos.Users.Create(ctx, &models.User{
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Age:          age,
			City:         in.City,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fieldError("email", emailTakenMessage)
		}
		if _, ok := AsValidationError(err); ok {
			return nil, err
		}
		s.logger.Error(ctx, "error creating user", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and issues a new bearer token. Unknown email
// and wrong password both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*IssuedToken, error) {
	in := loginInput{Email: normalizeEmail(email), Password: password}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Repositories().Users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(in.Password)
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "error loading user", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(user.PasswordHash, in.Password) {
		return nil, common.ErrorInvalidCredentials
	}

	issued, err := s.issueToken(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "error issuing token", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID, "token_id", issued.Token.ID)
	return issued, nil
}

// Logout revokes every token of userID and reports how many were removed.
func (s *UserService) Logout(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		var err error
		n, err = repos.AccessTokens.DeleteByUser(ctx, userID)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "error revoking tokens", "user_id", userID, "error", err)
		return 0, common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged out", "user_id", userID, "revoked", n)
	return n, nil
}

// Authenticate resolves a plaintext bearer token to its owner. Any token that
// is malformed, unknown or does not match its stored hash yields
// common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, plain string) (*models.User, *models.AccessToken, error) {
	id, secret, err := auth.ParseToken(plain)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	repos := s.repomanager.Repositories()

	token, err := repos.AccessTokens.Find(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidToken)
		}
		s.logger.Error(ctx, "error loading token", "error", err)
		return nil, nil, common.ErrorInternal
	}

	if !auth.SecretMatches(secret, token.TokenHash) {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidToken)
	}

	user, err := repos.Users.GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "error loading token owner", "error", err)
		return nil, nil, common.ErrorInternal
	}

	now := s.now()
	if err := repos.AccessTokens.Touch(ctx, token.ID, now); err != nil {
		s.logger.Warn(ctx, "error updating token last use", "token_id", token.ID, "error", err)
	} else {
		token.LastUsedAt = &now
	}

	return user, token, nil
}

func (s *UserService) issueToken(ctx context.Context, userID string) (*IssuedToken, error) {
	secret, hash, err := auth.NewSecret(s.tokenBytes)
	if err != nil {
		return nil, err
	}

	token, err := s.repomanager.Repositories().AccessTokens.Create(ctx, &models.AccessToken{
		UserID:    userID,
		Name:      DefaultTokenName,
		TokenHash: hash,
	})
	if err != nil {
		return nil, err
	}

	return &IssuedToken{PlainText: auth.FormatToken(token.ID, secret), Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
