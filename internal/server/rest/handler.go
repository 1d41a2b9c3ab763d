// Package rest exposes the user service over a JSON HTTP API built on gin.
package rest

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/tokenauth/internal/common"
	"github.com/dmitrijs2005/tokenauth/internal/logging"
	"github.com/dmitrijs2005/tokenauth/internal/server/models"
	"github.com/dmitrijs2005/tokenauth/internal/server/services"
)

// Authenticator resolves a plaintext bearer token to its owner.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *models.AccessToken, error)
}

// UserService is the business API the handlers depend on.
type UserService interface {
	Authenticator
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.IssuedToken, error)
	Logout(ctx context.Context, userID string) (int64, error)
}

// Pinger reports store reachability for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	users  UserService
	health Pinger
	logger logging.Logger
}

func NewHandler(us UserService, p Pinger, l logging.Logger) *Handler {
	return &Handler{users: us, health: p, logger: l}
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, msgMalformedBody)
		return
	}

	user, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Name:     string(req.Name),
		Email:    string(req.Email),
		Password: string(req.Password),
		Age:      string(req.Age),
		City:     string(req.City),
	})
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			failValidation(c, ve.Fields)
			return
		}
		failInternal(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": msgUserCreated,
		"user":    user,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, msgMalformedBody)
		return
	}

	issued, err := h.users.Login(c.Request.Context(), string(req.Email), string(req.Password))
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			failValidation(c, ve.Fields)
			return
		}
		if errors.Is(err, common.ErrorInvalidCredentials) {
			fail(c, http.StatusUnauthorized, msgCredentialMismatch)
			return
		}
		failInternal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"message":    msgUserLoggedIn,
		"token":      issued.PlainText,
		"token_type": common.TokenTypeBearer,
	})
}

// Logout revokes every token of the authenticated user.
func (h *Handler) Logout(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c)
		return
	}

	if _, err := h.users.Logout(c.Request.Context(), user.ID); err != nil {
		failInternal(c)
		return
	}

	c.JSON(http.StatusOK, envelope{Status: true, Message: msgUserLoggedOut})
}

// Me returns the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthenticated(c)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.health.Ping(c.Request.Context()); err != nil {
		h.logger.Warn(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
