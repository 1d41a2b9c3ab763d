package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/tokenauth/internal/common"
	"github.com/dmitrijs2005/tokenauth/internal/logging"
	"github.com/dmitrijs2005/tokenauth/internal/server/auth"
	"github.com/dmitrijs2005/tokenauth/internal/server/models"
)

const (
	ctxKeyRequestID = "request_id"
	ctxKeyUser      = "auth_user"
	ctxKeyToken     = "auth_token"
)

// RequestID echoes X-Request-ID or assigns a fresh UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// AccessLog writes one structured entry per request.
func AccessLog(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"request_id", c.GetString(ctxKeyRequestID),
			"client_ip", c.ClientIP(),
		}
		if u, ok := CurrentUser(c); ok {
			args = append(args, "user_id", u.ID)
		}
		if t, ok := CurrentToken(c); ok {
			args = append(args, "token_id", t.ID)
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			l.Error(c.Request.Context(), "request", args...)
		case status >= http.StatusBadRequest:
			l.Warn(c.Request.Context(), "request", args...)
		default:
			l.Info(c.Request.Context(), "request", args...)
		}
	}
}

// Recovery turns a handler panic into a 500 envelope.
func Recovery(l logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.Error(c.Request.Context(), "panic recovered", "panic", recovered, "request_id", c.GetString(ctxKeyRequestID))
		failInternal(c)
	})
}

// RequireBearer resolves the Authorization bearer token to its owner and
// stores both in the gin context for the handlers that follow.
func RequireBearer(svc Authenticator, l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		plain, err := auth.ParseBearer(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			unauthenticated(c)
			return
		}

		user, token, err := svc.Authenticate(c.Request.Context(), plain)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				unauthenticated(c)
				return
			}
			l.Error(c.Request.Context(), "bearer authentication failed", "error", err)
			failInternal(c)
			return
		}

		c.Set(ctxKeyUser, user)
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", common.BearerScheme)
	fail(c, http.StatusUnauthorized, msgUnauthenticated)
}

// CurrentUser returns the user resolved by RequireBearer.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// CurrentToken returns the access token that authorised the request.
func CurrentToken(c *gin.Context) (*models.AccessToken, bool) {
	v, ok := c.Get(ctxKeyToken)
	if !ok {
		return nil, false
	}
	t, ok := v.(*models.AccessToken)
	return t, ok && t != nil
}
