package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgUserCreated        = "User Created Successfully"
	msgUserLoggedIn       = "User Logged In Successfully"
	msgUserLoggedOut      = "User Logged Out Successfully"
	msgCredentialMismatch = "Email & Password does not match"
	msgValidation         = "validation error"
	msgUnauthenticated    = "Unauthenticated."
	msgMalformedBody      = "malformed request body"
	msgInternal           = "internal server error"
)

// envelope is the body of every API response except GET /user.
type envelope struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func fail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, envelope{Status: false, Message: msg})
}

func failValidation(c *gin.Context, fields map[string][]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, envelope{
		Status:  false,
		Message: msgValidation,
		Errors:  fields,
	})
}

func failInternal(c *gin.Context) {
	fail(c, http.StatusInternalServerError, msgInternal)
}
