package auth

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/tokenauth/internal/common"
)

var (
	ErrMissingAuthorization = errors.New("missing authorization header")
	ErrInvalidBearerFormat  = errors.New("invalid bearer authorization format")
	ErrEmptyBearerToken     = errors.New("empty bearer token")
)

// ParseBearer extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func ParseBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingAuthorization
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok {
		if strings.EqualFold(header, common.BearerScheme) {
			return "", ErrEmptyBearerToken
		}
		return "", ErrInvalidBearerFormat
	}
	if !strings.EqualFold(scheme, common.BearerScheme) {
		return "", ErrInvalidBearerFormat
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyBearerToken
	}
	return token, nil
}
