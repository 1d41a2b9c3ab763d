package common

const (
	// AuthorizationHeaderName carries the bearer token on API requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the authorization scheme accepted by the API.
	BearerScheme = "Bearer"

	// TokenTypeBearer is reported to clients alongside an issued token.
	TokenTypeBearer = "bearer"

	// RequestIDHeaderName is echoed back on every HTTP response.
	RequestIDHeaderName = "X-Request-ID"
)
