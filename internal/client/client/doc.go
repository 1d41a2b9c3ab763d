// Package client contains the CLI's transport to the auth server.
//
// HTTPClient talks JSON to the REST API through go-retryablehttp, retrying
// connection failures and 5xx responses with linear jittered backoff. Non-2xx
// answers are decoded into *APIError, which unwraps to ErrUnauthorized or
// ErrValidation so callers can match with errors.Is. A server that cannot be
// reached at all yields ErrUnavailable.
//
// InitDatabase opens the local SQLite file holding the CLI session and applies
// the embedded goose migrations.
package client
