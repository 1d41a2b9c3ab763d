package models

import "time"

// AccessToken is the stored half of a bearer token. The plaintext secret is
// handed to the client once and only its hash is kept.
type AccessToken struct {
	ID         string
	UserID     string
	Name       string
	TokenHash  string
	LastUsedAt *time.Time
	CreatedAt  time.Time
}
