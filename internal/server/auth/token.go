package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tokenauth/internal/common"
)

// tokenSeparator splits the token id from its secret in the plaintext form
// handed to clients: "<id>|<secret>".
const tokenSeparator = "|"

// NewSecret returns a random hex secret built from n bytes and its hash.
func NewSecret(n int) (secret, hash string, err error) {
	secret, err = common.MakeRandHexString(n)
	if err != nil {
		return "", "", err
	}
	return secret, HashSecret(secret), nil
}

// HashSecret returns the hex SHA-256 digest persisted in place of a secret.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// SecretMatches compares secret against a stored hash in constant time.
func SecretMatches(secret, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashSecret(secret)), []byte(hash)) == 1
}

// FormatToken joins a token id and its secret into the plaintext token.
func FormatToken(id, secret string) string {
	return id + tokenSeparator + secret
}

// ParseToken splits a plaintext token. The id must be a UUID and the secret
// non-empty, otherwise common.ErrInvalidToken is returned.
func ParseToken(token string) (id, secret string, err error) {
	id, secret, ok := strings.Cut(token, tokenSeparator)
	if !ok || secret == "" {
		return "", "", common.ErrInvalidToken
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "", common.ErrInvalidToken
	}
	return id, secret, nil
}
