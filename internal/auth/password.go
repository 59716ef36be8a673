// Package auth provides password hashing, API-key generation, and session
// token issuance/verification for the Soccer League API.
package auth

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the given plaintext password.
// The hash embeds its own salt and cost, so it is the only thing stored.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewAPIKey generates a fresh long-lived API key for a user. Uniqueness is
// ultimately enforced by the unique index on users.api_key; a v4 UUID makes
// a collision practically impossible to begin with.
func NewAPIKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
