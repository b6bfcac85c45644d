// Package secrets wraps password hashing so the cost factor and error
// translation live in one place.
package secrets

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "leavehub/pkg/domain-errors"
)

// HashCost is the fixed bcrypt cost factor for password storage.
const HashCost = bcrypt.DefaultCost

// Hash creates a bcrypt hash of the provided password.
func Hash(password string) (string, error) {
	if password == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "password is too long")
		}
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks a plaintext password against a stored bcrypt hash. A mismatch
// returns ErrMismatch so callers can distinguish bad credentials from hashing
// failures.
func Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return fmt.Errorf("could not verify password: %w", err)
	}
	return nil
}

// ErrMismatch reports a well-formed hash that does not match the password.
var ErrMismatch = errors.New("password mismatch")
