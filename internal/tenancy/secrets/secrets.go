// Package secrets handles webinar console passcodes: generation, bcrypt
// hashing, and verification. Plaintext passcodes are never stored.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// Generate creates a cryptographically secure random passcode, base64-encoded.
func Generate() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate passcode: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash creates a bcrypt hash of the passcode for storage.
func Hash(passcode string) (string, error) {
	if passcode == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "passcode cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "passcode is too long")
		}
		return "", fmt.Errorf("could not hash passcode: %w", err)
	}
	return string(hashed), nil
}

// Verify checks a plaintext passcode against a stored hash.
func Verify(passcode, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeInvalidInput, "invalid passcode")
		}
		return fmt.Errorf("could not verify passcode: %w", err)
	}
	return nil
}
