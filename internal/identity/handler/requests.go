package handler

import (
	"strings"

	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// LoginRequest is the HTTP request body for POST /auth/login.
type LoginRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`

	// Parsed values (populated by Validate)
	parsedEmail string
}

// Validate normalizes and checks the login payload.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	email := strings.ToLower(strings.TrimSpace(r.Email))
	if email == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	if len(email) > 255 || !strings.Contains(email, "@") {
		return dErrors.New(dErrors.CodeInvalidInput, "email must be a valid address")
	}
	r.parsedEmail = email

	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if len(r.DisplayName) > 128 {
		return dErrors.New(dErrors.CodeInvalidInput, "display_name must be at most 128 characters")
	}

	return nil
}

// ParsedEmail returns the normalized email address.
func (r *LoginRequest) ParsedEmail() string {
	return r.parsedEmail
}
