package models

import (
	"strings"
	"time"

	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// Actor is the authenticated principal for one request. Resolved once per
// request and immutable for the request's lifetime.
type Actor struct {
	ID           id.UserID `json:"id"`
	IsSuperAdmin bool      `json:"is_super_admin"`
}

// Profile is the stored user record the Actor is derived from.
type Profile struct {
	ID           id.UserID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor projects the profile down to what guards need.
func (p *Profile) Actor() Actor {
	return Actor{ID: p.ID, IsSuperAdmin: p.IsSuperAdmin}
}

// NewProfile validates and constructs a profile. Email is normalized
// (lowercased, trimmed) so the unique index behaves case-insensitively.
func NewProfile(userID id.UserID, email, displayName string, now time.Time) (*Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "profile email must be a valid address")
	}
	return &Profile{
		ID:          userID,
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
		CreatedAt:   now,
	}, nil
}
