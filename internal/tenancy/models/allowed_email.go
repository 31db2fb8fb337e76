package models

import (
	"strings"
	"time"

	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// AllowedEmail is one allow-list entry for a webinar. Unique per
// (WebinarID, Email); the same address may appear on other webinars.
type AllowedEmail struct {
	WebinarID id.WebinarID `json:"webinar_id"`
	Email     string       `json:"email"`
	CreatedAt time.Time    `json:"created_at"`
}

// NormalizeEmail lowercases and trims an address so the per-webinar
// uniqueness check is case-insensitive.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func NewAllowedEmail(webinarID id.WebinarID, raw string, now time.Time) (*AllowedEmail, error) {
	if webinarID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "allow-list entry must belong to a webinar")
	}
	email := NormalizeEmail(raw)
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "allow-list entry must be a valid email address")
	}
	return &AllowedEmail{
		WebinarID: webinarID,
		Email:     email,
		CreatedAt: now,
	}, nil
}
