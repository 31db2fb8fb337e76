package models

import (
	"regexp"
	"strings"
	"time"

	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Webinar is a single event under a client. Addressable by id, or by slug
// within its client when one is set. PasscodeHash gates the operator console;
// empty means no passcode is required.
type Webinar struct {
	ID           id.WebinarID `json:"id"`
	ClientID     id.ClientID  `json:"client_id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug,omitempty"`
	PasscodeHash string       `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func NewWebinar(webinarID id.WebinarID, clientID id.ClientID, title, slug string, now time.Time) (*Webinar, error) {
	if clientID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "webinar must belong to a client")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "webinar title cannot be empty")
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug != "" && !slugPattern.MatchString(slug) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "slug must be lowercase letters, digits and hyphens")
	}
	return &Webinar{
		ID:        webinarID,
		ClientID:  clientID,
		Title:     title,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
