package handler

import (
	"time"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
)

// List envelopes keep the top-level JSON an object so fields can be added
// later without breaking clients.
type (
	AgencyListResponse struct {
		Agencies []models.Agency `json:"agencies"`
	}
	ClientListResponse struct {
		Clients []models.Client `json:"clients"`
	}
	DomainListResponse struct {
		Domains []models.Domain `json:"domains"`
	}
	AllowedEmailListResponse struct {
		Emails []models.AllowedEmail `json:"emails"`
	}
)

// WebinarResponse is the HTTP shape of a webinar. The passcode hash never
// leaves the server; callers only learn whether a passcode gate exists.
type WebinarResponse struct {
	ID               id.WebinarID `json:"id"`
	ClientID         id.ClientID  `json:"client_id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug,omitempty"`
	RequiresPasscode bool         `json:"requires_passcode"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// FromWebinar converts a webinar model to its HTTP response.
func FromWebinar(w *models.Webinar) *WebinarResponse {
	return &WebinarResponse{
		ID:               w.ID,
		ClientID:         w.ClientID,
		Title:            w.Title,
		Slug:             w.Slug,
		RequiresPasscode: w.PasscodeHash != "",
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

// ConsoleAccessResponse is the HTTP response for POST /webinars/{webinarID}/console.
type ConsoleAccessResponse struct {
	Granted bool `json:"granted"`
}
