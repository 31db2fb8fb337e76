package models

import (
	"time"

	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// Client is a workspace under exactly one agency; it cannot exist without
// its owner.
type Client struct {
	ID          id.ClientID    `json:"id"`
	AgencyID    id.AgencyID    `json:"agency_id"`
	Name        string         `json:"name"`
	LogoURL     string         `json:"logo_url,omitempty"`
	BrandConfig map[string]any `json:"brand_config,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func NewClient(clientID id.ClientID, agencyID id.AgencyID, name string, now time.Time) (*Client, error) {
	if agencyID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client must belong to an agency")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client name must be 128 characters or less")
	}
	return &Client{
		ID:        clientID,
		AgencyID:  agencyID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
