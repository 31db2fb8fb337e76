// Package models holds the tenant tree aggregates: agencies own clients and
// domains, clients own webinars, webinars own email allow-lists.
package models

import (
	"time"

	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// AgencyStatus is the lifecycle state of an agency.
type AgencyStatus string

const (
	AgencyStatusActive   AgencyStatus = "active"
	AgencyStatusInactive AgencyStatus = "inactive"
)

// Agency is the top-level tenant. Owns zero or more clients and zero or more
// custom domains.
type Agency struct {
	ID        id.AgencyID  `json:"id"`
	Name      string       `json:"name"`
	Status    AgencyStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (a *Agency) IsActive() bool {
	return a.Status == AgencyStatusActive
}

func NewAgency(agencyID id.AgencyID, name string, now time.Time) (*Agency, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "agency name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "agency name must be 128 characters or less")
	}
	return &Agency{
		ID:        agencyID,
		Name:      name,
		Status:    AgencyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
