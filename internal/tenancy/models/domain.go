package models

import (
	"strings"
	"time"

	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// Domain is a custom hostname registered by an agency. The stored value is
// always normalized; the domain value is globally unique across all agencies.
// Domains start unverified; verification is an external process.
type Domain struct {
	ID        id.DomainID `json:"id"`
	AgencyID  id.AgencyID `json:"agency_id"`
	Domain    string      `json:"domain"`
	Verified  bool        `json:"verified"`
	CreatedAt time.Time   `json:"created_at"`
}

// NormalizeDomain lowercases and trims a raw domain value. All comparisons
// and storage use the normalized form.
func NormalizeDomain(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func NewDomain(domainID id.DomainID, agencyID id.AgencyID, raw string, now time.Time) (*Domain, error) {
	if agencyID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "domain must belong to an agency")
	}
	value := NormalizeDomain(raw)
	if value == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "domain cannot be empty")
	}
	if !strings.Contains(value, ".") || strings.ContainsAny(value, " /:") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "domain is not a valid hostname")
	}
	return &Domain{
		ID:        domainID,
		AgencyID:  agencyID,
		Domain:    value,
		Verified:  false,
		CreatedAt: now,
	}, nil
}
