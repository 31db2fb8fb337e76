package domain

import (
	"context"
	"sort"
	"sync"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// InMemory keeps agency domains in maps. The byDomain index enforces global
// uniqueness the way the database unique index does, including under
// concurrent CreateIfAvailable calls.
type InMemory struct {
	mu       sync.Mutex
	rows     map[id.DomainID]models.Domain
	byDomain map[string]id.DomainID
}

func NewInMemory() *InMemory {
	return &InMemory{
		rows:     make(map[id.DomainID]models.Domain),
		byDomain: make(map[string]id.DomainID),
	}
}

// CreateIfAvailable inserts the domain unless the normalized value is taken
// anywhere, returning sentinel.ErrAlreadyUsed on collision. Check and insert
// happen under one lock so concurrent callers cannot both succeed.
func (s *InMemory) CreateIfAvailable(_ context.Context, d *models.Domain) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byDomain[d.Domain]; taken {
		return sentinel.ErrAlreadyUsed
	}
	s.rows[d.ID] = *d
	s.byDomain[d.Domain] = d.ID
	return nil
}

// Exists reports whether the normalized domain value is registered by any
// agency.
func (s *InMemory) Exists(_ context.Context, normalized string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, taken := s.byDomain[normalized]
	return taken, nil
}

// DeleteOwned removes the domain only when it belongs to the given agency.
// Returns sentinel.ErrNotFound both for missing domains and for domains owned
// by another agency; callers must not be able to tell these apart.
func (s *InMemory) DeleteOwned(_ context.Context, agencyID id.AgencyID, domainID id.DomainID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.rows[domainID]
	if !ok || d.AgencyID != agencyID {
		return sentinel.ErrNotFound
	}
	delete(s.rows, domainID)
	delete(s.byDomain, d.Domain)
	return nil
}

// ListByAgency returns the agency's domains ordered by creation time.
func (s *InMemory) ListByAgency(_ context.Context, agencyID id.AgencyID) ([]models.Domain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Domain
	for _, d := range s.rows {
		if d.AgencyID == agencyID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
