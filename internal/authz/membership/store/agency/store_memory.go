package agency

import (
	"context"
	"sort"
	"sync"

	"github.com/ustudiopd/EventLive-sub001/internal/authz/membership"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/roles"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

type key struct {
	agencyID id.AgencyID
	userID   id.UserID
}

// InMemory keeps agency memberships in a map keyed by the composite
// (agencyID, userID) key. Favors clarity over performance.
type InMemory struct {
	mu   sync.RWMutex
	rows map[key]membership.AgencyMembership
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[key]membership.AgencyMembership)}
}

// Put inserts or replaces a membership row. Membership rows are created by
// the invitation flow; this store surface exists for seeding and tests.
func (s *InMemory) Put(_ context.Context, m membership.AgencyMembership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[key{m.AgencyID, m.UserID}] = m
	return nil
}

func (s *InMemory) FindRole(_ context.Context, agencyID id.AgencyID, userID id.UserID) (roles.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.rows[key{agencyID, userID}]; ok {
		return m.Role, nil
	}
	return "", sentinel.ErrNotFound
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]membership.AgencyMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []membership.AgencyMembership
	for _, m := range s.rows {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
