package client

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
	clientID id.ClientID
	userID   id.UserID
}

// InMemory keeps client memberships in a map keyed by the composite
// (clientID, userID) key.
type InMemory struct {
	mu   sync.RWMutex
	rows map[key]membership.ClientMembership
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[key]membership.ClientMembership)}
}

// Put inserts or replaces a membership row. For seeding and tests.
func (s *InMemory) Put(_ context.Context, m membership.ClientMembership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[key{m.ClientID, m.UserID}] = m
	return nil
}

func (s *InMemory) FindRole(_ context.Context, clientID id.ClientID, userID id.UserID) (roles.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.rows[key{clientID, userID}]; ok {
		return m.Role, nil
	}
	return "", sentinel.ErrNotFound
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]membership.ClientMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []membership.ClientMembership
	for _, m := range s.rows {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
