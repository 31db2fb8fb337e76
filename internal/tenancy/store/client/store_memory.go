package client

import (
	"context"
	"sort"
	"sync"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// InMemory keeps clients in a map. Favors clarity over performance.
type InMemory struct {
	mu   sync.RWMutex
	rows map[id.ClientID]models.Client
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[id.ClientID]models.Client)}
}

func (s *InMemory) Create(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[c.ID]; exists {
		return sentinel.ErrConflict
	}
	s.rows[c.ID] = *c
	return nil
}

func (s *InMemory) FindByID(_ context.Context, clientID id.ClientID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.rows[clientID]; ok {
		return &c, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListByAgency(_ context.Context, agencyID id.AgencyID) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Client
	for _, c := range s.rows {
		if c.AgencyID == agencyID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
