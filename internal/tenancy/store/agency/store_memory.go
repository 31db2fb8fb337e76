package agency

import (
	"context"
	"sort"
	"sync"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// InMemory keeps agencies in a map. Favors clarity over performance.
type InMemory struct {
	mu   sync.RWMutex
	rows map[id.AgencyID]models.Agency
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[id.AgencyID]models.Agency)}
}

func (s *InMemory) Create(_ context.Context, a *models.Agency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[a.ID]; exists {
		return sentinel.ErrConflict
	}
	s.rows[a.ID] = *a
	return nil
}

func (s *InMemory) FindByID(_ context.Context, agencyID id.AgencyID) (*models.Agency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.rows[agencyID]; ok {
		return &a, nil
	}
	return nil, sentinel.ErrNotFound
}

// List returns all agencies ordered by creation time ascending.
func (s *InMemory) List(_ context.Context) ([]models.Agency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Agency, 0, len(s.rows))
	for _, a := range s.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
