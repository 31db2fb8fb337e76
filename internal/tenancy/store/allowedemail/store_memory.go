package allowedemail

import (
	"context"
	"sort"
	"sync"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

type key struct {
	webinarID id.WebinarID
	email     string
}

// InMemory keeps allow-list entries keyed by (webinarID, email), mirroring
// the composite primary key in Postgres.
type InMemory struct {
	mu   sync.Mutex
	rows map[key]models.AllowedEmail
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[key]models.AllowedEmail)}
}

// Add inserts an entry, returning sentinel.ErrAlreadyUsed when the address is
// already listed for the webinar.
func (s *InMemory) Add(_ context.Context, e *models.AllowedEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{e.WebinarID, e.Email}
	if _, exists := s.rows[k]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.rows[k] = *e
	return nil
}

// Remove deletes an entry, returning sentinel.ErrNotFound when absent.
func (s *InMemory) Remove(_ context.Context, webinarID id.WebinarID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{webinarID, email}
	if _, exists := s.rows[k]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.rows, k)
	return nil
}

// List returns the webinar's entries ordered by creation time.
func (s *InMemory) List(_ context.Context, webinarID id.WebinarID) ([]models.AllowedEmail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AllowedEmail
	for _, e := range s.rows {
		if e.WebinarID == webinarID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Contains reports whether the address is on the webinar's allow-list.
func (s *InMemory) Contains(_ context.Context, webinarID id.WebinarID, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[key{webinarID, email}]
	return ok, nil
}
