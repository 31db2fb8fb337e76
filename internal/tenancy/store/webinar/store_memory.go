package webinar

import (
	"context"
	"sync"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

type slugKey struct {
	clientID id.ClientID
	slug     string
}

// InMemory keeps webinars in maps. The slug index mirrors the partial unique
// index in Postgres: only webinars with a slug occupy it.
type InMemory struct {
	mu     sync.RWMutex
	rows   map[id.WebinarID]models.Webinar
	bySlug map[slugKey]id.WebinarID
}

func NewInMemory() *InMemory {
	return &InMemory{
		rows:   make(map[id.WebinarID]models.Webinar),
		bySlug: make(map[slugKey]id.WebinarID),
	}
}

func (s *InMemory) Create(_ context.Context, w *models.Webinar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[w.ID]; exists {
		return sentinel.ErrConflict
	}
	if w.Slug != "" {
		key := slugKey{w.ClientID, w.Slug}
		if _, taken := s.bySlug[key]; taken {
			return sentinel.ErrAlreadyUsed
		}
		s.bySlug[key] = w.ID
	}
	s.rows[w.ID] = *w
	return nil
}

func (s *InMemory) FindByID(_ context.Context, webinarID id.WebinarID) (*models.Webinar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if w, ok := s.rows[webinarID]; ok {
		return &w, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindBySlug(_ context.Context, clientID id.ClientID, slug string) (*models.Webinar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if webinarID, ok := s.bySlug[slugKey{clientID, slug}]; ok {
		w := s.rows[webinarID]
		return &w, nil
	}
	return nil, sentinel.ErrNotFound
}
