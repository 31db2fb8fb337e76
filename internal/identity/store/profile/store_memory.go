package profile

import (
	"context"
	"strings"
	"sync"

	"github.com/ustudiopd/EventLive-sub001/internal/identity/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// InMemory keeps profiles in maps. Favors clarity over performance.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.UserID]models.Profile
	byEmail map[string]id.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[id.UserID]models.Profile),
		byEmail: make(map[string]id.UserID),
	}
}

func (s *InMemory) Create(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	emailKey := strings.ToLower(p.Email)
	if _, exists := s.byEmail[emailKey]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.byID[p.ID] = *p
	s.byEmail[emailKey] = p.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.byID[userID]; ok {
		return &p, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]; ok {
		p := s.byID[userID]
		return &p, nil
	}
	return nil, sentinel.ErrNotFound
}

// SetSuperAdmin flips the super-admin flag. For seeding and tests; super
// admins are provisioned out of band in production.
func (s *InMemory) SetSuperAdmin(_ context.Context, userID id.UserID, isSuperAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.IsSuperAdmin = isSuperAdmin
	s.byID[userID] = p
	return nil
}
