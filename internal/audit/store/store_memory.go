package store

import (
	"context"
	"sync"

	"github.com/ustudiopd/EventLive-sub001/internal/audit"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
)

// InMemory keeps the audit trail in a slice. Append-only; there is no update
// or delete surface by design.
type InMemory struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// ListByActor returns the actor's entries in append order.
func (s *InMemory) ListByActor(_ context.Context, actorID id.UserID) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Entry
	for _, e := range s.entries {
		if e.ActorUserID == actorID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns every entry in append order. Test helper.
func (s *InMemory) All() []audit.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
