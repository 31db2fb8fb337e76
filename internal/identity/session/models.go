package session

import (
	"time"

	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
)

// Session is one authenticated browser/API session.
type Session struct {
	ID        string    `json:"id"`
	UserID    id.UserID `json:"user_id"`
	Device    string    `json:"device"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the session is still valid at the given time.
func (s *Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
