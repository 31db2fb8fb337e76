// Package membership resolves which role, if any, an actor holds in a given
// agency or client scope.
//
// The two membership tables are independent: an agency role never implies a
// client role and vice versa. Keep them as two lookup paths keyed by
// different composite keys; do not derive one from the other.
package membership

import (
	"time"

	"github.com/ustudiopd/EventLive-sub001/internal/authz/roles"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
)

// AgencyMembership is a user's role assignment within one agency.
// Unique per (AgencyID, UserID).
type AgencyMembership struct {
	AgencyID  id.AgencyID
	UserID    id.UserID
	Role      roles.Role
	CreatedAt time.Time
}

// ClientMembership is a user's role assignment within one client.
// Unique per (ClientID, UserID).
type ClientMembership struct {
	ClientID  id.ClientID
	UserID    id.UserID
	Role      roles.Role
	CreatedAt time.Time
}
