// Package audit records privileged mutating actions to an append-only trail.
//
// Recording is best-effort by contract: a failed audit write is logged and
// counted but never fails the operation that triggered it. The trail is
// written only after the primary mutation has committed.
package audit

import (
	"time"

	"github.com/google/uuid"

	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
)

// Action identifies what kind of privileged mutation happened. Fixed
// enumeration; stored as text so the trail survives enum changes.
type Action string

const (
	ActionAgencyCreate       Action = "AGENCY_CREATE"
	ActionClientCreate       Action = "CLIENT_CREATE"
	ActionWebinarCreate      Action = "WEBINAR_CREATE"
	ActionDomainCreate       Action = "DOMAIN_CREATE"
	ActionDomainDelete       Action = "DOMAIN_DELETE"
	ActionAllowedEmailAdd    Action = "ALLOWED_EMAIL_ADD"
	ActionAllowedEmailRemove Action = "ALLOWED_EMAIL_REMOVE"
)

// Entry is one row in the audit trail. Append-only; never updated or deleted
// by the system.
type Entry struct {
	ID          uuid.UUID      `json:"id"`
	ActorUserID id.UserID      `json:"actor_user_id"`
	AgencyID    *id.AgencyID   `json:"agency_id,omitempty"`
	ClientID    *id.ClientID   `json:"client_id,omitempty"`
	Action      Action         `json:"action"`
	Payload     map[string]any `json:"payload"`
	CreatedAt   time.Time      `json:"created_at"`
}
