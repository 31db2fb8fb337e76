package membership

import (
	"context"

	"github.com/ustudiopd/EventLive-sub001/internal/authz/roles"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// AgencyStore is the read surface the resolver needs for agency memberships.
// ListByUser returns rows ordered by creation time ascending so "first
// membership" is deterministic across store implementations.
type AgencyStore interface {
	// FindRole returns the stored role for (agencyID, userID), or
	// sentinel.ErrNotFound when no membership row exists.
	FindRole(ctx context.Context, agencyID id.AgencyID, userID id.UserID) (roles.Role, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]AgencyMembership, error)
}

// ClientStore is the read surface the resolver needs for client memberships.
type ClientStore interface {
	FindRole(ctx context.Context, clientID id.ClientID, userID id.UserID) (roles.Role, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]ClientMembership, error)
}

// Resolver performs pure membership lookups. It deliberately does not
// consult the super-admin flag - that bypass belongs to the guards, keeping
// this component a plain keyed read. Results are never cached across
// requests; membership can change between requests and staleness is not
// tolerated.
type Resolver struct {
	agencies AgencyStore
	clients  ClientStore
}

func NewResolver(agencies AgencyStore, clients ClientStore) *Resolver {
	return &Resolver{agencies: agencies, clients: clients}
}

// ResolveAgencyRole returns the actor's role in the agency, or
// sentinel.ErrNotFound when the actor holds no membership there.
func (r *Resolver) ResolveAgencyRole(ctx context.Context, userID id.UserID, agencyID id.AgencyID) (roles.Role, error) {
	return r.agencies.FindRole(ctx, agencyID, userID)
}

// ResolveClientRole returns the actor's role in the client, or
// sentinel.ErrNotFound when the actor holds no membership there.
func (r *Resolver) ResolveClientRole(ctx context.Context, userID id.UserID, clientID id.ClientID) (roles.Role, error) {
	return r.clients.FindRole(ctx, clientID, userID)
}

// FirstAgencyMembership returns the actor's earliest-created agency
// membership, or sentinel.ErrNotFound when there is none.
func (r *Resolver) FirstAgencyMembership(ctx context.Context, userID id.UserID) (*AgencyMembership, error) {
	rows, err := r.agencies.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return &rows[0], nil
}

// FirstClientMembership returns the actor's earliest-created client
// membership, or sentinel.ErrNotFound when there is none.
func (r *Resolver) FirstClientMembership(ctx context.Context, userID id.UserID) (*ClientMembership, error) {
	rows, err := r.clients.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return &rows[0], nil
}
