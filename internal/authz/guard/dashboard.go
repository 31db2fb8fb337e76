package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/ustudiopd/EventLive-sub001/internal/authz/membership"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// FirstMembershipFinder yields the actor's earliest-created membership in each
// scope. Ordering by creation time keeps the landing page stable for users
// with several memberships.
type FirstMembershipFinder interface {
	FirstAgencyMembership(ctx context.Context, userID id.UserID) (*membership.AgencyMembership, error)
	FirstClientMembership(ctx context.Context, userID id.UserID) (*membership.ClientMembership, error)
}

// DashboardResolver picks the landing path after login. Precedence: super
// admin, then earliest agency membership, then earliest client membership,
// then no workspace at all.
type DashboardResolver struct {
	actors         ActorResolver
	memberships    FirstMembershipFinder
	superAdminPath string
}

func NewDashboardResolver(actors ActorResolver, memberships FirstMembershipFinder, superAdminPath string) *DashboardResolver {
	return &DashboardResolver{
		actors:         actors,
		memberships:    memberships,
		superAdminPath: superAdminPath,
	}
}

// LandingPath returns the dashboard path for the current actor. The empty
// string means the actor holds no workspace anywhere; callers decide the
// fallback (typically a "no access" page).
func (r *DashboardResolver) LandingPath(ctx context.Context) (string, error) {
	actor, err := r.actors.Resolve(ctx)
	if err != nil {
		return "", err
	}

	if actor.IsSuperAdmin {
		return r.superAdminPath, nil
	}

	agency, err := r.memberships.FirstAgencyMembership(ctx, actor.ID)
	if err == nil {
		return fmt.Sprintf("/agencies/%s", agency.AgencyID), nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve agency memberships")
	}

	client, err := r.memberships.FirstClientMembership(ctx, actor.ID)
	if err == nil {
		return fmt.Sprintf("/clients/%s", client.ClientID), nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve client memberships")
	}

	return "", nil
}
