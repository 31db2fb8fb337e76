package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/ustudiopd/EventLive-sub001/internal/authz/membership"
	agencystore "github.com/ustudiopd/EventLive-sub001/internal/authz/membership/store/agency"
	clientstore "github.com/ustudiopd/EventLive-sub001/internal/authz/membership/store/client"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/roles"
	"github.com/ustudiopd/EventLive-sub001/internal/identity/models"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/logger"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/metrics"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// actorResolverStub returns a fixed actor, or an unauthorized error when nil.
type actorResolverStub struct {
	actor *models.Actor
}

func (s *actorResolverStub) Resolve(context.Context) (*models.Actor, error) {
	if s.actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return s.actor, nil
}

type GuardSuite struct {
	suite.Suite
	agencies *agencystore.InMemory
	clients  *clientstore.InMemory
	resolver *membership.Resolver
}

func TestGuardSuite(t *testing.T) {
	suite.Run(t, new(GuardSuite))
}

func (s *GuardSuite) SetupTest() {
	s.agencies = agencystore.NewInMemory()
	s.clients = clientstore.NewInMemory()
	s.resolver = membership.NewResolver(s.agencies, s.clients)
}

func (s *GuardSuite) guardFor(actor *models.Actor) *Guard {
	return New(&actorResolverStub{actor: actor}, s.resolver, nil, logger.NewNop())
}

func (s *GuardSuite) seedAgencyRole(agencyID id.AgencyID, userID id.UserID, role roles.Role) {
	s.Require().NoError(s.agencies.Put(context.Background(), membership.AgencyMembership{
		AgencyID: agencyID, UserID: userID, Role: role, CreatedAt: time.Now(),
	}))
}

func (s *GuardSuite) seedClientRole(clientID id.ClientID, userID id.UserID, role roles.Role) {
	s.Require().NoError(s.clients.Put(context.Background(), membership.ClientMembership{
		ClientID: clientID, UserID: userID, Role: role, CreatedAt: time.Now(),
	}))
}

func (s *GuardSuite) TestRequireAuth() {
	s.Run("unauthenticated caller is rejected", func() {
		g := s.guardFor(nil)
		_, err := g.RequireAuth(context.Background())
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("authenticated caller passes with no role judgment", func() {
		actor := &models.Actor{ID: id.NewUserID()}
		g := s.guardFor(actor)

		grant, err := g.RequireAuth(context.Background())
		s.Require().NoError(err)
		s.Equal(actor.ID, grant.Actor.ID)
		s.Empty(grant.Role)
	})
}

func (s *GuardSuite) TestRequireSuperAdmin() {
	s.Run("super admin passes", func() {
		g := s.guardFor(&models.Actor{ID: id.NewUserID(), IsSuperAdmin: true})
		grant, err := g.RequireSuperAdmin(context.Background())
		s.Require().NoError(err)
		s.True(grant.SuperAdmin())
	})

	s.Run("regular user is forbidden even with memberships everywhere", func() {
		userID := id.NewUserID()
		s.seedAgencyRole(id.NewAgencyID(), userID, roles.RoleOwner)
		s.seedClientRole(id.NewClientID(), userID, roles.RoleOwner)

		g := s.guardFor(&models.Actor{ID: userID})
		_, err := g.RequireSuperAdmin(context.Background())
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("unauthenticated caller is unauthorized, not forbidden", func() {
		g := s.guardFor(nil)
		_, err := g.RequireSuperAdmin(context.Background())
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *GuardSuite) TestSuperAdminBypass() {
	admin := &models.Actor{ID: id.NewUserID(), IsSuperAdmin: true}
	g := s.guardFor(admin)

	s.Run("agency guard grants any agency without a membership row", func() {
		grant, err := g.RequireAgencyMember(context.Background(), id.NewAgencyID(), roles.RoleOwner)
		s.Require().NoError(err)
		s.Empty(grant.Role, "bypass grant carries no scoped role")
		s.True(grant.SuperAdmin())
	})

	s.Run("client guard grants any client without a membership row", func() {
		grant, err := g.RequireClientMember(context.Background(), id.NewClientID(), roles.RoleOwner, roles.RoleAdmin)
		s.Require().NoError(err)
		s.Empty(grant.Role)
	})

	s.Run("bypass does not consult the membership store", func() {
		// A membership row that would deny access must be invisible to the
		// bypass: seed the admin as viewer and demand owner.
		clientID := id.NewClientID()
		s.seedClientRole(clientID, admin.ID, roles.RoleViewer)

		grant, err := g.RequireClientMember(context.Background(), clientID, roles.RoleOwner)
		s.Require().NoError(err)
		s.Empty(grant.Role)
	})
}

func (s *GuardSuite) TestRequireAgencyMember() {
	agencyID := id.NewAgencyID()

	s.Run("member with allowed role is granted and role returned", func() {
		userID := id.NewUserID()
		s.seedAgencyRole(agencyID, userID, roles.RoleAdmin)
		g := s.guardFor(&models.Actor{ID: userID})

		grant, err := g.RequireAgencyMember(context.Background(), agencyID, roles.RoleOwner, roles.RoleAdmin)
		s.Require().NoError(err)
		s.Equal(roles.RoleAdmin, grant.Role)
	})

	s.Run("member outside the allowed set is forbidden", func() {
		userID := id.NewUserID()
		s.seedAgencyRole(agencyID, userID, roles.RoleAdmin)
		g := s.guardFor(&models.Actor{ID: userID})

		_, err := g.RequireAgencyMember(context.Background(), agencyID, roles.RoleOwner)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("non-member is forbidden", func() {
		g := s.guardFor(&models.Actor{ID: id.NewUserID()})
		_, err := g.RequireAgencyMember(context.Background(), agencyID, roles.RoleOwner, roles.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("membership in another agency confers nothing", func() {
		userID := id.NewUserID()
		s.seedAgencyRole(id.NewAgencyID(), userID, roles.RoleOwner)
		g := s.guardFor(&models.Actor{ID: userID})

		_, err := g.RequireAgencyMember(context.Background(), agencyID, roles.RoleOwner, roles.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("empty allowed set admits any membership role", func() {
		userID := id.NewUserID()
		s.seedAgencyRole(agencyID, userID, roles.RoleAdmin)
		g := s.guardFor(&models.Actor{ID: userID})

		grant, err := g.RequireAgencyMember(context.Background(), agencyID)
		s.Require().NoError(err)
		s.Equal(roles.RoleAdmin, grant.Role)
	})
}

func (s *GuardSuite) TestRequireClientMember() {
	clientID := id.NewClientID()

	s.Run("viewer denied by the console role set", func() {
		userID := id.NewUserID()
		s.seedClientRole(clientID, userID, roles.RoleViewer)
		g := s.guardFor(&models.Actor{ID: userID})

		_, err := g.RequireClientMember(context.Background(), clientID,
			roles.RoleOwner, roles.RoleAdmin, roles.RoleOperator)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("viewer granted when the full role set is allowed", func() {
		userID := id.NewUserID()
		s.seedClientRole(clientID, userID, roles.RoleViewer)
		g := s.guardFor(&models.Actor{ID: userID})

		grant, err := g.RequireClientMember(context.Background(), clientID,
			roles.RoleOwner, roles.RoleAdmin, roles.RoleOperator, roles.RoleAnalyst, roles.RoleViewer)
		s.Require().NoError(err)
		s.Equal(roles.RoleViewer, grant.Role)
	})

	s.Run("non-contiguous allowed set checks membership, not rank", func() {
		// operator (rank 3) out, analyst (rank 2) in: a threshold comparison
		// would get this backwards.
		operator := id.NewUserID()
		analyst := id.NewUserID()
		s.seedClientRole(clientID, operator, roles.RoleOperator)
		s.seedClientRole(clientID, analyst, roles.RoleAnalyst)

		allowed := []roles.Role{roles.RoleOwner, roles.RoleAnalyst}

		_, err := s.guardFor(&models.Actor{ID: operator}).
			RequireClientMember(context.Background(), clientID, allowed...)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		grant, err := s.guardFor(&models.Actor{ID: analyst}).
			RequireClientMember(context.Background(), clientID, allowed...)
		s.Require().NoError(err)
		s.Equal(roles.RoleAnalyst, grant.Role)
	})

	s.Run("agency role confers no client access", func() {
		userID := id.NewUserID()
		s.seedAgencyRole(id.NewAgencyID(), userID, roles.RoleOwner)
		g := s.guardFor(&models.Actor{ID: userID})

		_, err := g.RequireClientMember(context.Background(), clientID, roles.RoleOwner, roles.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("unauthenticated caller is unauthorized before any lookup", func() {
		g := s.guardFor(nil)
		_, err := g.RequireClientMember(context.Background(), clientID, roles.RoleOwner)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

var errStoreDown = errors.New("membership store unavailable")

// failingMembershipStub reports a store outage for every lookup.
type failingMembershipStub struct{}

func (failingMembershipStub) ResolveAgencyRole(context.Context, id.UserID, id.AgencyID) (roles.Role, error) {
	return "", errStoreDown
}

func (failingMembershipStub) ResolveClientRole(context.Context, id.UserID, id.ClientID) (roles.Role, error) {
	return "", errStoreDown
}

func (s *GuardSuite) TestMembershipLookupFailure() {
	m := metrics.NewWith(prometheus.NewRegistry())
	actor := &models.Actor{ID: id.NewUserID()}
	g := New(&actorResolverStub{actor: actor}, failingMembershipStub{}, m, logger.NewNop())

	_, err := g.RequireAgencyMember(context.Background(), id.NewAgencyID(), roles.RoleOwner)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	_, err = g.RequireClientMember(context.Background(), id.NewClientID(), roles.RoleOwner)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	// Every exit path lands in the decision counter, outages included.
	s.Equal(float64(1), testutil.ToFloat64(m.GuardDecisions.WithLabelValues("agency", "error")))
	s.Equal(float64(1), testutil.ToFloat64(m.GuardDecisions.WithLabelValues("client", "error")))
}
