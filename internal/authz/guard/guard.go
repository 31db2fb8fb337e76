// Package guard is the single authorization choke point. Every protected
// operation passes through one of the Require* checks before touching data.
//
// Ordering inside each check is load-bearing: authentication first, then the
// super-admin bypass, then membership lookup, then the role-set check. The
// super-admin branch short-circuits before any membership read so platform
// operators are never blocked by (or dependent on) membership rows.
package guard

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ustudiopd/EventLive-sub001/internal/authz/roles"
	"github.com/ustudiopd/EventLive-sub001/internal/identity/models"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/metrics"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// ActorResolver resolves the authenticated principal for the request.
type ActorResolver interface {
	Resolve(ctx context.Context) (*models.Actor, error)
}

// MembershipResolver performs pure membership lookups. Implementations must
// return sentinel.ErrNotFound for "no membership", never an authorization
// error; translating absence into Forbidden is this package's job.
type MembershipResolver interface {
	ResolveAgencyRole(ctx context.Context, userID id.UserID, agencyID id.AgencyID) (roles.Role, error)
	ResolveClientRole(ctx context.Context, userID id.UserID, clientID id.ClientID) (roles.Role, error)
}

// Grant is the proof a guard check passed. Role is empty when access came
// through the super-admin bypass; callers that branch on role must treat the
// empty role as "platform operator".
type Grant struct {
	Actor models.Actor
	Role  roles.Role
}

// SuperAdmin reports whether the grant came from the super-admin bypass.
func (g *Grant) SuperAdmin() bool {
	return g.Actor.IsSuperAdmin
}

// Guard evaluates access checks. It owns no storage; actors and memberships
// come from the injected resolvers.
type Guard struct {
	actors      ActorResolver
	memberships MembershipResolver
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
}

func New(actors ActorResolver, memberships MembershipResolver, m *metrics.Metrics, logger *slog.Logger) *Guard {
	return &Guard{
		actors:      actors,
		memberships: memberships,
		metrics:     m,
		logger:      logger,
		tracer:      otel.Tracer("authz/guard"),
	}
}

// RequireAuth resolves the actor or fails with an unauthorized error. It makes
// no membership or role judgment.
func (g *Guard) RequireAuth(ctx context.Context) (*Grant, error) {
	ctx, span := g.tracer.Start(ctx, "guard.RequireAuth")
	defer span.End()

	actor, err := g.actors.Resolve(ctx)
	if err != nil {
		g.metrics.IncGuardDecision("auth", "denied")
		return nil, err
	}
	g.metrics.IncGuardDecision("auth", "granted")
	span.SetAttributes(attribute.String("actor.id", actor.ID.String()))
	return &Grant{Actor: *actor}, nil
}

// RequireSuperAdmin grants only platform operators. Regular users are
// forbidden regardless of any memberships they hold.
func (g *Guard) RequireSuperAdmin(ctx context.Context) (*Grant, error) {
	ctx, span := g.tracer.Start(ctx, "guard.RequireSuperAdmin")
	defer span.End()

	actor, err := g.actors.Resolve(ctx)
	if err != nil {
		g.metrics.IncGuardDecision("super_admin", "denied")
		return nil, err
	}
	if !actor.IsSuperAdmin {
		g.metrics.IncGuardDecision("super_admin", "denied")
		g.logger.WarnContext(ctx, "super admin check denied",
			slog.String("actor_id", actor.ID.String()))
		return nil, dErrors.New(dErrors.CodeForbidden, "super admin access required")
	}
	g.metrics.IncGuardDecision("super_admin", "granted")
	return &Grant{Actor: *actor}, nil
}

// RequireAgencyMember grants actors holding one of the allowed roles in the
// agency. An empty allowed list admits any agency membership. Super admins
// bypass the membership lookup entirely and receive an empty role.
func (g *Guard) RequireAgencyMember(ctx context.Context, agencyID id.AgencyID, allowed ...roles.Role) (*Grant, error) {
	ctx, span := g.tracer.Start(ctx, "guard.RequireAgencyMember",
		trace.WithAttributes(attribute.String("agency.id", agencyID.String())))
	defer span.End()

	actor, err := g.actors.Resolve(ctx)
	if err != nil {
		g.metrics.IncGuardDecision("agency", "denied")
		return nil, err
	}

	if actor.IsSuperAdmin {
		g.metrics.IncGuardDecision("agency", "bypass")
		return &Grant{Actor: *actor}, nil
	}

	role, err := g.memberships.ResolveAgencyRole(ctx, actor.ID, agencyID)
	if errors.Is(err, sentinel.ErrNotFound) {
		g.metrics.IncGuardDecision("agency", "denied")
		g.logger.WarnContext(ctx, "agency access denied: no membership",
			slog.String("actor_id", actor.ID.String()),
			slog.String("agency_id", agencyID.String()))
		return nil, dErrors.New(dErrors.CodeForbidden, "agency membership required")
	}
	if err != nil {
		g.metrics.IncGuardDecision("agency", "error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve agency membership")
	}

	if len(allowed) > 0 && !roles.Satisfies(roles.ScopeAgency, role, allowed) {
		g.metrics.IncGuardDecision("agency", "denied")
		g.logger.WarnContext(ctx, "agency access denied: role not allowed",
			slog.String("actor_id", actor.ID.String()),
			slog.String("agency_id", agencyID.String()),
			slog.String("role", role.String()))
		return nil, dErrors.New(dErrors.CodeForbidden, "insufficient agency role")
	}

	g.metrics.IncGuardDecision("agency", "granted")
	return &Grant{Actor: *actor, Role: role}, nil
}

// RequireClientMember grants actors holding one of the allowed roles in the
// client workspace. Semantics mirror RequireAgencyMember; agency roles confer
// nothing here, the two hierarchies are independent.
func (g *Guard) RequireClientMember(ctx context.Context, clientID id.ClientID, allowed ...roles.Role) (*Grant, error) {
	ctx, span := g.tracer.Start(ctx, "guard.RequireClientMember",
		trace.WithAttributes(attribute.String("client.id", clientID.String())))
	defer span.End()

	actor, err := g.actors.Resolve(ctx)
	if err != nil {
		g.metrics.IncGuardDecision("client", "denied")
		return nil, err
	}

	if actor.IsSuperAdmin {
		g.metrics.IncGuardDecision("client", "bypass")
		return &Grant{Actor: *actor}, nil
	}

	role, err := g.memberships.ResolveClientRole(ctx, actor.ID, clientID)
	if errors.Is(err, sentinel.ErrNotFound) {
		g.metrics.IncGuardDecision("client", "denied")
		g.logger.WarnContext(ctx, "client access denied: no membership",
			slog.String("actor_id", actor.ID.String()),
			slog.String("client_id", clientID.String()))
		return nil, dErrors.New(dErrors.CodeForbidden, "client membership required")
	}
	if err != nil {
		g.metrics.IncGuardDecision("client", "error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve client membership")
	}

	if len(allowed) > 0 && !roles.Satisfies(roles.ScopeClient, role, allowed) {
		g.metrics.IncGuardDecision("client", "denied")
		g.logger.WarnContext(ctx, "client access denied: role not allowed",
			slog.String("actor_id", actor.ID.String()),
			slog.String("client_id", clientID.String()),
			slog.String("role", role.String()))
		return nil, dErrors.New(dErrors.CodeForbidden, "insufficient client role")
	}

	g.metrics.IncGuardDecision("client", "granted")
	return &Grant{Actor: *actor, Role: role}, nil
}
