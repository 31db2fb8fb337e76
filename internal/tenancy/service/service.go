// Package service orchestrates privileged tenant-tree operations. Every
// mutation follows the same shape: guard check, mutate, then audit. The audit
// call is always last and always best-effort.
package service

import (
	"context"
	"log/slog"

	"github.com/ustudiopd/EventLive-sub001/internal/audit"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/guard"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/roles"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/metrics"
	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
)

// Role sets per operation. Explicit enumerations; adding a role to one
// operation must not silently widen another.
var (
	agencyManagerRoles = []roles.Role{roles.RoleOwner, roles.RoleAdmin}
	clientManagerRoles = []roles.Role{roles.RoleOwner, roles.RoleAdmin}
	consoleRoles       = []roles.Role{roles.RoleOwner, roles.RoleAdmin, roles.RoleOperator}
)

// Authorizer is the guard surface the service calls before every operation.
type Authorizer interface {
	RequireSuperAdmin(ctx context.Context) (*guard.Grant, error)
	RequireAgencyMember(ctx context.Context, agencyID id.AgencyID, allowed ...roles.Role) (*guard.Grant, error)
	RequireClientMember(ctx context.Context, clientID id.ClientID, allowed ...roles.Role) (*guard.Grant, error)
}

// AuditRecorder receives one entry per successful mutation. Implementations
// never return an error; audit failure must not fail the operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

type AgencyStore interface {
	Create(ctx context.Context, a *models.Agency) error
	FindByID(ctx context.Context, agencyID id.AgencyID) (*models.Agency, error)
	List(ctx context.Context) ([]models.Agency, error)
}

type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error)
	ListByAgency(ctx context.Context, agencyID id.AgencyID) ([]models.Client, error)
}

type WebinarStore interface {
	Create(ctx context.Context, w *models.Webinar) error
	FindByID(ctx context.Context, webinarID id.WebinarID) (*models.Webinar, error)
	FindBySlug(ctx context.Context, clientID id.ClientID, slug string) (*models.Webinar, error)
}

type DomainStore interface {
	CreateIfAvailable(ctx context.Context, d *models.Domain) error
	Exists(ctx context.Context, normalized string) (bool, error)
	DeleteOwned(ctx context.Context, agencyID id.AgencyID, domainID id.DomainID) error
	ListByAgency(ctx context.Context, agencyID id.AgencyID) ([]models.Domain, error)
}

type AllowedEmailStore interface {
	Add(ctx context.Context, e *models.AllowedEmail) error
	Remove(ctx context.Context, webinarID id.WebinarID, email string) error
	List(ctx context.Context, webinarID id.WebinarID) ([]models.AllowedEmail, error)
}

// Service wires the guards, stores, and audit recorder together.
type Service struct {
	guards        Authorizer
	agencies      AgencyStore
	clients       ClientStore
	webinars      WebinarStore
	domains       DomainStore
	allowedEmails AllowedEmailStore
	auditor       AuditRecorder
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

type Stores struct {
	Agencies      AgencyStore
	Clients       ClientStore
	Webinars      WebinarStore
	Domains       DomainStore
	AllowedEmails AllowedEmailStore
}

func New(guards Authorizer, stores Stores, auditor AuditRecorder, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		guards:        guards,
		agencies:      stores.Agencies,
		clients:       stores.Clients,
		webinars:      stores.Webinars,
		domains:       stores.Domains,
		allowedEmails: stores.AllowedEmails,
		auditor:       auditor,
		metrics:       m,
		logger:        logger,
	}
}
