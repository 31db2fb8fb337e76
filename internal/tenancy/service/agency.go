package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ustudiopd/EventLive-sub001/internal/audit"
	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
	"github.com/ustudiopd/EventLive-sub001/pkg/requestcontext"
)

// CreateAgency provisions a new agency. Super-admin only; agencies are the
// top of the tenant tree and have no parent scope to authorize against.
func (s *Service) CreateAgency(ctx context.Context, name string) (*models.Agency, error) {
	grant, err := s.guards.RequireSuperAdmin(ctx)
	if err != nil {
		return nil, err
	}

	agency, err := models.NewAgency(id.NewAgencyID(), strings.TrimSpace(name), requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.agencies.Create(ctx, agency); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create agency")
	}

	s.auditor.Record(ctx, audit.Entry{
		ActorUserID: grant.Actor.ID,
		AgencyID:    &agency.ID,
		Action:      audit.ActionAgencyCreate,
		Payload:     map[string]any{"name": agency.Name},
	})
	return agency, nil
}

// GetAgency returns one agency. Any member of the agency may read it; super
// admins may read any.
func (s *Service) GetAgency(ctx context.Context, agencyID id.AgencyID) (*models.Agency, error) {
	if _, err := s.guards.RequireAgencyMember(ctx, agencyID); err != nil {
		return nil, err
	}
	agency, err := s.agencies.FindByID(ctx, agencyID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "agency not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load agency")
	}
	return agency, nil
}

// ListAgencies returns every agency on the platform. Super-admin only.
func (s *Service) ListAgencies(ctx context.Context) ([]models.Agency, error) {
	if _, err := s.guards.RequireSuperAdmin(ctx); err != nil {
		return nil, err
	}
	agencies, err := s.agencies.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list agencies")
	}
	return agencies, nil
}
