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

// CreateClient provisions a workspace under an agency. Requires an agency
// manager role in the owning agency.
func (s *Service) CreateClient(ctx context.Context, agencyID id.AgencyID, name string) (*models.Client, error) {
	grant, err := s.guards.RequireAgencyMember(ctx, agencyID, agencyManagerRoles...)
	if err != nil {
		return nil, err
	}

	if _, err := s.agencies.FindByID(ctx, agencyID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "agency not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load agency")
	}

	client, err := models.NewClient(id.NewClientID(), agencyID, strings.TrimSpace(name), requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create client")
	}

	s.auditor.Record(ctx, audit.Entry{
		ActorUserID: grant.Actor.ID,
		AgencyID:    &agencyID,
		ClientID:    &client.ID,
		Action:      audit.ActionClientCreate,
		Payload:     map[string]any{"name": client.Name},
	})
	return client, nil
}

// GetClient returns one client workspace. Any member of the client may read
// it.
func (s *Service) GetClient(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	if _, err := s.guards.RequireClientMember(ctx, clientID); err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client")
	}
	return client, nil
}

// ListClients returns an agency's clients. Any member of the agency may list
// them.
func (s *Service) ListClients(ctx context.Context, agencyID id.AgencyID) ([]models.Client, error) {
	if _, err := s.guards.RequireAgencyMember(ctx, agencyID); err != nil {
		return nil, err
	}
	clients, err := s.clients.ListByAgency(ctx, agencyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list clients")
	}
	return clients, nil
}
