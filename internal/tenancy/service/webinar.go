package service

import (
	"context"
	"errors"

	"github.com/ustudiopd/EventLive-sub001/internal/audit"
	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/secrets"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
	"github.com/ustudiopd/EventLive-sub001/pkg/requestcontext"
)

// CreateWebinarParams carries the optional fields for webinar creation. A
// non-empty Passcode gates the operator console and is stored only as a
// bcrypt hash.
type CreateWebinarParams struct {
	Title    string
	Slug     string
	Passcode string
}

// CreateWebinar provisions a webinar under a client. Requires a console role
// (owner, admin or operator) in the client.
func (s *Service) CreateWebinar(ctx context.Context, clientID id.ClientID, params CreateWebinarParams) (*models.Webinar, error) {
	grant, err := s.guards.RequireClientMember(ctx, clientID, consoleRoles...)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, clientID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client")
	}

	webinar, err := models.NewWebinar(id.NewWebinarID(), clientID, params.Title, params.Slug, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if params.Passcode != "" {
		hash, err := secrets.Hash(params.Passcode)
		if err != nil {
			return nil, err
		}
		webinar.PasscodeHash = hash
	}

	if err := s.webinars.Create(ctx, webinar); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "slug is already used by another webinar")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create webinar")
	}

	s.auditor.Record(ctx, audit.Entry{
		ActorUserID: grant.Actor.ID,
		AgencyID:    &client.AgencyID,
		ClientID:    &clientID,
		Action:      audit.ActionWebinarCreate,
		Payload:     map[string]any{"webinar_id": webinar.ID.String(), "title": webinar.Title},
	})
	return webinar, nil
}

// GetWebinar returns a webinar by id. Membership in the owning client is
// required; a webinar in a client the actor cannot see reports not-found, the
// same as a webinar that does not exist, so callers cannot probe other
// tenants' webinars.
func (s *Service) GetWebinar(ctx context.Context, webinarID id.WebinarID) (*models.Webinar, error) {
	webinar, err := s.webinars.FindByID(ctx, webinarID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "webinar not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load webinar")
	}

	if _, err := s.guards.RequireClientMember(ctx, webinar.ClientID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeForbidden) {
			return nil, dErrors.New(dErrors.CodeNotFound, "webinar not found")
		}
		return nil, err
	}
	return webinar, nil
}

// GetWebinarBySlug returns a webinar by its slug within a client the actor is
// a member of.
func (s *Service) GetWebinarBySlug(ctx context.Context, clientID id.ClientID, slug string) (*models.Webinar, error) {
	if _, err := s.guards.RequireClientMember(ctx, clientID); err != nil {
		return nil, err
	}

	webinar, err := s.webinars.FindBySlug(ctx, clientID, slug)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "webinar not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load webinar")
	}
	return webinar, nil
}

// CheckConsolePasscode verifies the operator console passcode for a webinar.
// Requires a console role; a webinar with no passcode admits any console
// role holder. Callers outside the console role set see not-found, the same
// as a missing webinar, so the console endpoint cannot be used to probe
// other tenants' webinars. Only a wrong passcode reports forbidden - by
// then the caller has already proven membership.
func (s *Service) CheckConsolePasscode(ctx context.Context, webinarID id.WebinarID, passcode string) error {
	webinar, err := s.webinars.FindByID(ctx, webinarID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "webinar not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load webinar")
	}

	if _, err := s.guards.RequireClientMember(ctx, webinar.ClientID, consoleRoles...); err != nil {
		if dErrors.HasCode(err, dErrors.CodeForbidden) {
			return dErrors.New(dErrors.CodeNotFound, "webinar not found")
		}
		return err
	}

	if webinar.PasscodeHash == "" {
		return nil
	}
	if err := secrets.Verify(passcode, webinar.PasscodeHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return dErrors.New(dErrors.CodeForbidden, "invalid console passcode")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify passcode")
	}
	return nil
}
