package service

import (
	"context"
	"errors"

	"github.com/ustudiopd/EventLive-sub001/internal/audit"
	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
	"github.com/ustudiopd/EventLive-sub001/pkg/requestcontext"
)

// resolveWebinarScoped loads a webinar and authorizes a console role in its
// owning client. Forbidden is reported as not-found so callers cannot confirm
// a webinar exists in another tenant.
func (s *Service) resolveWebinarScoped(ctx context.Context, webinarID id.WebinarID) (*models.Webinar, *id.UserID, error) {
	webinar, err := s.webinars.FindByID(ctx, webinarID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil, dErrors.New(dErrors.CodeNotFound, "webinar not found")
	}
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load webinar")
	}

	grant, err := s.guards.RequireClientMember(ctx, webinar.ClientID, consoleRoles...)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeForbidden) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "webinar not found")
		}
		return nil, nil, err
	}
	return webinar, &grant.Actor.ID, nil
}

// AddAllowedEmail puts an address on the webinar's allow-list.
func (s *Service) AddAllowedEmail(ctx context.Context, webinarID id.WebinarID, rawEmail string) (*models.AllowedEmail, error) {
	webinar, actorID, err := s.resolveWebinarScoped(ctx, webinarID)
	if err != nil {
		return nil, err
	}

	entry, err := models.NewAllowedEmail(webinarID, rawEmail, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.allowedEmails.Add(ctx, entry); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already on the allow-list")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add allowed email")
	}

	s.auditor.Record(ctx, audit.Entry{
		ActorUserID: *actorID,
		ClientID:    &webinar.ClientID,
		Action:      audit.ActionAllowedEmailAdd,
		Payload:     map[string]any{"webinar_id": webinarID.String(), "email": entry.Email},
	})
	return entry, nil
}

// RemoveAllowedEmail takes an address off the webinar's allow-list.
func (s *Service) RemoveAllowedEmail(ctx context.Context, webinarID id.WebinarID, rawEmail string) error {
	webinar, actorID, err := s.resolveWebinarScoped(ctx, webinarID)
	if err != nil {
		return err
	}

	email := models.NormalizeEmail(rawEmail)
	if err := s.allowedEmails.Remove(ctx, webinarID, email); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "email is not on the allow-list")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove allowed email")
	}

	s.auditor.Record(ctx, audit.Entry{
		ActorUserID: *actorID,
		ClientID:    &webinar.ClientID,
		Action:      audit.ActionAllowedEmailRemove,
		Payload:     map[string]any{"webinar_id": webinarID.String(), "email": email},
	})
	return nil
}

// ListAllowedEmails returns the webinar's allow-list.
func (s *Service) ListAllowedEmails(ctx context.Context, webinarID id.WebinarID) ([]models.AllowedEmail, error) {
	if _, _, err := s.resolveWebinarScoped(ctx, webinarID); err != nil {
		return nil, err
	}
	entries, err := s.allowedEmails.List(ctx, webinarID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list allowed emails")
	}
	return entries, nil
}
