// Package service resolves the acting user for a request and handles the
// email login flow that establishes sessions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ustudiopd/EventLive-sub001/internal/identity/models"
	"github.com/ustudiopd/EventLive-sub001/internal/identity/session"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
	"github.com/ustudiopd/EventLive-sub001/pkg/requestcontext"
)

type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	FindByID(ctx context.Context, userID id.UserID) (*models.Profile, error)
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
}

type SessionStore interface {
	Create(ctx context.Context, sess *session.Session) error
	FindByID(ctx context.Context, sessionID string) (*session.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type TokenIssuer interface {
	Issue(userID id.UserID, sessionID string, ttl time.Duration) (string, error)
}

// Service resolves actors and runs the login/logout flows.
type Service struct {
	profiles   ProfileStore
	sessions   SessionStore
	tokens     TokenIssuer
	sessionTTL time.Duration
	logger     *slog.Logger
}

func New(profiles ProfileStore, sessions SessionStore, tokens TokenIssuer, sessionTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		profiles:   profiles,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Resolve returns the actor for the current request. The request context must
// carry an authenticated user id; a missing or unknown user is unauthorized,
// never an internal error, so callers can map it straight to a 401.
func (s *Service) Resolve(ctx context.Context) (*models.Actor, error) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	// The token signature proves who issued the session, not that it is still
	// open. Logout deletes the session row; the row decides liveness.
	if sessionID := requestcontext.SessionID(ctx); sessionID != "" {
		sess, err := s.sessions.FindByID(ctx, sessionID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify session")
		}
		if sess.UserID != userID || !sess.Active(requestcontext.Now(ctx)) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
		}
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		// Session outlived the profile. Treat as unauthenticated.
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve actor")
	}

	actor := profile.Actor()
	return &actor, nil
}

// LoginResult carries the issued token and the profile it belongs to.
type LoginResult struct {
	Token   string
	Profile *models.Profile
	Session *session.Session
}

// Login finds or creates the profile for the email, opens a session bound to
// the caller's device, and issues a signed token.
func (s *Service) Login(ctx context.Context, email, displayName string) (*LoginResult, error) {
	now := requestcontext.Now(ctx)

	profile, err := s.profiles.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		profile, err = models.NewProfile(id.NewUserID(), email, displayName, now)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid login request")
		}
		if err := s.profiles.Create(ctx, profile); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				// Lost a race with a concurrent first login. Use theirs.
				profile, err = s.profiles.FindByEmail(ctx, email)
				if err != nil {
					return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
				}
			} else {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create profile")
			}
		}
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}

	sess := &session.Session{
		ID:        uuid.NewString(),
		UserID:    profile.ID,
		Device:    session.ParseUserAgent(requestcontext.UserAgent(ctx)),
		IPAddress: requestcontext.ClientIP(ctx),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	token, err := s.tokens.Issue(profile.ID, sess.ID, s.sessionTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session token")
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", profile.ID.String()),
		slog.String("device", sess.Device))

	return &LoginResult{Token: token, Profile: profile, Session: sess}, nil
}

// Logout closes the current session. Missing sessions are fine; logout is
// idempotent.
func (s *Service) Logout(ctx context.Context) error {
	sessionID := requestcontext.SessionID(ctx)
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete session")
	}
	return nil
}
