package service

import (
	"context"
	"errors"

	"leavehub/internal/audit"
	"leavehub/internal/auth/models"
	id "leavehub/pkg/domain"
	dErrors "leavehub/pkg/domain-errors"
	"leavehub/pkg/platform/sentinel"
	"leavehub/pkg/requestcontext"
)

// sessionExpired intentionally differs from the login error: revealing that a
// session once existed is accepted here, unlike the credential checks.
var sessionExpired = dErrors.New(dErrors.CodeUnauthorized, "session expired")

// CheckSession verifies the session is alive. An expired record is deleted as
// a side effect (lazy cleanup, no background sweep); deletion is idempotent,
// so two requests racing on the same expired session both report it expired.
func (s *Service) CheckSession(ctx context.Context, sessionID id.SessionID) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return sessionExpired
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}

	now := requestcontext.Now(ctx)
	if !session.Expired(now) {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		// The session is expired either way; cleanup failure only gets logged.
		s.logger.WarnContext(ctx, "failed to delete expired session",
			"session_id", sessionID.String(),
			"error", err,
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementSessionsExpired()
	}
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		Action:    audit.ActionSessionExpired,
		UserID:    session.UserID.String(),
	})
	return sessionExpired
}

// UserInfo backs the session-check endpoint: the session must be alive and
// the user record still present.
func (s *Service) UserInfo(ctx context.Context, userID id.UserID, sessionID id.SessionID) (*models.Profile, error) {
	if err := s.CheckSession(ctx, sessionID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	profile := user.Profile()
	return &profile, nil
}
