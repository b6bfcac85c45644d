package service

import (
	"context"
	"errors"

	"leavehub/internal/audit"
	"leavehub/internal/auth/models"
	"leavehub/internal/auth/secrets"
	id "leavehub/pkg/domain"
	dErrors "leavehub/pkg/domain-errors"
	"leavehub/pkg/platform/sentinel"
	"leavehub/pkg/requestcontext"
)

// invalidCredentials is shared by the unknown-user and wrong-password paths
// so the response never reveals which check failed.
var invalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")

// Login verifies credentials, issues an access token, and records a fresh
// session. Token expiry and session expiry are independent durations; see the
// package doc for how they interact.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	req.Normalize()

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.loginFailed(ctx, req.Username, "unknown user")
			return nil, invalidCredentials
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if err := secrets.Verify(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, secrets.ErrMismatch) {
			s.loginFailed(ctx, req.Username, "password mismatch")
			return nil, invalidCredentials
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}

	now := requestcontext.Now(ctx)
	session := models.Session{
		ID:        id.NewSessionID(),
		UserID:    user.ID,
		Device:    requestcontext.Device(ctx),
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, session.ID, user.Role.String(), s.cfg.TokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	if s.metrics != nil {
		s.metrics.ObserveLogin("success")
	}
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		Action:    audit.ActionUserLogin,
		UserID:    user.ID.String(),
		Username:  user.Username,
		Device:    session.Device,
	})
	s.logger.InfoContext(ctx, "user logged in",
		"user_id", user.ID.String(),
		"session_id", session.ID.String(),
	)

	return &models.LoginResult{
		Token:     token,
		User:      user.Profile(),
		SessionID: session.ID.String(),
	}, nil
}

func (s *Service) loginFailed(ctx context.Context, username, reason string) {
	if s.metrics != nil {
		s.metrics.ObserveLogin("failure")
	}
	s.emitAudit(ctx, audit.Event{
		Action:   audit.ActionLoginFailed,
		Username: username,
		Reason:   reason,
	})
	// Reason stays in logs and audit only; the response is deliberately
	// identical for unknown users and wrong passwords.
	s.logger.WarnContext(ctx, "login failed", "reason", reason)
}
