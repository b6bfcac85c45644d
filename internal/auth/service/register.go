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

// Register validates and persists a new user. No session or token is issued;
// the caller logs in separately.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) error {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	if req == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	// Early lookup gives a friendly error on the common case; the store's
	// unique index remains the authority under races.
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return dErrors.New(dErrors.CodeConflict, "username already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check username")
	}

	hash, err := secrets.Hash(req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	now := requestcontext.Now(ctx)
	user := models.User{
		ID:           id.NewUserID(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.Role(req.Role),
		LeaveBalance: req.LeaveBalance(models.DefaultLeaveBalance(now)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "username already exists")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	if s.metrics != nil {
		s.metrics.IncrementUsersRegistered()
	}
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		Action:    audit.ActionUserRegistered,
		UserID:    user.ID.String(),
		Username:  user.Username,
	})
	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID.String(),
		"role", user.Role.String(),
	)
	return nil
}
