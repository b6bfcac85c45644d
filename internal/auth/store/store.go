// Package store defines the persistence interfaces the auth service depends
// on. Implementations live in the user and session subpackages; all of them
// signal infrastructure facts with pkg/platform/sentinel errors.
package store

import (
	"context"

	"leavehub/internal/auth/models"
	id "leavehub/pkg/domain"
)

// UserStore persists identity records. Create must enforce username
// uniqueness atomically (unique index, not check-then-insert) and return
// sentinel.ErrConflict when the username is taken.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, userID id.UserID) (models.User, error)
}

// SessionStore persists login sessions. Delete is idempotent: deleting a
// session that is already gone is a no-op, so two requests racing on lazy
// expiry cleanup both succeed.
type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (models.Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
}
