package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"leavehub/internal/auth/models"
	id "leavehub/pkg/domain"
	"leavehub/pkg/platform/sentinel"
)

// PostgresSessionStore persists sessions in PostgreSQL. Expiry is not
// enforced here: the service checks ExpiresAt and deletes lazily, so the
// store only answers "does this row exist".
type PostgresSessionStore struct {
	db *sql.DB
}

func NewPostgresSessionStore(db *sql.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

func (s *PostgresSessionStore) Create(ctx context.Context, session models.Session) error {
	const query = `
		INSERT INTO sessions (id, user_id, device, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID.String(),
		session.UserID.String(),
		session.Device,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *PostgresSessionStore) FindByID(ctx context.Context, sessionID id.SessionID) (models.Session, error) {
	const query = `
		SELECT id, user_id, device, created_at, expires_at
		FROM sessions WHERE id = $1
	`
	var (
		session   models.Session
		rawID     string
		rawUserID string
	)
	err := s.db.QueryRowContext(ctx, query, sessionID.String()).
		Scan(&rawID, &rawUserID, &session.Device, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, sentinel.ErrNotFound
		}
		return models.Session{}, fmt.Errorf("find session: %w", err)
	}
	parsedID, err := id.ParseSessionID(rawID)
	if err != nil {
		return models.Session{}, fmt.Errorf("stored session id is malformed: %w", err)
	}
	parsedUserID, err := id.ParseUserID(rawUserID)
	if err != nil {
		return models.Session{}, fmt.Errorf("stored session user id is malformed: %w", err)
	}
	session.ID = parsedID
	session.UserID = parsedUserID
	return session, nil
}

// Delete removes the session row. DELETE of a missing row affects zero rows
// and is not an error, which keeps concurrent expiry cleanup idempotent.
func (s *PostgresSessionStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID.String())
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
