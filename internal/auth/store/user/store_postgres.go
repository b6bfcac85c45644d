package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"leavehub/internal/auth/models"
	id "leavehub/pkg/domain"
	"leavehub/pkg/platform/sentinel"
)

// PostgresUserStore persists users in PostgreSQL. Uniqueness rides on the
// users_username_key index, so concurrent double-registrations resolve in the
// database rather than in the service.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (id, name, username, password_hash, role, leave_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.pool.Exec(ctx, query,
		user.ID.String(),
		user.Name,
		user.Username,
		user.PasswordHash,
		user.Role.String(),
		user.LeaveBalance,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
		SELECT id, name, username, password_hash, role, leave_balance, created_at, updated_at
		FROM users WHERE username = $1
	`
	return s.scanUser(s.pool.QueryRow(ctx, query, username))
}

func (s *PostgresUserStore) FindByID(ctx context.Context, userID id.UserID) (models.User, error) {
	const query = `
		SELECT id, name, username, password_hash, role, leave_balance, created_at, updated_at
		FROM users WHERE id = $1
	`
	return s.scanUser(s.pool.QueryRow(ctx, query, userID.String()))
}

func (s *PostgresUserStore) scanUser(row pgx.Row) (models.User, error) {
	var (
		user    models.User
		rawID   string
		rawRole string
	)
	err := row.Scan(&rawID, &user.Name, &user.Username, &user.PasswordHash,
		&rawRole, &user.LeaveBalance, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, sentinel.ErrNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	userID, err := id.ParseUserID(rawID)
	if err != nil {
		return models.User{}, fmt.Errorf("stored user id is malformed: %w", err)
	}
	user.ID = userID
	user.Role = models.Role(rawRole)
	return user, nil
}
