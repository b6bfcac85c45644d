// Package service orchestrates the credential-and-session lifecycle:
// registration, login, session validation, and request authentication.
//
// Two expiries govern access. The token's own expiry (TokenTTL) is embedded
// in the signed credential and checked without a store lookup; the session
// expiry (SessionTTL) lives server-side and is checked against the store.
// SessionPolicy decides whether a valid token can be overridden by a dead
// session. Repeated logins deliberately create new sessions without revoking
// prior ones; concurrent sessions per user are an accepted property of this
// design.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"leavehub/internal/audit"
	"leavehub/internal/auth/models"
	"leavehub/internal/platform/metrics"
	id "leavehub/pkg/domain"
)

var tracer = otel.Tracer("leavehub/internal/auth/service")

// UserStore is the slice of persistence the service needs for users.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, userID id.UserID) (models.User, error)
}

// SessionStore is the slice of persistence the service needs for sessions.
type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (models.Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
}

// TokenIssuer signs access tokens. Verification happens in the middleware
// through the same JWT service.
type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, sessionID id.SessionID, role string, expiresIn time.Duration) (string, error)
}

// SessionPolicy decides whether a valid token is overridden by a missing or
// expired session.
type SessionPolicy int

const (
	// SessionPolicyTokenOnly trusts the token's embedded expiry alone.
	SessionPolicyTokenOnly SessionPolicy = iota
	// SessionPolicyEnforce additionally requires a live session record, so
	// session expiry can cut access before the token expires.
	SessionPolicyEnforce
)

// Config is the single configuration surface for the auth flows.
type Config struct {
	TokenTTL      time.Duration
	SessionTTL    time.Duration
	SessionPolicy SessionPolicy
}

const (
	DefaultTokenTTL   = time.Hour
	DefaultSessionTTL = 2 * time.Minute
)

func (c *Config) applyDefaults() {
	if c.TokenTTL <= 0 {
		c.TokenTTL = DefaultTokenTTL
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
}

// Service adapts the auth flows into a callable façade. It keeps transport
// concerns out of business logic.
type Service struct {
	users    UserStore
	sessions SessionStore
	tokens   TokenIssuer
	sink     audit.Sink
	logger   *slog.Logger
	metrics  *metrics.Metrics
	cfg      Config
}

func NewService(
	users UserStore,
	sessions SessionStore,
	tokens TokenIssuer,
	sink audit.Sink,
	logger *slog.Logger,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	cfg.applyDefaults()
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		sink:     sink,
		logger:   logger,
		metrics:  m,
		cfg:      cfg,
	}
}

// Policy exposes the configured session policy so transport wiring can decide
// whether to attach the session checker.
func (s *Service) Policy() SessionPolicy { return s.cfg.SessionPolicy }

// emitAudit forwards an event to the sink; audit failures never fail the
// request.
func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", string(event.Action),
			"error", err,
		)
	}
}
