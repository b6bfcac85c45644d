package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"leavehub/internal/auth/models"
	id "leavehub/pkg/domain"
	"leavehub/pkg/platform/sentinel"
)

var sessionLookupDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "leavehub_session_lookup_duration_ms",
	Help:    "Latency of redis session lookups in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const sessionKeyPrefix = "session:id:"

// RedisSessionStore keeps sessions in Redis with a key TTL matching the
// session expiry, so the record disappears on its own and an expired session
// is indistinguishable from a missing one. The service handles both as
// session-expired, which is exactly the contract.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

type sessionRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Device    string    `json:"device,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *RedisSessionStore) Create(ctx context.Context, session models.Session) error {
	record := sessionRecord{
		ID:        session.ID.String(),
		UserID:    session.UserID.String(),
		Device:    session.Device,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session expiry is not in the future: %w", sentinel.ErrExpired)
	}
	key := sessionKeyPrefix + session.ID.String()
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) FindByID(ctx context.Context, sessionID id.SessionID) (models.Session, error) {
	start := time.Now()
	defer func() {
		sessionLookupDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	key := sessionKeyPrefix + sessionID.String()
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return models.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	parsedID, err := id.ParseSessionID(record.ID)
	if err != nil {
		return models.Session{}, fmt.Errorf("stored session id is malformed: %w", err)
	}
	parsedUserID, err := id.ParseUserID(record.UserID)
	if err != nil {
		return models.Session{}, fmt.Errorf("stored session user id is malformed: %w", err)
	}
	return models.Session{
		ID:        parsedID,
		UserID:    parsedUserID,
		Device:    record.Device,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// Delete removes the session key. DEL of a missing key is a no-op in Redis,
// which keeps concurrent expiry cleanup idempotent for free.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	key := sessionKeyPrefix + sessionID.String()
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
