// Package config loads runtime configuration from the environment so main
// stays lean. Secrets are required; everything else has a working default.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend selectors for LEAVEHUB_USER_STORE and LEAVEHUB_SESSION_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config captures everything the server needs wired at startup.
type Config struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	TokenTTL       time.Duration
	SessionTTL     time.Duration
	EnforceSession bool

	UserStore    string
	SessionStore string

	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// PostgresConfig holds the connection settings for the relational stores.
type PostgresConfig struct {
	URL         string
	MaxConns    int32
	ConnTimeout time.Duration
}

// RedisConfig holds the connection settings for the session cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds the audit publisher settings. Brokers empty means audit
// events stay on the in-process worker.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds the config from LEAVEHUB_* environment variables. It returns
// an error rather than falling back to an insecure default when the signing
// key is missing.
func FromEnv() (*Config, error) {
	signingKey := os.Getenv("LEAVEHUB_JWT_SIGNING_KEY")
	if signingKey == "" {
		return nil, fmt.Errorf("LEAVEHUB_JWT_SIGNING_KEY is required")
	}

	cfg := &Config{
		Addr:           envOr("LEAVEHUB_ADDR", ":8080"),
		JWTSigningKey:  signingKey,
		JWTIssuer:      envOr("LEAVEHUB_JWT_ISSUER", "leavehub"),
		JWTAudience:    envOr("LEAVEHUB_JWT_AUDIENCE", "leavehub-api"),
		TokenTTL:       envDurationOr("LEAVEHUB_TOKEN_TTL", time.Hour),
		SessionTTL:     envDurationOr("LEAVEHUB_SESSION_TTL", 2*time.Minute),
		EnforceSession: os.Getenv("LEAVEHUB_ENFORCE_SESSION") == "true",
		UserStore:      envOr("LEAVEHUB_USER_STORE", StoreMemory),
		SessionStore:   envOr("LEAVEHUB_SESSION_STORE", StoreMemory),
		Postgres: PostgresConfig{
			URL:         os.Getenv("LEAVEHUB_POSTGRES_URL"),
			MaxConns:    int32(envIntOr("LEAVEHUB_POSTGRES_MAX_CONNS", 10)),
			ConnTimeout: envDurationOr("LEAVEHUB_POSTGRES_CONN_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("LEAVEHUB_REDIS_URL"),
			PoolSize:     envIntOr("LEAVEHUB_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("LEAVEHUB_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("LEAVEHUB_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("LEAVEHUB_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("LEAVEHUB_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("LEAVEHUB_KAFKA_BROKERS")),
			Topic:   envOr("LEAVEHUB_KAFKA_TOPIC", "leavehub.auth.events"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.UserStore {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("unknown LEAVEHUB_USER_STORE %q", c.UserStore)
	}
	switch c.SessionStore {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("unknown LEAVEHUB_SESSION_STORE %q", c.SessionStore)
	}
	if (c.UserStore == StorePostgres || c.SessionStore == StorePostgres) && c.Postgres.URL == "" {
		return fmt.Errorf("LEAVEHUB_POSTGRES_URL is required for the postgres store")
	}
	if c.SessionStore == StoreRedis && c.Redis.URL == "" {
		return fmt.Errorf("LEAVEHUB_REDIS_URL is required for the redis session store")
	}
	return nil
}

// RedactedPostgresURL strips credentials for startup logging.
func (c *Config) RedactedPostgresURL() string {
	u, err := url.Parse(c.Postgres.URL)
	if err != nil {
		return "(unparseable)"
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	return u.Redacted()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitNonEmpty(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
