// Package postgres owns the database connection and schema lifecycle.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"leavehub/internal/platform/config"
	"leavehub/pkg/platform/sentinel"
)

// Pool wraps pgxpool with health checking so the router can probe it.
type Pool struct {
	*pgxpool.Pool
}

// New connects a pgx pool, verifies it with a ping, and returns it.
func New(ctx context.Context, cfg config.PostgresConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres URL: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return &Pool{Pool: pool}, nil
}

// Health checks if the database connection is healthy.
func (p *Pool) Health(ctx context.Context) error {
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("postgres unreachable (%v): %w", err, sentinel.ErrUnavailable)
	}
	return nil
}

// OpenSQL opens a database/sql handle over the same database for stores built
// on the standard driver interface.
func OpenSQL(cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(int(cfg.MaxConns))
	return db, nil
}
