package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"leavehub/pkg/platform/sentinel"
)

func TestHealthReportsUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// The pool connects lazily, so construction succeeds even though port 1
	// is never listening; the ping is what fails.
	pool, err := pgxpool.New(ctx, "postgres://leavehub@127.0.0.1:1/leavehub?connect_timeout=1")
	require.NoError(t, err)
	defer pool.Close()

	p := &Pool{Pool: pool}
	err = p.Health(ctx)
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}
