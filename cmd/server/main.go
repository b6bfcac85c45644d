package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"leavehub/internal/audit"
	"leavehub/internal/auth/service"
	sessionstore "leavehub/internal/auth/store/session"
	userstore "leavehub/internal/auth/store/user"
	jwttoken "leavehub/internal/jwt_token"
	"leavehub/internal/platform/config"
	"leavehub/internal/platform/httpserver"
	"leavehub/internal/platform/logger"
	"leavehub/internal/platform/metrics"
	"leavehub/internal/platform/postgres"
	platformredis "leavehub/internal/platform/redis"
	httptransport "leavehub/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "leavehub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var (
		users   service.UserStore
		session service.SessionStore
		health  httptransport.HealthChecker
	)

	if cfg.UserStore == config.StorePostgres || cfg.SessionStore == config.StorePostgres {
		log.Info("connecting postgres", "url", cfg.RedactedPostgresURL())
		if err := postgres.Migrate(cfg.Postgres.URL); err != nil {
			return err
		}
	}

	switch cfg.UserStore {
	case config.StorePostgres:
		pool, err := postgres.New(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer pool.Close()
		users = userstore.NewPostgresUserStore(pool.Pool)
		health = pool
	default:
		users = userstore.NewInMemoryUserStore()
	}

	switch cfg.SessionStore {
	case config.StorePostgres:
		db, err := postgres.OpenSQL(cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()
		session = sessionstore.NewPostgresSessionStore(db)
	case config.StoreRedis:
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		session = sessionstore.NewRedisSessionStore(client.Client)
		if health == nil {
			health = client
		}
	default:
		session = sessionstore.NewInMemorySessionStore()
	}

	g, ctx := errgroup.WithContext(ctx)

	var sink audit.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := audit.NewKafkaPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer publisher.Close()
		log.Info("audit events flowing to kafka", "topic", cfg.Kafka.Topic)
		sink = publisher
	} else {
		channelSink := audit.NewChannelSink(256)
		worker := audit.NewWorker(audit.NewMemoryStore(), channelSink.Inbox())
		g.Go(func() error {
			// Cancellation is how the worker is told to stop; only real
			// failures should surface as a non-zero exit.
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
		sink = channelSink
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	policy := service.SessionPolicyTokenOnly
	if cfg.EnforceSession {
		policy = service.SessionPolicyEnforce
	}
	authService := service.NewService(users, session, tokens, sink, log, m, service.Config{
		TokenTTL:      cfg.TokenTTL,
		SessionTTL:    cfg.SessionTTL,
		SessionPolicy: policy,
	})

	routerCfg := httptransport.RouterConfig{
		Auth:      httptransport.NewAuthHandler(authService, log),
		Validator: jwttoken.NewJWTServiceAdapter(tokens),
		Logger:    log,
		Metrics:   m,
		Health:    health,
	}
	if cfg.EnforceSession {
		routerCfg.SessionChecker = authService
	}

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(routerCfg))

	g.Go(func() error {
		log.Info("starting leavehub",
			"addr", cfg.Addr,
			"user_store", cfg.UserStore,
			"session_store", cfg.SessionStore,
			"enforce_session", cfg.EnforceSession,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
