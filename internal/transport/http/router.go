package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leavehub/internal/platform/metrics"
	"leavehub/internal/platform/middleware"
	"leavehub/internal/transport/http/shared"
)

// HealthChecker reports backing-store health for the liveness endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig carries everything the router needs wired in.
type RouterConfig struct {
	Auth           *AuthHandler
	Validator      middleware.JWTValidator
	SessionChecker middleware.SessionChecker // nil unless session policy is enforce
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Health         HealthChecker // optional
}

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(cfg.Metrics))
	r.Use(middleware.Device)

	r.Get("/healthz", handleHealth(cfg.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/register", cfg.Auth.handleRegister)
	r.Post("/api/login", cfg.Auth.handleLogin)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth(cfg.Validator, cfg.SessionChecker, cfg.Logger))
		protected.Get("/api/login", cfg.Auth.handleSessionCheck)
		protected.Get("/api/protected", cfg.Auth.handleProtected)
	})

	return r
}

func handleHealth(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health.Health(r.Context()); err != nil {
				shared.WriteMessage(w, http.StatusServiceUnavailable, "store unavailable")
				return
			}
		}
		shared.WriteMessage(w, http.StatusOK, "ok")
	}
}
