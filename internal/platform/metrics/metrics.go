// Package metrics holds the Prometheus instruments for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered prometheus.Counter
	Logins          *prometheus.CounterVec
	SessionsExpired prometheus.Counter
	RequestLatency  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leavehub_users_registered_total",
			Help: "Total number of users registered",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "leavehub_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		SessionsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leavehub_sessions_expired_total",
			Help: "Sessions found expired and lazily deleted",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leavehub_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// IncrementUsersRegistered increments the registration counter by 1.
func (m *Metrics) IncrementUsersRegistered() {
	m.UsersRegistered.Inc()
}

// ObserveLogin records a login attempt outcome ("success" or "failure").
func (m *Metrics) ObserveLogin(result string) {
	m.Logins.WithLabelValues(result).Inc()
}

// IncrementSessionsExpired records one lazy expiry cleanup.
func (m *Metrics) IncrementSessionsExpired() {
	m.SessionsExpired.Inc()
}
