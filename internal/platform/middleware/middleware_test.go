package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"leavehub/internal/platform/metrics"
	"leavehub/pkg/requestcontext"
)

func TestDeviceSummary(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{
			name: "desktop firefox",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/119.0",
			want: "Firefox on Linux",
		},
		{
			name: "empty user agent",
			ua:   "",
			want: "unknown",
		},
		{
			name: "garbage user agent",
			ua:   "definitely-not-a-browser",
			want: "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deviceSummary(tt.ua))
		})
	}
}

func TestDeviceMiddlewarePutsSummaryOnContext(t *testing.T) {
	var got string
	handler := Device(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestcontext.Device(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/119.0")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "Firefox on Linux", got)
}

func TestContentTypeJSON(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects non-json mutating requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()

		ContentTypeJSON(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	})

	t.Run("lets json through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		ContentTypeJSON(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("ignores reads", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
		req.Header.Set("Content-Type", "text/plain")
		rr := httptest.NewRecorder()

		ContentTypeJSON(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestLatencyLabelsByRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(Latency(m))
	r.Get("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/api/users/7", "/api/users/8", "/api/users/9"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	// Three distinct paths share one route pattern, so the histogram must
	// hold a single child, not one per path.
	assert.Equal(t, 1, promtestutil.CollectAndCount(m.RequestLatency))
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var fromCtx string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
	}))

	t.Run("generates when absent", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.NotEmpty(t, fromCtx)
		assert.Equal(t, fromCtx, rr.Header().Get("X-Request-Id"))
	})

	t.Run("echoes the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Request-Id", "req-123")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "req-123", fromCtx)
		assert.Equal(t, "req-123", rr.Header().Get("X-Request-Id"))
	})
}
