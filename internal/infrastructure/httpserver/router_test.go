package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/catmap/internal/infrastructure/httpserver"
	"github.com/lllypuk/catmap/internal/middleware"
)

func TestDefaultRouterConfig(t *testing.T) {
	config := httpserver.DefaultRouterConfig()

	assert.NotNil(t, config.Logger)
	assert.Equal(t, "/api/v1", config.APIPrefix)
	assert.NotEmpty(t, config.CORSConfig.AllowOrigins)
}

func TestNewRouter_Defaults(t *testing.T) {
	e := echo.New()
	r := httpserver.NewRouter(e, httpserver.RouterConfig{})

	assert.Same(t, e, r.Echo())
	require.NotNil(t, r.API())

	r.API().GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_RecoversPanics(t *testing.T) {
	e := echo.New()
	config := httpserver.DefaultRouterConfig()
	config.RecoveryConfig.Logger = slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	config.LoggingConfig.Logger = slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	r := httpserver.NewRouter(e, config)

	r.API().GET("/panic", func(_ echo.Context) error {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouteBuilder(t *testing.T) {
	e := echo.New()
	r := httpserver.NewRouter(e, httpserver.DefaultRouterConfig())

	var calls []string
	tag := func(name string) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				calls = append(calls, name)
				return next(c)
			}
		}
	}

	rb := httpserver.NewRouteBuilder(r.API()).Use(tag("shared"))
	rb.POST("/upload", func(c echo.Context) error {
		calls = append(calls, "upload")
		return c.NoContent(http.StatusOK)
	}, tag("route"))
	rb.GET("/uploads/:filename", func(c echo.Context) error {
		calls = append(calls, c.Param("filename"))
		return c.NoContent(http.StatusOK)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/upload", nil))
	assert.Equal(t, []string{"shared", "route", "upload"}, calls)

	calls = nil
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/uploads/tom.jpg", nil))
	assert.Equal(t, []string{"shared", "tom.jpg"}, calls)
}

type testRegistrar struct {
	path string
}

func (tr testRegistrar) RegisterRoutes(r *httpserver.Router) {
	r.Echo().GET(tr.path, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
}

func TestRouter_RegisterAll(t *testing.T) {
	e := echo.New()
	r := httpserver.NewRouter(e, httpserver.DefaultRouterConfig())

	r.RegisterAll(testRegistrar{path: "/graphql"}, testRegistrar{path: "/other"})
	r.PrintRoutes()

	for _, path := range []string{"/graphql", "/other"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_RegisterMetricsEndpoint(t *testing.T) {
	e := echo.New()
	r := httpserver.NewRouter(e, httpserver.DefaultRouterConfig())

	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "catmap_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	r.RegisterMetricsEndpoint(registry)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "catmap_test_total 1")
}

type stubChecker struct {
	ready    bool
	statuses []httpserver.ComponentStatus
}

func (s stubChecker) IsReady(context.Context) bool { return s.ready }

func (s stubChecker) GetHealthStatus(context.Context) []httpserver.ComponentStatus { return s.statuses }

func TestHealthEndpoints(t *testing.T) {
	healthy := []httpserver.ComponentStatus{
		{Name: "mongodb", Status: httpserver.StatusHealthy, Details: map[string]any{"cats": 3}},
		{Name: "storage", Status: httpserver.StatusHealthy},
	}
	degraded := []httpserver.ComponentStatus{
		{Name: "mongodb", Status: httpserver.StatusHealthy},
		{Name: "redis", Status: httpserver.StatusDegraded, Message: "ping failed"},
	}
	down := []httpserver.ComponentStatus{
		{Name: "mongodb", Status: httpserver.StatusUnhealthy, Message: "ping failed"},
	}

	tests := []struct {
		name    string
		checker httpserver.HealthChecker
		path    string
		status  int
		overall string
	}{
		{name: "liveness", checker: stubChecker{}, path: "/health", status: http.StatusOK, overall: httpserver.StatusHealthy},
		{name: "ready", checker: stubChecker{ready: true, statuses: healthy}, path: "/ready", status: http.StatusOK, overall: httpserver.StatusReady},
		{name: "not ready", checker: stubChecker{statuses: down}, path: "/ready", status: http.StatusServiceUnavailable, overall: httpserver.StatusNotReady},
		{name: "nil checker is ready", checker: nil, path: "/ready", status: http.StatusOK, overall: httpserver.StatusReady},
		{name: "details healthy", checker: stubChecker{statuses: healthy}, path: "/health/details", status: http.StatusOK, overall: httpserver.StatusHealthy},
		{name: "details degraded", checker: stubChecker{statuses: degraded}, path: "/health/details", status: http.StatusOK, overall: httpserver.StatusDegraded},
		{name: "details unhealthy", checker: stubChecker{statuses: down}, path: "/health/details", status: http.StatusServiceUnavailable, overall: httpserver.StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			r := httpserver.NewRouter(e, httpserver.DefaultRouterConfig())
			r.RegisterHealthEndpointsWithChecker(tt.checker)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)

			var body httpserver.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.overall, body.Status)
		})
	}
}
