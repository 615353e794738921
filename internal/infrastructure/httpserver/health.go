package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Values of HealthResponse.Status and ComponentStatus.Status.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
)

// ComponentStatus is the state of one backing service.
type ComponentStatus struct {
	Name    string         `json:"name"`
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse is the body of every probe endpoint.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components []ComponentStatus `json:"components,omitempty"`
}

// HealthChecker reports on the backing services. The DI container implements it.
// Both methods get the request context so probes honour client deadlines.
type HealthChecker interface {
	IsReady(ctx context.Context) bool
	GetHealthStatus(ctx context.Context) []ComponentStatus
}

// RegisterHealthEndpointsWithChecker registers the probes at the root:
//
//	GET /health          liveness, 200 while the process runs
//	GET /ready           readiness, 503 until every component is reachable
//	GET /health/details  per component status, 503 when any is unhealthy
//
// A nil checker is always ready.
func (r *Router) RegisterHealthEndpointsWithChecker(checker HealthChecker) {
	components := func(ctx context.Context) []ComponentStatus {
		if checker == nil {
			return nil
		}
		return checker.GetHealthStatus(ctx)
	}

	r.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{Status: StatusHealthy})
	})

	r.echo.GET("/ready", func(c echo.Context) error {
		ctx := c.Request().Context()
		if checker != nil && !checker.IsReady(ctx) {
			return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: StatusNotReady, Components: components(ctx)})
		}
		return c.JSON(http.StatusOK, HealthResponse{Status: StatusReady, Components: components(ctx)})
	})

	r.echo.GET("/health/details", func(c echo.Context) error {
		list := components(c.Request().Context())
		overall := overallStatus(list)

		code := http.StatusOK
		if overall == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, HealthResponse{Status: overall, Components: list})
	})
}

// overallStatus is the worst status of list: unhealthy beats degraded.
func overallStatus(list []ComponentStatus) string {
	overall := StatusHealthy
	for _, comp := range list {
		switch comp.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}
