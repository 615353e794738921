package graphqlhandler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"

	"github.com/lllypuk/catmap/internal/infrastructure/httpserver"
	"github.com/lllypuk/catmap/internal/infrastructure/metrics"
)

const contentTypeGraphQL = "application/graphql"

// Request is the body of a POST /graphql request.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Handler serves the GraphQL endpoint.
type Handler struct {
	schema  graphql.Schema
	logger  *slog.Logger
	metrics *metrics.APIMetrics
}

// NewHandler creates a new GraphQL handler. metrics may be nil.
func NewHandler(schema graphql.Schema, logger *slog.Logger, m *metrics.APIMetrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{schema: schema, logger: logger, metrics: m}
}

// RegisterRoutes registers POST and GET /graphql.
func (h *Handler) RegisterRoutes(r *httpserver.Router) {
	r.Echo().POST("/graphql", h.Serve)
	r.Echo().GET("/graphql", h.Serve)
}

// Serve executes one GraphQL request.
func (h *Handler) Serve(c echo.Context) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return httpserver.RespondErrorWithCode(c, http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Query) == "" {
		return httpserver.RespondErrorWithCode(c, http.StatusBadRequest, "query is required")
	}

	tracker := &outcomeTracker{}
	ctx := context.WithValue(c.Request().Context(), trackerKey{}, tracker)

	start := time.Now()
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	outcome := metrics.OutcomeSuccess
	switch {
	case result.HasErrors():
		outcome = metrics.OutcomeError
	case tracker.sentinel.Load():
		outcome = metrics.OutcomeSentinel
	}
	h.metrics.ObserveGraphQL(req.OperationName, outcome, time.Since(start))

	if result.HasErrors() {
		h.logger.DebugContext(ctx, "graphql request returned errors",
			slog.String("operation", req.OperationName),
			slog.Int("errors", len(result.Errors)),
		)
	}

	return c.JSON(statusOf(result), result)
}

func (h *Handler) parseRequest(c echo.Context) (Request, error) {
	if c.Request().Method == http.MethodGet {
		return requestFromQuery(c)
	}

	var req Request
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return req, err
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), contentTypeGraphQL) {
		req.Query = string(body)
		return req, nil
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return req, errInvalidBody
	}
	return req, nil
}

func requestFromQuery(c echo.Context) (Request, error) {
	req := Request{
		Query:         c.QueryParam("query"),
		OperationName: c.QueryParam("operationName"),
	}
	if raw := c.QueryParam("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			return req, errInvalidVariables
		}
	}
	return req, nil
}

// statusOf picks the HTTP status: the first error declaring one wins,
// a request rejected before execution is a 400, anything else is a 200.
func statusOf(result *graphql.Result) int {
	executed := false
	for _, e := range result.Errors {
		if status, ok := httpStatusExtension(e.Extensions); ok {
			return status
		}
		if len(e.Path) > 0 {
			executed = true
		}
	}
	if result.HasErrors() && result.Data == nil && !executed {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

func httpStatusExtension(ext map[string]any) (int, bool) {
	h, ok := ext["http"].(map[string]any)
	if !ok {
		return 0, false
	}
	status, ok := h["status"].(int)
	return status, ok && status != 0
}

type trackerKey struct{}

// outcomeTracker notes whether any resolver answered with a message.
type outcomeTracker struct {
	sentinel atomic.Bool
}

func markSentinel(ctx context.Context) {
	if t, ok := ctx.Value(trackerKey{}).(*outcomeTracker); ok {
		t.sentinel.Store(true)
	}
}
