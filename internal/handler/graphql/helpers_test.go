package graphqlhandler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	userapp "github.com/lllypuk/catmap/internal/application/user"
	graphqlhandler "github.com/lllypuk/catmap/internal/handler/graphql"
	"github.com/lllypuk/catmap/internal/infrastructure/httpserver"
	"github.com/lllypuk/catmap/internal/infrastructure/metrics"
	"github.com/lllypuk/catmap/internal/infrastructure/repository/memory"
	"github.com/lllypuk/catmap/internal/service"
)

type gqlError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
}

type gqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []gqlError     `json:"errors"`
}

func (r gqlResponse) code(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.Errors)
	code, _ := r.Errors[0].Extensions["code"].(string)
	return code
}

func (r gqlResponse) field(t *testing.T, name string) map[string]any {
	t.Helper()
	require.Empty(t, r.Errors)
	v, ok := r.Data[name].(map[string]any)
	require.True(t, ok, "field %s is %T", name, r.Data[name])
	return v
}

type testEnv struct {
	echo     *echo.Echo
	registry *prometheus.Registry
	metrics  *metrics.APIMetrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := memory.NewUserRepository()
	userService := service.NewUserService(users)
	catService := service.NewCatService(memory.NewCatRepository(), userapp.NewOwnerResolver(users))
	return newTestEnvWith(t, catService, userService)
}

func newTestEnvWith(t *testing.T, cats graphqlhandler.CatService, users graphqlhandler.UserService) *testEnv {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	schema, err := graphqlhandler.NewSchema(graphqlhandler.NewResolver(cats, users, logger))
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	m := metrics.NewAPIMetrics(registry)

	e := echo.New()
	e.HTTPErrorHandler = httpserver.HTTPErrorHandler(logger)
	cfg := httpserver.DefaultRouterConfig()
	cfg.Logger = logger
	cfg.LoggingConfig.Logger = logger
	cfg.RecoveryConfig.Logger = logger
	router := httpserver.NewRouter(e, cfg)
	graphqlhandler.NewHandler(schema, logger, m).RegisterRoutes(router)

	return &testEnv{echo: e, registry: registry, metrics: m}
}

func (env *testEnv) do(t *testing.T, query string, variables map[string]any) (int, gqlResponse) {
	t.Helper()
	return env.doOperation(t, "", query, variables)
}

func (env *testEnv) doOperation(t *testing.T, operation, query string, variables map[string]any) (int, gqlResponse) {
	t.Helper()
	body, err := json.Marshal(graphqlhandler.Request{Query: query, Variables: variables, OperationName: operation})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return env.serve(t, req)
}

func (env *testEnv) serve(t *testing.T, req *http.Request) (int, gqlResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

const createUserMutation = `mutation($name: String!, $email: String!) {
	createUser(user_name: $name, email: $email) {
		... on User { id user_name email }
		... on Message { message }
	}
}`

const createCatMutation = `mutation($name: String!, $weight: Float!, $owner: ID!, $birthdate: Date!, $location: LocationInput!) {
	createCat(cat_name: $name, weight: $weight, owner: $owner, filename: "tom.jpg", birthdate: $birthdate, location: $location) {
		... on Cat { id cat_name weight birthdate filename owner { id user_name } location { type coordinates } }
		... on Message { message }
	}
}`

func (env *testEnv) createUser(t *testing.T, name, email string) string {
	t.Helper()
	_, resp := env.do(t, createUserMutation, map[string]any{"name": name, "email": email})
	return resp.field(t, "createUser")["id"].(string)
}

func catVars(name string, weight float64, owner string, lng, lat float64) map[string]any {
	return map[string]any{
		"name":      name,
		"weight":    weight,
		"owner":     owner,
		"birthdate": "2020-01-01",
		"location":  map[string]any{"type": "Point", "coordinates": []float64{lng, lat}},
	}
}

func (env *testEnv) createCat(t *testing.T, name, owner string, lng, lat float64) string {
	t.Helper()
	_, resp := env.do(t, createCatMutation, catVars(name, 4, owner, lng, lat))
	return resp.field(t, "createCat")["id"].(string)
}
