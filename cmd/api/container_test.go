package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/catmap/internal/config"
	"github.com/lllypuk/catmap/internal/infrastructure/httpserver"
	"github.com/lllypuk/catmap/internal/infrastructure/repository/memory"
	"github.com/lllypuk/catmap/internal/middleware"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockConfig runs without MongoDB or Redis and stores uploads in a temp dir.
func mockConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.App.Mode = config.AppModeMock
	cfg.Storage.Driver = config.StorageLocal
	cfg.Storage.Dir = t.TempDir()
	cfg.Redis.Addr = ""
	return cfg
}

func newMockContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	c, err := NewContainer(cfg, WithLogger(discardLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewContainer_MockMode(t *testing.T) {
	c := newMockContainer(t, mockConfig(t))

	assert.Nil(t, c.MongoDB)
	assert.Nil(t, c.Redis)
	assert.IsType(t, &memory.UserRepository{}, c.UserRepo)
	assert.IsType(t, &memory.CatRepository{}, c.CatRepo)
	assert.IsType(t, &middleware.MemoryRateLimitStore{}, c.RateLimitStore)
	assert.Equal(t, "local", c.Assets.Name())

	assert.NotNil(t, c.UserService)
	assert.NotNil(t, c.CatService)
	assert.NotNil(t, c.GraphQLHandler)
	assert.NotNil(t, c.UploadHandler)
	assert.NotNil(t, c.Metrics)
}

func TestNewContainer_WithRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	c, err := NewContainer(mockConfig(t), WithLogger(discardLogger()), WithRegistry(registry))
	require.NoError(t, err)
	defer c.Close()

	assert.Same(t, registry, c.Registry)

	c.Metrics.RecordUpload("stored", 10)
	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "catmap_uploads_total")
}

func TestNewContainer_RedisUnreachable(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := NewContainer(cfg, WithLogger(discardLogger()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestNewContainer_StorageDirUnusable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	cfg := mockConfig(t)
	cfg.Storage.Dir = filepath.Join(file, "uploads")

	_, err := NewContainer(cfg, WithLogger(discardLogger()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage")
}

func TestContainer_IsReady(t *testing.T) {
	cfg := mockConfig(t)
	c := newMockContainer(t, cfg)

	assert.True(t, c.IsReady(context.Background()))

	require.NoError(t, os.RemoveAll(cfg.Storage.Dir))
	assert.False(t, c.IsReady(context.Background()))
}

func TestContainer_GetHealthStatus_MockMode(t *testing.T) {
	c := newMockContainer(t, mockConfig(t))

	statuses := c.GetHealthStatus(context.Background())
	require.Len(t, statuses, 3)

	byName := make(map[string]httpserver.ComponentStatus)
	for _, s := range statuses {
		byName[s.Name] = s
	}

	assert.Equal(t, httpserver.StatusDegraded, byName["repositories"].Status)
	assert.Equal(t, httpserver.StatusHealthy, byName["storage"].Status)
	assert.Equal(t, "local", byName["storage"].Details["driver"])
	assert.Equal(t, httpserver.StatusHealthy, byName["records"].Status)
	assert.Equal(t, int64(0), byName["records"].Details["users"])
	assert.Equal(t, int64(0), byName["records"].Details["cats"])
}

func TestContainer_GetHealthStatus_StorageGone(t *testing.T) {
	cfg := mockConfig(t)
	c := newMockContainer(t, cfg)
	require.NoError(t, os.RemoveAll(cfg.Storage.Dir))

	for _, s := range c.GetHealthStatus(context.Background()) {
		if s.Name == "storage" {
			assert.Equal(t, httpserver.StatusUnhealthy, s.Status)
			assert.Contains(t, s.Message, "local")
			return
		}
	}
	t.Fatal("storage status missing")
}

func TestContainer_UploadChain(t *testing.T) {
	cfg := mockConfig(t)

	c := newMockContainer(t, cfg)
	assert.Len(t, c.uploadChain(), 3)

	c.Config.RateLimit.Enabled = false
	assert.Len(t, c.uploadChain(), 2)
}

func TestContainer_ValidateWiring(t *testing.T) {
	c := &Container{
		Config: mockConfig(t),
		Logger: discardLogger(),
	}

	err := c.validateWiring()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "asset store not initialized")
	assert.Contains(t, err.Error(), "repositories not initialized")
	assert.Contains(t, err.Error(), "graphql handler not initialized")
	assert.NotContains(t, err.Error(), "mongodb")
}

func TestContainer_ValidateWiring_RealModeNeedsMongo(t *testing.T) {
	cfg := mockConfig(t)
	cfg.App.Mode = config.AppModeReal
	c := &Container{Config: cfg, Logger: discardLogger()}

	err := c.validateWiring()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongodb client not initialized")
}

func TestContainerOption_WithLogger(t *testing.T) {
	logger := discardLogger()
	c := &Container{}

	WithLogger(logger)(c)

	assert.Same(t, logger, c.Logger)
}

func TestContainer_Close_NoResources(t *testing.T) {
	c := &Container{Logger: discardLogger()}
	assert.NoError(t, c.Close())
}

func TestContainer_IsReady_NoCheckers(t *testing.T) {
	c := &Container{Config: mockConfig(t), Logger: discardLogger()}
	assert.True(t, c.IsReady(context.Background()))
}
