package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/catmap/internal/middleware"
)

func newLimitedEcho(config middleware.RateLimitConfig) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RateLimit(config))
	e.POST("/api/v1/upload", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "healthy")
	})
	return e
}

func doRequest(e *echo.Echo, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if ip != "" {
		req.Header.Set(echo.HeaderXRealIP, ip)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDefaultRateLimitConfig(t *testing.T) {
	config := middleware.DefaultRateLimitConfig()

	assert.NotNil(t, config.Logger)
	assert.Equal(t, middleware.DefaultRateLimit, config.Limit)
	assert.Equal(t, middleware.DefaultRateLimitWindow, config.Window)
	assert.Equal(t, middleware.DefaultBurstSize, config.BurstSize)
	assert.Contains(t, config.SkipPaths, "/health")
	assert.NotEmpty(t, config.Message)
}

func TestRateLimit_NoStore(t *testing.T) {
	e := newLimitedEcho(middleware.RateLimitConfig{Limit: 1})

	for range 5 {
		assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/api/v1/upload", "").Code)
	}
}

func TestRateLimit_SkipPaths(t *testing.T) {
	e := newLimitedEcho(middleware.RateLimitConfig{
		Store:     middleware.NewMemoryRateLimitStore(),
		Limit:     1,
		SkipPaths: []string{"/health"},
	})

	for range 5 {
		assert.Equal(t, http.StatusOK, doRequest(e, http.MethodGet, "/health", "").Code)
	}
}

func TestRateLimit_ExceedsLimit(t *testing.T) {
	e := newLimitedEcho(middleware.RateLimitConfig{
		Store:     middleware.NewMemoryRateLimitStore(),
		Limit:     2,
		BurstSize: 1,
		Window:    time.Minute,
	})

	for i := range 3 {
		rec := doRequest(e, http.MethodPost, "/api/v1/upload", "10.0.0.1")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		assert.Equal(t, "3", rec.Header().Get("X-Ratelimit-Limit"))
		assert.Equal(t, strconv.Itoa(2-i), rec.Header().Get("X-Ratelimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-Ratelimit-Reset"))
	}

	rec := doRequest(e, http.MethodPost, "/api/v1/upload", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, float64(http.StatusTooManyRequests), body["status"], 0)
	assert.NotEmpty(t, body["message"])
}

func TestRateLimit_KeyedByIP(t *testing.T) {
	e := newLimitedEcho(middleware.RateLimitConfig{
		Store:  middleware.NewMemoryRateLimitStore(),
		Limit:  1,
		Window: time.Minute,
	})

	assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/api/v1/upload", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(e, http.MethodPost, "/api/v1/upload", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/api/v1/upload", "10.0.0.2").Code)
}

func TestRateLimit_CustomExceedHandler(t *testing.T) {
	e := newLimitedEcho(middleware.RateLimitConfig{
		Store: middleware.NewMemoryRateLimitStore(),
		Limit: 1,
		ExceedHandler: func(c echo.Context, _ time.Duration) error {
			return c.String(http.StatusServiceUnavailable, "slow down")
		},
	})

	doRequest(e, http.MethodPost, "/api/v1/upload", "")
	rec := doRequest(e, http.MethodPost, "/api/v1/upload", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "slow down", rec.Body.String())
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func (failingStore) GetCount(context.Context, string) (int64, error) { return 0, nil }

func (failingStore) GetTTL(context.Context, string) (time.Duration, error) { return 0, nil }

func TestRateLimit_StoreFailureLetsRequestThrough(t *testing.T) {
	e := newLimitedEcho(middleware.RateLimitConfig{Store: failingStore{}, Limit: 1})

	for range 3 {
		assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/api/v1/upload", "").Code)
	}
}

func TestMemoryRateLimitStore(t *testing.T) {
	ctx := context.Background()
	store := middleware.NewMemoryRateLimitStore()

	count, err := store.Increment(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.Increment(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, err := store.GetCount(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)

	ttl, err := store.GetTTL(ctx, "k")
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)

	store.Reset()
	got, err = store.GetCount(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMemoryRateLimitStore_Expiration(t *testing.T) {
	ctx := context.Background()
	store := middleware.NewMemoryRateLimitStore()

	_, err := store.Increment(ctx, "k", 20*time.Millisecond)
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)

	got, err := store.GetCount(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, got)

	count, err := store.Increment(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryRateLimitStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := middleware.NewMemoryRateLimitStore()

	const workers = 20
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Increment(ctx, "shared", time.Minute)
		}()
	}
	wg.Wait()

	got, err := store.GetCount(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), got)
}

type mockRedisClient struct {
	counts map[string]int64
	ttls   map[string]time.Duration
}

func newMockRedisClient() *mockRedisClient {
	return &mockRedisClient{
		counts: make(map[string]int64),
		ttls:   make(map[string]time.Duration),
	}
}

func (m *mockRedisClient) Incr(_ context.Context, key string) (int64, error) {
	m.counts[key]++
	return m.counts[key], nil
}

func (m *mockRedisClient) Expire(_ context.Context, key string, expiration time.Duration) error {
	m.ttls[key] = expiration
	return nil
}

func (m *mockRedisClient) TTL(_ context.Context, key string) (time.Duration, error) {
	return m.ttls[key], nil
}

func (m *mockRedisClient) Get(_ context.Context, key string) (string, error) {
	count, ok := m.counts[key]
	if !ok {
		return "", nil
	}
	return strconv.FormatInt(count, 10), nil
}

func TestRedisRateLimitStore(t *testing.T) {
	ctx := context.Background()
	client := newMockRedisClient()
	store := middleware.NewRedisRateLimitStore(client, "test:")

	count, err := store.Increment(ctx, "ip:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, client.ttls["test:ip:1"])

	_, err = store.Increment(ctx, "ip:1", time.Minute)
	require.NoError(t, err)

	got, err := store.GetCount(ctx, "ip:1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)

	missing, err := store.GetCount(ctx, "ip:2")
	require.NoError(t, err)
	assert.Zero(t, missing)

	ttl, err := store.GetTTL(ctx, "ip:1")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)
}

func TestRedisRateLimitStore_DefaultPrefix(t *testing.T) {
	client := newMockRedisClient()
	store := middleware.NewRedisRateLimitStore(client, "")

	_, err := store.Increment(context.Background(), "ip:1", time.Minute)
	require.NoError(t, err)

	assert.Contains(t, client.counts, "catmap:ratelimit:ip:1")
}
