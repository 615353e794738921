package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	redisCtxTimeout   = 10 * time.Second
	redisTestPoolSize = 10
)

var redisContainer = newSharedContainer(testcontainers.ContainerRequest{
	Image: "redis:7-alpine",
	WaitingFor: wait.ForAll(
		wait.ForLog("Ready to accept connections").WithStartupTimeout(containerStartupTimeout),
		wait.ForListeningPort("6379/tcp").WithStartupTimeout(containerStartupTimeout),
	),
}, "6379")

// SetupTestRedis returns a client for the shared Redis container. The
// database is flushed when the test ends.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr, err := redisContainer.Addr()
	require.NoError(t, err, "redis container")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: redisTestPoolSize,
	})

	require.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}, redisCtxTimeout, 250*time.Millisecond, "redis ping")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), redisCtxTimeout)
		defer cancel()
		_ = client.FlushDB(ctx).Err()
		_ = client.Close()
	})

	return client
}

// SetupTestRedisWithPrefix also returns a key prefix unique to the test so
// parallel tests do not share counters.
func SetupTestRedisWithPrefix(t *testing.T) (*redis.Client, string) {
	t.Helper()
	return SetupTestRedis(t), "test:" + testDBName(t.Name()) + ":"
}
