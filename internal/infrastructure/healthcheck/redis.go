package healthcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

)

// RedisChecker pings the rate limiter's Redis.
type RedisChecker struct {
	client redis.Cmdable
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client redis.Cmdable) *RedisChecker {
	return &RedisChecker{client: client}
}

// Name returns the name of this health checker.
func (c *RedisChecker) Name() string {
	return "redis"
}

// Check performs the health check.
func (c *RedisChecker) Check(ctx context.Context) Status {
	if c.client == nil {
		return unhealthy("client not initialized")
	}

	start := time.Now()
	if err := c.client.Ping(ctx).Err(); err != nil {
		return unhealthy(fmt.Sprintf("ping failed: %v", err))
	}

	return healthy("connected", map[string]any{"latency_ms": time.Since(start).Milliseconds()})
}
