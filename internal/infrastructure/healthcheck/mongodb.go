package healthcheck

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoChecker pings the database.
type MongoChecker struct {
	db *mongo.Database
}

// NewMongoChecker creates a new MongoDB health checker.
func NewMongoChecker(db *mongo.Database) *MongoChecker {
	return &MongoChecker{db: db}
}

// Name returns the name of this health checker.
func (c *MongoChecker) Name() string {
	return "mongodb"
}

// Check performs the health check.
func (c *MongoChecker) Check(ctx context.Context) Status {
	if c.db == nil {
		return unhealthy("database not initialized")
	}

	start := time.Now()
	if err := c.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return unhealthy(fmt.Sprintf("ping failed: %v", err))
	}

	return healthy("connected", map[string]any{
		"database":   c.db.Name(),
		"latency_ms": time.Since(start).Milliseconds(),
	})
}
