// Package healthcheck reports on the backing services of the API: MongoDB,
// the rate limiter's Redis, the upload store and the record counts.
package healthcheck

import (
	"context"
	"time"
)

// Checker probes one backing service.
type Checker interface {
	Check(ctx context.Context) Status
	Name() string
}

// Status is the outcome of one probe.
type Status struct {
	Healthy   bool           `json:"healthy"`
	Message   string         `json:"message,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CheckedAt time.Time      `json:"checked_at"`
}

func healthy(message string, details map[string]any) Status {
	return Status{Healthy: true, Message: message, Details: details, CheckedAt: time.Now()}
}

func unhealthy(message string) Status {
	return Status{Message: message, CheckedAt: time.Now()}
}

var (
	_ Checker = (*MongoChecker)(nil)
	_ Checker = (*RedisChecker)(nil)
	_ Checker = (*StorageChecker)(nil)
	_ Checker = (*RecordsChecker)(nil)
)
