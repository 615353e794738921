package healthcheck

import (
	"context"
	"fmt"
)

// Pinger is an asset store that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
	Name() string
}

// StorageChecker checks the upload asset store.
type StorageChecker struct {
	store Pinger
}

// NewStorageChecker creates a new asset store health checker.
func NewStorageChecker(store Pinger) *StorageChecker {
	return &StorageChecker{store: store}
}

// Name returns the name of this health checker.
func (c *StorageChecker) Name() string {
	return "storage"
}

// Check performs the health check.
func (c *StorageChecker) Check(ctx context.Context) Status {
	if c.store == nil {
		return unhealthy("store not initialized")
	}

	if err := c.store.Ping(ctx); err != nil {
		return unhealthy(fmt.Sprintf("%s: %v", c.store.Name(), err))
	}

	return healthy("available", map[string]any{"driver": c.store.Name()})
}
