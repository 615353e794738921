package healthcheck

import (
	"context"
	"fmt"
	"sort"
)

// Counter is implemented by the user and cat repositories.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// RecordsChecker reports how many records each store holds.
type RecordsChecker struct {
	stores map[string]Counter
}

// NewRecordsChecker creates a checker over the named stores.
func NewRecordsChecker(stores map[string]Counter) *RecordsChecker {
	return &RecordsChecker{stores: stores}
}

func (c *RecordsChecker) Name() string {
	return "records"
}

// Check counts every store. The first failing store makes the result unhealthy.
func (c *RecordsChecker) Check(ctx context.Context) Status {
	names := make([]string, 0, len(c.stores))
	for name := range c.stores {
		names = append(names, name)
	}
	sort.Strings(names)

	details := make(map[string]any, len(names))
	for _, name := range names {
		count, err := c.stores[name].Count(ctx)
		if err != nil {
			return unhealthy(fmt.Sprintf("%s count failed: %v", name, err))
		}
		details[name] = count
	}

	return healthy("counted", details)
}
