package tasks

import (
	"context"
	"fmt"
)

// newConnectionCheckTask pings the store so the request guard sees outages
// and recoveries within one check interval.
func newConnectionCheckTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "connection_check")

	return func(ctx context.Context) error {
		if err := deps.Monitor.Check(ctx); err != nil {
			log.DebugContext(ctx, "Store connection check failed", "error", err)
			return fmt.Errorf("connection check failed: %w", err)
		}
		return nil
	}
}
