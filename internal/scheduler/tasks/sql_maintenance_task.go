package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edgard/happythoughts/internal/config"
)

// newSQLMaintenanceTask optimizes and compacts the thoughts database. A run
// that outlives timeout is cancelled and reported as failed; zero means no limit.
func newSQLMaintenanceTask(deps TaskDeps, timeout time.Duration) ScheduledTaskFunc {
	log := deps.Logger.With("task", config.TaskSQLMaintenance)

	return func(ctx context.Context) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		started := time.Now()
		err := deps.Store.RunSQLMaintenance(ctx)
		elapsed := time.Since(started)

		switch {
		case err == nil:
			log.InfoContext(ctx, "Thoughts database compacted", "elapsed", elapsed)
			return nil
		case errors.Is(err, context.DeadlineExceeded):
			log.WarnContext(ctx, "Thoughts database maintenance ran out of time", "timeout", timeout, "elapsed", elapsed)
			return fmt.Errorf("thoughts maintenance exceeded %s: %w", timeout, err)
		default:
			return fmt.Errorf("thoughts maintenance failed after %s: %w", elapsed.Round(time.Millisecond), err)
		}
	}
}
