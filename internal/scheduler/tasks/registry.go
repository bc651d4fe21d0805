package tasks

import (
	"context"

	"github.com/edgard/happythoughts/internal/config"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns every task keyed by the name used in the
// scheduler section of the configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks[config.TaskConnectionCheck] = newConnectionCheckTask(deps)
	tasks[config.TaskSQLMaintenance] = newSQLMaintenanceTask(deps, deps.Tasks[config.TaskSQLMaintenance].Timeout)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
