// Package tasks implements the scheduled tasks of the thoughts service.
// It includes task definitions, dependencies, and registration mechanisms.
package tasks

import (
	"context"
	"log/slog"

	"github.com/edgard/happythoughts/internal/config"
	"github.com/edgard/happythoughts/internal/database"
)

// ConnectionChecker refreshes the store connection state.
type ConnectionChecker interface {
	Check(ctx context.Context) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Store   database.Store
	Monitor ConnectionChecker
	// Tasks carries per-task settings such as timeouts, keyed by task name.
	Tasks map[string]config.TaskConfig
}
