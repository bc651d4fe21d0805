// Package handlers contains the HTTP handlers of the thoughts API,
// along with their registration logic and middleware.
package handlers

import (
	"log/slog"

	"github.com/edgard/happythoughts/internal/database"
	"github.com/edgard/happythoughts/internal/health"
)

// HandlerDeps provides dependencies for HTTP handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Store      database.Store
	Connection health.Reporter
}
