package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// Server defaults
	DefaultServerPort            = 8080
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 15 * time.Second
	DefaultServerIdleTimeout     = time.Minute
	DefaultServerShutdownTimeout = 10 * time.Second

	// Database defaults
	DefaultDBURL             = "thoughts.db"
	DefaultDBMaxOpenConns    = 1 // SQLite serializes writers anyway
	DefaultDBMaxIdleConns    = 1
	DefaultDBConnMaxLifetime = 5 * time.Minute
	DefaultDBPingTimeout     = 2 * time.Second

	// Scheduler task names
	TaskConnectionCheck = "connection_check"
	TaskSQLMaintenance  = "sql_maintenance"

	DefaultConnectionCheckInterval = 5 * time.Second
	DefaultSQLMaintenanceSchedule  = "0 0 3 * * *" // daily at 03:00:00
	DefaultSQLMaintenanceTimeout   = 5 * time.Minute
)

// DefaultAllowedOrigins allows every origin, matching a bare cors() setup.
var DefaultAllowedOrigins = []string{"*"}

// DefaultTasks returns the scheduler tasks enabled out of the box.
func DefaultTasks() map[string]TaskConfig {
	return map[string]TaskConfig{
		TaskConnectionCheck: {Enabled: true, Interval: DefaultConnectionCheckInterval},
		TaskSQLMaintenance:  {Enabled: true, Schedule: DefaultSQLMaintenanceSchedule, Timeout: DefaultSQLMaintenanceTimeout},
	}
}
