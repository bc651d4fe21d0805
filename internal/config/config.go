// Package config provides configuration loading, validation, and management
// for the thoughts service. It handles reading from YAML files and environment
// variables, setting default values, and validating configuration parameters.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrConfiguration wraps every error returned while loading configuration.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration parameters for all components
// of the service: logging, the HTTP server, the database and the scheduler.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls the slog handler built at startup.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"min=1s"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"min=1s"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"min=1s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=1s,max=5m"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"  validate:"min=1,dive,required"`
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// DatabaseConfig holds the SQLite connection string and pool settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"min=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"min=0"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"      validate:"min=100ms,max=1m"`
}

// SchedulerConfig lists the scheduled tasks keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures a single scheduled task. A task runs either on a cron
// Schedule (seconds field supported) or every Interval; Schedule wins when both
// are set. Timeout bounds a single run for tasks that honour it.
type TaskConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Schedule string        `mapstructure:"schedule"`
	Interval time.Duration `mapstructure:"interval" validate:"min=0"`
	Timeout  time.Duration `mapstructure:"timeout"  validate:"min=0"`
}

// Validate checks the configuration against its struct tags and the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	for name, task := range c.Scheduler.Tasks {
		if task.Enabled && task.Schedule == "" && task.Interval <= 0 {
			return fmt.Errorf("scheduler task %q is enabled but has neither schedule nor interval", name)
		}
	}

	return nil
}
