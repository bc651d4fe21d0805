// Package database provides database setup, models, and the data access layer (Store)
// for thoughts.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/edgard/happythoughts/internal/config"
	"github.com/edgard/happythoughts/migrations"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

// connectionPragmas run on every pooled connection. Writers wait up to
// busy_timeout for the write lock instead of failing with SQLITE_BUSY.
var connectionPragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

// NewDB opens the thoughts database, brings its schema up to date and returns
// the connection pool. cfg.URL is a file path or file: URI; query parameters
// in it are passed to the driver.
func NewDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	path := databasePath(cfg.URL)
	if path == "" {
		return nil, errors.New("database url does not name a file")
	}

	db, err := sqlx.Connect("sqlite", dataSourceName(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to open thoughts database %q: %w", path, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	version, err := ApplyMigrations(db.DB)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Closing thoughts database after failed migration", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to migrate thoughts database %q: %w", path, err)
	}

	slog.Info("Thoughts database ready", "path", path, "schema_version", version, "max_open_conns", cfg.MaxOpenConns)
	return db, nil
}

// CloseDB folds the write-ahead log back into the database file and closes
// the pool. Errors are logged, not returned.
func CloseDB(db *sqlx.DB) {
	if db == nil {
		return
	}
	if _, err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		slog.Debug("Skipping WAL checkpoint on close", "error", err)
	}
	if err := db.Close(); err != nil {
		slog.Error("Error closing thoughts database", "error", err)
		return
	}
	slog.Info("Thoughts database closed.")
}

// ApplyMigrations migrates db to the newest embedded schema and returns the
// resulting schema version. A database that is already current is not an error.
func ApplyMigrations(db *sql.DB) (uint, error) {
	if db == nil {
		return 0, errors.New("cannot migrate a nil database")
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return 0, fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	target, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return 0, fmt.Errorf("failed to prepare sqlite migration target: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", target)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}

// dataSourceName appends connectionPragmas to dbURL, leaving any pragma the
// URL already sets untouched.
func dataSourceName(dbURL string) string {
	var extra []string
	for _, pragma := range connectionPragmas {
		name := pragma[:strings.IndexByte(pragma, '(')]
		if !strings.Contains(dbURL, "_pragma="+name) {
			extra = append(extra, "_pragma="+pragma)
		}
	}
	if len(extra) == 0 {
		return dbURL
	}

	sep := "?"
	if strings.Contains(dbURL, "?") {
		sep = "&"
	}
	return dbURL + sep + strings.Join(extra, "&")
}

// databasePath returns the file named by a path or file: URI, without its
// query string.
func databasePath(dbURL string) string {
	path, _, _ := strings.Cut(strings.TrimPrefix(dbURL, "file:"), "?")
	if decoded, err := url.PathUnescape(path); err == nil {
		return decoded
	}
	return path
}
