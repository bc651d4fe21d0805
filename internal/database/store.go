package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MaxRecentThoughts caps how many thoughts FindRecentThoughts returns.
const MaxRecentThoughts = 100

// Store defines the interface for thought persistence.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// FindRecentThoughts retrieves up to limit thoughts, newest first.
	FindRecentThoughts(ctx context.Context, limit int) ([]Thought, error)

	// CreateThought validates and inserts a new thought, assigning its id.
	// Returns a *ValidationError when the thought breaks the record constraints.
	CreateThought(ctx context.Context, thought *Thought) error

	// GetThought retrieves a single thought by id.
	GetThought(ctx context.Context, id string) (*Thought, error)

	// IncrementHearts atomically adds one heart to the thought with the given id.
	// Returns ErrInvalidThoughtID or ErrThoughtNotFound for unusable ids.
	IncrementHearts(ctx context.Context, id string) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FindRecentThoughts retrieves up to limit thoughts ordered by creation time, newest first.
func (s *sqlxStore) FindRecentThoughts(ctx context.Context, limit int) ([]Thought, error) {
	if limit <= 0 {
		return []Thought{}, nil
	}
	if limit > MaxRecentThoughts {
		limit = MaxRecentThoughts
		s.logger.DebugContext(ctx, "Limit exceeded maximum value, capping", "capped_limit", limit)
	}

	thoughts := []Thought{}
	query := `
        SELECT id, message, hearts, name, created_at
        FROM thoughts
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?;
    `
	if err := s.db.SelectContext(ctx, &thoughts, query, limit); err != nil {
		s.logger.ErrorContext(ctx, "Error fetching recent thoughts", "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to fetch recent thoughts: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched recent thoughts", "limit", limit, "count", len(thoughts))
	return thoughts, nil
}

// CreateThought validates and inserts a new thought. A zero id is replaced by a
// fresh UUID and a zero creation time by the current time.
func (s *sqlxStore) CreateThought(ctx context.Context, thought *Thought) error {
	if thought == nil {
		return fmt.Errorf("cannot save nil thought")
	}

	if err := ValidateThought(thought); err != nil {
		s.logger.DebugContext(ctx, "Rejected invalid thought", "error", err)
		return err
	}

	if thought.ID == uuid.Nil {
		thought.ID = uuid.New()
	}
	if thought.CreatedAt.IsZero() {
		thought.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO thoughts (id, message, hearts, name, created_at)
        VALUES (:id, :message, :hearts, :name, :created_at);
    `
	if _, err := s.db.NamedExecContext(ctx, query, thought); err != nil {
		s.logger.ErrorContext(ctx, "Error saving thought", "thought_id", thought.ID, "error", err)
		return fmt.Errorf("failed to save thought %s: %w", thought.ID, err)
	}

	s.logger.DebugContext(ctx, "Thought saved successfully", "thought_id", thought.ID)
	return nil
}

// IncrementHearts adds one heart with a single UPDATE so concurrent likes never
// overwrite each other.
func (s *sqlxStore) IncrementHearts(ctx context.Context, id string) error {
	thoughtID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidThoughtID, id, err)
	}

	result, err := s.db.ExecContext(ctx, `UPDATE thoughts SET hearts = hearts + 1 WHERE id = ?;`, thoughtID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error incrementing hearts", "thought_id", thoughtID, "error", err)
		return fmt.Errorf("failed to increment hearts for thought %s: %w", thoughtID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for thought %s: %w", thoughtID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrThoughtNotFound, thoughtID)
	}

	s.logger.DebugContext(ctx, "Hearts incremented", "thought_id", thoughtID)
	return nil
}

// GetThought retrieves a single thought by id.
func (s *sqlxStore) GetThought(ctx context.Context, id string) (*Thought, error) {
	thoughtID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidThoughtID, id, err)
	}

	var thought Thought
	query := `SELECT id, message, hearts, name, created_at FROM thoughts WHERE id = ?;`
	if err := s.db.GetContext(ctx, &thought, query, thoughtID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrThoughtNotFound, thoughtID)
		}
		return nil, fmt.Errorf("failed to get thought %s: %w", thoughtID, err)
	}
	return &thought, nil
}

// RunSQLMaintenance refreshes planner statistics and reclaims free pages.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Running SQL maintenance...")
	startTime := time.Now()

	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		s.logger.ErrorContext(ctx, "PRAGMA optimize failed", "error", err)
		return fmt.Errorf("failed to optimize database: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "VACUUM failed", "error", err)
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	s.logger.InfoContext(ctx, "SQL maintenance completed", "duration", time.Since(startTime))
	return nil
}
