package handlers_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edgard/happythoughts/internal/api/handlers"
	"github.com/edgard/happythoughts/internal/database"
	"github.com/edgard/happythoughts/internal/health"
)

// memoryStore is an in-memory database.Store that counts every call.
type memoryStore struct {
	mu       sync.Mutex
	thoughts map[uuid.UUID]database.Thought
	calls    int
	err      error // returned by every operation when set
}

func newMemoryStore() *memoryStore {
	return &memoryStore{thoughts: make(map[uuid.UUID]database.Thought)}
}

func (s *memoryStore) Ping(context.Context) error { return nil }

func (s *memoryStore) FindRecentThoughts(_ context.Context, limit int) ([]database.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	out := make([]database.Thought, 0, len(s.thoughts))
	for _, t := range s.thoughts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryStore) CreateThought(_ context.Context, thought *database.Thought) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	if err := database.ValidateThought(thought); err != nil {
		return err
	}
	thought.ID = uuid.New()
	s.thoughts[thought.ID] = *thought
	return nil
}

func (s *memoryStore) GetThought(_ context.Context, id string) (*database.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	thoughtID, err := uuid.Parse(id)
	if err != nil {
		return nil, database.ErrInvalidThoughtID
	}
	t, ok := s.thoughts[thoughtID]
	if !ok {
		return nil, database.ErrThoughtNotFound
	}
	return &t, nil
}

func (s *memoryStore) IncrementHearts(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	thoughtID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w %q", database.ErrInvalidThoughtID, id)
	}
	t, ok := s.thoughts[thoughtID]
	if !ok {
		return fmt.Errorf("%w: %s", database.ErrThoughtNotFound, thoughtID)
	}
	t.Hearts++
	s.thoughts[thoughtID] = t
	return nil
}

func (s *memoryStore) RunSQLMaintenance(context.Context) error { return nil }

func (s *memoryStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// seed inserts a thought created at the given time and returns its id.
func (s *memoryStore) seed(message string, createdAt time.Time) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := database.NewThought(message, "")
	t.ID = uuid.New()
	t.CreatedAt = createdAt
	s.thoughts[t.ID] = *t
	return t.ID
}

type fixedState health.State

func (s fixedState) ConnectionState() health.State { return health.State(s) }

func testDeps(store database.Store, state health.State) handlers.HandlerDeps {
	return handlers.HandlerDeps{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:      store,
		Connection: fixedState(state),
	}
}
