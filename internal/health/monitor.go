// Package health tracks whether the thought store is reachable. The Monitor
// owns the connection state that the HTTP guard consults on every request.
package health

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// State is the store connection state. The numbering follows the usual
// driver ready states: 0 disconnected, 1 connected, 2 connecting, 3 disconnecting.
type State int32

const (
	Disconnected State = iota
	Connected
	Connecting
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Connecting:
		return "connecting"
	case Disconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

// Reporter exposes the current connection state.
type Reporter interface {
	ConnectionState() State
}

// Pinger checks that the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor refreshes the connection state by pinging the store.
type Monitor struct {
	pinger  Pinger
	logger  *slog.Logger
	timeout time.Duration
	state   atomic.Int32
}

// NewMonitor creates a Monitor in the Connecting state. Call Check to
// establish the first real state.
func NewMonitor(pinger Pinger, logger *slog.Logger, timeout time.Duration) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Monitor{
		pinger:  pinger,
		logger:  logger.With("component", "health_monitor"),
		timeout: timeout,
	}
	m.state.Store(int32(Connecting))
	return m
}

// ConnectionState returns the state recorded by the latest check.
func (m *Monitor) ConnectionState() State {
	return State(m.state.Load())
}

// Check pings the store and records Connected or Disconnected.
// It returns the ping error, if any.
func (m *Monitor) Check(ctx context.Context) error {
	if m.ConnectionState() == Disconnecting {
		return nil
	}

	pingCtx := ctx
	if m.timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	err := m.pinger.Ping(pingCtx)
	if err != nil {
		m.transition(ctx, Disconnected, "error", err)
		return err
	}

	m.transition(ctx, Connected)
	return nil
}

// MarkDisconnecting records that the store is being shut down. Later checks
// leave the state unchanged.
func (m *Monitor) MarkDisconnecting() {
	m.transition(context.Background(), Disconnecting)
}

func (m *Monitor) transition(ctx context.Context, next State, args ...any) {
	prev := State(m.state.Swap(int32(next)))
	if prev == next {
		return
	}

	args = append(args, "from", prev.String(), "to", next.String())
	if next == Disconnected {
		m.logger.WarnContext(ctx, "Store connection lost", args...)
		return
	}
	m.logger.InfoContext(ctx, "Store connection state changed", args...)
}
