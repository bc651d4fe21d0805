// Package app provides component lifecycle management for the thoughts service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Runner is a long-running component that stops when its context is cancelled.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler is a background job runner with explicit start and stop.
type Scheduler interface {
	Start() error
	Stop() error
}

// Monitor is told when the store is about to go away.
type Monitor interface {
	MarkDisconnecting()
}

// App runs the HTTP server and the scheduler until shutdown.
type App struct {
	logger    *slog.Logger
	server    Runner
	scheduler Scheduler
	monitor   Monitor
}

// New creates the application orchestrator.
func New(logger *slog.Logger, server Runner, scheduler Scheduler, monitor Monitor) *App {
	return &App{
		logger:    logger.With("component", "app"),
		server:    server,
		scheduler: scheduler,
		monitor:   monitor,
	}
}

// Run starts all components and blocks until ctx is cancelled or one of them
// fails. It returns nil on a clean shutdown.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting application...")

	g, gCtx := errgroup.WithContext(ctx)

	// The monitor is marked disconnecting before the server begins its
	// graceful shutdown.
	serverCtx, stopServer := context.WithCancel(context.WithoutCancel(ctx))
	defer stopServer()

	g.Go(func() error {
		<-gCtx.Done()
		a.monitor.MarkDisconnecting()
		stopServer()
		return nil
	})

	g.Go(func() error {
		err := a.server.Run(serverCtx)
		if err == nil && serverCtx.Err() == nil {
			return errors.New("http server stopped unexpectedly")
		}
		return err
	})

	g.Go(func() error {
		if err := a.scheduler.Start(); err != nil {
			a.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		a.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := a.scheduler.Stop(); err != nil {
			a.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	a.logger.Info("Application running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Application stopped due to error", "error", err)
		return err
	}

	a.logger.Info("Application stopped gracefully.")
	return nil
}
