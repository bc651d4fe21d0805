// Package main contains the entrypoint for the thoughts HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgard/happythoughts/internal/api"
	"github.com/edgard/happythoughts/internal/api/handlers"
	"github.com/edgard/happythoughts/internal/app"
	"github.com/edgard/happythoughts/internal/config"
	"github.com/edgard/happythoughts/internal/database"
	"github.com/edgard/happythoughts/internal/health"
	"github.com/edgard/happythoughts/internal/logger"
	"github.com/edgard/happythoughts/internal/scheduler"
	"github.com/edgard/happythoughts/internal/scheduler/tasks"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires config, logger, database, connection monitor, scheduler and HTTP
// server, blocks until shutdown and returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "", "Path to configuration file (default: ./config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", "url", cfg.Database.URL, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	monitor := health.NewMonitor(store, log, cfg.Database.PingTimeout)
	if err := monitor.Check(ctx); err != nil {
		// The scheduled check keeps retrying; requests get 503 until it succeeds.
		log.Warn("Initial store connection check failed", "error", err)
	}

	sched, err := scheduler.New(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:  log,
		Store:   store,
		Monitor: monitor,
		Tasks:   cfg.Scheduler.Tasks,
	}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	hDeps := handlers.HandlerDeps{
		Logger:     log,
		Store:      store,
		Connection: monitor,
	}
	srv := api.NewServer(cfg.Server, api.NewHandler(cfg.Server, hDeps), log)

	application := app.New(log, srv, sched, monitor)

	log.Info("Starting thoughts service...", "addr", cfg.Server.Addr())
	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Service stopped due to error", "error", err)
		return 1
	}

	log.Info("Service stopped gracefully.")
	return 0
}
