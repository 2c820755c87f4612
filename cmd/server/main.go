// Package main implements the entry point for the task API server, a CRUD
// REST service for tasks backed by PostgreSQL or SQLite.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// appVersion is reported in the OpenAPI document.
const appVersion = "1.0.0"

func main() {
	migrate := flag.String("migrate", "", "run a migration command (up, down, status, version) and exit")
	flag.Parse()

	os.Exit(run(context.Background(), *migrate, flag.Args()))
}

// run initializes the application and serves until shutdown, or runs a
// single migration command. It returns the process exit code.
func run(ctx context.Context, migrate string, args []string) int {
	cfg, l, err := initializeApp()
	if err != nil {
		log.Printf("Failed to initialize application: %v", err)
		return 1
	}

	if migrate != "" {
		if err := runMigrations(ctx, cfg, l, migrate, args...); err != nil {
			l.Error("migration failed",
				slog.String("command", migrate),
				slog.String("error", err.Error()))
			return 1
		}
		return 0
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		l.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}
	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))
	return cfg, l, nil
}
