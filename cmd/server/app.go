package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/gormstore"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds the shared dependencies of the server and releases
// them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is the connection pool of either driver.
	db *sql.DB

	taskStore store.TaskStore

	taskService service.TaskService
}

// newApplication opens the configured database and wires stores and services.
func newApplication(ctx context.Context, cfg *config.Config, l *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: l,
	}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := setupPostgres(ctx, cfg.Database, l)
		if err != nil {
			return nil, err
		}
		app.db = db
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, "up", l); err != nil {
				app.cleanup()
				return nil, err
			}
		}
		app.taskStore = postgres.NewPostgresTaskStore(db, l)

	case config.DriverSQLite:
		gdb, err := gormstore.Open(cfg.Database, l)
		if err != nil {
			return nil, err
		}
		if app.db, err = gdb.DB(); err != nil {
			return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
		}
		app.taskStore = gormstore.NewTaskStore(gdb, l)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, l)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	l.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until a shutdown signal or a server failure and returns
// the process exit code.
func (app *application) Run(ctx context.Context) int {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup closes the database pool.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("Application shutdown completed")
}
