package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/gormstore"
	"github.com/phrazzld/task-api/internal/platform/postgres"
)

const pingTimeout = 5 * time.Second

// setupPostgres opens a pgx-backed pool configured from cfg and verifies it.
func setupPostgres(ctx context.Context, cfg config.DatabaseConfig, l *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	l.Info("Database connection established", slog.String("driver", config.DriverPostgres))
	return db, nil
}

// runMigrations runs a schema migration command for the configured driver.
// The sqlite schema is managed by GORM and only supports "up".
func runMigrations(ctx context.Context, cfg *config.Config, l *slog.Logger, command string, args ...string) error {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := setupPostgres(ctx, cfg.Database, l)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, command, l, args...)

	case config.DriverSQLite:
		if command != "up" {
			return fmt.Errorf("migration command %q is not supported for %s", command, config.DriverSQLite)
		}
		dbCfg := cfg.Database
		dbCfg.AutoMigrate = true
		db, err := gormstore.Open(dbCfg, l)
		if err != nil {
			return err
		}
		return gormstore.Close(db)

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
