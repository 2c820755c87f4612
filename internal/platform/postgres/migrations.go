package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
)

// MigrationsDir is the directory inside Migrations holding goose SQL files.
const MigrationsDir = "migrations"

// MigrationsTable records applied schema versions.
const MigrationsTable = "schema_migrations"

// Migrations holds the goose migrations for the PostgreSQL schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Migrate runs a goose command ("up", "down", "status", "version", ...)
// against db using the embedded migrations. goose output is routed to l.
func Migrate(ctx context.Context, db *sql.DB, command string, l *slog.Logger, args ...string) error {
	if l == nil {
		l = slog.Default()
	}
	goose.SetLogger(&slogGooseLogger{logger: l.With(slog.String("component", "migrations"))})
	goose.SetBaseFS(Migrations)
	goose.SetTableName(MigrationsTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, MigrationsDir, args...); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}

// slogGooseLogger adapts slog to goose.Logger.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements goose.Logger. goose calls it for unrecoverable errors;
// the error is logged and also returned from RunContext, so this does not exit.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
