// Package store defines the persistence contract consumed by the service
// layer. Implementations live under internal/platform: postgres (raw SQL
// over database/sql and pgx) and gormstore (GORM, used with SQLite).
//
// All implementations report a missing task as ErrTaskNotFound, which wraps
// ErrNotFound, so callers match with errors.Is regardless of backend.
package store
