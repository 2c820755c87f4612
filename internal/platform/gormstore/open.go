package gormstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Open connects to the sqlite database named by cfg.URL and, when
// cfg.AutoMigrate is set, creates the schema. SQL is logged through l at
// debug level when l has debug enabled, otherwise only slow queries and
// errors are logged.
func Open(cfg config.DatabaseConfig, l *slog.Logger) (*gorm.DB, error) {
	if l == nil {
		l = slog.Default()
	}
	l = l.With(slog.String("component", "gorm"))

	db, err := gorm.Open(sqlite.Open(dsn(cfg.URL)), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(l),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	if isMemory(cfg.URL) {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())
	}

	if cfg.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	l.Info("sqlite database opened",
		slog.String("url", cfg.URL),
		slog.Bool("auto_migrate", cfg.AutoMigrate))
	return db, nil
}

// Close releases the connections held by db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isMemory(url string) bool {
	return url == MemoryDSN || strings.Contains(url, "mode=memory")
}

// dsn enables foreign key enforcement, which sqlite leaves off per connection.
func dsn(url string) string {
	if strings.Contains(url, "_foreign_keys") || strings.Contains(url, "_fk=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_foreign_keys=on"
}

// slogWriter adapts slog to gormlogger.Writer.
type slogWriter struct {
	logger *slog.Logger
	level  slog.Level
}

// Printf implements gormlogger.Writer.
func (w slogWriter) Printf(format string, args ...any) {
	w.logger.Log(context.Background(), w.level, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func newGormLogger(l *slog.Logger) gormlogger.Interface {
	level, writerLevel := gormlogger.Warn, slog.LevelWarn
	if l.Enabled(context.Background(), slog.LevelDebug) {
		level, writerLevel = gormlogger.Info, slog.LevelDebug
	}
	return gormlogger.New(slogWriter{logger: l, level: writerLevel}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
