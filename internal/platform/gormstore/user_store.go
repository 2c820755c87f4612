package gormstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"gorm.io/gorm"
)

// UserStore implements store.UserStore on top of GORM.
type UserStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStore creates a GORM-backed user store.
func NewUserStore(db *gorm.DB, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "gorm_user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Insert implements store.UserStore.Insert
func (s *UserStore) Insert(ctx context.Context, user *domain.User) (uuid.UUID, error) {
	if err := user.Validate(); err != nil {
		return uuid.Nil, err
	}
	rec := &userRecord{
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return uuid.Nil, store.ErrEmailExists
		}
		s.logger.ErrorContext(ctx, "failed to insert user", slog.String("error", err.Error()))
		return uuid.Nil, mapError(err, store.ErrUserNotFound)
	}
	user.ID = rec.ID
	user.CreatedAt = rec.CreatedAt
	user.UpdatedAt = rec.UpdatedAt
	return rec.ID, nil
}

// FindByID implements store.UserStore.FindByID
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, mapError(err, store.ErrUserNotFound)
	}
	return rec.toDomain(), nil
}
