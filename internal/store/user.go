package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// UserStore persists the users that tasks may reference as owner.
type UserStore interface {
	// Insert saves a new user and returns the generated ID.
	// Returns ErrEmailExists if the email is taken.
	Insert(ctx context.Context, user *domain.User) (uuid.UUID, error)

	// FindByID retrieves a user by ID.
	// Returns ErrUserNotFound if no such user exists.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
