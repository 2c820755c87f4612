package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/paginate"
)

// TaskStore is the persistence gateway for tasks.
type TaskStore interface {
	// FindByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if no such task exists.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Insert saves a new task and returns the generated ID.
	// ID and timestamps on the argument are ignored and set on return.
	Insert(ctx context.Context, task *domain.Task) (uuid.UUID, error)

	// Update overwrites title, description and status and refreshes the
	// update timestamp. Returns ErrTaskNotFound if no row was affected.
	Update(ctx context.Context, id uuid.UUID, fields domain.TaskCandidate) error

	// Delete removes a task permanently.
	// Returns ErrTaskNotFound if no row was affected.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID reports whether a task with the ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// FindAll returns every task ordered by creation time.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// Paginate returns one page of tasks for the plan and the total number
	// of tasks matching its filters.
	Paginate(ctx context.Context, plan paginate.Plan) ([]*domain.Task, int64, error)
}

// TaskColumns maps pagination columns to task table columns. Plans are
// translated to SQL only through this whitelist.
var TaskColumns = map[string]string{
	"status": "status",
}
