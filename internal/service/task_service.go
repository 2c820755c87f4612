package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/paginate"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// ListTasks returns one page of tasks for the query, constrained by
	// TaskPaginateConfig.
	ListTasks(ctx context.Context, q paginate.Query) (*paginate.Paginated[*domain.Task], error)

	// GetTask retrieves a task by its ID. A missing task yields (nil, nil).
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// CreateTask validates and stores a new task and returns its ID.
	CreateTask(ctx context.Context, c domain.TaskCandidate) (uuid.UUID, error)

	// UpdateTask overwrites the settable fields of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateTask(ctx context.Context, id uuid.UUID, c domain.TaskCandidate) error

	// DeleteTask removes an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	config paginate.Config
	logger *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if the store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		config: TaskPaginateConfig,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	q paginate.Query,
) (*paginate.Paginated[*domain.Task], error) {
	plan := s.config.Apply(q)

	tasks, total, err := s.tasks.Paginate(ctx, plan)
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to paginate tasks", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("listed tasks",
		slog.Int("page", plan.Page),
		slog.Int("limit", plan.Limit),
		slog.Int("count", len(tasks)),
		slog.Int64("total", total))
	return paginate.New(tasks, total, plan), nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Debug("task not found",
				slog.String("task_id", id.String()))
			return nil, nil
		}
		return nil, NewTaskServiceError("get", "failed to retrieve task", err)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, c domain.TaskCandidate) (uuid.UUID, error) {
	task, err := domain.NewTask(c, nil)
	if err != nil {
		return uuid.Nil, NewTaskServiceError("create", "invalid task", err)
	}

	id, err := s.tasks.Insert(ctx, task)
	if err != nil {
		return uuid.Nil, NewTaskServiceError("create", "failed to save task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		slog.String("task_id", id.String()),
		slog.String("status", task.Status.String()))
	return id, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id uuid.UUID, c domain.TaskCandidate) error {
	if err := c.Validate(); err != nil {
		return NewTaskServiceError("update", "invalid task", err)
	}
	if err := s.ensureExists(ctx, "update", id); err != nil {
		return err
	}

	if err := s.tasks.Update(ctx, id, c); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return NewTaskServiceError("update", "task was removed concurrently", ErrTaskNotFound)
		}
		return NewTaskServiceError("update", "failed to update task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated",
		slog.String("task_id", id.String()))
	return nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.ensureExists(ctx, "delete", id); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return NewTaskServiceError("delete", "task was removed concurrently", ErrTaskNotFound)
		}
		return NewTaskServiceError("delete", "failed to delete task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.String("task_id", id.String()))
	return nil
}

func (s *taskServiceImpl) ensureExists(ctx context.Context, operation string, id uuid.UUID) error {
	exists, err := s.tasks.ExistsByID(ctx, id)
	if err != nil {
		return NewTaskServiceError(operation, "failed to check task existence", err)
	}
	if !exists {
		logger.FromContextOrDefault(ctx, s.logger).Debug("task not found",
			slog.String("operation", operation),
			slog.String("task_id", id.String()))
		return NewTaskServiceError(operation, "task does not exist", ErrTaskNotFound)
	}
	return nil
}
