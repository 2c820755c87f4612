package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/paginate"
	"github.com/phrazzld/task-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	ListTasksFn  func(ctx context.Context, q paginate.Query) (*paginate.Paginated[*domain.Task], error)
	GetTaskFn    func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	CreateTaskFn func(ctx context.Context, c domain.TaskCandidate) (uuid.UUID, error)
	UpdateTaskFn func(ctx context.Context, id uuid.UUID, c domain.TaskCandidate) error
	DeleteTaskFn func(ctx context.Context, id uuid.UUID) error

	// Default return values
	Task         *domain.Task
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context, q paginate.Query) (*paginate.Paginated[*domain.Task], error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, q)
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	plan := service.TaskPaginateConfig.Apply(q)
	return paginate.New[*domain.Task](nil, 0, plan), nil
}

// GetTask implements the TaskService.GetTask method
func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, c domain.TaskCandidate) (uuid.UUID, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, c)
	}
	if m.DefaultError != nil {
		return uuid.Nil, m.DefaultError
	}
	return uuid.New(), nil
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(ctx context.Context, id uuid.UUID, c domain.TaskCandidate) error {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, c)
	}
	return m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.DefaultError
}
