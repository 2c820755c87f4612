package mocks

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/paginate"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. Methods call the
// matching function field when set and otherwise operate on an in-memory map.
type MockTaskStore struct {
	FindByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	InsertFn     func(ctx context.Context, task *domain.Task) (uuid.UUID, error)
	UpdateFn     func(ctx context.Context, id uuid.UUID, fields domain.TaskCandidate) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
	ExistsByIDFn func(ctx context.Context, id uuid.UUID) (bool, error)
	FindAllFn    func(ctx context.Context) ([]*domain.Task, error)
	PaginateFn   func(ctx context.Context, plan paginate.Plan) ([]*domain.Task, int64, error)

	mu    sync.Mutex
	Tasks map[uuid.UUID]*domain.Task

	// Call counters for asserting that a mutation was or was not reached.
	UpdateCalls int
	DeleteCalls int
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// FindByID implements the TaskStore interface
func (m *MockTaskStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

// Insert implements the TaskStore interface
func (m *MockTaskStore) Insert(ctx context.Context, task *domain.Task) (uuid.UUID, error) {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	task.ID = uuid.New()
	task.CreatedAt = now
	task.UpdatedAt = now
	clone := *task
	m.Tasks[task.ID] = &clone
	return task.ID, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, id uuid.UUID, fields domain.TaskCandidate) error {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, fields)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.Tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.Apply(fields)
	task.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// ExistsByID implements the TaskStore interface
func (m *MockTaskStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsByIDFn != nil {
		return m.ExistsByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Tasks[id]
	return ok, nil
}

// FindAll implements the TaskStore interface
func (m *MockTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	return m.sorted(), nil
}

// Paginate implements the TaskStore interface. The default ignores sort
// and filters and slices the tasks ordered by creation time.
func (m *MockTaskStore) Paginate(ctx context.Context, plan paginate.Plan) ([]*domain.Task, int64, error) {
	if m.PaginateFn != nil {
		return m.PaginateFn(ctx, plan)
	}
	all := m.sorted()
	start := min(plan.Offset(), len(all))
	end := min(start+plan.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (m *MockTaskStore) sorted() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		clone := *task
		tasks = append(tasks, &clone)
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return tasks
}
