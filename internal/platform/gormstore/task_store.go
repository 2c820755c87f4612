package gormstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/paginate"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskStore implements store.TaskStore on top of GORM.
type TaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTaskStore creates a GORM-backed task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(db *gorm.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "gorm_task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// FindByID implements store.TaskStore.FindByID
func (s *TaskStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var rec taskRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, s.fail(ctx, "failed to get task", id, mapError(err, store.ErrTaskNotFound))
	}
	return rec.toDomain(), nil
}

// Insert implements store.TaskStore.Insert
func (s *TaskStore) Insert(ctx context.Context, task *domain.Task) (uuid.UUID, error) {
	rec := taskFromDomain(task)
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return uuid.Nil, s.fail(ctx, "failed to insert task", uuid.Nil, mapError(err, store.ErrTaskNotFound))
	}
	task.ID = rec.ID
	task.CreatedAt = rec.CreatedAt
	task.UpdatedAt = rec.UpdatedAt

	logger.FromContextOrDefault(ctx, s.logger).Debug("task inserted",
		slog.String("task_id", rec.ID.String()))
	return rec.ID, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, fields domain.TaskCandidate) error {
	if !fields.Status.IsValid() {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidTaskStatus)
	}
	result := s.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       fields.Title,
			"description": fields.Description,
			"status":      int16(fields.Status),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return s.fail(ctx, "failed to update task", id, mapError(result.Error, store.ErrTaskNotFound))
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&taskRecord{}, "id = ?", id)
	if result.Error != nil {
		return s.fail(ctx, "failed to delete task", id, mapError(result.Error, store.ErrTaskNotFound))
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// ExistsByID implements store.TaskStore.ExistsByID
func (s *TaskStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&taskRecord{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, s.fail(ctx, "failed to check task existence", id, mapError(err, store.ErrTaskNotFound))
	}
	return count > 0, nil
}

// FindAll implements store.TaskStore.FindAll
func (s *TaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	var recs []taskRecord
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, s.fail(ctx, "failed to list tasks", uuid.Nil, mapError(err, store.ErrTaskNotFound))
	}
	return toDomainTasks(recs), nil
}

// Paginate implements store.TaskStore.Paginate
// Count and page share one transaction.
func (s *TaskStore) Paginate(ctx context.Context, plan paginate.Plan) ([]*domain.Task, int64, error) {
	var (
		recs  []taskRecord
		total int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := filtered(tx, plan).Count(&total).Error; err != nil {
			return err
		}
		return ordered(filtered(tx, plan), plan).
			Limit(plan.Limit).
			Offset(plan.Offset()).
			Find(&recs).Error
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to paginate tasks",
			slog.Int("page", plan.Page),
			slog.Int("limit", plan.Limit),
			slog.String("error", err.Error()))
		return nil, 0, mapError(err, store.ErrTaskNotFound)
	}
	return toDomainTasks(recs), total, nil
}

// filtered scopes tx to the tasks matching the plan's filters. Column names
// come only from store.TaskColumns.
func filtered(tx *gorm.DB, plan paginate.Plan) *gorm.DB {
	q := tx.Model(&taskRecord{})
	for _, f := range plan.Filters {
		column, ok := store.TaskColumns[f.Column]
		if !ok || f.Operator != paginate.OpEq {
			continue
		}
		q = q.Where(clause.Eq{Column: clause.Column{Name: column}, Value: f.Value})
	}
	return q
}

func ordered(q *gorm.DB, plan paginate.Plan) *gorm.DB {
	for _, o := range plan.SortBy {
		column, ok := store.TaskColumns[o.Column]
		if !ok {
			continue
		}
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   o.Direction == paginate.DESC,
		})
	}
	return q.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

func toDomainTasks(recs []taskRecord) []*domain.Task {
	tasks := make([]*domain.Task, 0, len(recs))
	for i := range recs {
		tasks = append(tasks, recs[i].toDomain())
	}
	return tasks
}

func (s *TaskStore) fail(ctx context.Context, msg string, id uuid.UUID, err error) error {
	if store.IsNotFoundError(err) {
		return err
	}
	attrs := []any{slog.String("error", err.Error())}
	if id != uuid.Nil {
		attrs = append(attrs, slog.String("task_id", id.String()))
	}
	logger.FromContextOrDefault(ctx, s.logger).Error(msg, attrs...)
	return err
}
