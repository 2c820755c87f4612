package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/paginate"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

const taskColumns = `id, title, description, status, created_at, updated_at, created_by`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task   domain.Task
		status int16
		owner  uuid.NullUUID
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
		&owner,
	); err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	if owner.Valid {
		id := owner.UUID
		task.OwnerID = &id
	}
	return &task, nil
}

// FindByID implements store.TaskStore.FindByID
func (s *PostgresTaskStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return task, nil
}

// Insert implements store.TaskStore.Insert
// The database generates the ID and both timestamps.
func (s *PostgresTaskStore) Insert(ctx context.Context, task *domain.Task) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var owner uuid.NullUUID
	if task.OwnerID != nil {
		owner = uuid.NullUUID{UUID: *task.OwnerID, Valid: true}
	}

	query := `
		INSERT INTO tasks (title, description, status, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		int16(task.Status),
		owner,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("error", err.Error()),
			slog.Int("status", int(task.Status)))
		return uuid.Nil, MapError(err)
	}

	log.Debug("task inserted", slog.String("task_id", task.ID.String()))
	return task.ID, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, id uuid.UUID, fields domain.TaskCandidate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, updated_at = now()
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query,
		fields.Title,
		fields.Description,
		int16(fields.Status),
		id,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// ExistsByID implements store.TaskStore.ExistsByID
func (s *PostgresTaskStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check task existence",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return false, MapError(err)
	}
	return exists, nil
}

// FindAll implements store.TaskStore.FindAll
func (s *PostgresTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`
	return s.queryTasks(ctx, s.db, query)
}

// Paginate implements store.TaskStore.Paginate
// Count and page run in one read-only transaction when the store holds a
// pool, so the total matches the page.
func (s *PostgresTaskStore) Paginate(
	ctx context.Context,
	plan paginate.Plan,
) ([]*domain.Task, int64, error) {
	q := buildTaskPageQuery(plan)

	var (
		tasks []*domain.Task
		total int64
	)
	read := func(ctx context.Context, db store.DBTX) error {
		if err := db.QueryRowContext(ctx, q.count, q.args...).Scan(&total); err != nil {
			return MapError(err)
		}
		var err error
		tasks, err = s.queryTasks(ctx, db, q.page, q.pageArgs()...)
		return err
	}

	var err error
	if pool, ok := s.db.(*sql.DB); ok {
		err = store.RunInTransaction(ctx, pool, store.ReadOnly, func(ctx context.Context, tx *sql.Tx) error {
			return read(ctx, tx)
		})
	} else {
		err = read(ctx, s.db)
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to paginate tasks",
			slog.Int("page", plan.Page),
			slog.Int("limit", plan.Limit),
			slog.String("error", err.Error()))
		return nil, 0, err
	}

	return tasks, total, nil
}

func (s *PostgresTaskStore) queryTasks(
	ctx context.Context,
	db store.DBTX,
	query string,
	args ...any,
) ([]*domain.Task, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return tasks, nil
}

// taskPageQuery holds the SQL for one paginated read. args are shared by
// count and page; page additionally binds limit and offset.
type taskPageQuery struct {
	count  string
	page   string
	args   []any
	limit  int
	offset int
}

func (q taskPageQuery) pageArgs() []any {
	return append(append([]any{}, q.args...), q.limit, q.offset)
}

// buildTaskPageQuery translates a plan into SQL. Column names come only
// from store.TaskColumns; every value is a bound parameter.
func buildTaskPageQuery(plan paginate.Plan) taskPageQuery {
	var (
		conditions []string
		args       []any
	)
	for _, f := range plan.Filters {
		column, ok := store.TaskColumns[f.Column]
		if !ok || f.Operator != paginate.OpEq {
			continue
		}
		value := f.Value
		if status, ok := value.(domain.TaskStatus); ok {
			value = int16(status)
		}
		args = append(args, value)
		conditions = append(conditions, column+" = $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	order := make([]string, 0, len(plan.SortBy)+1)
	for _, s := range plan.SortBy {
		column, ok := store.TaskColumns[s.Column]
		if !ok {
			continue
		}
		direction := "ASC"
		if s.Direction == paginate.DESC {
			direction = "DESC"
		}
		order = append(order, column+" "+direction)
	}
	order = append(order, "id ASC")

	n := len(args)
	return taskPageQuery{
		count: `SELECT COUNT(*) FROM tasks` + where,
		page: `SELECT ` + taskColumns + ` FROM tasks` + where +
			` ORDER BY ` + strings.Join(order, ", ") +
			` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2),
		args:   args,
		limit:  plan.Limit,
		offset: plan.Offset(),
	}
}
