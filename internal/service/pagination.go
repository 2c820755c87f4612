package service

import (
	"fmt"
	"strconv"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/paginate"
)

// TaskListMaxLimit caps the page size of the task list.
const TaskListMaxLimit = 15

// TaskPaginateConfig is the pagination policy of the task list: sortable
// and filterable by status, sorted by status ascending by default.
var TaskPaginateConfig = paginate.Config{
	SortableColumns: []string{"status"},
	DefaultSortBy: []paginate.SortOrder{
		{Column: "status", Direction: paginate.ASC},
	},
	MaxLimit: TaskListMaxLimit,
	FilterableColumns: map[string]paginate.FilterColumn{
		"status": {
			Operators: []paginate.Operator{paginate.OpEq},
			Parse:     parseTaskStatus,
		},
	},
}

func parseTaskStatus(raw string) (any, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTaskStatus, raw)
	}
	status := domain.TaskStatus(n)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidTaskStatus, n)
	}
	return status, nil
}
