package postgres

import (
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/paginate"
	"github.com/stretchr/testify/assert"
)

func TestBuildTaskPageQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		plan      paginate.Plan
		wantCount string
		wantPage  string
		wantArgs  []any
	}{
		{
			name: "default sort without filters",
			plan: paginate.Plan{
				Page:   1,
				Limit:  15,
				SortBy: []paginate.SortOrder{{Column: "status", Direction: paginate.ASC}},
			},
			wantCount: `SELECT COUNT(*) FROM tasks`,
			wantPage: `SELECT ` + taskColumns + ` FROM tasks ORDER BY status ASC, id ASC` +
				` LIMIT $1 OFFSET $2`,
			wantArgs: []any{15, 0},
		},
		{
			name: "status filter and descending sort on page 3",
			plan: paginate.Plan{
				Page:    3,
				Limit:   5,
				SortBy:  []paginate.SortOrder{{Column: "status", Direction: paginate.DESC}},
				Filters: []paginate.Filter{{Column: "status", Operator: paginate.OpEq, Value: 1}},
			},
			wantCount: `SELECT COUNT(*) FROM tasks WHERE status = $1`,
			wantPage: `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1` +
				` ORDER BY status DESC, id ASC LIMIT $2 OFFSET $3`,
			wantArgs: []any{1, 5, 10},
		},
		{
			name: "task status filter binds as smallint",
			plan: paginate.Plan{
				Page:    1,
				Limit:   15,
				Filters: []paginate.Filter{{Column: "status", Operator: paginate.OpEq, Value: domain.TaskStatusInProgress}},
			},
			wantCount: `SELECT COUNT(*) FROM tasks WHERE status = $1`,
			wantPage: `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1` +
				` ORDER BY id ASC LIMIT $2 OFFSET $3`,
			wantArgs: []any{int16(1), 15, 0},
		},
		{
			name: "columns outside the whitelist never reach SQL",
			plan: paginate.Plan{
				Page:    1,
				Limit:   10,
				SortBy:  []paginate.SortOrder{{Column: "title; DROP TABLE tasks", Direction: paginate.ASC}},
				Filters: []paginate.Filter{{Column: "title", Operator: paginate.OpEq, Value: "x"}},
			},
			wantCount: `SELECT COUNT(*) FROM tasks`,
			wantPage: `SELECT ` + taskColumns + ` FROM tasks ORDER BY id ASC` +
				` LIMIT $1 OFFSET $2`,
			wantArgs: []any{10, 0},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q := buildTaskPageQuery(tc.plan)
			assert.Equal(t, tc.wantCount, q.count)
			assert.Equal(t, tc.wantPage, q.page)
			assert.Equal(t, tc.wantArgs, q.pageArgs())
		})
	}
}
