package paginate

import (
	"math"
	"slices"
	"strings"
)

// Library defaults applied when a Config leaves them unset.
const (
	DefaultLimit    = 20
	DefaultMaxLimit = 100
)

// SortDirection is ASC or DESC.
type SortDirection string

// Sort directions
const (
	ASC  SortDirection = "ASC"
	DESC SortDirection = "DESC"
)

// SortOrder orders a page by one column.
type SortOrder struct {
	Column    string
	Direction SortDirection
}

// Operator is a filter comparison.
type Operator string

// Supported filter operators
const (
	OpEq Operator = "$eq"
)

// Filter restricts a page to rows whose Column compares to Value.
type Filter struct {
	Column   string
	Operator Operator
	Value    any
	Raw      string
}

// FilterColumn declares the operators a column accepts and how to convert
// a raw query value into a typed one. A value Parse rejects is ignored.
type FilterColumn struct {
	Operators []Operator
	Parse     func(raw string) (any, error)
}

// Config is the declarative pagination policy of one resource.
type Config struct {
	SortableColumns   []string
	DefaultSortBy     []SortOrder
	DefaultLimit      int
	MaxLimit          int
	FilterableColumns map[string]FilterColumn
}

// Plan is a Query constrained by a Config. Every column in it is sortable
// or filterable according to that Config.
type Plan struct {
	Page    int
	Limit   int
	SortBy  []SortOrder
	Filters []Filter
	Path    string
}

// Offset is the number of rows to skip for the plan's page. It saturates at
// math.MaxInt instead of overflowing.
func (p Plan) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func (p Plan) TotalPages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

// Apply constrains q by c.
func (c Config) Apply(q Query) Plan {
	plan := Plan{
		Page:  q.Page,
		Limit: c.limit(q.Limit),
		Path:  q.Path,
	}
	if plan.Page < 1 {
		plan.Page = 1
	}
	// The offset of the last page must fit in an int.
	if maxPage := math.MaxInt / plan.Limit; plan.Page > maxPage {
		plan.Page = maxPage
	}

	for _, pair := range q.SortBy {
		column := pair[0]
		direction := SortDirection(strings.ToUpper(pair[1]))
		if !slices.Contains(c.SortableColumns, column) {
			continue
		}
		if direction != ASC && direction != DESC {
			continue
		}
		plan.SortBy = append(plan.SortBy, SortOrder{Column: column, Direction: direction})
	}
	if len(plan.SortBy) == 0 {
		plan.SortBy = append(plan.SortBy, c.DefaultSortBy...)
	}

	columns := make([]string, 0, len(q.Filter))
	for column := range q.Filter {
		columns = append(columns, column)
	}
	slices.Sort(columns)
	for _, column := range columns {
		spec, ok := c.FilterableColumns[column]
		if !ok {
			continue
		}
		for _, raw := range q.Filter[column] {
			if f, ok := spec.parse(column, raw); ok {
				plan.Filters = append(plan.Filters, f)
			}
		}
	}

	return plan
}

func (c Config) limit(requested int) int {
	maxLimit := c.MaxLimit
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	limit := requested
	if limit <= 0 {
		limit = c.DefaultLimit
		if limit <= 0 {
			limit = DefaultLimit
		}
	}
	return min(limit, maxLimit)
}

func (fc FilterColumn) parse(column, raw string) (Filter, bool) {
	op, value := OpEq, raw
	if strings.HasPrefix(raw, "$") {
		token, rest, ok := strings.Cut(raw, ":")
		if !ok {
			return Filter{}, false
		}
		op, value = Operator(token), rest
	}
	if !slices.Contains(fc.Operators, op) {
		return Filter{}, false
	}

	var typed any = value
	if fc.Parse != nil {
		v, err := fc.Parse(value)
		if err != nil {
			return Filter{}, false
		}
		typed = v
	}

	return Filter{
		Column:   column,
		Operator: op,
		Value:    typed,
		Raw:      string(op) + ":" + value,
	}, true
}
