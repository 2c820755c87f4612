package paginate

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query parameter names.
const (
	ParamPage         = "page"
	ParamLimit        = "limit"
	ParamSortBy       = "sortBy"
	FilterParamPrefix = "filter."
)

// Query is an unvalidated list request as received from a client.
// Page and Limit are zero when absent or not numeric.
type Query struct {
	Page   int
	Limit  int
	SortBy [][2]string
	Filter map[string][]string
	Path   string
}

// ParseQuery extracts a Query from URL values. Path is the route path used
// to build relative links.
func ParseQuery(path string, values url.Values) Query {
	q := Query{
		Page:   atoiOrZero(values.Get(ParamPage)),
		Limit:  atoiOrZero(values.Get(ParamLimit)),
		Filter: map[string][]string{},
		Path:   path,
	}

	for _, raw := range values[ParamSortBy] {
		column, direction, ok := strings.Cut(raw, ":")
		if !ok {
			direction = string(ASC)
		}
		q.SortBy = append(q.SortBy, [2]string{column, direction})
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		column, ok := strings.CutPrefix(key, FilterParamPrefix)
		if !ok || column == "" {
			continue
		}
		q.Filter[column] = append(q.Filter[column], values[key]...)
	}

	return q
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
