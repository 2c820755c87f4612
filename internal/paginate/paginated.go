package paginate

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Paginated is the page envelope returned by list endpoints.
type Paginated[T any] struct {
	Data  []T   `json:"data"`
	Meta  Meta  `json:"meta"`
	Links Links `json:"links"`
}

// Meta describes the page and the constraints that produced it.
type Meta struct {
	ItemsPerPage int            `json:"itemsPerPage"`
	TotalItems   int64          `json:"totalItems"`
	CurrentPage  int            `json:"currentPage"`
	TotalPages   int            `json:"totalPages"`
	SortBy       []SortOrder    `json:"sortBy"`
	Filter       map[string]any `json:"filter,omitempty"`
}

// Links are relative URLs to neighbouring pages. Links that would point
// outside the result set are omitted.
type Links struct {
	First    string `json:"first,omitempty"`
	Previous string `json:"previous,omitempty"`
	Current  string `json:"current"`
	Next     string `json:"next,omitempty"`
	Last     string `json:"last,omitempty"`
}

// MarshalJSON renders a sort order as a [column, direction] pair.
func (s SortOrder) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{s.Column, string(s.Direction)})
}

// UnmarshalJSON reads a [column, direction] pair.
func (s *SortOrder) UnmarshalJSON(b []byte) error {
	var pair [2]string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	s.Column, s.Direction = pair[0], SortDirection(pair[1])
	return nil
}

// New wraps one page of rows with its metadata and links.
func New[T any](data []T, total int64, plan Plan) *Paginated[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := plan.TotalPages(total)

	page := &Paginated[T]{
		Data: data,
		Meta: Meta{
			ItemsPerPage: plan.Limit,
			TotalItems:   total,
			CurrentPage:  plan.Page,
			TotalPages:   totalPages,
			SortBy:       plan.SortBy,
			Filter:       filterMeta(plan.Filters),
		},
		Links: Links{
			Current: plan.link(plan.Page),
		},
	}

	if plan.Page > 1 {
		page.Links.First = plan.link(1)
		page.Links.Previous = plan.link(plan.Page - 1)
	}
	if plan.Page < totalPages {
		page.Links.Next = plan.link(plan.Page + 1)
		page.Links.Last = plan.link(totalPages)
	}

	return page
}

func filterMeta(filters []Filter) map[string]any {
	if len(filters) == 0 {
		return nil
	}
	grouped := map[string][]string{}
	for _, f := range filters {
		grouped[f.Column] = append(grouped[f.Column], f.Raw)
	}
	meta := make(map[string]any, len(grouped))
	for column, raws := range grouped {
		if len(raws) == 1 {
			meta[column] = raws[0]
			continue
		}
		meta[column] = raws
	}
	return meta
}

func (p Plan) link(page int) string {
	var b strings.Builder
	b.WriteString(p.Path)
	b.WriteString("?page=")
	b.WriteString(strconv.Itoa(page))
	b.WriteString("&limit=")
	b.WriteString(strconv.Itoa(p.Limit))
	for _, s := range p.SortBy {
		b.WriteString("&sortBy=")
		b.WriteString(s.Column)
		b.WriteString(":")
		b.WriteString(string(s.Direction))
	}
	for _, f := range p.Filters {
		b.WriteString("&")
		b.WriteString(FilterParamPrefix)
		b.WriteString(f.Column)
		b.WriteString("=")
		b.WriteString(f.Raw)
	}
	return b.String()
}
