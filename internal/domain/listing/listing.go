// Package listing provides the shared filter/sort/paginate/aggregate query
// plan used by every list endpoint. Its core correctness property: the paged
// row set and the financial summary are always computed over the identical
// filter predicate, never over an unfiltered superset.
package listing

import (
	"storeroom/internal/core/apperror"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/filter"
)

// Pagination selects one page of a filtered set.
// CurrentPage is a zero-based page index.
type Pagination struct {
	PageSize    int `json:"pageSize" binding:"required,gt=0"`
	CurrentPage int `json:"currentPage" binding:"gte=0"`
}

// Offset returns the row offset of the page.
func (p Pagination) Offset() int {
	return p.PageSize * p.CurrentPage
}

// Sort is a single sort key. Desc defaults to ascending.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// Query is the closed query plan accepted from the API layer.
type Query struct {
	// Filters are ANDed predicate items, validated per entity.
	Filters []filter.Item

	// Search is ORed as a case-insensitive substring match across the
	// entity's searchable fields (invoice number, phone, ...).
	Search string

	// Sort keys; empty means the entity default (created_at descending).
	Sort []Sort

	// Page, when nil, returns all matching rows with the Select projection.
	Page *Pagination

	// Select is a client-requested field projection (column allow-listed).
	Select []string
}

// Result carries one page of rows plus the figures computed over the same
// filtered set.
type Result[T any] struct {
	Rows       []T                    `json:"data"`
	TotalCount int64                  `json:"count"`
	Summary    map[string]types.Money `json:"calculation,omitempty"`
}

// Spec is an entity's allow-list: which columns may be filtered, sorted and
// projected, which fields free-text search covers, and which aggregate
// figures the summary pipeline computes.
type Spec struct {
	Table        string
	Columns      []string
	SearchFields []string
	DefaultSort  Sort

	// SummaryExprs maps a figure name to a SQL aggregate expression over the
	// entity's columns. Expressions are server-side constants, never client
	// input.
	SummaryExprs map[string]string
}

// HasColumn reports whether col is allow-listed.
func (s Spec) HasColumn(col string) bool {
	for _, c := range s.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// ValidateQuery checks a query plan against the spec's allow-lists.
func (s Spec) ValidateQuery(q Query) error {
	for _, item := range q.Filters {
		if !s.HasColumn(item.Field) {
			return apperror.NewValidation("invalid filter column").
				WithDetail("field", item.Field).WithDetail("entity", s.Table)
		}
	}
	for _, sort := range q.Sort {
		if !s.HasColumn(sort.Field) {
			return apperror.NewValidation("invalid sort column").
				WithDetail("field", sort.Field).WithDetail("entity", s.Table)
		}
	}
	for _, col := range q.Select {
		if !s.HasColumn(col) {
			return apperror.NewValidation("invalid select column").
				WithDetail("field", col).WithDetail("entity", s.Table)
		}
	}
	return nil
}
