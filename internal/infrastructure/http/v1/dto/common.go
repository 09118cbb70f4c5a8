// Package dto defines request and response shapes for API v1.
package dto

import (
	"storeroom/internal/domain/filter"
	"storeroom/internal/domain/listing"
)

// IDResponse is the standard creation response.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is the standard acknowledgement response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListRequest is the shared listing query binding. Month and year translate
// to equality filters, matching how the reports slice periods.
type ListRequest struct {
	PageSize    int    `form:"pageSize,default=20" binding:"omitempty,gt=0,lte=500"`
	CurrentPage int    `form:"currentPage" binding:"omitempty,gte=0"`
	Search      string `form:"search"`
	SortField   string `form:"sortField"`
	SortDesc    bool   `form:"sortDesc"`
	Month       int    `form:"month" binding:"omitempty,gte=1,lte=12"`
	Year        int    `form:"year" binding:"omitempty,gte=2000"`
	All         bool   `form:"all"`
}

// ToQuery converts the binding into the domain query plan.
func (r ListRequest) ToQuery() listing.Query {
	q := listing.Query{Search: r.Search}

	if r.Month > 0 {
		q.Filters = append(q.Filters, filter.Eq("month", r.Month))
	}
	if r.Year > 0 {
		q.Filters = append(q.Filters, filter.Eq("year", r.Year))
	}
	if r.SortField != "" {
		q.Sort = []listing.Sort{{Field: r.SortField, Desc: r.SortDesc}}
	}
	if !r.All {
		q.Page = &listing.Pagination{PageSize: r.PageSize, CurrentPage: r.CurrentPage}
	}
	return q
}
