package dto

import (
	"fmt"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultSort  = "created_at,desc"
)

var sortableFields = map[string]bool{
	"created_at": true,
	"price":      true,
	"view_count": true,
	"id":         true,
}

type Filter struct {
	Limit int    `query:"size"`
	Page  int    `query:"page"`
	Sort  string `query:"sort"`
}

type PaginationMetadata struct {
	TotalCount uint64 `json:"total_count"`
	Page       uint64 `json:"page"`
	Limit      int    `json:"limit"`
}

type PaginationResponse struct {
	Metadata PaginationMetadata `json:"_metadata"`
	Records  interface{}        `json:"records"`
}

// Normalize applies the paging defaults and caps the page size.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Sort == "" {
		f.Sort = DefaultSort
	}
	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// OrderBy renders a whitelisted ORDER BY clause for the given table alias.
// Unknown fields and directions fall back to the default ordering.
func (f Filter) OrderBy(alias string) string {
	field, dir := "created_at", "DESC"

	parts := strings.SplitN(f.Sort, ",", 2)
	if sortableFields[strings.TrimSpace(parts[0])] {
		field = strings.TrimSpace(parts[0])
		dir = "ASC"
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
			dir = "DESC"
		}
	}

	if alias != "" {
		alias += "."
	}

	if field == "id" {
		return fmt.Sprintf("ORDER BY %sid %s", alias, dir)
	}
	return fmt.Sprintf("ORDER BY %s%s %s, %sid DESC", alias, field, dir, alias)
}

func NewPaginationResponse(filter Filter, totalCount int64, records interface{}) PaginationResponse {
	return PaginationResponse{
		Metadata: PaginationMetadata{
			TotalCount: uint64(totalCount),
			Page:       uint64(filter.Page),
			Limit:      filter.Limit,
		},
		Records: records,
	}
}
