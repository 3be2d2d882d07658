package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ListOptions are the common query-string knobs shared by every
// paginated list endpoint: ?sortBy=&sortOrder=&search=&page=&pageSize=
type ListOptions struct {
	SortBy    string
	SortOrder string // "asc" or "desc"
	Search    string
	Page      int
	PageSize  int
}

// Offset converts page/pageSize into the SQL OFFSET value.
func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}

// parseListOptions reads the pagination query params, falling back to
// the given defaults when a param is missing or unparseable (matching
// the lenient parseInt(...) || default behavior clients rely on).
func parseListOptions(c *gin.Context, defaultSortBy string, defaultPageSize int) ListOptions {
	opts := ListOptions{
		SortBy:    c.DefaultQuery("sortBy", defaultSortBy),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Search:    c.Query("search"),
		Page:      1,
		PageSize:  defaultPageSize,
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if size, err := strconv.Atoi(c.Query("pageSize")); err == nil && size > 0 {
		opts.PageSize = size
	}

	return opts
}

// orderByClause builds a safe ORDER BY fragment. The sort column is
// checked against the handler's allowlist because it ends up inside
// the SQL text; anything unknown falls back to the first allowed
// column. The direction is normalized to ASC/DESC.
func orderByClause(opts ListOptions, allowed map[string]string, fallback string) string {
	column, ok := allowed[opts.SortBy]
	if !ok {
		column = allowed[fallback]
	}

	direction := "DESC"
	if strings.EqualFold(opts.SortOrder, "asc") {
		direction = "ASC"
	}

	return " ORDER BY " + column + " " + direction
}
