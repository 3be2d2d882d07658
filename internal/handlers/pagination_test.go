package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func optionsForQuery(t *testing.T, rawQuery string) ListOptions {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)

	return parseListOptions(c, "createdAt", 5)
}

func TestParseListOptionsDefaults(t *testing.T) {
	opts := optionsForQuery(t, "")

	if opts.SortBy != "createdAt" {
		t.Errorf("SortBy = %q, want createdAt", opts.SortBy)
	}
	if opts.SortOrder != "desc" {
		t.Errorf("SortOrder = %q, want desc", opts.SortOrder)
	}
	if opts.Page != 1 || opts.PageSize != 5 {
		t.Errorf("Page/PageSize = %d/%d, want 1/5", opts.Page, opts.PageSize)
	}
	if opts.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", opts.Offset())
	}
}

func TestParseListOptionsPageTwo(t *testing.T) {
	opts := optionsForQuery(t, "page=2&pageSize=5&search=PENDING")

	if opts.Page != 2 || opts.PageSize != 5 {
		t.Errorf("Page/PageSize = %d/%d, want 2/5", opts.Page, opts.PageSize)
	}
	// Page 2 with pageSize 5 must skip items 1-5.
	if opts.Offset() != 5 {
		t.Errorf("Offset = %d, want 5", opts.Offset())
	}
	if opts.Search != "PENDING" {
		t.Errorf("Search = %q, want PENDING", opts.Search)
	}
}

func TestParseListOptionsIgnoresGarbage(t *testing.T) {
	opts := optionsForQuery(t, "page=abc&pageSize=-3")

	if opts.Page != 1 || opts.PageSize != 5 {
		t.Errorf("Page/PageSize = %d/%d, want defaults 1/5 for unparseable input", opts.Page, opts.PageSize)
	}
}

func TestOrderByClause(t *testing.T) {
	allowed := map[string]string{
		"createdAt": "created_at",
		"name":      "name",
	}

	got := orderByClause(ListOptions{SortBy: "name", SortOrder: "asc"}, allowed, "createdAt")
	if got != " ORDER BY name ASC" {
		t.Errorf("clause = %q", got)
	}

	// Unknown sort columns fall back instead of reaching the SQL text.
	got = orderByClause(ListOptions{SortBy: "password; DROP TABLE users", SortOrder: "desc"}, allowed, "createdAt")
	if got != " ORDER BY created_at DESC" {
		t.Errorf("clause = %q", got)
	}

	// Anything that isn't "asc" is normalized to DESC.
	got = orderByClause(ListOptions{SortBy: "createdAt", SortOrder: "sideways"}, allowed, "createdAt")
	if got != " ORDER BY created_at DESC" {
		t.Errorf("clause = %q", got)
	}
}
