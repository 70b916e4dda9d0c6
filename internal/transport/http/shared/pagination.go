package shared

import (
	"net/http"
	"strconv"
)

// Pagination is the validated limit/offset window for list endpoints.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads the limit and offset query params. Missing or
// malformed values fall back to the defaults, and limit is clamped to
// maxLimit so a client cannot request an unbounded page.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	page := Pagination{Limit: defaultLimit}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		page.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		page.Offset = v
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}
