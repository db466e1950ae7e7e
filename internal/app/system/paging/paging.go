// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists.
// Keep this as an int because most call sites multiply and then
// cast to int64 for Mongo Find().SetLimit().
const PageSize = 50

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limit returns PageSize as int64 for Find().SetLimit().
func Limit() int64 { return int64(PageSize) }

// Offset returns the number of rows to skip to reach page.
func Offset(page int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * PageSize)
}

// TotalPages returns how many pages total rows fill. An empty list still
// has one page.
func TotalPages(total int64) int {
	n := int((total + PageSize - 1) / PageSize)
	if n < 1 {
		return 1
	}
	return n
}
