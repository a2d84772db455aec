// Package pagination turns raw page, limit and sort query values into
// normalized numbers. Malformed input always degrades to a default.
package pagination

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	DefaultLimit  = 30
	DefaultPage   = 0
	SortSeparator = ":"

	Ascending  = "ASC"
	Descending = "DESC"
)

// Directions is the set of accepted sort directions.
var Directions = []string{Ascending, Descending}

// Sort is a validated field/direction pair.
type Sort struct {
	Field     string `json:"sortField"`
	Direction string `json:"sortDirection"`
}

// Params is what a list request resolves to.
type Params struct {
	Limit int
	Page  int
	Sort  *Sort
}

// Offset returns the row offset for zero-based pages.
func (p Params) Offset() int {
	return Offset(p.Limit, p.Page)
}

// ResolveLimit parses raw as the page size. Empty, non-numeric and
// non-positive values yield DefaultLimit.
func ResolveLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// ResolvePage parses raw as a zero-based page number. Empty, non-numeric
// and negative values yield DefaultPage.
func ResolvePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 0 {
		return DefaultPage
	}
	return page
}

// ResolveSort splits raw into field and direction. The second return value
// is false whenever raw does not have exactly two parts, the field is empty,
// or the direction (compared case-insensitively) is not in allowed.
func ResolveSort(raw, separator string, allowed []string) (Sort, bool) {
	if raw == "" || separator == "" {
		return Sort{}, false
	}

	parts := strings.Split(raw, separator)
	if len(parts) != 2 {
		return Sort{}, false
	}

	field := strings.TrimSpace(parts[0])
	direction := strings.ToUpper(strings.TrimSpace(parts[1]))
	if field == "" || !slices.Contains(allowed, direction) {
		return Sort{}, false
	}

	return Sort{Field: field, Direction: direction}, true
}

// Offset is limit * page.
func Offset(limit, page int) int {
	return limit * page
}

// FromQuery reads page, limit and sort from a request's query string.
func FromQuery(q url.Values) Params {
	params := Params{
		Limit: ResolveLimit(q.Get("limit")),
		Page:  ResolvePage(q.Get("page")),
	}

	if sort, ok := ResolveSort(q.Get("sort"), SortSeparator, Directions); ok {
		params.Sort = &sort
	}

	return params
}
