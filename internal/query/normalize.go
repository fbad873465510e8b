// Package query turns raw request parameters into the canonical ListQuery
// consumed by the service and repository layers.
package query

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// RawParams carries the request parameters exactly as they arrived on the
// wire; any of them may be absent or malformed.
type RawParams struct {
	Page    string
	RowSize string
	SortBy  string
	Search  string
}

var allowedRowSizes = []int{10, 20, 30, 40, 50}

const (
	defaultRowSize = 10
	defaultPage    = 1
)

// Normalize validates and defaults the raw parameters. Absent values default
// (rowSize 10, page 1); values of the wrong type are a ValidationError naming
// the field. A rowSize outside the allowed set and a page below 1 silently
// fall back to the defaults, matching the original contract. No upper clamp
// is applied to page: clamping against maxPage is the pagination engine's
// concern.
func Normalize(p RawParams) (domain.ListQuery, error) {
	q := domain.ListQuery{Page: defaultPage, RowSize: defaultRowSize}

	if p.RowSize != "" {
		n, err := strconv.Atoi(p.RowSize)
		if err != nil {
			return q, domain.NewValidationError("rowSize", "rowSize must be a number")
		}
		if allowedRowSize(n) {
			q.RowSize = n
		}
	}

	if p.Page != "" {
		n, err := strconv.Atoi(p.Page)
		if err != nil {
			return q, domain.NewValidationError("page", "page must be a number")
		}
		if n > 0 {
			q.Page = n
		}
	}

	sort, err := parseSortBy(p.SortBy)
	if err != nil {
		return q, err
	}
	q.Sort = sort
	q.Search = parseSearch(p.Search)

	return q, nil
}

func allowedRowSize(n int) bool {
	for _, s := range allowedRowSizes {
		if s == n {
			return true
		}
	}
	return false
}

// parseSortBy splits the "<field>.<dir>" / "customFields.<name>.<dir>" wire
// grammar. A missing direction defaults to desc; an unknown fixed column is
// rejected before it can reach the store.
func parseSortBy(raw string) (*domain.Sort, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ".")
	if parts[0] == "customFields" {
		if len(parts) < 2 || parts[1] == "" {
			return nil, domain.NewValidationError("sortBy", "custom field sort requires a field name")
		}
		dir := ""
		if len(parts) > 2 {
			dir = parts[2]
		}
		return &domain.Sort{Field: parts[1], IsCustomField: true, Direction: direction(dir)}, nil
	}

	if !domain.IsFixedColumn(parts[0]) {
		return nil, domain.NewValidationError("sortBy", "unknown sort column "+strconv.Quote(parts[0]))
	}
	dir := ""
	if len(parts) > 1 {
		dir = parts[1]
	}
	return &domain.Sort{Field: parts[0], Direction: direction(dir)}, nil
}

func direction(s string) domain.SortDirection {
	if s == "asc" {
		return domain.SortAsc
	}
	return domain.SortDesc
}

// parseSearch decodes the JSON {"searchAccessor", "value"} parameter. It
// fails open: a parse failure, a missing value key or an unsupported accessor
// yields no filter rather than failing the whole request. An empty (but
// present) value is kept — the empty substring matches everything.
func parseSearch(raw string) *domain.Search {
	if raw == "" {
		return nil
	}

	var s struct {
		Accessor *string `json:"searchAccessor"`
		Value    *string `json:"value"`
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil
	}
	if s.Accessor == nil || s.Value == nil {
		return nil
	}
	if !domain.IsFixedColumn(*s.Accessor) {
		return nil
	}
	return &domain.Search{Field: *s.Accessor, Value: *s.Value}
}
