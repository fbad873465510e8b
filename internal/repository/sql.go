package repository

import (
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// fixedOrderClause resolves a direct-column sort (or the default createdAt
// descending). The secondary id sort keeps pages stable when the key ties.
func fixedOrderClause(sort *domain.Sort) (string, error) {
	if sort == nil {
		return "created_at DESC, id DESC", nil
	}
	col, ok := sortColumns[sort.Field]
	if !ok {
		return "", domain.NewValidationError("sortBy", "unknown sort column "+sort.Field)
	}
	return fmt.Sprintf("%s %s, id ASC", col, sqlDirection(sort.Direction)), nil
}

// customOrderClause orders phase one of the custom-field sort. The first term
// puts tasks that have the field before tasks that do not, independent of the
// requested direction; the direction only orders the presence group. All
// canonical encodings except number order correctly as text, so only number
// needs a cast — guarded so a malformed stored value sorts as zero instead of
// failing the query.
func customOrderClause(fieldType domain.FieldType, dir domain.SortDirection) string {
	d := sqlDirection(dir)
	key := "COALESCE(f.value, '')"
	if fieldType == domain.FieldNumber {
		key = `COALESCE(substring(f.value from '^-?[0-9]+\.?[0-9]*')::numeric, 0)`
	}
	return fmt.Sprintf("(f.value IS NULL) ASC, %s %s, t.id ASC", key, d)
}

func sqlDirection(dir domain.SortDirection) string {
	if dir == domain.SortAsc {
		return "ASC"
	}
	return "DESC"
}

// appendSearchClause adds the case-insensitive substring predicate. The same
// helper serves the page, ID-page and count queries so the three can never
// disagree on the filter.
func appendSearchClause(sb *strings.Builder, args []interface{}, search *domain.Search, prefix string) []interface{} {
	if search == nil {
		return args
	}
	col, ok := sortColumns[search.Field]
	if !ok {
		return args
	}
	args = append(args, search.Value)
	fmt.Fprintf(sb, " WHERE %s%s::text ILIKE '%%' || $%d || '%%'", prefix, col, len(args))
	return args
}

func appendPageClause(sb *strings.Builder, args *[]interface{}, q domain.ListQuery) {
	if q.RowSize <= 0 {
		return
	}
	*args = append(*args, q.RowSize, q.Offset())
	fmt.Fprintf(sb, " LIMIT $%d OFFSET $%d", len(*args)-1, len(*args))
}
