package service

import (
	"sort"
	"strings"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// ProjectColumns derives the display columns from the whole custom-field
// corpus: one column per distinct (lowercased name, type) pair, each carrying
// the case-insensitively deduplicated display values seen for it. The result
// is sorted by name then type, so the set is identical regardless of task
// insertion order.
func ProjectColumns(fields []domain.CustomField) []domain.CustomFieldColumn {
	type key struct {
		name string
		typ  domain.FieldType
	}

	byKey := make(map[key]*domain.CustomFieldColumn)
	seen := make(map[key]map[string]bool)

	for _, f := range fields {
		k := key{name: strings.ToLower(f.Name), typ: f.Type}
		col, ok := byKey[k]
		if !ok {
			col = &domain.CustomFieldColumn{
				Name:     k.name,
				Type:     f.Type,
				Values:   []string{},
				Accessor: "customFields." + k.name,
			}
			byKey[k] = col
			seen[k] = make(map[string]bool)
		}

		display := renderValue(f)
		lowered := strings.ToLower(display)
		if !seen[k][lowered] {
			seen[k][lowered] = true
			col.Values = append(col.Values, display)
		}
	}

	cols := make([]domain.CustomFieldColumn, 0, len(byKey))
	for _, col := range byKey {
		sort.Strings(col.Values)
		cols = append(cols, *col)
	}
	sort.Slice(cols, func(i, j int) bool {
		if cols[i].Name != cols[j].Name {
			return cols[i].Name < cols[j].Name
		}
		return cols[i].Type < cols[j].Type
	})
	return cols
}

// ColumnValue resolves the cell for one task under one projected column: the
// first field matching the column's (name, type) pair, rendered per type. An
// absent field renders the placeholder; so does a stored value that does not
// decode under its declared type — a mismatched row degrades, it never fails
// the projection.
func ColumnValue(col domain.CustomFieldColumn, task domain.Task) string {
	for _, f := range task.CustomFields {
		if strings.ToLower(f.Name) == col.Name && f.Type == col.Type {
			return renderValue(f)
		}
	}
	return domain.DisplayPlaceholder
}

func renderValue(f domain.CustomField) string {
	v, err := domain.DecodeFieldValue(f.Type, f.Value)
	if err != nil {
		return domain.DisplayPlaceholder
	}
	return v.Display()
}
