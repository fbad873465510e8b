package domain

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort is the canonical sort spec. When IsCustomField is set, Field is the
// custom-field name and the repository takes the two-phase path.
type Sort struct {
	Field         string
	IsCustomField bool
	Direction     SortDirection
}

// Search is a case-insensitive substring filter on one fixed task column. An
// empty Value matches every row; that pass-through is deliberate.
type Search struct {
	Field string
	Value string
}

// ListQuery is the canonical, validated form of a page request. A nil Sort
// means the default ordering (createdAt descending). RowSize 0 disables
// pagination (used by the export path).
type ListQuery struct {
	Page    int
	RowSize int
	Sort    *Sort
	Search  *Search
}

func (q ListQuery) Offset() int {
	return q.RowSize * (q.Page - 1)
}

// MaxPage computes the total page count for a filtered total. It is 0 for an
// empty corpus; a requested page beyond it yields an empty slice, not an
// error.
func MaxPage(total, rowSize int) int {
	if total <= 0 || rowSize <= 0 {
		return 0
	}
	return (total + rowSize - 1) / rowSize
}
