package domain

import "context"

// TaskRepository is the store boundary. Implementations must apply the search
// predicate identically in List, ListIDsByCustomField and Count — maxPage is
// computed from Count and must agree with the page queries.
type TaskRepository interface {
	// List reads one page under a fixed-column (or default createdAt desc)
	// ordering, custom fields attached.
	List(ctx context.Context, q ListQuery) ([]Task, error)

	// Count returns the filtered total.
	Count(ctx context.Context, search *Search) (int, error)

	// FieldTypeFor resolves the declared type of a custom-field name from its
	// first occurrence. found is false when no occurrence exists.
	FieldTypeFor(ctx context.Context, name string) (t FieldType, found bool, err error)

	// ListIDsByCustomField is phase one of the custom-field sort: the ordered,
	// filtered, paginated task-ID slice under the presence-first tie-break.
	ListIDsByCustomField(ctx context.Context, q ListQuery, fieldType FieldType) ([]int, error)

	// GetByIDs is phase two: full rows for exactly those IDs, returned in the
	// given order, custom fields attached.
	GetByIDs(ctx context.Context, ids []int) ([]Task, error)

	// AllCustomFields reads the entire custom-field corpus for column
	// projection.
	AllCustomFields(ctx context.Context) ([]CustomField, error)

	// Create inserts the task and its custom fields as one unit and returns
	// the generated task ID.
	Create(ctx context.Context, t *NewTask) (int, error)
}
