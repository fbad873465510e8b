package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service"
)

func TestProjectColumnsDistinctPairs(t *testing.T) {
	fields := []domain.CustomField{
		{ID: 1, TaskID: 1, Name: "Points", Type: domain.FieldNumber, Value: "5"},
		{ID: 2, TaskID: 2, Name: "points", Type: domain.FieldNumber, Value: "10"},
		{ID: 3, TaskID: 3, Name: "points", Type: domain.FieldText, Value: "ten"},
		{ID: 4, TaskID: 1, Name: "due", Type: domain.FieldDateTime, Value: "2024-06-01T00:00:00Z"},
	}

	cols := service.ProjectColumns(fields)
	require.Len(t, cols, 3)

	// sorted by name, then type: due < points(number) < points(text)
	assert.Equal(t, "due", cols[0].Name)
	assert.Equal(t, "points", cols[1].Name)
	assert.Equal(t, domain.FieldNumber, cols[1].Type)
	assert.Equal(t, "points", cols[2].Name)
	assert.Equal(t, domain.FieldText, cols[2].Type)

	assert.Equal(t, "customFields.points", cols[1].Accessor)
	assert.ElementsMatch(t, []string{"5", "10"}, cols[1].Values)
}

func TestProjectColumnsOrderIndependent(t *testing.T) {
	fields := []domain.CustomField{
		{ID: 1, TaskID: 1, Name: "alpha", Type: domain.FieldText, Value: "a"},
		{ID: 2, TaskID: 2, Name: "beta", Type: domain.FieldCheckbox, Value: "true"},
		{ID: 3, TaskID: 3, Name: "Alpha", Type: domain.FieldText, Value: "A"},
	}
	reversed := []domain.CustomField{fields[2], fields[1], fields[0]}

	a := service.ProjectColumns(fields)
	b := service.ProjectColumns(reversed)

	// the (name, type) set is identical regardless of insertion order
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Type, b[i].Type)
		assert.Len(t, b[i].Values, len(a[i].Values))
	}

	// re-running against the same corpus is idempotent
	assert.Equal(t, a, service.ProjectColumns(fields))
}

func TestProjectColumnsDeduplicatesValuesCaseInsensitively(t *testing.T) {
	fields := []domain.CustomField{
		{ID: 1, TaskID: 1, Name: "team", Type: domain.FieldText, Value: "Platform"},
		{ID: 2, TaskID: 2, Name: "team", Type: domain.FieldText, Value: "platform"},
		{ID: 3, TaskID: 3, Name: "team", Type: domain.FieldText, Value: "Search"},
	}

	cols := service.ProjectColumns(fields)
	require.Len(t, cols, 1)
	assert.Len(t, cols[0].Values, 2)
}

func TestColumnValue(t *testing.T) {
	pointsCol := domain.CustomFieldColumn{Name: "points", Type: domain.FieldNumber}
	doneCol := domain.CustomFieldColumn{Name: "done", Type: domain.FieldCheckbox}
	dueCol := domain.CustomFieldColumn{Name: "due", Type: domain.FieldDateTime}

	task := domain.Task{
		ID: 1,
		CustomFields: []domain.CustomField{
			{ID: 1, Name: "Points", Type: domain.FieldNumber, Value: "5"},
			{ID: 2, Name: "done", Type: domain.FieldCheckbox, Value: "false"},
			{ID: 3, Name: "due", Type: domain.FieldDateTime, Value: "2024-06-01T00:00:00Z"},
		},
	}

	assert.Equal(t, "5", service.ColumnValue(pointsCol, task))
	// false is present-but-unchecked, not absent
	assert.Equal(t, "No", service.ColumnValue(doneCol, task))
	assert.Equal(t, "Jun 1, 2024", service.ColumnValue(dueCol, task))
}

func TestColumnValueAbsentAndMismatched(t *testing.T) {
	col := domain.CustomFieldColumn{Name: "points", Type: domain.FieldNumber}

	t.Run("absent field renders the placeholder", func(t *testing.T) {
		task := domain.Task{ID: 1}
		assert.Equal(t, "-", service.ColumnValue(col, task))
	})

	t.Run("type mismatch does not match the column", func(t *testing.T) {
		task := domain.Task{ID: 1, CustomFields: []domain.CustomField{
			{Name: "points", Type: domain.FieldText, Value: "ten"},
		}}
		assert.Equal(t, "-", service.ColumnValue(col, task))
	})

	t.Run("undecodable stored value degrades to the placeholder", func(t *testing.T) {
		task := domain.Task{ID: 1, CustomFields: []domain.CustomField{
			{Name: "points", Type: domain.FieldNumber, Value: "corrupted"},
		}}
		assert.Equal(t, "-", service.ColumnValue(col, task))
	})

	t.Run("duplicate (name, type) pairs resolve to the first by id", func(t *testing.T) {
		task := domain.Task{ID: 1, CustomFields: []domain.CustomField{
			{ID: 7, Name: "points", Type: domain.FieldNumber, Value: "5"},
			{ID: 9, Name: "points", Type: domain.FieldNumber, Value: "10"},
		}}
		assert.Equal(t, "5", service.ColumnValue(col, task))
	})
}
