package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-api/internal/domain"
)

func TestCreateTaskInputValidate(t *testing.T) {
	t.Run("defaults are filled", func(t *testing.T) {
		in := domain.CreateTaskInput{Title: "Write report"}
		task, err := in.Validate()
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityNone, task.Priority)
		assert.Equal(t, domain.StatusNotStarted, task.Status)
		assert.Empty(t, task.Fields)
	})

	t.Run("short title is rejected", func(t *testing.T) {
		in := domain.CreateTaskInput{Title: "x"}
		_, err := in.Validate()
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "title", vErr.Field)
	})

	t.Run("invalid priority is rejected", func(t *testing.T) {
		in := domain.CreateTaskInput{Title: "Write report", Priority: "critical"}
		_, err := in.Validate()
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "priority", vErr.Field)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		in := domain.CreateTaskInput{Title: "Write report", Status: "done"}
		_, err := in.Validate()
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "status", vErr.Field)
	})

	t.Run("custom field values are coerced to their declared type", func(t *testing.T) {
		in := domain.CreateTaskInput{
			Title: "Write report",
			CustomFields: []domain.CustomFieldInput{
				{Name: "points", Type: domain.FieldNumber, Value: json.RawMessage(`"5"`)},
				{Name: "done", Type: domain.FieldCheckbox, Value: json.RawMessage(`false`)},
			},
		}
		task, err := in.Validate()
		require.NoError(t, err)
		require.Len(t, task.Fields, 2)
		assert.Equal(t, float64(5), task.Fields[0].Value.Number)
		assert.Equal(t, "5", task.Fields[0].Value.Canonical())
		assert.Equal(t, "false", task.Fields[1].Value.Canonical())
	})

	t.Run("uncoercible value names the field path", func(t *testing.T) {
		in := domain.CreateTaskInput{
			Title: "Write report",
			CustomFields: []domain.CustomFieldInput{
				{Name: "points", Type: domain.FieldNumber, Value: json.RawMessage(`"many"`)},
			},
		}
		_, err := in.Validate()
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "customFields.0.value", vErr.Field)
	})

	t.Run("empty field name is rejected", func(t *testing.T) {
		in := domain.CreateTaskInput{
			Title: "Write report",
			CustomFields: []domain.CustomFieldInput{
				{Name: "", Type: domain.FieldText, Value: json.RawMessage(`"v"`)},
			},
		}
		_, err := in.Validate()
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "customFields.0.name", vErr.Field)
	})

	t.Run("unknown field type is rejected", func(t *testing.T) {
		in := domain.CreateTaskInput{
			Title: "Write report",
			CustomFields: []domain.CustomFieldInput{
				{Name: "tags", Type: "list", Value: json.RawMessage(`"v"`)},
			},
		}
		_, err := in.Validate()
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "customFields.0.type", vErr.Field)
	})
}
