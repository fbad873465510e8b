package domain

import (
	"encoding/json"
	"fmt"
)

// CreateTaskInput is the raw create-task request body.
type CreateTaskInput struct {
	Title        string             `json:"title"`
	Priority     string             `json:"priority"`
	Status       string             `json:"status"`
	CustomFields []CustomFieldInput `json:"customFields"`
}

type CustomFieldInput struct {
	Name  string          `json:"name"`
	Type  FieldType       `json:"type"`
	Value json.RawMessage `json:"value"`
}

// NewTask is a validated create request ready for the repository.
type NewTask struct {
	Title    string
	Priority Priority
	Status   Status
	Fields   []NewCustomField
}

type NewCustomField struct {
	Name  string
	Type  FieldType
	Value FieldValue
}

// Validate applies the schema rules (defaults included) and coerces every
// custom-field value to its declared type. The first violation is returned as
// a ValidationError; nothing is written on failure.
func (in *CreateTaskInput) Validate() (*NewTask, error) {
	if len(in.Title) < 2 {
		return nil, NewValidationError("title", "Title must be at least 2 character long")
	}

	priority := Priority(in.Priority)
	if in.Priority == "" {
		priority = PriorityNone
	} else if !priority.Valid() {
		return nil, NewValidationError("priority",
			"Priority must be one of the following: low, medium, high, urgent, none")
	}

	status := Status(in.Status)
	if in.Status == "" {
		status = StatusNotStarted
	} else if !status.Valid() {
		return nil, NewValidationError("status",
			"Status must be one of the following: not_started, in_progress, completed")
	}

	task := &NewTask{Title: in.Title, Priority: priority, Status: status}

	for i, f := range in.CustomFields {
		if f.Name == "" {
			return nil, NewValidationError(fieldPath(i, "name"), "Field name is required")
		}
		if !f.Type.Valid() {
			return nil, NewValidationError(fieldPath(i, "type"),
				"Type must be one of the following: text, number, checkbox, dateTime")
		}
		value, err := CoerceFieldValue(f.Type, f.Value)
		if err != nil {
			return nil, NewValidationError(fieldPath(i, "value"), err.Error())
		}
		task.Fields = append(task.Fields, NewCustomField{Name: f.Name, Type: f.Type, Value: value})
	}

	return task, nil
}

func fieldPath(i int, leaf string) string {
	return fmt.Sprintf("customFields.%d.%s", i, leaf)
}
