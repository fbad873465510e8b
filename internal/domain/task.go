package domain

import (
	"encoding/json"
	"time"
)

type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Priority     Priority      `json:"priority"`
	Status       Status        `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    *time.Time    `json:"updatedAt"`
	CustomFields []CustomField `json:"customFields"`
}

// CustomField is a user-defined attribute attached to one task. Value holds
// the canonical text encoding for its Type (see FieldValue); on the wire it is
// rendered back as the typed JSON value.
type CustomField struct {
	ID     int       `json:"id"`
	TaskID int       `json:"taskId"`
	Name   string    `json:"name"`
	Type   FieldType `json:"type"`
	Value  string    `json:"value"`
}

func (f CustomField) MarshalJSON() ([]byte, error) {
	type alias CustomField
	out := struct {
		alias
		Value interface{} `json:"value"`
	}{alias: alias(f)}

	if v, err := DecodeFieldValue(f.Type, f.Value); err == nil {
		out.Value = v.JSON()
	} else {
		out.Value = f.Value
	}
	return json.Marshal(out)
}

// FixedColumns are the task columns addressable by sort and search accessors.
var FixedColumns = []string{"id", "title", "priority", "status", "createdAt", "updatedAt"}

func IsFixedColumn(name string) bool {
	for _, c := range FixedColumns {
		if c == name {
			return true
		}
	}
	return false
}

// CustomFieldColumn is the derived, request-scoped display column: one per
// distinct (lowercased name, type) pair across the whole custom-field corpus.
type CustomFieldColumn struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Values   []string  `json:"values"`
	Accessor string    `json:"accessor"`
}
