package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldCheckbox FieldType = "checkbox"
	FieldDateTime FieldType = "dateTime"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldCheckbox, FieldDateTime:
		return true
	}
	return false
}

// DisplayPlaceholder is rendered for absent or undecodable field values.
const DisplayPlaceholder = "-"

// FieldValue is the typed carrier for a custom-field value. Exactly the
// variant selected by Type is meaningful.
type FieldValue struct {
	Type     FieldType
	Text     string
	Number   float64
	Checkbox bool
	DateTime time.Time
}

// CoerceFieldValue converts a raw JSON value into the typed variant declared
// by t. An input that cannot be interpreted under t is an error, never a
// silent default.
func CoerceFieldValue(t FieldType, raw json.RawMessage) (FieldValue, error) {
	var v interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &v); err != nil {
			return FieldValue{}, fmt.Errorf("invalid JSON value: %w", err)
		}
	}

	switch t {
	case FieldText:
		switch x := v.(type) {
		case string:
			return FieldValue{Type: t, Text: x}, nil
		case float64:
			return FieldValue{Type: t, Text: formatNumber(x)}, nil
		case bool:
			return FieldValue{Type: t, Text: strconv.FormatBool(x)}, nil
		}
		return FieldValue{}, fmt.Errorf("value is not text")

	case FieldNumber:
		switch x := v.(type) {
		case float64:
			return FieldValue{Type: t, Number: x}, nil
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return FieldValue{}, fmt.Errorf("value %q is not a number", x)
			}
			return FieldValue{Type: t, Number: n}, nil
		}
		return FieldValue{}, fmt.Errorf("value is not a number")

	case FieldCheckbox:
		switch x := v.(type) {
		case bool:
			return FieldValue{Type: t, Checkbox: x}, nil
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return FieldValue{}, fmt.Errorf("value %q is not a boolean", x)
			}
			return FieldValue{Type: t, Checkbox: b}, nil
		}
		return FieldValue{}, fmt.Errorf("value is not a boolean")

	case FieldDateTime:
		switch x := v.(type) {
		case string:
			ts, err := parseTimestamp(x)
			if err != nil {
				return FieldValue{}, err
			}
			return FieldValue{Type: t, DateTime: ts}, nil
		case float64:
			// epoch milliseconds, as produced by JS Date serialization
			return FieldValue{Type: t, DateTime: time.UnixMilli(int64(x)).UTC()}, nil
		}
		return FieldValue{}, fmt.Errorf("value is not a timestamp")
	}

	return FieldValue{}, fmt.Errorf("unknown field type %q", t)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("value %q is not a timestamp", s)
}

// Canonical returns the stored text form. The encodings are chosen so that,
// with the sole exception of number, lexical order of canonical strings equals
// the semantic order of the values ("true" > "false", RFC3339 UTC timestamps
// sort chronologically). The store's custom-field sort relies on this.
func (v FieldValue) Canonical() string {
	switch v.Type {
	case FieldText:
		return v.Text
	case FieldNumber:
		return formatNumber(v.Number)
	case FieldCheckbox:
		return strconv.FormatBool(v.Checkbox)
	case FieldDateTime:
		return v.DateTime.UTC().Format(time.RFC3339)
	}
	return ""
}

// DecodeFieldValue reverses Canonical. A stored representation that does not
// decode under its declared type is reported as an error so callers can
// degrade to a placeholder.
func DecodeFieldValue(t FieldType, stored string) (FieldValue, error) {
	switch t {
	case FieldText:
		return FieldValue{Type: t, Text: stored}, nil
	case FieldNumber:
		n, err := strconv.ParseFloat(stored, 64)
		if err != nil {
			return FieldValue{}, fmt.Errorf("stored value %q is not a number", stored)
		}
		return FieldValue{Type: t, Number: n}, nil
	case FieldCheckbox:
		b, err := strconv.ParseBool(stored)
		if err != nil {
			return FieldValue{}, fmt.Errorf("stored value %q is not a boolean", stored)
		}
		return FieldValue{Type: t, Checkbox: b}, nil
	case FieldDateTime:
		ts, err := parseTimestamp(stored)
		if err != nil {
			return FieldValue{}, err
		}
		return FieldValue{Type: t, DateTime: ts}, nil
	}
	return FieldValue{}, fmt.Errorf("unknown field type %q", t)
}

// Display renders the value for table cells and exports. A checked checkbox
// renders "Check" and an unchecked one "No"; unchecked is distinct from
// absent, which callers render as DisplayPlaceholder.
func (v FieldValue) Display() string {
	switch v.Type {
	case FieldText:
		return v.Text
	case FieldNumber:
		return formatNumber(v.Number)
	case FieldCheckbox:
		if v.Checkbox {
			return "Check"
		}
		return "No"
	case FieldDateTime:
		return v.DateTime.Format("Jan 2, 2006")
	}
	return DisplayPlaceholder
}

// JSON returns the typed wire representation.
func (v FieldValue) JSON() interface{} {
	switch v.Type {
	case FieldText:
		return v.Text
	case FieldNumber:
		return v.Number
	case FieldCheckbox:
		return v.Checkbox
	case FieldDateTime:
		return v.DateTime.UTC().Format(time.RFC3339)
	}
	return nil
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
