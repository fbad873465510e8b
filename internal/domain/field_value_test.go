package domain_test

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-api/internal/domain"
)

func TestCoerceFieldValue(t *testing.T) {
	t.Run("number accepts a numeric string", func(t *testing.T) {
		v, err := domain.CoerceFieldValue(domain.FieldNumber, json.RawMessage(`"5"`))
		require.NoError(t, err)
		assert.Equal(t, float64(5), v.Number)
		assert.Equal(t, "5", v.Display())
	})

	t.Run("number rejects a non-numeric string", func(t *testing.T) {
		_, err := domain.CoerceFieldValue(domain.FieldNumber, json.RawMessage(`"lots"`))
		assert.Error(t, err)
	})

	t.Run("checkbox accepts bool and bool-ish string", func(t *testing.T) {
		v, err := domain.CoerceFieldValue(domain.FieldCheckbox, json.RawMessage(`true`))
		require.NoError(t, err)
		assert.True(t, v.Checkbox)

		v, err = domain.CoerceFieldValue(domain.FieldCheckbox, json.RawMessage(`"false"`))
		require.NoError(t, err)
		assert.False(t, v.Checkbox)
	})

	t.Run("dateTime accepts RFC3339 and epoch millis", func(t *testing.T) {
		v, err := domain.CoerceFieldValue(domain.FieldDateTime, json.RawMessage(`"2024-03-01T12:00:00Z"`))
		require.NoError(t, err)
		assert.Equal(t, 2024, v.DateTime.Year())

		v, err = domain.CoerceFieldValue(domain.FieldDateTime, json.RawMessage(`1709294400000`))
		require.NoError(t, err)
		assert.Equal(t, 2024, v.DateTime.UTC().Year())
	})

	t.Run("dateTime rejects garbage", func(t *testing.T) {
		_, err := domain.CoerceFieldValue(domain.FieldDateTime, json.RawMessage(`"soon"`))
		assert.Error(t, err)
	})

	t.Run("text accepts scalars", func(t *testing.T) {
		v, err := domain.CoerceFieldValue(domain.FieldText, json.RawMessage(`"hello"`))
		require.NoError(t, err)
		assert.Equal(t, "hello", v.Text)

		v, err = domain.CoerceFieldValue(domain.FieldText, json.RawMessage(`42`))
		require.NoError(t, err)
		assert.Equal(t, "42", v.Text)
	})
}

func TestCanonicalRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		typ  domain.FieldType
		raw  string
	}{
		{"text", domain.FieldText, `"release notes"`},
		{"number", domain.FieldNumber, `3.25`},
		{"checkbox", domain.FieldCheckbox, `true`},
		{"dateTime", domain.FieldDateTime, `"2023-11-05T08:30:00Z"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := domain.CoerceFieldValue(tc.typ, json.RawMessage(tc.raw))
			require.NoError(t, err)

			decoded, err := domain.DecodeFieldValue(tc.typ, v.Canonical())
			require.NoError(t, err)
			assert.Equal(t, v.Display(), decoded.Display())
			assert.Equal(t, v.Canonical(), decoded.Canonical())
		})
	}
}

func TestDecodeMismatchedValue(t *testing.T) {
	_, err := domain.DecodeFieldValue(domain.FieldNumber, "not-a-number")
	assert.Error(t, err)

	_, err = domain.DecodeFieldValue(domain.FieldCheckbox, "maybe")
	assert.Error(t, err)
}

func TestCheckboxDisplay(t *testing.T) {
	checked := domain.FieldValue{Type: domain.FieldCheckbox, Checkbox: true}
	unchecked := domain.FieldValue{Type: domain.FieldCheckbox, Checkbox: false}

	assert.Equal(t, "Check", checked.Display())
	// unchecked is "present but false", not the absence placeholder
	assert.Equal(t, "No", unchecked.Display())
	assert.NotEqual(t, domain.DisplayPlaceholder, unchecked.Display())
}

// The custom-field sort orders dateTime values as canonical text, which is
// only sound if UTC RFC3339 strings sort lexically in chronological order.
func TestCanonicalDateTimeLexicalOrder(t *testing.T) {
	times := []time.Time{
		time.Date(2031, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 6, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 5, 59, 59, 0, time.FixedZone("CET", 3600)),
		time.Date(1999, 10, 9, 12, 0, 0, 0, time.UTC),
	}

	var encoded []string
	for _, ts := range times {
		v := domain.FieldValue{Type: domain.FieldDateTime, DateTime: ts}
		encoded = append(encoded, v.Canonical())
	}
	sort.Strings(encoded)

	for i := 1; i < len(encoded); i++ {
		prev, err := domain.DecodeFieldValue(domain.FieldDateTime, encoded[i-1])
		require.NoError(t, err)
		curr, err := domain.DecodeFieldValue(domain.FieldDateTime, encoded[i])
		require.NoError(t, err)
		assert.False(t, curr.DateTime.Before(prev.DateTime),
			"lexical order must match chronological order: %s before %s", encoded[i-1], encoded[i])
	}
}
