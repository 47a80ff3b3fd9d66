package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/conimex/internal/core/domain"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"0", false},
		{"false", true},
		{"2020-01-01", true},
		{0, false},
		{int64(3), true},
		{0.0, false},
		{[]any{}, false},
		{[]any{1}, true},
		{map[string]any{}, false},
		{time.Time{}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truthy(tt.value), "%#v", tt.value)
	}
}

func TestTimeValue(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	given := time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC)

	got, err := timeValue(nil, now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = timeValue("", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = timeValue(given, now)
	require.NoError(t, err)
	assert.Equal(t, given, got)

	got, err = timeValue("2010-06-01", now)
	require.NoError(t, err)
	assert.True(t, given.Equal(got))

	got, err = timeValue("0000-00-00 00:00:00", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	_, err = timeValue("not a date", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = timeValue([]any{"2010-06-01"}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSlugValue(t *testing.T) {
	assert.Equal(t, "about", slugValue("about"))
	assert.Equal(t, "about", slugValue([]any{"about", "ignored"}))
	assert.Equal(t, "about", slugValue([]string{"about"}))
	assert.Equal(t, "42", slugValue(42))
	assert.Empty(t, slugValue([]any{}))
	assert.Empty(t, slugValue(nil))
	assert.Empty(t, slugValue(map[string]any{"en": "about"}))
}

func TestSliceValue(t *testing.T) {
	assert.Nil(t, sliceValue(nil))
	assert.Equal(t, []any{"a"}, sliceValue("a"))
	assert.Equal(t, []any{"a", "b"}, sliceValue([]any{"a", "b"}))
}

func TestSchemaResolver(t *testing.T) {
	resolver := NewSchemaResolver(fixtureSchema())

	tests := []struct {
		name     string
		blockKey string
		record   domain.MapRecord
		want     string
		ok       bool
	}{
		{"block key", "pages", domain.MapRecord{}, "pages", true},
		{"singular block key", "page", domain.MapRecord{}, "pages", true},
		{"record wins", "pages", domain.MapRecord{"contentType": "entries"}, "entries", true},
		{"empty record type", "entries", domain.MapRecord{"contentType": ""}, "entries", true},
		{"unknown record type", "pages", domain.MapRecord{"contentType": "recipes"}, "", false},
		{"unknown block key", "recipes", domain.MapRecord{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, ok := resolver.Resolve(tt.blockKey, tt.record)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, ct.Key)
			}
		})
	}

	assert.Equal(t, "recipes", resolver.Requested("pages", domain.MapRecord{"contentType": "recipes"}))
}
