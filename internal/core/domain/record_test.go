package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapRecord_Get(t *testing.T) {
	r := MapRecord{"title": "Hello", "empty": nil}

	assert.Equal(t, "Hello", r.Get("title", "x"))
	assert.Equal(t, "x", r.Get("missing", "x"))
	// Present keys win over the default even when nil.
	assert.Nil(t, r.Get("empty", "x"))
}

func TestMapRecord_Has(t *testing.T) {
	r := MapRecord{"title": "Hello", "empty": nil}

	assert.True(t, r.Has("title"))
	assert.True(t, r.Has("empty"))
	assert.False(t, r.Has("missing"))
}

func TestMapRecord_ReadOnly(t *testing.T) {
	raw := RawRecord{"title": "Hello"}
	r := MapRecord(raw)

	_ = r.Get("missing", "default")
	_ = LookupOr(r, "default", "missing", "other")

	assert.Len(t, raw, 1)
}

func TestLookup_FallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		record MapRecord
		want   any
		found  bool
	}{
		{"current name", MapRecord{"createdAt": "2020-01-01", "datecreated": "2019-01-01"}, "2020-01-01", true},
		{"legacy name", MapRecord{"datecreated": "2019-01-01"}, "2019-01-01", true},
		{"neither", MapRecord{}, nil, false},
		{"current nil", MapRecord{"createdAt": nil, "datecreated": "2019-01-01"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Lookup(tt.record, AttrCreatedAt...)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.found, found)
		})
	}
}

func TestLookupOr(t *testing.T) {
	assert.Equal(t, "d", LookupOr(MapRecord{}, "d", AttrDisplayName...))
	assert.Equal(t, "Bob", LookupOr(MapRecord{"displayname": "Bob"}, "d", AttrDisplayName...))
}

func TestNested(t *testing.T) {
	r := MapRecord{
		"fields":     map[string]any{"title": "T"},
		"taxonomies": "not a map",
	}

	assert.Equal(t, "T", Nested(r, KeyFields).Get("title", nil))
	assert.False(t, Nested(r, KeyTaxonomies).Has("anything"))
	assert.False(t, Nested(r, "missing").Has("anything"))
}

func TestSlugValue(t *testing.T) {
	assert.Equal(t, "top", SlugValue(MapRecord{"slug": "top", "fields": map[string]any{"slug": "nested"}}))
	assert.Equal(t, "nested", SlugValue(MapRecord{"fields": map[string]any{"slug": "nested"}}))
	assert.Equal(t, []any{"one"}, SlugValue(MapRecord{"fields": map[string]any{"slug": []any{"one"}}}))
	assert.Nil(t, SlugValue(MapRecord{}))
}
