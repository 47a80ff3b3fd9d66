package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/custodia-labs/conimex/internal/core/domain"
)

// localeTag matches keys like "en", "nl_NL" or "pt-BRA".
var localeTag = regexp.MustCompile(`(?i)^[a-z]{2}([_-][a-z]{2,3})?$`)

// stringValue converts scalars to strings. Anything else yields "".
func stringValue(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// stringOr is stringValue with a default for empty results.
func stringOr(v any, def string) string {
	if s := stringValue(v); s != "" {
		return s
	}
	return def
}

// sliceValue returns v as a sequence. A lone scalar is treated as a
// one-element sequence and nil as an empty one.
func sliceValue(v any) []any {
	if v == nil {
		return nil
	}
	if s, err := cast.ToSliceE(v); err == nil {
		return s
	}
	return []any{v}
}

// stringSlice returns the string elements of a sequence.
func stringSlice(v any) []string {
	if v == nil {
		return []string{}
	}
	s, err := cast.ToStringSliceE(v)
	if err != nil {
		return []string{}
	}
	return s
}

// mapping returns v as a string-keyed map if it is a decoded mapping.
// Unlike cast.ToStringMapE it never parses strings.
func mapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.RawRecord:
		return m, true
	case domain.MapRecord:
		return m, true
	case map[any]any:
		out, err := cast.ToStringMapE(m)
		return out, err == nil
	default:
		return nil, false
	}
}

// truthy follows the loose truthiness of the export producer: nil, false,
// zero numbers, "", "0" and empty collections are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "0"
	case time.Time:
		return true
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case map[any]any:
		return len(x) > 0
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0
	}
	return true
}

// timeValue parses a timestamp attribute. Nil, "" and the MySQL zero date
// mean now.
func timeValue(v any, now time.Time) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return now, nil
	case string:
		if x == "" || zeroDate(x) {
			return now, nil
		}
	case time.Time:
		return x, nil
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %v: %w", domain.ErrInvalidInput, v, err)
	}
	return t, nil
}

// zeroDate reports whether v is the MySQL zero date older exports use for
// unset timestamps.
func zeroDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch strings.TrimSpace(s) {
	case "0000-00-00", "0000-00-00 00:00:00":
		return true
	}
	return false
}

// slugValue normalises a raw slug: a string, a scalar, or a sequence whose
// first element is used.
func slugValue(v any) string {
	if s, ok := v.([]any); ok {
		if len(s) == 0 {
			return ""
		}
		return stringValue(s[0])
	}
	if s, ok := v.([]string); ok {
		if len(s) == 0 {
			return ""
		}
		return s[0]
	}
	return stringValue(v)
}
