// Package coerce has defensive primitive conversions for untrusted source
// data. Proposal sources routinely hand back lists where counts were
// expected, numeric strings where numbers were expected, and naive
// timestamps next to zone-aware ones. Every conversion here is total:
// a well-defined default comes back instead of a panic or an error.
package coerce

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts accepted from sources, most specific first. Naive
// layouts are interpreted as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToInt converts an arbitrary value to an integer. Numeric values are
// truncated, numeric strings are parsed, and sequences resolve to their
// length, which recovers count semantics from sources that return a list
// where a counter was expected. Anything else resolves to 0.
func ToInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int8:
		return int(t)
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint:
		return int(t)
	case uint8:
		return int(t)
	case uint16:
		return int(t)
	case uint32:
		return int(t)
	case uint64:
		return int(t)
	case float32:
		return truncFloat(float64(t))
	case float64:
		return truncFloat(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return truncFloat(f)
		}
		return 0
	}

	// Sequences and mappings resolve to their length.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	default:
		return 0
	}
}

// truncFloat truncates a float to int, guarding against NaN and infinities.
func truncFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// ToTime converts an arbitrary value to a zone-aware UTC instant. Values
// without zone information are assumed UTC. The second return is false when
// the value is absent or unparseable; callers get "no timestamp" rather
// than a sentinel date.
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t.UTC(), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return t.UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
		return time.Time{}, false
	case int, int32, int64, float64:
		// Unix seconds from sources that serialize epochs.
		secs := int64(ToInt(t))
		if secs <= 0 {
			return time.Time{}, false
		}
		return time.Unix(secs, 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

// ToFlatString converts an arbitrary value to a flat string. Sequences are
// joined with ", ", nil becomes the empty string, and everything else is
// stringified.
func ToFlatString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, ToFlatString(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// ToBool converts an arbitrary value to a boolean. Strings accept the usual
// spellings, numbers are true when non-zero, and anything else is false.
func ToBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return true
		}
		return false
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		return ToInt(t) != 0
	default:
		return false
	}
}
