package query

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// timeLayouts are the accepted timestamp forms for filter values.
var timeLayouts = []string{time.RFC3339, "2006-01-02"}

// Coerce converts a raw filter value to a typed scalar by trial validation:
// identifier, integer, float, boolean, timestamp, in that order. Values that
// fit none of these stay strings.
func Coerce(raw string) interface{} {
	if _, err := uuid.Parse(raw); err == nil {
		return raw
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return raw
}

// CoerceList coerces each element of a list value.
func CoerceList(raw []string) []interface{} {
	values := make([]interface{}, len(raw))
	for i, v := range raw {
		values[i] = Coerce(v)
	}
	return values
}

func toString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
