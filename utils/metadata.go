package utils

import (
	"log"
	"strconv"
	"strings"
	"time"
)

// Accepted layouts for date-like string values, tried in order. Layouts
// without a zone are interpreted as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeMetadata returns a copy of metadata where every key whose name
// contains "date" (case-insensitive) is converted to integer milliseconds
// since epoch, UTC. Values that are already numeric pass through unchanged,
// so normalization is idempotent. Values that cannot be interpreted at all
// keep their raw form; that degradation is logged but never fails the caller.
func NormalizeMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return map[string]any{}
	}
	normalized := make(map[string]any, len(metadata))
	for k, v := range metadata {
		if strings.Contains(strings.ToLower(k), "date") {
			normalized[k] = normalizeDateValue(k, v)
		} else {
			normalized[k] = v
		}
	}
	return normalized
}

func normalizeDateValue(key string, v any) any {
	switch value := v.(type) {
	case time.Time:
		return value.UTC().UnixMilli()
	case int, int32, int64, float32, float64:
		// Already a numeric timestamp; do not re-interpret.
		return value
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t.UTC().UnixMilli()
			}
		}
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("metadata: could not normalize date field %q value %q, keeping raw", key, value)
		return value
	default:
		log.Printf("metadata: unsupported date field %q type %T, keeping raw", key, v)
		return v
	}
}
