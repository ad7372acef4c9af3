package transform

import (
	"encoding/json"
	"strings"
	"time"
)

// Timestamp layouts accepted from the store, tried in order. Trackers write
// either RFC 3339 or a space-separated variant without zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// NormalizeTimestamp converts a raw timestamp value into epoch seconds. It is
// total: numeric values pass through, strings are parsed as ISO-8601 with a
// literal Z suffix meaning UTC, and anything unparsable becomes 0 so one bad
// sample never fails the pipeline.
func NormalizeTimestamp(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
		return 0.0
	case string:
		return normalizeString(v)
	default:
		return 0.0
	}
}

func normalizeString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixNano()) / float64(time.Second)
		}
	}
	return 0.0
}
