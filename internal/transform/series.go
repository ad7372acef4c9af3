package transform

import (
	"encoding/json"

	"github.com/trackboard/trackboard/internal/storage"
)

// XAxis selects what the x coordinate of a series is derived from.
type XAxis string

const (
	// XAxisStep plots against the raw step field.
	XAxisStep XAxis = "step"
	// XAxisRelative plots against seconds elapsed since the first point.
	XAxisRelative XAxis = "relative"
	// XAxisWall plots against the normalized wall-clock timestamp.
	XAxisWall XAxis = "wall"
)

// ExtractSeries turns raw samples into parallel x/y sequences for the given
// axis mode. Samples with non-numeric values (tables, images, other embedded
// payloads) are dropped before extraction; a run whose samples are all
// non-numeric yields empty sequences, which callers treat as "no line", not
// an error.
func ExtractSeries(samples []storage.Sample, axis XAxis) ([]float64, []float64) {
	x := make([]float64, 0, len(samples))
	y := make([]float64, 0, len(samples))

	var firstTimestamp float64
	haveFirst := false

	for _, sample := range samples {
		value, ok := NumericValue(sample.Value)
		if !ok {
			continue
		}

		var xv float64
		switch axis {
		case XAxisStep:
			xv = float64(sample.Step)
		case XAxisWall:
			xv = NormalizeTimestamp(sample.Timestamp)
		case XAxisRelative:
			ts := NormalizeTimestamp(sample.Timestamp)
			if !haveFirst {
				firstTimestamp = ts
				haveFirst = true
			}
			xv = ts - firstTimestamp
		default:
			xv = float64(sample.Step)
		}

		x = append(x, xv)
		y = append(y, value)
	}
	return x, y
}

// NumericValue reports the float64 behind a raw sample value. JSON decoding
// hands back float64 for numbers, but int and json.Number show up from other
// producers.
func NumericValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
