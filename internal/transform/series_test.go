package transform

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trackboard/trackboard/internal/storage"
)

func TestExtractSeriesStepAxis(t *testing.T) {
	samples := []storage.Sample{
		{Step: 0, Value: 2.0, Timestamp: "2024-03-01T00:00:00Z"},
		{Step: 5, Value: 1.5, Timestamp: "2024-03-01T00:00:10Z"},
	}

	x, y := ExtractSeries(samples, XAxisStep)
	assert.Equal(t, []float64{0, 5}, x)
	assert.Equal(t, []float64{2.0, 1.5}, y)
}

func TestExtractSeriesWallAxis(t *testing.T) {
	samples := []storage.Sample{
		{Step: 0, Value: 1.0, Timestamp: 100.0},
		{Step: 1, Value: 2.0, Timestamp: 160.0},
	}

	x, _ := ExtractSeries(samples, XAxisWall)
	assert.Equal(t, []float64{100, 160}, x)
}

func TestExtractSeriesRelativeAxisStartsAtZero(t *testing.T) {
	samples := []storage.Sample{
		{Step: 0, Value: 1.0, Timestamp: "2024-03-01T00:00:30Z"},
		{Step: 1, Value: 2.0, Timestamp: "2024-03-01T00:01:00Z"},
		{Step: 2, Value: 3.0, Timestamp: "2024-03-01T00:02:00Z"},
	}

	x, _ := ExtractSeries(samples, XAxisRelative)
	assert.Equal(t, []float64{0, 30, 90}, x)
}

func TestExtractSeriesFiltersNonNumericValues(t *testing.T) {
	samples := []storage.Sample{
		{Step: 0, Value: map[string]any{"table": true}, Timestamp: 1.0},
		{Step: 1, Value: 2.5, Timestamp: 2.0},
		{Step: 2, Value: "oops", Timestamp: 3.0},
	}

	x, y := ExtractSeries(samples, XAxisStep)
	assert.Equal(t, []float64{1}, x)
	assert.Equal(t, []float64{2.5}, y)
}

func TestExtractSeriesAllNonNumericYieldsNoLine(t *testing.T) {
	samples := []storage.Sample{
		{Step: 0, Value: map[string]any{}, Timestamp: 1.0},
		{Step: 1, Value: []any{1.0}, Timestamp: 2.0},
	}

	x, y := ExtractSeries(samples, XAxisStep)
	assert.Empty(t, x)
	assert.Empty(t, y)
}

// Full pipeline: 1200 stored samples, decimated to the default cap, then
// smoothed. The first point must survive both stages untouched.
func TestPipelineDownsampleThenSmooth(t *testing.T) {
	samples := make([]storage.Sample, 1200)
	for i := range samples {
		samples[i] = storage.Sample{
			Step:      i,
			Value:     2.0 / float64(i+1),
			Timestamp: fmt.Sprintf("2024-03-01T00:%02d:%02dZ", i/60%60, i%60),
		}
	}

	x, y := ExtractSeries(samples, XAxisStep)
	assert.Equal(t, 1200, len(x))

	x, y = Downsample(x, y, DefaultMaxPoints)
	assert.LessOrEqual(t, len(x), DefaultMaxPoints)
	assert.Equal(t, 0.0, x[0])
	assert.Equal(t, 2.0, y[0])

	smoothed := Smooth(y, 10)
	assert.Equal(t, len(y), len(smoothed))
	assert.Equal(t, y[0], smoothed[0])
}
