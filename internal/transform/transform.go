package transform

// Smooth applies an exponential moving average. smoothing ranges over
// [0, 20]; zero (or empty input) returns the input slice itself so that "no
// smoothing" is bit-identical to the raw series. Otherwise
// alpha = min(1, smoothing/20) and
//
//	s[0] = v[0]
//	s[i] = s[i-1]*alpha + v[i]*(1-alpha)
//
// Higher smoothing biases toward the running smoothed value. Applying Smooth
// twice is not equivalent to one pass at any level.
func Smooth(values []float64, smoothing float64) []float64 {
	if len(values) == 0 || smoothing == 0 {
		return values
	}

	alpha := smoothing / 20.0
	if alpha > 1.0 {
		alpha = 1.0
	}

	smoothed := make([]float64, len(values))
	last := values[0]
	smoothed[0] = last
	for i := 1; i < len(values); i++ {
		last = last*alpha + values[i]*(1-alpha)
		smoothed[i] = last
	}
	return smoothed
}

// DefaultMaxPoints caps how many points a plot line carries.
const DefaultMaxPoints = 1000

// Downsample decimates parallel x/y sequences down to at most maxPoints,
// keeping every stride-th element starting at index 0. This is pure
// decimation, lossy and biased toward the sampled indices; dropped points are
// not averaged in. Input shorter than the cap is returned unchanged.
func Downsample(x []float64, y []float64, maxPoints int) ([]float64, []float64) {
	if maxPoints < 1 || len(x) <= maxPoints {
		return x, y
	}

	// Smallest stride that brings the series under the cap; at least 2
	// whenever decimation triggers.
	stride := (len(x) + maxPoints - 1) / maxPoints

	outX := make([]float64, 0, len(x)/stride+1)
	outY := make([]float64, 0, len(y)/stride+1)
	for i := 0; i < len(x); i += stride {
		outX = append(outX, x[i])
		outY = append(outY, y[i])
	}
	return outX, outY
}
