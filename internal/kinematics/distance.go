package kinematics

import "math"

// InterSubjectDistance computes the per-frame Euclidean distance between two
// position series for the same node across two instances. Both inputs are
// expected to have been through FillMissing already; this function does not
// impute. If the series lengths differ the result covers the common prefix
// only, without padding or extrapolation.
//
// A residual NaN in either series propagates to the corresponding output
// frame: an undefined distance must not masquerade as zero proximity. This is
// deliberately the opposite of SmoothDiff's zero-displacement policy.
func InterSubjectDistance(a, b [][2]float64) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		// NaN operands flow straight through Hypot.
		out[i] = math.Hypot(a[i][0]-b[i][0], a[i][1]-b[i][1])
	}
	return out
}

// CumulativeDistance returns the running path length of a position series:
// element i is the total distance travelled through frame i, with element 0
// always zero. Steps touching a missing sample contribute zero displacement,
// consistent with SmoothDiff, so the output is monotonic and NaN-free.
func CumulativeDistance(series [][2]float64) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	total := 0.0
	for i := 1; i < len(series); i++ {
		step := math.Hypot(series[i][0]-series[i-1][0], series[i][1]-series[i-1][1])
		if !math.IsNaN(step) {
			total += step
		}
		out[i] = total
	}
	return out
}
