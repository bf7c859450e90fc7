package kinematics

import "gonum.org/v1/gonum/interp"

// FillMissing fills NaN gaps in a position series by piecewise-linear
// interpolation over each coordinate column independently. Frames before the
// first valid sample or after the last one take the boundary value (flat
// extrapolation). Valid samples are never modified.
//
// A column with fewer than two valid samples carries no gradient information
// and passes through unchanged, NaNs included. The input is not mutated; a
// new series of identical length is returned, empty input included.
func FillMissing(series [][2]float64) [][2]float64 {
	out := make([][2]float64, len(series))
	copy(out, series)
	if len(series) == 0 {
		return out
	}

	for c := 0; c < NumCoords; c++ {
		xs := make([]float64, 0, len(series))
		ys := make([]float64, 0, len(series))
		for f, p := range series {
			if !isMissing(p[c]) {
				xs = append(xs, float64(f))
				ys = append(ys, float64(p[c]))
			}
		}
		if len(xs) < 2 {
			continue
		}

		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, ys); err != nil {
			// xs is strictly increasing by construction and len >= 2, so
			// Fit cannot fail; leave the column untouched if it somehow does.
			continue
		}
		for f := range out {
			if isMissing(out[f][c]) {
				// Predict clamps to the boundary values outside [xs[0], xs[last]].
				out[f][c] = pl.Predict(float64(f))
			}
		}
	}
	return out
}
