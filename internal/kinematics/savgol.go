package kinematics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/openbehavior/trackkit/internal/monitoring"
)

// SmoothDiff estimates the per-frame velocity magnitude of a 2D position
// series using a local-polynomial (Savitzky-Golay style) smoothing derivative.
// For each frame a polynomial of the given order is fitted by least squares
// to a window of surrounding samples on each coordinate axis, its first
// derivative is evaluated analytically at that frame, and the two axis
// derivatives are combined with the Euclidean norm. Output is expressed in
// position-units per frame; callers holding the frame rate convert to
// per-second units themselves.
//
// The configured window is clamped, never fatal: a window larger than the
// series shrinks to the largest odd value that fits, an even window shrinks
// by one, and a polynomial order that does not fit the effective window drops
// to window-1 (minimum 1). Each adjustment is reported through diag. A
// single-frame window yields exactly zero velocity.
//
// Samples still missing after imputation contribute zero displacement: each
// NaN is held at the nearest observed value on its axis, and a fully missing
// axis contributes nothing. The result therefore never contains NaN; an
// entirely missing series produces all zeros.
func SmoothDiff(series [][2]float64, window, polyOrder int, diag *monitoring.Diagnostics) []float64 {
	n := len(series)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	eff := window
	switch {
	case eff < 1:
		diag.Warnf("velocity window %d is not positive, using 1", window)
		eff = 1
	case eff > n:
		eff = n
		if eff%2 == 0 {
			eff--
		}
		diag.Warnf("velocity window %d exceeds %d available frames, using %d", window, n, eff)
	case eff%2 == 0:
		eff--
		diag.Warnf("velocity window should be odd, using %d instead of %d", eff, window)
	}
	if eff == 1 {
		return out
	}

	order := polyOrder
	if order >= eff {
		order = eff - 1
		diag.Warnf("polynomial order %d does not fit a window of %d frames, using %d", polyOrder, eff, order)
	}
	if order < 1 {
		order = 1
	}

	dx := smoothDerivative(holdMissing(series, 0), eff, order)
	dy := smoothDerivative(holdMissing(series, 1), eff, order)
	for i := range out {
		out[i] = math.Hypot(dx[i], dy[i])
	}
	return out
}

// holdMissing extracts one coordinate column with every NaN replaced by the
// nearest observed value, so missing stretches read as zero displacement.
// An all-NaN column becomes all zeros.
func holdMissing(series [][2]float64, c int) []float64 {
	col := make([]float64, len(series))
	for i, p := range series {
		col[i] = p[c]
	}

	last := math.NaN()
	for i, v := range col {
		if isMissing(v) {
			col[i] = last
		} else {
			last = v
		}
	}
	// Leading NaNs take the first observation; all-NaN columns become zero.
	next := 0.0
	if !isMissing(last) {
		for i := len(col) - 1; i >= 0; i-- {
			if !isMissing(col[i]) {
				next = col[i]
				continue
			}
			col[i] = next
		}
	} else {
		for i := range col {
			col[i] = 0
		}
	}
	return col
}

// smoothDerivative evaluates the first derivative of a local least-squares
// polynomial fit at every sample. Interior samples use a window centred on
// them; near the boundaries the window is anchored at the edge and the
// fitted polynomial is evaluated at the sample's offset within it.
func smoothDerivative(y []float64, window, order int) []float64 {
	n := len(y)
	half := window / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i - half
		if start < 0 {
			start = 0
		}
		if start+window > n {
			start = n - window
		}
		out[i] = localPolyDerivative(y, start, window, order, i)
	}
	return out
}

// localPolyDerivative fits a polynomial of the given order to
// y[start:start+window] by QR least squares, with the abscissa centred on
// sample `at`, and returns the fitted first derivative there (the
// linear-term coefficient).
func localPolyDerivative(y []float64, start, window, order, at int) float64 {
	a := mat.NewDense(window, order+1, nil)
	b := mat.NewVecDense(window, nil)
	for j := 0; j < window; j++ {
		u := float64(start + j - at)
		pow := 1.0
		for k := 0; k <= order; k++ {
			a.Set(j, k, pow)
			pow *= u
		}
		b.SetVec(j, y[start+j])
	}

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, b); err != nil {
		// Distinct abscissae and order < window keep the system full rank;
		// a failed solve means degenerate input, which reads as no motion.
		return 0
	}
	return coef.AtVec(1)
}
