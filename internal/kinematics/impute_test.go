package kinematics

import (
	"math"
	"testing"
)

func nan() float64 { return math.NaN() }

func TestFillMissingInterpolates(t *testing.T) {
	series := [][2]float64{
		{1, 10},
		{nan(), nan()},
		{7, 30},
	}
	filled := FillMissing(series)

	if got := filled[1][0]; got != 4.0 {
		t.Errorf("filled[1][0] = %v, want 4 (linear between 1 and 7)", got)
	}
	if got := filled[1][1]; got != 20.0 {
		t.Errorf("filled[1][1] = %v, want 20 (linear between 10 and 30)", got)
	}
	// Valid samples are untouched.
	if filled[0] != series[0] || filled[2] != series[2] {
		t.Errorf("valid samples modified: %v", filled)
	}
	// Input is not mutated.
	if !math.IsNaN(series[1][0]) {
		t.Error("FillMissing mutated its input")
	}
}

func TestFillMissingFlatExtrapolation(t *testing.T) {
	series := [][2]float64{
		{nan(), nan()},
		{nan(), nan()},
		{5, 2},
		{7, 4},
		{nan(), nan()},
	}
	filled := FillMissing(series)

	for _, f := range []int{0, 1} {
		if filled[f][0] != 5 || filled[f][1] != 2 {
			t.Errorf("frame %d = %v, want boundary value (5,2)", f, filled[f])
		}
	}
	if filled[4][0] != 7 || filled[4][1] != 4 {
		t.Errorf("trailing frame = %v, want boundary value (7,4)", filled[4])
	}
}

func TestFillMissingDegenerateColumns(t *testing.T) {
	testCases := []struct {
		name   string
		series [][2]float64
	}{
		{"all_missing_column", [][2]float64{{1, nan()}, {2, nan()}, {3, nan()}}},
		{"single_valid_sample", [][2]float64{{nan(), nan()}, {1, 9}, {nan(), nan()}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filled := FillMissing(tc.series)
			if len(filled) != len(tc.series) {
				t.Fatalf("length changed: got %d, want %d", len(filled), len(tc.series))
			}
			for f := range tc.series {
				for c := 0; c < NumCoords; c++ {
					in, out := tc.series[f][c], filled[f][c]
					switch {
					case math.IsNaN(in) && !math.IsNaN(out):
						// Columns with <2 valid points must keep their NaNs.
						if countValid(tc.series, c) < 2 {
							t.Errorf("[%d][%d]: NaN resolved in a column with <2 valid points", f, c)
						}
					case !math.IsNaN(in) && in != out:
						t.Errorf("[%d][%d]: valid sample changed %v -> %v", f, c, in, out)
					}
				}
			}
		})
	}
}

func countValid(series [][2]float64, c int) int {
	n := 0
	for _, p := range series {
		if !math.IsNaN(p[c]) {
			n++
		}
	}
	return n
}

func TestFillMissingCompleteColumns(t *testing.T) {
	// A column with >=2 valid samples must come back NaN-free.
	series := [][2]float64{
		{nan(), 0},
		{2, nan()},
		{nan(), 2},
		{4, nan()},
		{nan(), 4},
	}
	filled := FillMissing(series)
	for f := range filled {
		for c := 0; c < NumCoords; c++ {
			if math.IsNaN(filled[f][c]) {
				t.Errorf("[%d][%d] still NaN after interpolation", f, c)
			}
		}
	}
	if filled[2][0] != 3 {
		t.Errorf("filled[2][0] = %v, want 3", filled[2][0])
	}
}

func TestFillMissingEmpty(t *testing.T) {
	filled := FillMissing(nil)
	if len(filled) != 0 {
		t.Errorf("expected empty output, got %v", filled)
	}
	filled = FillMissing([][2]float64{})
	if len(filled) != 0 {
		t.Errorf("expected empty output, got %v", filled)
	}
}
