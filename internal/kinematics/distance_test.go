package kinematics

import (
	"math"
	"testing"
)

func TestInterSubjectDistanceParallelTracks(t *testing.T) {
	// Two straight-line trajectories offset by a constant perpendicular
	// vector of magnitude 3.
	n := 50
	a := make([][2]float64, n)
	b := make([][2]float64, n)
	for i := 0; i < n; i++ {
		a[i] = [2]float64{float64(i), 0}
		b[i] = [2]float64{float64(i), 3}
	}

	dist := InterSubjectDistance(a, b)
	if len(dist) != n {
		t.Fatalf("length = %d, want %d", len(dist), n)
	}
	for i, d := range dist {
		if math.Abs(d-3) > 1e-12 {
			t.Errorf("dist[%d] = %v, want 3", i, d)
		}
	}
}

func TestInterSubjectDistanceTruncatesToCommonPrefix(t *testing.T) {
	a := [][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	b := [][2]float64{{0, 4}, {1, 4}}
	dist := InterSubjectDistance(a, b)
	if len(dist) != 2 {
		t.Fatalf("length = %d, want 2 (shorter input)", len(dist))
	}
	for i, d := range dist {
		if d != 4 {
			t.Errorf("dist[%d] = %v, want 4", i, d)
		}
	}
}

func TestInterSubjectDistanceMissingPropagates(t *testing.T) {
	a := [][2]float64{{0, 0}, {nan(), 0}, {2, 0}}
	b := [][2]float64{{0, 1}, {1, 1}, {2, nan()}}
	dist := InterSubjectDistance(a, b)

	if dist[0] != 1 {
		t.Errorf("dist[0] = %v, want 1", dist[0])
	}
	// A missing position on either side means the distance is undefined, not zero.
	if !math.IsNaN(dist[1]) {
		t.Errorf("dist[1] = %v, want NaN", dist[1])
	}
	if !math.IsNaN(dist[2]) {
		t.Errorf("dist[2] = %v, want NaN", dist[2])
	}
}

func TestInterSubjectDistanceEmpty(t *testing.T) {
	if got := InterSubjectDistance(nil, nil); len(got) != 0 {
		t.Errorf("expected empty output, got %v", got)
	}
}

func TestCumulativeDistance(t *testing.T) {
	series := [][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	cum := CumulativeDistance(series)
	want := []float64{0, 1, 2, 3}
	for i := range want {
		if math.Abs(cum[i]-want[i]) > 1e-12 {
			t.Errorf("cum[%d] = %v, want %v", i, cum[i], want[i])
		}
	}
}

func TestCumulativeDistanceSkipsMissingSteps(t *testing.T) {
	series := [][2]float64{{0, 0}, {nan(), nan()}, {1, 0}, {2, 0}}
	cum := CumulativeDistance(series)
	// Steps into and out of the missing frame contribute nothing.
	want := []float64{0, 0, 0, 1}
	for i := range want {
		if cum[i] != want[i] {
			t.Errorf("cum[%d] = %v, want %v", i, cum[i], want[i])
		}
		if math.IsNaN(cum[i]) {
			t.Errorf("cum[%d] is NaN", i)
		}
	}
}

func TestCumulativeDistanceEmpty(t *testing.T) {
	if got := CumulativeDistance(nil); len(got) != 0 {
		t.Errorf("expected empty output, got %v", got)
	}
}
