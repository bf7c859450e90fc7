package kinematics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeriesStats holds descriptive statistics for a derived series (velocity,
// distance). NaN entries are excluded; ValidCount reports how many samples
// the statistics cover.
type SeriesStats struct {
	Mean       float64 `json:"mean"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	ValidCount int     `json:"valid_count"`
}

// DescribeSeries computes NaN-aware summary statistics for a 1-D series.
// An empty or all-NaN series yields zero-valued stats with ValidCount 0.
func DescribeSeries(values []float64) SeriesStats {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return SeriesStats{}
	}
	return SeriesStats{
		Mean:       stat.Mean(valid, nil),
		Min:        floats.Min(valid),
		Max:        floats.Max(valid),
		ValidCount: len(valid),
	}
}
