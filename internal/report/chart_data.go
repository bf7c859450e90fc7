// Package report turns analysis results into files: interactive HTML charts,
// static figures and CSV exports. Chart data preparation is separated from
// rendering for testability.
package report

import (
	"math"

	"github.com/openbehavior/trackkit/internal/analysis"
)

// SeriesPoint is a single sample of a derived time series.
type SeriesPoint struct {
	Frame int     `json:"frame"`
	Time  float64 `json:"time"` // seconds
	Value float64 `json:"value"`
}

// LineSeries is one named trace.
type LineSeries struct {
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

// ChartData holds prepared data for rendering one line chart.
type ChartData struct {
	Series    []LineSeries `json:"series"`
	MaxValue  float64      `json:"max_value"`
	Stride    int          `json:"stride"`
	NumFrames int          `json:"num_frames"`
	FPS       float64      `json:"fps"`
}

// PrepareVelocityChart converts the per-instance velocity series to
// position-units per second and downsamples to at most maxPoints samples per
// trace.
func PrepareVelocityChart(results *analysis.Results, fps float64, maxPoints int) *ChartData {
	data := &ChartData{FPS: fps, NumFrames: results.Summary.FrameCount, Stride: 1}
	for _, inst := range results.Instances {
		data.Stride = strideFor(len(inst.Velocity), maxPoints)
		trace := LineSeries{Name: inst.Label}
		for f := 0; f < len(inst.Velocity); f += data.Stride {
			v := inst.Velocity[f] * fps
			if v > data.MaxValue {
				data.MaxValue = v
			}
			trace.Points = append(trace.Points, SeriesPoint{Frame: f, Time: float64(f) / fps, Value: v})
		}
		data.Series = append(data.Series, trace)
	}
	return data
}

// PrepareDistanceChart downsamples the inter-subject distance trace. Frames
// with undefined distance are omitted rather than plotted as zero.
func PrepareDistanceChart(results *analysis.Results, fps float64, maxPoints int) *ChartData {
	data := &ChartData{FPS: fps, NumFrames: results.Summary.FrameCount, Stride: 1}
	if results.Distance == nil {
		return data
	}
	data.Stride = strideFor(len(results.Distance), maxPoints)
	trace := LineSeries{Name: "inter_subject_distance"}
	for f := 0; f < len(results.Distance); f += data.Stride {
		d := results.Distance[f]
		if math.IsNaN(d) {
			continue
		}
		if d > data.MaxValue {
			data.MaxValue = d
		}
		trace.Points = append(trace.Points, SeriesPoint{Frame: f, Time: float64(f) / fps, Value: d})
	}
	data.Series = append(data.Series, trace)
	return data
}

func strideFor(n, maxPoints int) int {
	if maxPoints <= 0 || n <= maxPoints {
		return 1
	}
	return int(math.Ceil(float64(n) / float64(maxPoints)))
}
