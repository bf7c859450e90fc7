package kinematics

import (
	"fmt"
	"math"
)

// NumCoords is the length of the coordinate axis. Tracking data is 2D (x, y).
const NumCoords = 2

// TrackingTensor holds a 4-D array of keypoint coordinates indexed
// [frame, node, coordinate, instance], backed by a flat row-major slice.
// Missing samples are NaN. The tensor is read-only after construction; all
// analytical stages return new arrays rather than mutating it.
type TrackingTensor struct {
	data      []float64
	frames    int
	nodes     int
	instances int
}

// NewTrackingTensor wraps a flat row-major slice as a tensor with the given
// shape. The slice length must equal frames*nodes*NumCoords*instances.
func NewTrackingTensor(data []float64, frames, nodes, instances int) (*TrackingTensor, error) {
	if frames < 0 || nodes < 0 || instances < 0 {
		return nil, fmt.Errorf("negative tensor dimension (frames=%d nodes=%d instances=%d)", frames, nodes, instances)
	}
	want := frames * nodes * NumCoords * instances
	if len(data) != want {
		return nil, fmt.Errorf("tensor data has %d values, shape (%d,%d,%d,%d) requires %d",
			len(data), frames, nodes, NumCoords, instances, want)
	}
	return &TrackingTensor{data: data, frames: frames, nodes: nodes, instances: instances}, nil
}

// Frames returns the number of frames.
func (t *TrackingTensor) Frames() int { return t.frames }

// Nodes returns the number of tracked keypoints.
func (t *TrackingTensor) Nodes() int { return t.nodes }

// Instances returns the number of tracked subjects.
func (t *TrackingTensor) Instances() int { return t.instances }

// At returns the value at [frame, node, coord, instance].
func (t *TrackingTensor) At(frame, node, coord, instance int) float64 {
	return t.data[((frame*t.nodes+node)*NumCoords+coord)*t.instances+instance]
}

// PositionSeries extracts the [frame][x,y] series for one (node, instance)
// pair. The returned slice is freshly allocated; the tensor is not aliased.
func (t *TrackingTensor) PositionSeries(node, instance int) ([][2]float64, error) {
	if node < 0 || node >= t.nodes {
		return nil, fmt.Errorf("node index %d out of range [0,%d)", node, t.nodes)
	}
	if instance < 0 || instance >= t.instances {
		return nil, fmt.Errorf("instance index %d out of range [0,%d)", instance, t.instances)
	}
	series := make([][2]float64, t.frames)
	for f := 0; f < t.frames; f++ {
		series[f][0] = t.At(f, node, 0, instance)
		series[f][1] = t.At(f, node, 1, instance)
	}
	return series, nil
}

// SummaryRecord describes a tracking dataset: its shape, node names and how
// much of it is missing. Produced by Summarize and immutable thereafter.
type SummaryRecord struct {
	FrameCount            int      `json:"frame_count"`
	NodeCount             int      `json:"node_count"`
	InstanceCount         int      `json:"instance_count"`
	NodeNames             []string `json:"node_names"`
	MissingDataPercentage float64  `json:"missing_data_percentage"`
	TotalTrackingPoints   int      `json:"total_tracking_points"`
}

func isMissing(v float64) bool { return math.IsNaN(v) }
