package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbehavior/trackkit/internal/config"
	"github.com/openbehavior/trackkit/internal/kinematics"
	"github.com/openbehavior/trackkit/internal/monitoring"
)

func muteLogger(t *testing.T) {
	t.Helper()
	orig := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(orig) })
}

// twoSubjectTensor builds a tensor with two instances walking parallel
// straight lines 3 units apart at every node, with a few missing samples on
// the first instance.
func twoSubjectTensor(t *testing.T, frames int) (*kinematics.TrackingTensor, []string) {
	t.Helper()
	names := []string{"head", "bodycenter"}
	data := make([]float64, frames*len(names)*kinematics.NumCoords*2)
	idx := func(f, n, c, i int) int {
		return ((f*len(names)+n)*kinematics.NumCoords+c)*2 + i
	}
	for f := 0; f < frames; f++ {
		for n := range names {
			data[idx(f, n, 0, 0)] = float64(f)
			data[idx(f, n, 1, 0)] = 0
			data[idx(f, n, 0, 1)] = float64(f)
			data[idx(f, n, 1, 1)] = 3
		}
	}
	// Knock out a couple of interior samples on instance 0 at bodycenter.
	data[idx(frames/2, 1, 0, 0)] = math.NaN()
	data[idx(frames/2, 1, 1, 0)] = math.NaN()

	tensor, err := kinematics.NewTrackingTensor(data, frames, len(names), 2)
	require.NoError(t, err)
	return tensor, names
}

func TestRun(t *testing.T) {
	muteLogger(t)

	tensor, names := twoSubjectTensor(t, 60)
	results, err := Run(tensor, names, "bodycenter", nil)
	require.NoError(t, err)

	assert.Equal(t, "bodycenter", results.MainNode)
	assert.Equal(t, 1, results.NodeIndex)
	assert.Equal(t, 60, results.Summary.FrameCount)
	assert.Equal(t, 2, results.Summary.InstanceCount)
	require.Len(t, results.Instances, 2)

	for _, inst := range results.Instances {
		require.Len(t, inst.Velocity, 60)
		for f, v := range inst.Velocity {
			assert.False(t, math.IsNaN(v), "velocity[%d] is NaN", f)
			assert.GreaterOrEqual(t, v, 0.0)
		}
		// Straight-line motion at one unit per frame.
		assert.InDelta(t, 1.0, inst.VelocityStats.Mean, 0.05)
		require.Len(t, inst.CumulativeDistance, 60)
		assert.InDelta(t, 59.0, inst.CumulativeDistance[59], 0.5)
	}

	// Parallel tracks 3 units apart; the knocked-out frame was imputed, so
	// every distance is defined.
	require.Len(t, results.Distance, 60)
	for f, d := range results.Distance {
		assert.InDelta(t, 3.0, d, 1e-9, "distance[%d]", f)
	}
	assert.InDelta(t, 3.0, results.DistanceStats.Mean, 1e-9)
}

func TestRunUnknownNode(t *testing.T) {
	muteLogger(t)

	tensor, names := twoSubjectTensor(t, 10)
	_, err := Run(tensor, names, "tailtip", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tailtip")
	assert.Contains(t, err.Error(), "bodycenter")
}

func TestRunNodeNameMismatch(t *testing.T) {
	tensor, _ := twoSubjectTensor(t, 10)
	_, err := Run(tensor, []string{"head"}, "head", nil)
	require.Error(t, err)
}

func TestRunInvalidConfig(t *testing.T) {
	tensor, names := twoSubjectTensor(t, 10)
	cfg := config.DefaultAnalysisConfig()
	cfg.VelocityWindow = 0
	_, err := Run(tensor, names, "head", cfg)
	require.Error(t, err)
}

func TestRunCollectsClampWarnings(t *testing.T) {
	muteLogger(t)

	// 10 frames against the default window of 25 forces a clamp per instance.
	tensor, names := twoSubjectTensor(t, 10)
	results, err := Run(tensor, names, "head", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, results.Warnings)
}

func TestRunSingleInstanceHasNoDistance(t *testing.T) {
	muteLogger(t)

	frames := 30
	data := make([]float64, frames*1*kinematics.NumCoords*1)
	for f := 0; f < frames; f++ {
		data[f*2] = float64(f)
		data[f*2+1] = float64(f)
	}
	tensor, err := kinematics.NewTrackingTensor(data, frames, 1, 1)
	require.NoError(t, err)

	results, err := Run(tensor, []string{"head"}, "head", nil)
	require.NoError(t, err)
	assert.Len(t, results.Instances, 1)
	assert.Nil(t, results.Distance)
}
