// Package analysis sequences the kinematics stages over a loaded tracking
// dataset: summary statistics, per-instance trajectory reconstruction and
// velocity estimation, and inter-subject distance.
package analysis

import (
	"fmt"
	"strings"
	"sync"

	"github.com/openbehavior/trackkit/internal/config"
	"github.com/openbehavior/trackkit/internal/kinematics"
	"github.com/openbehavior/trackkit/internal/monitoring"
)

// InstanceResult holds the reconstructed trajectory and kinematics for one
// tracked subject at the main node.
type InstanceResult struct {
	Label string

	// Positions is the imputed trajectory. Columns with fewer than two
	// observations may still carry NaN.
	Positions [][2]float64

	// Velocity is the smoothed velocity magnitude in position-units per
	// frame, always finite. Multiply by the configured FPS for units per
	// second.
	Velocity           []float64
	VelocityStats      kinematics.SeriesStats
	CumulativeDistance []float64
}

// Results collects everything one analysis run produces. All values are
// plain in-memory arrays; writing files is the caller's concern.
type Results struct {
	Summary   kinematics.SummaryRecord
	MainNode  string
	NodeIndex int
	Instances []InstanceResult

	// Distance is the per-frame separation between the first two instances
	// at the main node, nil for single-subject recordings. Frames where
	// either trajectory is still undefined carry NaN.
	Distance      []float64
	DistanceStats kinematics.SeriesStats

	// Warnings lists every graceful degradation the stages reported.
	Warnings []string
}

// Run executes the full pipeline for one node of interest. Instances are
// processed concurrently; the stages are pure functions over independent
// series, so no ordering between subjects is required.
func Run(tensor *kinematics.TrackingTensor, nodeNames []string, mainNode string, cfg *config.AnalysisConfig) (*Results, error) {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	summary, err := kinematics.Summarize(tensor, nodeNames)
	if err != nil {
		return nil, err
	}

	nodeIdx := -1
	for i, name := range nodeNames {
		if name == mainNode {
			nodeIdx = i
			break
		}
	}
	if nodeIdx < 0 {
		return nil, fmt.Errorf("node %q not found in tracking data (available: %s)",
			mainNode, strings.Join(nodeNames, ", "))
	}

	diag := &monitoring.Diagnostics{}
	results := &Results{
		Summary:   summary,
		MainNode:  mainNode,
		NodeIndex: nodeIdx,
		Instances: make([]InstanceResult, tensor.Instances()),
	}

	var wg sync.WaitGroup
	errs := make([]error, tensor.Instances())
	for i := 0; i < tensor.Instances(); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			series, err := tensor.PositionSeries(nodeIdx, i)
			if err != nil {
				errs[i] = err
				return
			}
			filled := kinematics.FillMissing(series)
			velocity := kinematics.SmoothDiff(filled, cfg.VelocityWindow, cfg.VelocityPolyOrder, diag)
			results.Instances[i] = InstanceResult{
				Label:              fmt.Sprintf("instance_%d", i),
				Positions:          filled,
				Velocity:           velocity,
				VelocityStats:      kinematics.DescribeSeries(velocity),
				CumulativeDistance: kinematics.CumulativeDistance(filled),
			}
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	if tensor.Instances() >= 2 {
		results.Distance = kinematics.InterSubjectDistance(
			results.Instances[0].Positions, results.Instances[1].Positions)
		results.DistanceStats = kinematics.DescribeSeries(results.Distance)
	}

	results.Warnings = diag.Warnings()
	return results, nil
}
