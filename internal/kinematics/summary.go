package kinematics

import "fmt"

// Summarize derives descriptive statistics for a tracking dataset: axis
// counts, the exact fraction of missing samples, and the total number of
// coordinate values. It is a pure function of the tensor and node names.
//
// The node-name list must match the tensor's node axis; a mismatch is an
// input-contract violation and returns an error rather than a guessed
// truncation.
func Summarize(t *TrackingTensor, nodeNames []string) (SummaryRecord, error) {
	if len(nodeNames) != t.Nodes() {
		return SummaryRecord{}, fmt.Errorf("tensor has %d nodes but %d node names were supplied", t.Nodes(), len(nodeNames))
	}

	missing := 0
	for _, v := range t.data {
		if isMissing(v) {
			missing++
		}
	}

	total := t.Frames() * t.Nodes() * NumCoords * t.Instances()
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(missing) / float64(total)
	}

	names := make([]string, len(nodeNames))
	copy(names, nodeNames)

	return SummaryRecord{
		FrameCount:            t.Frames(),
		NodeCount:             t.Nodes(),
		InstanceCount:         t.Instances(),
		NodeNames:             names,
		MissingDataPercentage: pct,
		TotalTrackingPoints:   total,
	}, nil
}
