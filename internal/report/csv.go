package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/openbehavior/trackkit/internal/analysis"
)

// WriteVelocityCSV exports the per-instance velocity series with one row per
// frame: frame index, time in seconds, then one velocity column (units/s)
// per instance.
func WriteVelocityCSV(path string, results *analysis.Results, fps float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"frame", "time_s"}
	for _, inst := range results.Instances {
		header = append(header, "velocity_"+inst.Label)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for frame := 0; frame < results.Summary.FrameCount; frame++ {
		row := []string{
			strconv.Itoa(frame),
			formatFloat(float64(frame) / fps),
		}
		for _, inst := range results.Instances {
			row = append(row, formatFloat(inst.Velocity[frame]*fps))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteDistanceCSV exports the inter-subject distance series. Undefined
// frames are written as empty cells rather than zeros.
func WriteDistanceCSV(path string, results *analysis.Results, fps float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "time_s", "distance"}); err != nil {
		return err
	}
	for frame, d := range results.Distance {
		cell := ""
		if !math.IsNaN(d) {
			cell = formatFloat(d)
		}
		row := []string{strconv.Itoa(frame), formatFloat(float64(frame) / fps), cell}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
