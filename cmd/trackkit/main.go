// Command trackkit analyses a tracking container export: it reconstructs
// trajectories for a chosen keypoint, derives smoothed velocities and
// inter-subject distances, and writes CSV, figure and HTML reports to a
// timestamped output directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/openbehavior/trackkit/internal/analysis"
	"github.com/openbehavior/trackkit/internal/config"
	"github.com/openbehavior/trackkit/internal/loader"
	"github.com/openbehavior/trackkit/internal/monitoring"
	"github.com/openbehavior/trackkit/internal/report"
	"github.com/openbehavior/trackkit/internal/store"
)

var (
	inputPath  = flag.String("input", "", "Tracking container file (.json) to analyse")
	mainNode   = flag.String("node", "bodycenter", "Node of interest (must match a node name in the container)")
	configPath = flag.String("config", "", "Optional analysis config file (.json)")
	outputDir  = flag.String("out", "trackkit_results", "Directory for result files (a timestamped subdirectory is created)")
	dbPath     = flag.String("db", "", "Optional SQLite results database to record this run in")

	fps          = flag.Float64("fps", 0, "Frame rate override")
	window       = flag.Int("window", 0, "Velocity smoothing window override")
	polyOrder    = flag.Int("poly", -1, "Velocity polynomial order override")
	figureFormat = flag.String("format", "", "Figure format override (pdf, png, svg)")
)

func main() {
	flag.Parse()
	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: trackkit -input tracks.json [-node bodycenter] [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	diag := &monitoring.Diagnostics{}
	cfg, err := loadConfig(diag)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	tensor, nodeNames, err := loader.Load(*inputPath)
	if err != nil {
		log.Fatalf("failed to load %s: %v", *inputPath, err)
	}
	log.Printf("Loaded %s: %d frames, %d nodes, %d instances",
		*inputPath, tensor.Frames(), tensor.Nodes(), tensor.Instances())

	results, err := analysis.Run(tensor, nodeNames, *mainNode, cfg)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	runDir := filepath.Join(*outputDir, time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}

	if err := writeOutputs(runDir, results, cfg); err != nil {
		log.Fatalf("failed to write outputs: %v", err)
	}

	if *dbPath != "" {
		s, err := store.Open(*dbPath)
		if err != nil {
			log.Fatalf("failed to open results database: %v", err)
		}
		defer s.Close()
		id, err := s.SaveRun(*inputPath, cfg, results)
		if err != nil {
			log.Fatalf("failed to record run: %v", err)
		}
		log.Printf("Recorded run %s in %s", id, *dbPath)
	}

	logSummary(results)
	log.Printf("Results written to %s", runDir)
}

// loadConfig builds the effective config: file (if given), then explicit
// flag overrides on top.
func loadConfig(diag *monitoring.Diagnostics) (*config.AnalysisConfig, error) {
	cfg := config.DefaultAnalysisConfig()
	if *configPath != "" {
		loaded, err := config.LoadAnalysisConfig(*configPath, diag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := map[string]interface{}{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps":
			overrides["fps"] = *fps
		case "window":
			overrides["velocity_window"] = *window
		case "poly":
			overrides["velocity_poly_order"] = *polyOrder
		case "format":
			overrides["figure_format"] = *figureFormat
		}
	})
	cfg.Update(overrides, diag)
	return cfg, cfg.Validate()
}

func writeOutputs(dir string, results *analysis.Results, cfg *config.AnalysisConfig) error {
	if err := report.WriteVelocityCSV(filepath.Join(dir, "velocity.csv"), results, cfg.FPS); err != nil {
		return err
	}
	if results.Distance != nil {
		if err := report.WriteDistanceCSV(filepath.Join(dir, "distance.csv"), results, cfg.FPS); err != nil {
			return err
		}
	}
	if _, err := report.SaveVelocityFigure(dir, results, cfg); err != nil {
		return err
	}
	if _, err := report.SaveDistanceFigure(dir, results, cfg); err != nil {
		return err
	}
	if _, err := report.SaveTrajectoryFigure(dir, results, cfg); err != nil {
		return err
	}
	return report.WriteHTMLReport(filepath.Join(dir, "report.html"), results, cfg)
}

func logSummary(results *analysis.Results) {
	s := results.Summary
	log.Printf("Summary: %d frames, %d nodes, %d instances, %.2f%% missing of %d tracking points",
		s.FrameCount, s.NodeCount, s.InstanceCount, s.MissingDataPercentage, s.TotalTrackingPoints)
	for _, inst := range results.Instances {
		log.Printf("%s: mean velocity %.3f units/frame (max %.3f), path length %.1f units",
			inst.Label, inst.VelocityStats.Mean, inst.VelocityStats.Max,
			lastValue(inst.CumulativeDistance))
	}
	if results.Distance != nil {
		log.Printf("Inter-subject distance: mean %.2f, range [%.2f, %.2f]",
			results.DistanceStats.Mean, results.DistanceStats.Min, results.DistanceStats.Max)
	}
	for _, w := range results.Warnings {
		log.Printf("warning: %s", w)
	}
}

func lastValue(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}
