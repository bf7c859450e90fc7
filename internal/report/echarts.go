package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/openbehavior/trackkit/internal/analysis"
	"github.com/openbehavior/trackkit/internal/config"
)

// maxChartPoints bounds the samples per trace in the HTML report to keep the
// payload responsive on long recordings.
const maxChartPoints = 8000

// WriteHTMLReport renders an interactive report with the velocity and
// inter-subject distance traces for one analysis run.
func WriteHTMLReport(path string, results *analysis.Results, cfg *config.AnalysisConfig) error {
	page := components.NewPage()
	page.AddCharts(velocityLineChart(results, cfg))
	if results.Distance != nil {
		page.AddCharts(distanceLineChart(results, cfg))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func velocityLineChart(results *analysis.Results, cfg *config.AnalysisConfig) *charts.Line {
	data := PrepareVelocityChart(results, cfg.FPS, maxChartPoints)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Velocity at %s", results.MainNode),
			Subtitle: fmt.Sprintf("%d frames, %d instances, %.2f%% missing data",
				results.Summary.FrameCount, results.Summary.InstanceCount,
				results.Summary.MissingDataPercentage),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "velocity (units/s)", Min: cfg.VelocityVMin, Max: cfg.VelocityVMax}),
	)

	if len(data.Series) > 0 {
		xs := make([]string, 0, len(data.Series[0].Points))
		for _, p := range data.Series[0].Points {
			xs = append(xs, fmt.Sprintf("%.2f", p.Time))
		}
		line.SetXAxis(xs)
	}
	for _, trace := range data.Series {
		ys := make([]opts.LineData, 0, len(trace.Points))
		for _, p := range trace.Points {
			ys = append(ys, opts.LineData{Value: p.Value})
		}
		line.AddSeries(trace.Name, ys)
	}
	return line
}

func distanceLineChart(results *analysis.Results, cfg *config.AnalysisConfig) *charts.Line {
	data := PrepareDistanceChart(results, cfg.FPS, maxChartPoints)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Inter-subject distance at %s", results.MainNode),
			Subtitle: fmt.Sprintf("mean %.2f, range [%.2f, %.2f]", results.DistanceStats.Mean, results.DistanceStats.Min, results.DistanceStats.Max),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "distance (units)"}),
	)

	for _, trace := range data.Series {
		xs := make([]string, 0, len(trace.Points))
		ys := make([]opts.LineData, 0, len(trace.Points))
		for _, p := range trace.Points {
			xs = append(xs, fmt.Sprintf("%.2f", p.Time))
			ys = append(ys, opts.LineData{Value: p.Value})
		}
		line.SetXAxis(xs)
		line.AddSeries(trace.Name, ys)
	}
	return line
}
