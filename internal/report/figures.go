package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/openbehavior/trackkit/internal/analysis"
	"github.com/openbehavior/trackkit/internal/config"
)

// palette gives each instance a distinct trace colour.
var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
}

// SaveVelocityFigure writes the per-instance velocity traces (units/s) to
// velocity.<format> in dir and returns the file path.
func SaveVelocityFigure(dir string, results *analysis.Results, cfg *config.AnalysisConfig) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Velocity at %s", results.MainNode)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "velocity (units/s)"
	p.Y.Min = cfg.VelocityVMin
	p.Y.Max = cfg.VelocityVMax

	for i, inst := range results.Instances {
		pts := make(plotter.XYs, 0, len(inst.Velocity))
		for f, v := range inst.Velocity {
			pts = append(pts, plotter.XY{X: float64(f) / cfg.FPS, Y: v * cfg.FPS})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(inst.Label, line)
	}
	p.Legend.Top = true

	return savePlot(p, dir, "velocity", cfg)
}

// SaveDistanceFigure writes the inter-subject distance trace to
// distance.<format> in dir. Single-subject runs produce no file and return
// an empty path.
func SaveDistanceFigure(dir string, results *analysis.Results, cfg *config.AnalysisConfig) (string, error) {
	if results.Distance == nil {
		return "", nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Inter-subject distance at %s", results.MainNode)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "distance (units)"

	pts := make(plotter.XYs, 0, len(results.Distance))
	for f, d := range results.Distance {
		if math.IsNaN(d) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(f) / cfg.FPS, Y: d})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.Color = palette[0]
	line.Width = vg.Points(1)
	p.Add(line)

	return savePlot(p, dir, "distance", cfg)
}

// SaveTrajectoryFigure writes the imputed XY trajectories to
// trajectory.<format> in dir.
func SaveTrajectoryFigure(dir string, results *analysis.Results, cfg *config.AnalysisConfig) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trajectories at %s", results.MainNode)
	p.X.Label.Text = "x (units)"
	p.Y.Label.Text = "y (units)"

	for i, inst := range results.Instances {
		pts := make(plotter.XYs, 0, len(inst.Positions))
		for _, pos := range inst.Positions {
			if math.IsNaN(pos[0]) || math.IsNaN(pos[1]) {
				continue
			}
			pts = append(pts, plotter.XY{X: pos[0], Y: pos[1]})
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(inst.Label, line)
	}
	p.Legend.Top = true

	return savePlot(p, dir, "trajectory", cfg)
}

// savePlot writes p to dir/<name>.<format>. PNG output honours the
// configured DPI; the vector formats are resolution-independent and go
// through plot.Save directly.
func savePlot(p *plot.Plot, dir, name string, cfg *config.AnalysisConfig) (string, error) {
	path := filepath.Join(dir, name+"."+cfg.FigureFormat)
	const w, h = 10 * vg.Inch, 5 * vg.Inch

	if cfg.FigureFormat != "png" {
		if err := p.Save(w, h, path); err != nil {
			return "", fmt.Errorf("failed to save %s: %w", path, err)
		}
		return path, nil
	}

	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(cfg.FigureDPI))
	p.Draw(draw.New(c))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
