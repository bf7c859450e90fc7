// Package config holds the analysis parameter schema shared by the
// kinematics stages, the report writers and the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/openbehavior/trackkit/internal/monitoring"
)

// FigureFormats enumerates the accepted figure output formats.
var FigureFormats = []string{"pdf", "png", "svg"}

// AnalysisConfig is the closed set of tunable analysis parameters. The zero
// value is not useful; construct with DefaultAnalysisConfig and adjust via
// Update or LoadAnalysisConfig.
//
// FPS only scales velocity-to-time conversion performed by callers; the
// kinematics stages themselves are frame-rate-agnostic. VelocityVMin/VMax,
// FigureFormat, FigureDPI and Colormap are consumed by the report writers
// and have no effect on numeric results.
type AnalysisConfig struct {
	FPS               float64 `json:"fps"`
	VelocityWindow    int     `json:"velocity_window"`
	VelocityPolyOrder int     `json:"velocity_poly_order"`
	VelocityVMin      float64 `json:"velocity_vmin"`
	VelocityVMax      float64 `json:"velocity_vmax"`
	FigureFormat      string  `json:"figure_format"`
	FigureDPI         int     `json:"figure_dpi"`
	Colormap          string  `json:"colormap"`
}

// DefaultAnalysisConfig returns the standard parameter set for 30 fps
// recordings.
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		FPS:               30,
		VelocityWindow:    25,
		VelocityPolyOrder: 3,
		VelocityVMin:      0,
		VelocityVMax:      20,
		FigureFormat:      "pdf",
		FigureDPI:         300,
		Colormap:          "plasma",
	}
}

// Update applies a set of named parameter values, as arriving from an
// external textual source (CLI key=value pairs, decoded JSON). Recognized
// fields are overwritten after validation; an unknown field name or an
// invalid value is reported through diag and skipped, leaving the rest of
// the update intact. Update never fails.
//
// Numeric coercion stays within kinds: int fields accept integral float64
// (the JSON number type) but a fractional value is rejected with a warning
// rather than silently truncated.
func (c *AnalysisConfig) Update(fields map[string]interface{}, diag *monitoring.Diagnostics) {
	for name, value := range fields {
		switch name {
		case "fps":
			if v, ok := asFloat(value); ok && v > 0 {
				c.FPS = v
			} else {
				diag.Warnf("invalid value %v for parameter 'fps' ignored (want a positive number)", value)
			}
		case "velocity_window":
			if v, ok := asInt(value); ok && v > 0 {
				c.VelocityWindow = v
			} else {
				diag.Warnf("invalid value %v for parameter 'velocity_window' ignored (want a positive integer)", value)
			}
		case "velocity_poly_order":
			if v, ok := asInt(value); ok && v >= 0 {
				c.VelocityPolyOrder = v
			} else {
				diag.Warnf("invalid value %v for parameter 'velocity_poly_order' ignored (want a non-negative integer)", value)
			}
		case "velocity_vmin":
			if v, ok := asFloat(value); ok && v >= 0 {
				c.VelocityVMin = v
			} else {
				diag.Warnf("invalid value %v for parameter 'velocity_vmin' ignored (want a number >= 0)", value)
			}
		case "velocity_vmax":
			if v, ok := asFloat(value); ok {
				c.VelocityVMax = v
			} else {
				diag.Warnf("invalid value %v for parameter 'velocity_vmax' ignored (want a number)", value)
			}
		case "figure_format":
			if v, ok := value.(string); ok && validFigureFormat(v) {
				c.FigureFormat = v
			} else {
				diag.Warnf("invalid value %v for parameter 'figure_format' ignored (want one of %v)", value, FigureFormats)
			}
		case "figure_dpi":
			if v, ok := asInt(value); ok && v > 0 {
				c.FigureDPI = v
			} else {
				diag.Warnf("invalid value %v for parameter 'figure_dpi' ignored (want a positive integer)", value)
			}
		case "colormap":
			if v, ok := value.(string); ok && v != "" {
				c.Colormap = v
			} else {
				diag.Warnf("invalid value %v for parameter 'colormap' ignored (want a palette name)", value)
			}
		default:
			diag.Warnf("unknown parameter %q ignored", name)
		}
	}
}

// Validate checks cross-field constraints that Update cannot enforce
// field-by-field.
func (c *AnalysisConfig) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", c.FPS)
	}
	if c.VelocityWindow <= 0 {
		return fmt.Errorf("velocity_window must be positive, got %d", c.VelocityWindow)
	}
	if c.VelocityPolyOrder < 0 {
		return fmt.Errorf("velocity_poly_order must be non-negative, got %d", c.VelocityPolyOrder)
	}
	if c.VelocityVMin < 0 {
		return fmt.Errorf("velocity_vmin must be non-negative, got %v", c.VelocityVMin)
	}
	if c.VelocityVMax <= c.VelocityVMin {
		return fmt.Errorf("velocity_vmax (%v) must exceed velocity_vmin (%v)", c.VelocityVMax, c.VelocityVMin)
	}
	if !validFigureFormat(c.FigureFormat) {
		return fmt.Errorf("figure_format must be one of %v, got %q", FigureFormats, c.FigureFormat)
	}
	if c.FigureDPI <= 0 {
		return fmt.Errorf("figure_dpi must be positive, got %d", c.FigureDPI)
	}
	if c.Colormap == "" {
		return fmt.Errorf("colormap must not be empty")
	}
	return nil
}

// LoadAnalysisConfig loads parameters from a JSON file on top of the
// defaults. Fields omitted from the file retain their default values, so
// partial configs are safe; unknown fields warn and are ignored per Update.
// The file must have a .json extension and stay under the max file size.
func LoadAnalysisConfig(path string, diag *monitoring.Diagnostics) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := DefaultAnalysisConfig()
	cfg.Update(fields, diag)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func validFigureFormat(format string) bool {
	for _, f := range FigureFormats {
		if f == format {
			return true
		}
	}
	return false
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return int(x), true
		}
	}
	return 0, false
}
