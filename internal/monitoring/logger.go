package monitoring

import (
	"fmt"
	"log"
	"sync"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Diagnostics collects structured warnings emitted by analysis stages that
// degrade gracefully instead of failing (clamped smoothing windows, unknown
// config fields, all-missing series). Each warning is mirrored to Logf so it
// shows up in normal logs, and retained so callers can inspect what happened
// after a run.
//
// A nil *Diagnostics is valid: warnings still go to Logf, nothing is retained.
type Diagnostics struct {
	mu       sync.Mutex
	warnings []string
}

// Warnf records a warning and mirrors it to the package logger.
func (d *Diagnostics) Warnf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	Logf("warning: %s", msg)
	if d == nil {
		return
	}
	d.mu.Lock()
	d.warnings = append(d.warnings, msg)
	d.mu.Unlock()
}

// Warnings returns a copy of all recorded warnings in emission order.
func (d *Diagnostics) Warnings() []string {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.warnings))
	copy(out, d.warnings)
	return out
}
