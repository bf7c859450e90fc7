package monitoring

import (
	"fmt"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	orig := Logf
	defer SetLogger(orig)

	var captured []string
	SetLogger(func(format string, v ...interface{}) {
		captured = append(captured, fmt.Sprintf(format, v...))
	})

	Logf("hello %s", "world")
	if len(captured) != 1 || captured[0] != "hello world" {
		t.Errorf("captured = %v, want [hello world]", captured)
	}

	// nil installs a no-op logger rather than panicking
	SetLogger(nil)
	Logf("dropped")
	if len(captured) != 1 {
		t.Errorf("no-op logger still captured output: %v", captured)
	}
}

func TestDiagnosticsCollects(t *testing.T) {
	orig := Logf
	defer SetLogger(orig)

	var logged []string
	SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})

	d := &Diagnostics{}
	d.Warnf("window clamped from %d to %d", 25, 9)
	d.Warnf("unknown parameter %q ignored", "invalid_param")

	warnings := d.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2", len(warnings))
	}
	if warnings[0] != "window clamped from 25 to 9" {
		t.Errorf("warnings[0] = %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "invalid_param") {
		t.Errorf("warnings[1] = %q, want mention of invalid_param", warnings[1])
	}

	// Mirrored to the package logger with a warning prefix.
	if len(logged) != 2 || !strings.HasPrefix(logged[0], "warning: ") {
		t.Errorf("logged = %v", logged)
	}

	// Returned slice is a copy.
	warnings[0] = "mutated"
	if d.Warnings()[0] == "mutated" {
		t.Error("Warnings returned internal slice, not a copy")
	}
}

func TestNilDiagnostics(t *testing.T) {
	orig := Logf
	defer SetLogger(orig)
	SetLogger(nil)

	var d *Diagnostics
	d.Warnf("goes nowhere %d", 1)
	if got := d.Warnings(); got != nil {
		t.Errorf("nil Diagnostics returned warnings: %v", got)
	}
}
