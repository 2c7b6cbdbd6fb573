package htmlslide

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a diagnostic raised while converting one slide.
// These mirror the five failure categories the conversion pipeline
// distinguishes: bad input CSS, prohibited styling on text tags,
// degenerate geometry, raster capture failures, and browser failures.
type ErrorKind int

const (
	KindUnsupportedCSS ErrorKind = iota
	KindStructuralProhibition
	KindDegenerateGeometry
	KindRasterFailure
	KindBrowserFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedCSS:
		return "unsupported-css"
	case KindStructuralProhibition:
		return "structural-prohibition"
	case KindDegenerateGeometry:
		return "degenerate-geometry"
	case KindRasterFailure:
		return "raster-failure"
	case KindBrowserFailure:
		return "browser-failure"
	default:
		return "unknown"
	}
}

// Severity distinguishes diagnostics that block slide emission from those
// that are logged but otherwise ignored.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityFatal
)

// Diagnostic is one accumulated issue found while walking, rasterizing, or
// validating a slide.
type Diagnostic struct {
	Kind     ErrorKind
	Severity Severity
	Message  string
	NodeID   string // DOM element id this diagnostic refers to, if any
}

func (d Diagnostic) String() string {
	if d.NodeID != "" {
		return fmt.Sprintf("[%s] %s (node %s)", d.Kind, d.Message, d.NodeID)
	}
	return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
}

// ConvertError aggregates every fatal diagnostic recorded while converting
// one HTML file. The caller's file path is prepended exactly once.
type ConvertError struct {
	Path        string
	Diagnostics []Diagnostic
}

func (e *ConvertError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.String()
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(msgs, "; "))
}

// HasFatal reports whether diags contains at least one SeverityFatal entry.
func HasFatal(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}
