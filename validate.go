package htmlslide

import "fmt"

// Validator accumulates diagnostics across a slide's pre-walk, during-walk,
// and post-walk validation passes. The walker and orchestrator each append
// to the same Validator instance so a single pass can report every issue
// at once instead of aborting at the first fatal one.
type Validator struct {
	diagnostics []Diagnostic
}

// Diagnostics returns every diagnostic recorded so far.
func (v *Validator) Diagnostics() []Diagnostic {
	return v.diagnostics
}

// HasFatal reports whether any recorded diagnostic is fatal.
func (v *Validator) HasFatal() bool {
	return HasFatal(v.diagnostics)
}

func (v *Validator) warn(kind ErrorKind, nodeID, format string, args ...any) {
	v.diagnostics = append(v.diagnostics, Diagnostic{
		Kind: kind, Severity: SeverityWarning, NodeID: nodeID,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *Validator) fatal(kind ErrorKind, nodeID, format string, args ...any) {
	v.diagnostics = append(v.diagnostics, Diagnostic{
		Kind: kind, Severity: SeverityFatal, NodeID: nodeID,
		Message: fmt.Sprintf(format, args...),
	})
}

// PreWalk checks the body's computed dimensions against its scroll extents
// and the declared presentation layout, before the walker runs.
func (v *Validator) PreWalk(bodyW, bodyH, scrollW, scrollH, layoutW, layoutH float64) {
	if scrollW-bodyW > 1.0/72 || scrollH-bodyH > 1.0/72 {
		v.warn(KindDegenerateGeometry, "", "body content overflows computed size by more than 1pt (scroll %.2fx%.2f vs %.2fx%.2f)", scrollW, scrollH, bodyW, bodyH)
	}
	if absF(bodyW-layoutW) > 0.1 || absF(bodyH-layoutH) > 0.1 {
		v.warn(KindDegenerateGeometry, "", "body dimensions (%.2f\"x%.2f\") disagree with declared layout (%.2f\"x%.2f\") by more than 0.1\"", bodyW, bodyH, layoutW, layoutH)
	}
}

// BodyGradient records the hard error for a CSS gradient on the body
// background; the caller must pre-rasterize instead.
func (v *Validator) BodyGradient() {
	v.fatal(KindUnsupportedCSS, "", "body background is a CSS gradient; pre-rasterize to an image")
}

// TextTagProhibitedStyling records the fatal error for a text-only tag
// carrying background, border, or shadow styling it isn't allowed to.
func (v *Validator) TextTagProhibitedStyling(nodeID, tag string) {
	v.fatal(KindStructuralProhibition, nodeID, "%s carries background/border/shadow styling, which is prohibited on text-only tags", tag)
}

// ZeroAreaPlaceholder records the fatal error for a placeholder element
// with no area.
func (v *Validator) ZeroAreaPlaceholder(nodeID string) {
	v.fatal(KindDegenerateGeometry, nodeID, "placeholder has zero area")
}

// RasterFailure records a non-fatal raster capture failure; the caller is
// expected to drop the corresponding placeholder.
func (v *Validator) RasterFailure(nodeID string, err error) {
	v.warn(KindRasterFailure, nodeID, "raster capture failed: %v", err)
}

// PostWalk flags large text sitting close to the slide's bottom edge,
// which is likely to visually overflow even though it is not fatal.
func (v *Validator) PostWalk(elements []Element, slideH float64) {
	for _, el := range elements {
		if el.Kind != ElementText {
			continue
		}
		if el.Style.SizePt <= 12 {
			continue
		}
		bottom := el.Pos.Y + el.Pos.H
		if slideH-bottom < 0.5 {
			v.warn(KindDegenerateGeometry, "", "text with font size %.1fpt sits within 0.5\" of the slide bottom; likely overflow", el.Style.SizePt)
		}
	}
}

// CombinedError builds the *ConvertError the orchestrator returns when
// HasFatal is true, prepending path exactly once.
func (v *Validator) CombinedError(path string) error {
	if !v.HasFatal() {
		return nil
	}
	return &ConvertError{Path: path, Diagnostics: v.diagnostics}
}

func absF(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
