package htmlslide

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WritingMode is the subset of CSS writing-mode values that affect rotation.
type WritingMode string

const (
	WritingModeHorizontal WritingMode = "horizontal-tb"
	WritingModeVerticalRL WritingMode = "vertical-rl"
	WritingModeVerticalLR WritingMode = "vertical-lr"
)

// ResolveRotation combines a writing-mode base angle with any CSS transform
// rotation, reducing the sum to [0,360). A result of exactly 0 is returned
// as nil, meaning "no rotation", matching how TextStyle.RotationDeg is
// consumed downstream.
func ResolveRotation(mode WritingMode, transform string) (*float64, error) {
	base := 0.0
	switch mode {
	case WritingModeVerticalRL:
		base = 90
	case WritingModeVerticalLR:
		base = 270
	}

	add, err := parseTransformRotation(transform)
	if err != nil {
		return nil, err
	}

	sum := math.Mod(base+add, 360)
	if sum < 0 {
		sum += 360
	}
	if sum == 0 {
		return nil, nil
	}
	return &sum, nil
}

// parseTransformRotation extracts a rotation angle in degrees from a
// computed transform string, handling both an explicit rotate(Ndeg) and a
// browser-collapsed matrix(a,b,c,d,e,f) via atan2(b,a).
func parseTransformRotation(transform string) (float64, error) {
	transform = strings.TrimSpace(transform)
	if transform == "" || transform == "none" {
		return 0, nil
	}

	lower := strings.ToLower(transform)
	switch {
	case strings.HasPrefix(lower, "rotate("):
		inner := transform[len("rotate(") : len(transform)-1]
		inner = strings.TrimSuffix(strings.TrimSpace(inner), "deg")
		deg, err := strconv.ParseFloat(strings.TrimSpace(inner), 64)
		if err != nil {
			return 0, fmt.Errorf("parse transform %q: %w", transform, err)
		}
		return deg, nil

	case strings.HasPrefix(lower, "matrix("):
		inner := transform[len("matrix(") : len(transform)-1]
		parts := strings.Split(inner, ",")
		if len(parts) < 4 {
			return 0, fmt.Errorf("parse transform %q: expected 6 matrix components", transform)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return 0, fmt.Errorf("parse transform %q: bad a component: %w", transform, err)
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return 0, fmt.Errorf("parse transform %q: bad b component: %w", transform, err)
		}
		return math.Atan2(b, a) * 180 / math.Pi, nil

	default:
		return 0, fmt.Errorf("parse transform %q: unsupported form", transform)
	}
}

// PreRotationBox recovers the unrotated bounding box PPTX must apply
// rotation to. post is the box the browser reports (already rotated for
// 90/270). rotationDeg is nil for "no rotation".
func PreRotationBox(post Rect, rotationDeg *float64) Rect {
	if rotationDeg == nil {
		return post
	}

	cx := post.X + post.W/2
	cy := post.Y + post.H/2

	deg := math.Mod(*rotationDeg, 360)
	if deg < 0 {
		deg += 360
	}

	if deg == 90 || deg == 270 {
		w, h := post.H, post.W
		return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
	}

	// Any other rotation: the element's own offset box, recentred on the
	// post-rotation rect centre (the browser's offsetWidth/offsetHeight are
	// assumed to already be the unrotated box in this case).
	return Rect{X: cx - post.W/2, Y: cy - post.H/2, W: post.W, H: post.H}
}

// BorderRadius converts a computed border-radius value to inches, applying
// the unit-specific conversion and the ≥50% full-circle policy.
func BorderRadius(value string, minDimensionPx float64) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" || value == "0px" {
		return 0, nil
	}

	if strings.HasSuffix(value, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("parse border-radius %q: %w", value, err)
		}
		if pct >= 50 {
			return 1, nil
		}
		return PxToInch(minDimensionPx * pct / 100), nil
	}

	if strings.HasSuffix(value, "pt") {
		pt, err := strconv.ParseFloat(strings.TrimSuffix(value, "pt"), 64)
		if err != nil {
			return 0, fmt.Errorf("parse border-radius %q: %w", value, err)
		}
		return pt / 72, nil
	}

	if strings.HasSuffix(value, "px") {
		px, err := strconv.ParseFloat(strings.TrimSuffix(value, "px"), 64)
		if err != nil {
			return 0, fmt.Errorf("parse border-radius %q: %w", value, err)
		}
		return PxToInch(px), nil
	}

	return 0, fmt.Errorf("parse border-radius %q: unrecognized unit", value)
}

// BoxShadow is a parsed outer box-shadow, ready to become a ShapeShadow.
// Inset shadows are never represented by this type; ParseBoxShadow drops
// them before returning.
type BoxShadow struct {
	AngleDeg   float64
	DistancePt float64
	BlurPt     float64
	ColorHex   string
	OpacityPct float64
}

// ParseBoxShadow parses a single computed box-shadow value of the form
// "rgba(r,g,b,a) Xpx Ypx Bpx [Spx]" (optionally prefixed with "inset").
// Inset shadows are discarded (PPTX doesn't render them correctly) and
// reported via ok=false rather than an error.
func ParseBoxShadow(value string) (shadow BoxShadow, ok bool, err error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return BoxShadow{}, false, nil
	}
	if strings.HasPrefix(strings.ToLower(value), "inset") {
		return BoxShadow{}, false, nil
	}

	colorEnd := strings.Index(value, ")")
	if colorEnd < 0 {
		return BoxShadow{}, false, fmt.Errorf("parse box-shadow %q: missing color", value)
	}
	colorPart := value[:colorEnd+1]
	rest := strings.TrimSpace(value[colorEnd+1:])

	hex, _, perr := ParseColor(colorPart, false)
	if perr != nil {
		return BoxShadow{}, false, fmt.Errorf("parse box-shadow %q: %w", value, perr)
	}

	opacity := 0.5
	if a := alphaOf(colorPart); a != nil {
		opacity = *a
	}

	fields := strings.Fields(rest)
	if len(fields) < 3 {
		return BoxShadow{}, false, fmt.Errorf("parse box-shadow %q: expected X Y blur", value)
	}
	x, err := parsePxValue(fields[0])
	if err != nil {
		return BoxShadow{}, false, fmt.Errorf("parse box-shadow %q: %w", value, err)
	}
	y, err := parsePxValue(fields[1])
	if err != nil {
		return BoxShadow{}, false, fmt.Errorf("parse box-shadow %q: %w", value, err)
	}
	blur, err := parsePxValue(fields[2])
	if err != nil {
		return BoxShadow{}, false, fmt.Errorf("parse box-shadow %q: %w", value, err)
	}

	return BoxShadow{
		AngleDeg:   math.Atan2(y, x) * 180 / math.Pi,
		DistancePt: math.Hypot(x, y) * PtPerPx,
		BlurPt:     blur * PtPerPx,
		ColorHex:   hex,
		OpacityPct: opacity * 100,
	}, true, nil
}

func parsePxValue(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

// alphaOf extracts the alpha channel from an rgba(...) string, or nil if
// the color carries no explicit alpha.
func alphaOf(rgba string) *float64 {
	lower := strings.ToLower(rgba)
	if !strings.HasPrefix(lower, "rgba(") {
		return nil
	}
	body := rgba[5 : len(rgba)-1]
	parts := strings.Split(body, ",")
	if len(parts) < 4 {
		return nil
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return nil
	}
	return &a
}
