package htmlslide

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fixed conversion constants between CSS pixels and the other units the
// pipeline moves between. PPTX-native EMU conversion itself lives in the
// pptx package (Inch/Point); these convert px to the inch/point domain that
// package's helpers accept.
const (
	PxPerInch  = 96.0
	PtPerPx    = 0.75
	EMUPerInch = 914400
)

// PxToInch converts a CSS pixel length to inches.
func PxToInch(px float64) float64 {
	return px / PxPerInch
}

// PxToPoint converts a CSS pixel length to points.
func PxToPoint(px float64) float64 {
	return px * PtPerPx
}

// singleWeightFonts suppresses bold propagation for font families that ship
// only one weight; requesting a bold face PPTX doesn't have silently falls
// back to a fake-bold no renderer actually applies consistently.
var singleWeightFonts = map[string]bool{
	"impact": true,
}

// IsSingleWeightFont reports whether family (case-insensitive, quotes
// stripped) is known to ship a single weight only.
func IsSingleWeightFont(family string) bool {
	f := strings.ToLower(strings.Trim(strings.TrimSpace(family), `"'`))
	return singleWeightFonts[f]
}

// noColor is the distinguished marker ParseColor returns for text color when
// the computed value is transparent. It is never a valid hex value, so
// callers can compare for equality to detect it cheaply.
const noColor = "NOCOLOR"

// IsNoColor reports whether hex is the distinguished "no color" marker
// ParseColor produces for a transparent text color.
func IsNoColor(hex string) bool {
	return hex == noColor
}

// ParseColor parses a computed CSS color of the form rgb(r,g,b),
// rgba(r,g,b,a), or the literal "transparent", returning a six-hex value (no
// leading '#') and the alpha-derived transparency percent:
// transparency is only non-zero when an explicit alpha
// channel was present in the source text.
//
// asBackground controls how a fully-transparent color resolves: true maps
// it to white (FFFFFF), false maps it to the noColor marker so callers can
// trigger gradient-text recovery.
func ParseColor(s string, asBackground bool) (hex string, transparencyPct int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", 0, fmt.Errorf("parse color %q: empty value", s)
	}
	if s == "transparent" {
		if asBackground {
			return "FFFFFF", 0, nil
		}
		return noColor, 0, nil
	}

	lower := strings.ToLower(s)
	var body string
	hasAlpha := false
	switch {
	case strings.HasPrefix(lower, "rgba("):
		body = s[5 : len(s)-1]
		hasAlpha = true
	case strings.HasPrefix(lower, "rgb("):
		body = s[4 : len(s)-1]
	default:
		return "", 0, fmt.Errorf("parse color %q: unsupported format", s)
	}

	parts := strings.Split(body, ",")
	if len(parts) < 3 {
		return "", 0, fmt.Errorf("parse color %q: expected at least 3 components", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", 0, fmt.Errorf("parse color %q: bad red channel: %w", s, err)
	}
	g, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", 0, fmt.Errorf("parse color %q: bad green channel: %w", s, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return "", 0, fmt.Errorf("parse color %q: bad blue channel: %w", s, err)
	}

	alpha := 1.0
	if hasAlpha && len(parts) >= 4 {
		a, perr := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if perr != nil {
			return "", 0, fmt.Errorf("parse color %q: bad alpha channel: %w", s, perr)
		}
		alpha = a
	}

	if alpha == 0 {
		if asBackground {
			return "FFFFFF", 0, nil
		}
		return noColor, 0, nil
	}
	if hasAlpha {
		transparencyPct = int(math.Round((1 - alpha) * 100))
	}

	return fmt.Sprintf("%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b)), transparencyPct, nil
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// TextTransform is the subset of CSS text-transform this pipeline applies.
type TextTransform string

const (
	TransformNone       TextTransform = "none"
	TransformUppercase  TextTransform = "uppercase"
	TransformLowercase  TextTransform = "lowercase"
	TransformCapitalize TextTransform = "capitalize"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.Und)
)

// ApplyTextTransform applies a single computed text-transform value to s.
// Unrecognized or "none" values return s unchanged.
func ApplyTextTransform(s string, t TextTransform) string {
	switch t {
	case TransformUppercase:
		return upperCaser.String(s)
	case TransformLowercase:
		return lowerCaser.String(s)
	case TransformCapitalize:
		return titleCaser.String(s)
	default:
		return s
	}
}

// ComposeTextTransform applies an ambient transform inherited from an
// ancestor and then a nested transform on the element itself, matching the
// additive way C3 composes inline style toggles while descending.
func ComposeTextTransform(s string, ambient, nested TextTransform) string {
	s = ApplyTextTransform(s, ambient)
	return ApplyTextTransform(s, nested)
}
