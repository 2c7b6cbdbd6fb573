// Package htmlslide converts a single rendered HTML page into a PPTX slide,
// preserving the absolute pixel positions a browser actually laid the page
// out at.
package htmlslide

// Background is the slide's backdrop: either a solid color or a pre-
// rasterized image (a CSS gradient on body is a hard validation error
// rather than something this package attempts to reproduce).
type Background struct {
	Kind  BackgroundKind
	Color string // six-hex, no '#'
	Path  string // image path, when Kind == BackgroundImage
}

type BackgroundKind int

const (
	BackgroundColor BackgroundKind = iota
	BackgroundImage
)

// Placeholder marks a region reserved for downstream chart injection. The
// walker only records its rect; nothing else in this pipeline resolves it.
type Placeholder struct {
	ID            string
	X, Y, W, H    float64 // inches
}

// RasterRequest is one DOM subtree C5 must screenshot before the renderer
// can run. HideChildren instructs C5 to zero descendant opacity and text
// color so only the element's own background is captured.
type RasterRequest struct {
	ID           string
	X, Y, W, H   float64 // inches, element's own box
	HideChildren bool
}

// SlideData is the walker's complete output for one HTML file: everything
// the renderer (C6) needs, plus accumulated diagnostics from the walk.
type SlideData struct {
	Background     *Background
	Elements       []Element
	Placeholders   []Placeholder
	RasterRequests []RasterRequest
	Diagnostics    []Diagnostic
}

// ElementKind tags the variant held by an Element.
type ElementKind int

const (
	ElementText ElementKind = iota
	ElementList
	ElementShape
	ElementLine
	ElementImage
	ElementImagePlaceholder
)

// HorizontalAlign mirrors the three text alignments the renderer supports.
type HorizontalAlign int

const (
	AlignLeft HorizontalAlign = iota
	AlignCenter
	AlignRight
)

// TextStyle carries every style attribute a text/list element's runs need.
type TextStyle struct {
	FontFace        string
	SizePt          float64
	ColorHex        string // six-hex, no '#'
	TransparencyPct int    // 0-100, inverse alpha
	Bold            bool
	Italic          bool
	Underline       bool
	Align           HorizontalAlign
	LineSpacingPt   float64
	SpaceBeforePt   float64
	SpaceAfterPt    float64
	MarginLeftPt    float64
	MarginRightPt   float64
	MarginBottomPt  float64
	MarginTopPt     float64
	RotationDeg     *float64 // nil means no rotation
	Fill            *string  // six-hex, table-cell fill only
	ManualBullet    bool
}

// Run is one styled span of text produced by the inline parser (C3).
type Run struct {
	Text          string
	Options       RunOptions
	Bullet        *BulletMarker // set on the first run of a list item
	BreakLineTail bool          // set on the last run of a non-terminal list item
}

// RunOptions are the style toggles C3 tracks additively while descending
// into an element's children.
type RunOptions struct {
	Bold      bool
	Italic    bool
	Underline bool
	ColorHex  string // empty means inherit
	SizePt    float64
}

// BulletMarker annotates the first run of a list item with its indent.
type BulletMarker struct {
	IndentIn float64
}

// Rect is an absolute position and size in inches from the slide's
// top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Element is one emitted slide primitive. Exactly one of the kind-specific
// field groups below is meaningful, selected by Kind — Go has no sum
// types, so a single struct carries every variant's fields rather than an
// interface hierarchy, since unlike shapes these variants share no common
// method set worth abstracting.
type Element struct {
	Kind ElementKind
	Pos  Rect

	// ElementText / ElementList
	Runs       []Run // ElementList: all items flattened, bullets/breaks annotated
	PlainText  string
	Style      TextStyle
	BulletIndentIn float64
	MarginLeftIn   float64

	// ElementShape
	Fill          *string // six-hex; nil means no fill
	Transparency  *int    // 0-100, nil means opaque/unset
	Line          *ShapeLine
	RectRadiusIn  float64
	Shadow        *ShapeShadow

	// ElementLine
	X1, Y1, X2, Y2 float64 // inches
	WidthPt        float64
	ColorHex       string

	// ElementImage / ElementImagePlaceholder
	Src string // absolute path, or temp PNG after raster substitution
	ID  string // DOM element id, for ElementImagePlaceholder
}

// ShapeLine describes a shape's uniform border.
type ShapeLine struct {
	ColorHex string
	WidthPt  float64
}

// ShapeShadow describes a shape's outer drop shadow (inset shadows are
// discarded — PPTX cannot render them correctly).
type ShapeShadow struct {
	AngleDeg    float64
	DistancePt  float64
	BlurPt      float64
	ColorHex    string
	OpacityPct  float64
}
