package htmlslide

// StyledNode is a pre-materialized snapshot of one DOM element: its
// computed style properties, its geometry, and its children, in document
// order. The walker (C4) and the inline run parser (C3) operate entirely
// against this tree rather than a live DOM, so both are unit-testable
// without a browser: production code populates a StyledNode tree with one
// JS snapshot script evaluated over chromedp's live page (see snapshot.go);
// tests build the tree by hand or via goquery over a static HTML fixture.
type StyledNode struct {
	// ID is the DOM element id. SnapshotDOM gives every live element that
	// has none a generated id, since raster capture looks nodes up by id
	// for the rest of the slide's lifecycle; the walker assigns a synthetic
	// one (via idOf) to nodes that still arrive without one, such as
	// hand-built fixtures.
	ID string

	// Tag is the upper-cased tag name ("DIV", "SPAN", "P", ...).
	Tag string

	// Classes is the element's class list, split on whitespace.
	Classes []string

	// Text is the node's own direct text content (not descendants'), with
	// no trimming applied.
	Text string

	// Children are this node's element children, in document order. Text
	// nodes interleaved between elements are not modeled here; their
	// content is concatenated into the parent's Text.
	Children []*StyledNode

	// Box is the node's post-rotation, post-layout rect in CSS pixels,
	// relative to the viewport's top-left as getBoundingClientRect reports
	// it; this is the slide canvas origin only when the body sits at the
	// viewport's top-left.
	Box PixelRect

	// Computed holds every computed style property this pipeline reads,
	// keyed by CSS property name exactly as returned by
	// getComputedStyle(node)[prop].
	Computed map[string]string

	// Attrs holds DOM attributes beyond ID/Classes, keyed by attribute
	// name: src and href from SnapshotDOM, every attribute other than id
	// and class from BuildStyledNodeFromHTML.
	Attrs map[string]string
}

// PixelRect is a rect in CSS pixels, as reported by the browser's
// getBoundingClientRect (or a fixture standing in for it).
type PixelRect struct {
	X, Y, W, H float64
}

// Style returns the computed value of prop, or "" if unset.
func (n *StyledNode) Style(prop string) string {
	if n == nil || n.Computed == nil {
		return ""
	}
	return n.Computed[prop]
}

// Attr returns the DOM attribute value, or "" if unset.
func (n *StyledNode) Attr(name string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

// HasClass reports whether class is present in the node's class list.
func (n *StyledNode) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Area returns the node's box area in square pixels, used by every
// non-zero-area check the walker and validator perform.
func (n *StyledNode) Area() float64 {
	return n.Box.W * n.Box.H
}
