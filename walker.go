package htmlslide

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// manualBulletGlyphs are the literal characters recognized as a manual
// bullet at the start of a text node, distinct from a real <li> bullet.
var manualBulletGlyphs = []string{"•", "-", "*", "▪", "▸"}

// Walker performs the single depth-first traversal deciding, per element,
// whether it becomes a text frame, a shape, a raster fragment, a line, a
// bullet list, or nothing. It owns the processed set, the deferred-icons
// tail list, and the accumulated SlideData for one slide.
type Walker struct {
	data      SlideData
	validator *Validator

	processed      map[*StyledNode]bool
	styledSpanPar  map[*StyledNode]bool
	deferredIcons  []deferredIcon
	nodeIDs        map[*StyledNode]string
}

type deferredIcon struct {
	node *StyledNode
	pos  Rect
}

// NewWalker creates a Walker that reports diagnostics to v.
func NewWalker(v *Validator) *Walker {
	return &Walker{
		validator:     v,
		processed:     map[*StyledNode]bool{},
		styledSpanPar: map[*StyledNode]bool{},
		nodeIDs:       map[*StyledNode]string{},
	}
}

// Walk runs the traversal over body, returning the accumulated SlideData.
// body's own box is assumed to already be the slide canvas.
func (w *Walker) Walk(body *StyledNode) SlideData {
	w.scanStyledSpanParents(body)
	w.visit(body)

	for _, d := range w.deferredIcons {
		w.data.Elements = append(w.data.Elements, Element{
			Kind: ElementImagePlaceholder,
			Pos:  d.pos,
			ID:   w.idOf(d.node),
		})
	}

	return w.data
}

// idOf returns a node's DOM id, assigning a stable synthetic one via uuid
// if the node arrived without one. Once assigned an id is cached so the
// node keeps it for the rest of the slide's lifecycle.
func (w *Walker) idOf(n *StyledNode) string {
	if n.ID != "" {
		return n.ID
	}
	if id, ok := w.nodeIDs[n]; ok {
		return id
	}
	id := "htmlslide-" + uuid.NewString()
	w.nodeIDs[n] = id
	return id
}

// scanStyledSpanParents marks every DIV that directly contains a SPAN with
// a non-transparent background and non-zero area, before the main walk, so
// those DIVs are exempted from leaf-DIV treatment later.
func (w *Walker) scanStyledSpanParents(n *StyledNode) {
	if n.Tag == "DIV" {
		for _, c := range n.Children {
			if c.Tag == "SPAN" && hasVisibleBackground(c) && c.Area() > 0 {
				w.styledSpanPar[n] = true
				break
			}
		}
	}
	for _, c := range n.Children {
		w.scanStyledSpanParents(c)
	}
}

func hasVisibleBackground(n *StyledNode) bool {
	bg := n.Style("background-color")
	if bg == "" || bg == "transparent" || bg == "rgba(0, 0, 0, 0)" {
		return n.Style("background-image") != "" && n.Style("background-image") != "none"
	}
	return true
}

func hasBorder(n *StyledNode) bool {
	for _, side := range []string{"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"} {
		if w := n.Style(side); w != "" && w != "0px" {
			return true
		}
	}
	return false
}

func hasShadow(n *StyledNode) bool {
	s := n.Style("box-shadow")
	return s != "" && s != "none"
}

var textOnlyTags = map[string]bool{
	"P": true, "H1": true, "H2": true, "H3": true, "H4": true, "H5": true, "H6": true,
	"UL": true, "OL": true, "LI": true,
}

func isTextOnlyTag(tag string) bool {
	return textOnlyTags[tag]
}

// visit applies the per-element decision cascade to n and, where the rule
// doesn't claim all descendants, recurses into its children.
func (w *Walker) visit(n *StyledNode) {
	if w.processed[n] {
		return
	}

	pos := PreRotationBox(Rect{X: PxToInch(n.Box.X), Y: PxToInch(n.Box.Y), W: PxToInch(n.Box.W), H: PxToInch(n.Box.H)}, w.rotationOf(n))

	// Rule 1: text-tag sanity.
	if isTextOnlyTag(n.Tag) && n.Tag != "TH" && n.Tag != "TD" {
		if hasVisibleBackground(n) || hasBorder(n) || hasShadow(n) {
			w.validator.TextTagProhibitedStyling(w.idOf(n), n.Tag)
			w.processed[n] = true
			return
		}
	}

	// Rule 2: placeholder.
	if n.HasClass("placeholder") {
		id := w.idOf(n)
		if n.Area() == 0 {
			w.validator.ZeroAreaPlaceholder(id)
		} else {
			w.data.Placeholders = append(w.data.Placeholders, Placeholder{ID: id, X: pos.X, Y: pos.Y, W: pos.W, H: pos.H})
		}
		w.processed[n] = true
		return
	}

	// Rule 3: IMG.
	if n.Tag == "IMG" {
		fit := n.Style("object-fit")
		if fit == "cover" || fit == "contain" {
			w.requestRaster(n, pos, false)
		} else {
			w.data.Elements = append(w.data.Elements, Element{Kind: ElementImage, Pos: pos, Src: n.Attr("src")})
		}
		w.processed[n] = true
		return
	}

	// Rule 4: SVG.
	if n.Tag == "SVG" {
		w.requestRaster(n, pos, false)
		w.markDescendantsProcessed(n)
		w.processed[n] = true
		return
	}

	// Rule 5: standalone icon.
	if IsIconElement(n) {
		w.requestRaster(n, pos, false)
		w.markDescendantsProcessed(n)
		w.processed[n] = true
		return
	}

	// Rule 6: styled SPAN with background.
	if n.Tag == "SPAN" && hasVisibleBackground(n) {
		id := w.idOf(n)
		w.data.RasterRequests = append(w.data.RasterRequests, RasterRequest{ID: id, X: pos.X, Y: pos.Y, W: pos.W, H: pos.H, HideChildren: true})
		w.data.Elements = append(w.data.Elements, Element{Kind: ElementImagePlaceholder, Pos: pos, ID: id})
		w.data.Elements = append(w.data.Elements, w.textElement(n, pos))
		w.processed[n] = true
		return
	}

	// Rule 7: DIV with background-image.
	if n.Tag == "DIV" && n.Style("background-image") != "" && n.Style("background-image") != "none" {
		w.requestRaster(n, pos, true)
		w.deferIconsWithin(n)
		if !w.isSlideRoot(n) {
			w.markDescendantsProcessed(n)
			w.processed[n] = true
		}
		return
	}

	// Rule 8: DIV with solid background or border, no background image.
	if n.Tag == "DIV" && (hasVisibleBackground(n) || hasBorder(n)) {
		if !hasMeaningfulText(n) {
			w.requestRaster(n, pos, false)
			w.markDescendantsProcessed(n)
			w.processed[n] = true
			return
		}

		if !hasVisibleBackground(n) {
			// Border only, no background: represent the border as line
			// elements, never a shape (a shape with no fill has nothing of
			// its own to show).
			w.data.Elements = append(w.data.Elements, borderLines(n, pos)...)
			w.processed[n] = true
			for _, c := range n.Children {
				w.visit(c)
			}
			return
		}

		shape := Element{Kind: ElementShape, Pos: pos}
		if fill := n.Style("background-color"); fill != "" {
			hex, _, err := ParseColor(fill, true)
			if err == nil {
				shape.Fill = &hex
			}
		}
		if radius, err := BorderRadius(n.Style("border-radius"), minF(n.Box.W, n.Box.H)); err == nil {
			shape.RectRadiusIn = radius
		}
		if shadow, ok, err := ParseBoxShadow(n.Style("box-shadow")); err == nil && ok {
			shape.Shadow = &ShapeShadow{AngleDeg: shadow.AngleDeg, DistancePt: shadow.DistancePt, BlurPt: shadow.BlurPt, ColorHex: shadow.ColorHex, OpacityPct: shadow.OpacityPct}
		}

		if uniform, width, color := uniformBorder(n); uniform {
			if width > 0 {
				shape.Line = &ShapeLine{ColorHex: color, WidthPt: width}
			}
			w.data.Elements = append(w.data.Elements, shape)
		} else {
			w.data.Elements = append(w.data.Elements, shape)
			w.data.Elements = append(w.data.Elements, borderLines(n, pos)...)
		}

		w.processed[n] = true
		for _, c := range n.Children {
			w.visit(c)
		}
		return
	}

	// Rule 9: UL/OL.
	if n.Tag == "UL" || n.Tag == "OL" {
		w.visitList(n, pos)
		w.processed[n] = true
		return
	}

	// Rule 10: leaf DIV.
	if n.Tag == "DIV" && isLeafDiv(n) && !w.styledSpanPar[n] && hasVisibleText(n) {
		w.data.Elements = append(w.data.Elements, w.textElement(n, pos))
		w.processed[n] = true
		return
	}

	// Rule 11: standalone SPAN.
	if n.Tag == "SPAN" && hasVisibleText(n) {
		w.data.Elements = append(w.data.Elements, w.textElement(n, pos))
		w.processed[n] = true
		return
	}

	// Rule 12: text-tag fallback.
	if n.Tag == "P" || strings.HasPrefix(n.Tag, "H") || n.Tag == "TH" || n.Tag == "TD" {
		w.data.Elements = append(w.data.Elements, w.textElement(n, pos))
		w.processed[n] = true
		return
	}

	// No rule matched: descend without emitting.
	w.processed[n] = true
	for _, c := range n.Children {
		w.visit(c)
	}
}

func (w *Walker) rotationOf(n *StyledNode) *float64 {
	mode := WritingMode(n.Style("writing-mode"))
	if mode == "" {
		mode = WritingModeHorizontal
	}
	rot, err := ResolveRotation(mode, n.Style("transform"))
	if err != nil {
		return nil
	}
	return rot
}

func (w *Walker) requestRaster(n *StyledNode, pos Rect, hideChildren bool) {
	id := w.idOf(n)
	w.data.RasterRequests = append(w.data.RasterRequests, RasterRequest{ID: id, X: pos.X, Y: pos.Y, W: pos.W, H: pos.H, HideChildren: hideChildren})
	w.data.Elements = append(w.data.Elements, Element{Kind: ElementImagePlaceholder, Pos: pos, ID: id})
}

func (w *Walker) markDescendantsProcessed(n *StyledNode) {
	for _, c := range n.Children {
		w.processed[c] = true
		w.markDescendantsProcessed(c)
	}
}

func (w *Walker) isSlideRoot(n *StyledNode) bool {
	return n.Tag == "BODY"
}

// deferIconsWithin finds Font-Awesome-like icons nested within n and
// defers their raster emission to the tail of the element list so they
// render above all earlier backgrounds.
func (w *Walker) deferIconsWithin(n *StyledNode) {
	for _, c := range n.Children {
		if IsIconElement(c) {
			pos := PreRotationBox(Rect{X: PxToInch(c.Box.X), Y: PxToInch(c.Box.Y), W: PxToInch(c.Box.W), H: PxToInch(c.Box.H)}, w.rotationOf(c))
			id := w.idOf(c)
			w.data.RasterRequests = append(w.data.RasterRequests, RasterRequest{ID: id, X: pos.X, Y: pos.Y, W: pos.W, H: pos.H})
			w.deferredIcons = append(w.deferredIcons, deferredIcon{node: c, pos: pos})
			w.processed[c] = true
		}
		w.deferIconsWithin(c)
	}
}

func hasMeaningfulText(n *StyledNode) bool {
	if hasVisibleText(n) {
		return true
	}
	for _, c := range n.Children {
		if !IsIconElement(c) && hasMeaningfulText(c) {
			return true
		}
	}
	return false
}

func hasVisibleText(n *StyledNode) bool {
	return strings.TrimSpace(n.Text) != ""
}

func isLeafDiv(n *StyledNode) bool {
	for _, c := range n.Children {
		if isBlockLevel(c.Tag) {
			return false
		}
	}
	return true
}

var blockLevelTags = map[string]bool{
	"DIV": true, "P": true, "UL": true, "OL": true, "H1": true, "H2": true,
	"H3": true, "H4": true, "H5": true, "H6": true, "TABLE": true,
}

func isBlockLevel(tag string) bool {
	return blockLevelTags[tag]
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// uniformBorder reports whether all four border sides share width and
// color, returning that shared width (pt) and color when so.
func uniformBorder(n *StyledNode) (uniform bool, widthPt float64, colorHex string) {
	sides := []string{"top", "right", "bottom", "left"}
	var widths []float64
	var colors []string
	for _, s := range sides {
		wv := n.Style("border-" + s + "-width")
		px := 0.0
		if strings.HasSuffix(wv, "px") {
			px = parseFloatOr0(strings.TrimSuffix(wv, "px"))
		}
		widths = append(widths, px)
		colors = append(colors, n.Style("border-"+s+"-color"))
	}
	for i := 1; i < 4; i++ {
		if widths[i] != widths[0] || colors[i] != colors[0] {
			return false, 0, ""
		}
	}
	hex, _, err := ParseColor(colors[0], false)
	if err != nil {
		hex = "000000"
	}
	return true, PxToPoint(widths[0]), hex
}

// borderLines emits up to four line elements for a non-uniform border,
// each inset by half its width to centre on the edge.
func borderLines(n *StyledNode, pos Rect) []Element {
	var lines []Element
	type side struct {
		name string
	}
	for _, s := range []side{{"top"}, {"right"}, {"bottom"}, {"left"}} {
		wv := n.Style("border-" + s.name + "-width")
		if wv == "" || wv == "0px" {
			continue
		}
		px := parseFloatOr0(strings.TrimSuffix(wv, "px"))
		if px == 0 {
			continue
		}
		widthPt := PxToPoint(px)
		insetIn := PxToInch(px) / 2
		hex, _, err := ParseColor(n.Style("border-"+s.name+"-color"), false)
		if err != nil {
			hex = "000000"
		}

		var l Element
		l.Kind = ElementLine
		l.WidthPt = widthPt
		l.ColorHex = hex
		switch s.name {
		case "top":
			l.X1, l.Y1 = pos.X, pos.Y+insetIn
			l.X2, l.Y2 = pos.X+pos.W, pos.Y+insetIn
		case "bottom":
			l.X1, l.Y1 = pos.X, pos.Y+pos.H-insetIn
			l.X2, l.Y2 = pos.X+pos.W, pos.Y+pos.H-insetIn
		case "left":
			l.X1, l.Y1 = pos.X+insetIn, pos.Y
			l.X2, l.Y2 = pos.X+insetIn, pos.Y+pos.H
		case "right":
			l.X1, l.Y1 = pos.X+pos.W-insetIn, pos.Y
			l.X2, l.Y2 = pos.X+pos.W-insetIn, pos.Y+pos.H
		}
		lines = append(lines, l)
	}
	return lines
}

func parseFloatOr0(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// textElement builds a text Element for n: manual bullet stripping, icon
// leading-edge shift, C3 invocation when inline formatting is present,
// and gradient-text color recovery.
func (w *Walker) textElement(n *StyledNode, pos Rect) Element {
	el := Element{Kind: ElementText, Pos: pos}

	style := TextStyle{
		FontFace: n.Style("font-family"),
		Align:    alignOf(n.Style("text-align")),
	}
	if sz := n.Style("font-size"); sz != "" {
		if px, err := parsePx(sz); err == nil {
			style.SizePt = PxToPoint(px)
		}
	}
	style.RotationDeg = w.rotationOf(n)

	color := n.Style("color")
	hex, transparency, err := ParseColor(color, false)
	if err == nil && !IsNoColor(hex) {
		style.ColorHex = hex
		style.TransparencyPct = transparency
	} else if bg := n.Style("background-image"); strings.Contains(bg, "gradient") {
		if lit := firstColorLiteral(bg); lit != "" {
			if gh, _, gerr := ParseColor(lit, false); gerr == nil {
				style.ColorHex = gh
			}
		}
	} else {
		style.ColorHex = "000000"
	}

	text := n.Text
	if n.Tag != "LI" {
		for _, glyph := range manualBulletGlyphs {
			if strings.HasPrefix(strings.TrimSpace(text), glyph) {
				style.ManualBullet = true
				text = strings.TrimPrefix(strings.TrimSpace(text), glyph)
				text = strings.TrimSpace(text)
				break
			}
		}
	}

	icon := leadingIcon(n)
	if icon != nil {
		iconRight := PxToInch(icon.Box.X + icon.Box.W)
		marginRight := 0.0
		if mv := icon.Style("margin-right"); mv != "" {
			if px, err := parsePx(mv); err == nil {
				marginRight = PxToInch(px)
			}
		}
		shift := iconRight + marginRight - pos.X
		if shift > 0 {
			el.Pos.W -= shift
			el.Pos.X += shift
		}
		id := w.idOf(icon)
		w.data.RasterRequests = append(w.data.RasterRequests, RasterRequest{ID: id, X: PxToInch(icon.Box.X), Y: PxToInch(icon.Box.Y), W: PxToInch(icon.Box.W), H: PxToInch(icon.Box.H)})
		w.data.Elements = append(w.data.Elements, Element{Kind: ElementImagePlaceholder, Pos: Rect{X: PxToInch(icon.Box.X), Y: PxToInch(icon.Box.Y), W: PxToInch(icon.Box.W), H: PxToInch(icon.Box.H)}, ID: id})
	}

	if hasInlineFormatting(n) {
		parser := &RunParser{}
		runs := parser.Parse(n, RunOptions{ColorHex: style.ColorHex, SizePt: style.SizePt})
		el.Runs = runs
		w.deferredIcons = append(w.deferredIcons, iconsToDeferred(parser.Icons, w)...)
		maxSize := style.SizePt
		for _, r := range runs {
			if r.Options.SizePt > maxSize {
				maxSize = r.Options.SizePt
			}
		}
		if maxSize > style.SizePt && style.SizePt > 0 {
			style.LineSpacingPt = style.SizePt * (maxSize / style.SizePt)
		}
	} else {
		el.PlainText = strings.TrimSpace(text)
	}

	el.Style = style
	return el
}

func iconsToDeferred(icons []*StyledNode, w *Walker) []deferredIcon {
	var out []deferredIcon
	for _, icon := range icons {
		pos := Rect{X: PxToInch(icon.Box.X), Y: PxToInch(icon.Box.Y), W: PxToInch(icon.Box.W), H: PxToInch(icon.Box.H)}
		id := w.idOf(icon)
		w.data.RasterRequests = append(w.data.RasterRequests, RasterRequest{ID: id, X: pos.X, Y: pos.Y, W: pos.W, H: pos.H})
		out = append(out, deferredIcon{node: icon, pos: pos})
	}
	return out
}

func leadingIcon(n *StyledNode) *StyledNode {
	for _, c := range n.Children {
		if IsIconElement(c) {
			return c
		}
		return nil
	}
	return nil
}

func hasInlineFormatting(n *StyledNode) bool {
	for _, c := range n.Children {
		if IsIconElement(c) {
			continue
		}
		if inlineTags[c.Tag] || c.Tag == "BR" {
			return true
		}
	}
	return false
}

func alignOf(v string) HorizontalAlign {
	switch v {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

func firstColorLiteral(s string) string {
	start := strings.Index(s, "rgb")
	if start < 0 {
		return ""
	}
	end := strings.Index(s[start:], ")")
	if end < 0 {
		return ""
	}
	return s[start : start+end+1]
}

func parsePx(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

// visitList implements rule 9: flex-LI decomposition, or a single list
// element when no LI is flex-laid-out.
func (w *Walker) visitList(n *StyledNode, pos Rect) {
	anyFlex := false
	for _, li := range n.Children {
		if li.Style("display") == "flex" {
			anyFlex = true
			break
		}
	}

	if !anyFlex {
		indent := 0.0
		marginLeft := 0.0
		if pl := n.Style("padding-left"); pl != "" {
			if px, err := parsePx(pl); err == nil {
				half := PxToInch(px) / 2
				indent, marginLeft = half, half
			}
		}

		var runs []Run
		for i, li := range n.Children {
			if li.Tag != "LI" {
				continue
			}
			liRuns := w.flattenListItem(li)
			if len(liRuns) > 0 {
				liRuns[0].Bullet = &BulletMarker{IndentIn: indent}
				if i < len(n.Children)-1 {
					liRuns[len(liRuns)-1].BreakLineTail = true
				}
			}
			runs = append(runs, liRuns...)
		}

		w.data.Elements = append(w.data.Elements, Element{
			Kind:           ElementList,
			Pos:            pos,
			Runs:           runs,
			BulletIndentIn: indent,
			MarginLeftIn:   marginLeft,
		})
		for _, li := range n.Children {
			w.processed[li] = true
			w.markDescendantsProcessed(li)
		}
		return
	}

	for _, li := range n.Children {
		if li.Tag != "LI" {
			continue
		}
		if li.Style("display") == "flex" {
			w.decomposeFlexItem(li)
		} else {
			w.visit(li)
		}
		w.processed[li] = true
	}
}

// flattenListItem runs C3 over a single LI, stripping a manual bullet
// glyph at the start if present.
func (w *Walker) flattenListItem(li *StyledNode) []Run {
	parser := &RunParser{}
	runs := parser.Parse(li, RunOptions{})
	w.deferredIcons = append(w.deferredIcons, iconsToDeferred(parser.Icons, w)...)
	if len(runs) > 0 {
		for _, glyph := range manualBulletGlyphs {
			if strings.HasPrefix(runs[0].Text, glyph) {
				runs[0].Text = strings.TrimSpace(strings.TrimPrefix(runs[0].Text, glyph))
				break
			}
		}
	}
	return runs
}

// decomposeFlexItem breaks a flex-laid-out LI's direct children into
// individual text/image elements, shifting text past any leading icon.
func (w *Walker) decomposeFlexItem(li *StyledNode) {
	iconEdge := 0.0
	for _, c := range li.Children {
		if IsIconElement(c) {
			pos := Rect{X: PxToInch(c.Box.X), Y: PxToInch(c.Box.Y), W: PxToInch(c.Box.W), H: PxToInch(c.Box.H)}
			id := w.idOf(c)
			w.data.RasterRequests = append(w.data.RasterRequests, RasterRequest{ID: id, X: pos.X, Y: pos.Y, W: pos.W, H: pos.H})
			w.data.Elements = append(w.data.Elements, Element{Kind: ElementImagePlaceholder, Pos: pos, ID: id})
			w.processed[c] = true
			iconEdge = pos.X + pos.W
			if px, err := parsePx(c.Style("margin-right")); err == nil {
				iconEdge += PxToInch(px)
			}
			continue
		}
		if c.Tag == "DIV" && countParaChildren(c) > 1 {
			for _, p := range c.Children {
				pos := Rect{X: PxToInch(p.Box.X), Y: PxToInch(p.Box.Y), W: PxToInch(p.Box.W), H: PxToInch(p.Box.H)}
				w.data.Elements = append(w.data.Elements, w.textElement(p, pos))
				w.processed[p] = true
			}
			w.processed[c] = true
			continue
		}
		pos := Rect{X: PxToInch(c.Box.X), Y: PxToInch(c.Box.Y), W: PxToInch(c.Box.W), H: PxToInch(c.Box.H)}
		if c.Tag == "IMG" {
			w.data.Elements = append(w.data.Elements, Element{Kind: ElementImage, Pos: pos, Src: c.Attr("src")})
		} else {
			el := w.textElement(c, pos)
			if shift := iconEdge - el.Pos.X; shift > 0 {
				el.Pos.X += shift
				el.Pos.W -= shift
			}
			w.data.Elements = append(w.data.Elements, el)
		}
		w.processed[c] = true
	}
}

func countParaChildren(n *StyledNode) int {
	count := 0
	for _, c := range n.Children {
		if c.Tag == "P" || strings.HasPrefix(c.Tag, "H") {
			count++
		}
	}
	return count
}
