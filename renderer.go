package htmlslide

import (
	"github.com/VantageDataChat/htmlslide/pptx"
)

// SlideWidthIn and SlideHeightIn are the default 16:9 slide canvas
// dimensions, matching 1280x720 at 96dpi.
const (
	SlideWidthIn  = 13.333
	SlideHeightIn = 7.5
)

// Render dispatches data's final element list onto slide, applying the
// text-box width correction along the way. data.Elements must already have
// every image_placeholder resolved by the rasterizer.
func Render(data *SlideData, slide *pptx.Slide) {
	if data.Background != nil {
		setBackground(slide, data.Background)
	}

	corrected := correctTextWidths(data.Elements)

	for _, el := range corrected {
		switch el.Kind {
		case ElementText:
			renderText(slide, el)
		case ElementList:
			renderList(slide, el)
		case ElementShape:
			renderShape(slide, el)
		case ElementLine:
			renderLine(slide, el)
		case ElementImage:
			renderImage(slide, el)
		case ElementImagePlaceholder:
			// Unresolved placeholders were dropped by the rasterizer
			// before reaching the renderer; nothing to do.
		}
	}
}

func setBackground(slide *pptx.Slide, bg *Background) {
	fill := pptx.NewFill()
	switch bg.Kind {
	case BackgroundColor:
		fill.SetSolid(pptx.NewColor(bg.Color))
	case BackgroundImage:
		// A full-slide background image is modeled as a drawing shape
		// spanning the canvas rather than a Fill (the pptx package's Fill
		// has no image-fill variant).
		img, err := slide.AddImage(bg.Path)
		if err == nil {
			img.SetPosition(0, 0).SetSize(pptx.Inch(SlideWidthIn), pptx.Inch(SlideHeightIn))
		}
		return
	}
	slide.SetBackground(fill)
}

func renderText(slide *pptx.Slide, el Element) {
	shape := slide.CreateRichTextShape()
	positionShape(&shape.BaseShape, el.Pos, el.Style.RotationDeg)

	para := shape.GetActiveParagraph()
	applyParagraphStyle(para, el.Style)

	if len(el.Runs) > 0 {
		for _, r := range el.Runs {
			appendRun(shape, para, r, el.Style)
		}
	} else {
		tr := shape.CreateTextRun(el.PlainText)
		applyFont(tr.GetFont(), el.Style.FontFace, el.Style.SizePt, el.Style.Bold, el.Style.Italic, el.Style.Underline, el.Style.ColorHex)
	}
}

func renderList(slide *pptx.Slide, el Element) {
	shape := slide.CreateRichTextShape()
	positionShape(&shape.BaseShape, el.Pos, nil)

	para := shape.GetActiveParagraph()
	para.SetBullet(pptx.NewBullet().SetCharBullet("•"))
	para.GetAlignment().MarginLeft = pptx.Inch(el.MarginLeftIn)
	para.GetAlignment().Indent = pptx.Inch(el.BulletIndentIn)

	for _, r := range el.Runs {
		if r.Bullet != nil && len(para.GetElements()) > 0 {
			para = shape.CreateParagraph()
			para.SetBullet(pptx.NewBullet().SetCharBullet("•"))
			para.GetAlignment().MarginLeft = pptx.Inch(el.MarginLeftIn)
			para.GetAlignment().Indent = pptx.Inch(r.Bullet.IndentIn)
		}
		tr := shape.CreateTextRun(r.Text)
		applyFont(tr.GetFont(), el.Style.FontFace, r.Options.SizePt, r.Options.Bold, r.Options.Italic, r.Options.Underline, r.Options.ColorHex)
		if r.BreakLineTail {
			shape.CreateBreak()
		}
	}
}

func appendRun(shape *pptx.RichTextShape, para *pptx.Paragraph, r Run, base TextStyle) {
	if r.Text == "\n" {
		shape.CreateBreak()
		return
	}
	tr := shape.CreateTextRun(r.Text)
	face := base.FontFace
	size := base.SizePt
	if r.Options.SizePt > 0 {
		size = r.Options.SizePt
	}
	color := base.ColorHex
	if r.Options.ColorHex != "" {
		color = r.Options.ColorHex
	}
	applyFont(tr.GetFont(), face, size, r.Options.Bold, r.Options.Italic, r.Options.Underline, color)
}

func applyFont(f *pptx.Font, face string, sizePt float64, bold, italic, underline bool, colorHex string) {
	if face != "" {
		f.SetName(face)
	}
	if sizePt > 0 {
		f.SetSize(int(sizePt))
	}
	f.SetBold(bold)
	f.SetItalic(italic)
	if underline {
		f.SetUnderline(pptx.UnderlineSingle)
	}
	if colorHex != "" && !IsNoColor(colorHex) {
		f.SetColor(pptx.NewColor(colorHex))
	}
}

func applyParagraphStyle(para *pptx.Paragraph, style TextStyle) {
	para.GetAlignment().SetHorizontal(horizontalOf(style.Align))
	para.GetAlignment().MarginLeft = pptx.Inch(style.MarginLeftPt / 72)
	para.GetAlignment().MarginRight = pptx.Inch(style.MarginRightPt / 72)
	if style.LineSpacingPt > 0 && style.SizePt > 0 {
		para.SetLineSpacing(int(style.LineSpacingPt / style.SizePt * 100))
	}
	if style.ManualBullet {
		para.SetBullet(pptx.NewBullet().SetCharBullet("•"))
	}
}

func horizontalOf(a HorizontalAlign) pptx.HorizontalAlignment {
	switch a {
	case AlignCenter:
		return pptx.HorizontalCenter
	case AlignRight:
		return pptx.HorizontalRight
	default:
		return pptx.HorizontalLeft
	}
}

func positionShape(b *pptx.BaseShape, pos Rect, rotationDeg *float64) {
	b.SetPosition(pptx.Inch(pos.X), pptx.Inch(pos.Y))
	b.SetSize(pptx.Inch(pos.W), pptx.Inch(pos.H))
	if rotationDeg != nil {
		b.SetRotation(int(*rotationDeg))
	}
}

func renderShape(slide *pptx.Slide, el Element) {
	shape := slide.CreateAutoShape()
	positionShape(&shape.BaseShape, el.Pos, nil)

	if el.RectRadiusIn > 0 {
		shape.SetAutoShapeType(pptx.AutoShapeRoundRect)
		minDim := el.Pos.W
		if el.Pos.H < minDim {
			minDim = el.Pos.H
		}
		if minDim > 0 {
			shape.SetCornerAdjust(el.RectRadiusIn / minDim)
		}
	} else {
		shape.SetAutoShapeType(pptx.AutoShapeRectangle)
	}

	if el.Fill != nil {
		shape.GetFill().SetSolid(pptx.NewColor(*el.Fill))
	}
	if el.Line != nil {
		shape.GetBorder().Style = pptx.BorderSolid
		shape.GetBorder().Width = int(pptx.Point(el.Line.WidthPt))
		shape.GetBorder().Color = pptx.NewColor(el.Line.ColorHex)
	}
	if el.Shadow != nil {
		s := shape.GetShadow()
		s.SetVisible(true)
		s.SetDirection(int(el.Shadow.AngleDeg))
		s.SetDistance(int(el.Shadow.DistancePt))
		s.BlurRadius = int(el.Shadow.BlurPt)
		s.Color = pptx.NewColor(el.Shadow.ColorHex)
		s.Alpha = int(el.Shadow.OpacityPct)
	}
}

func renderLine(slide *pptx.Slide, el Element) {
	line := slide.CreateLineShape()
	x := el.X1
	y := el.Y1
	w := el.X2 - el.X1
	h := el.Y2 - el.Y1
	line.SetPosition(pptx.Inch(x), pptx.Inch(y))
	line.SetSize(pptx.Inch(w), pptx.Inch(h))
	line.SetLineWidth(int(pptx.Point(el.WidthPt)))
	if el.ColorHex != "" {
		line.SetLineColor(pptx.NewColor(el.ColorHex))
	}
}

func renderImage(slide *pptx.Slide, el Element) {
	shape, err := slide.AddImage(el.Src)
	if err != nil {
		return
	}
	positionShape(&shape.BaseShape, el.Pos, nil)
}

// correctTextWidths applies the single-line text-box width-correction
// heuristic, expanding the element's position in place and returning the
// corrected slice (a copy, so the original element list is untouched).
func correctTextWidths(elements []Element) []Element {
	out := make([]Element, len(elements))
	copy(out, elements)

	for i := range out {
		el := &out[i]
		if el.Kind != ElementText {
			continue
		}
		lineHeight := el.Style.SizePt / 72 * 1.2
		if el.Pos.H > 1.5*lineHeight || el.Pos.H > 0.35 {
			continue
		}

		text := el.PlainText
		if text == "" {
			for _, r := range el.Runs {
				text += r.Text
			}
		}
		if text == "" {
			continue
		}

		estimated := estimatedTextWidthIn(text, el.Style.SizePt)
		minWidth := estimated * 1.15
		if el.Pos.W < minWidth {
			el.Pos.W = minWidth
		}

		gap := availableGap(out, i)
		p := 0.25
		switch {
		case len([]rune(text)) > 20:
			p = 0.15
		case len([]rune(text)) > 10:
			p = 0.20
		}
		desired := estimated * p
		buffer := desired
		if maxBuf := 0.8 * gap; buffer > maxBuf {
			buffer = maxBuf
		}
		if buffer <= 0.05 {
			continue
		}

		switch el.Style.Align {
		case AlignCenter:
			el.Pos.X -= buffer / 2
			el.Pos.W += buffer
		case AlignRight:
			el.Pos.X -= buffer
		default:
			el.Pos.W += buffer
		}
	}

	return out
}

// estimatedTextWidthIn implements the Hangul-vs-other width estimate.
func estimatedTextWidthIn(text string, fontSizePt float64) float64 {
	kKo, kOther := 0, 0
	for _, r := range text {
		if r >= 0xAC00 && r <= 0xD7AF {
			kKo++
		} else {
			kOther++
		}
	}
	return (float64(kKo)*fontSizePt*0.75 + float64(kOther)*fontSizePt*0.45) / 72
}

// availableGap computes the horizontal gap to the right of elements[i]
// before hitting either the slide edge or another element whose y-range
// overlaps and whose x sits to the right.
func availableGap(elements []Element, i int) float64 {
	el := elements[i]
	gap := SlideWidthIn - (el.Pos.X + el.Pos.W)

	for j, other := range elements {
		if j == i || other.Kind == ElementImagePlaceholder {
			continue
		}
		if other.Pos.X <= el.Pos.X {
			continue
		}
		overlapsY := other.Pos.Y < el.Pos.Y+el.Pos.H && other.Pos.Y+other.Pos.H > el.Pos.Y
		if !overlapsY {
			continue
		}
		candidate := other.Pos.X - (el.Pos.X + el.Pos.W)
		if candidate < gap {
			gap = candidate
		}
	}

	if gap < 0 {
		gap = 0
	}
	return gap
}
