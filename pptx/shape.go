package pptx

import (
	"fmt"
	"os"
)

// Shape is the interface that all shapes implement.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	GetRotation() int
	base() *BaseShape
}

// ShapeType represents the type of shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeDrawing
	ShapeTypeTable
	ShapeTypeAutoShape
	ShapeTypeLine
	ShapeTypeGroup
)

// BaseShape contains common shape properties.
type BaseShape struct {
	name           string
	description    string
	offsetX        int64 // in EMU
	offsetY        int64 // in EMU
	width          int64 // in EMU
	height         int64 // in EMU
	rotation       int   // in degrees
	flipHorizontal bool
	flipVertical   bool
	fill           *Fill
	border         *Border
	shadow         *Shadow
	hyperlink      *Hyperlink
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) GetRotation() int  { return b.rotation }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetOffsetX(x int64) *BaseShape { b.offsetX = x; return b }
func (b *BaseShape) SetOffsetY(y int64) *BaseShape { b.offsetY = y; return b }
func (b *BaseShape) SetWidth(w int64) *BaseShape   { b.width = w; return b }
func (b *BaseShape) SetHeight(h int64) *BaseShape  { b.height = h; return b }
func (b *BaseShape) SetName(n string) *BaseShape   { b.name = n; return b }
func (b *BaseShape) SetRotation(r int) *BaseShape  { b.rotation = ((r % 360) + 360) % 360; return b }

// SetPosition sets both offset X and Y in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX = x
	b.offsetY = y
	return b
}

// SetSize sets both width and height in EMU.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width = w
	b.height = h
	return b
}

func (b *BaseShape) SetFlipHorizontal(flip bool) *BaseShape { b.flipHorizontal = flip; return b }
func (b *BaseShape) GetFlipHorizontal() bool                { return b.flipHorizontal }
func (b *BaseShape) SetFlipVertical(flip bool) *BaseShape   { b.flipVertical = flip; return b }
func (b *BaseShape) GetFlipVertical() bool                  { return b.flipVertical }

func (b *BaseShape) GetDescription() string  { return b.description }
func (b *BaseShape) SetDescription(d string) { b.description = d }

func (b *BaseShape) GetFill() *Fill {
	if b.fill == nil {
		b.fill = NewFill()
	}
	return b.fill
}
func (b *BaseShape) SetFill(f *Fill) { b.fill = f }

func (b *BaseShape) GetBorder() *Border {
	if b.border == nil {
		b.border = NewBorder()
	}
	return b.border
}
func (b *BaseShape) SetBorder(border *Border) { b.border = border }

func (b *BaseShape) GetShadow() *Shadow {
	if b.shadow == nil {
		b.shadow = NewShadow()
	}
	return b.shadow
}
func (b *BaseShape) SetShadow(s *Shadow) { b.shadow = s }

func (b *BaseShape) GetHyperlink() *Hyperlink  { return b.hyperlink }
func (b *BaseShape) SetHyperlink(h *Hyperlink) { b.hyperlink = h }

// --- Rich text shape ---

// AutoFitType controls how text is scaled to fit its shape.
type AutoFitType int

const (
	AutoFitNone AutoFitType = iota
	AutoFitNormal
	AutoFitShape
)

// RichTextShape represents a multi-paragraph text box.
type RichTextShape struct {
	BaseShape
	paragraphs      []*Paragraph
	activeParagraph int
	autoFit         AutoFitType
	wordWrap        bool
	columns         int
}

// NewRichTextShape creates a rich text shape with one empty paragraph.
func NewRichTextShape() *RichTextShape {
	rt := &RichTextShape{
		wordWrap: true,
		columns:  1,
	}
	rt.paragraphs = append(rt.paragraphs, NewParagraph())
	return rt
}

func (rt *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

func (rt *RichTextShape) GetActiveParagraph() *Paragraph {
	return rt.paragraphs[rt.activeParagraph]
}

func (rt *RichTextShape) CreateParagraph() *Paragraph {
	p := NewParagraph()
	rt.paragraphs = append(rt.paragraphs, p)
	rt.activeParagraph = len(rt.paragraphs) - 1
	return p
}

func (rt *RichTextShape) GetParagraphs() []*Paragraph { return rt.paragraphs }

// CreateTextRun appends a run to the active paragraph.
func (rt *RichTextShape) CreateTextRun(text string) *TextRun {
	return rt.GetActiveParagraph().CreateTextRun(text)
}

// CreateBreak appends a line break to the active paragraph.
func (rt *RichTextShape) CreateBreak() *Break {
	return rt.GetActiveParagraph().CreateBreak()
}

func (rt *RichTextShape) SetAutoFit(a AutoFitType) *RichTextShape { rt.autoFit = a; return rt }
func (rt *RichTextShape) GetAutoFit() AutoFitType                 { return rt.autoFit }

func (rt *RichTextShape) SetWordWrap(w bool) *RichTextShape { rt.wordWrap = w; return rt }
func (rt *RichTextShape) GetWordWrap() bool                 { return rt.wordWrap }

func (rt *RichTextShape) SetColumns(c int) *RichTextShape { rt.columns = c; return rt }
func (rt *RichTextShape) GetColumns() int                 { return rt.columns }

// Paragraph is a sequence of text runs and breaks sharing one alignment/line spacing.
type Paragraph struct {
	elements    []ParagraphElement
	alignment   *Alignment
	lineSpacing int // percent, 100 = single spacing
	bullet      *Bullet
}

// ParagraphElement is either a *TextRun or a *Break.
type ParagraphElement interface {
	GetElementType() string
}

func NewParagraph() *Paragraph {
	return &Paragraph{
		alignment:   NewAlignment(),
		lineSpacing: 100,
	}
}

func (p *Paragraph) GetAlignment() *Alignment { return p.alignment }
func (p *Paragraph) SetAlignment(a *Alignment) *Paragraph {
	p.alignment = a
	return p
}

func (p *Paragraph) SetLineSpacing(pct int) *Paragraph { p.lineSpacing = pct; return p }
func (p *Paragraph) GetLineSpacing() int               { return p.lineSpacing }

func (p *Paragraph) SetBullet(b *Bullet) *Paragraph { p.bullet = b; return p }
func (p *Paragraph) GetBullet() *Bullet             { return p.bullet }

func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{text: text, font: NewFont()}
	p.elements = append(p.elements, tr)
	return tr
}

func (p *Paragraph) CreateBreak() *Break {
	br := &Break{}
	p.elements = append(p.elements, br)
	return br
}

func (p *Paragraph) GetElements() []ParagraphElement { return p.elements }

// TextRun is a run of text sharing one font.
type TextRun struct {
	text      string
	font      *Font
	hyperlink *Hyperlink
}

func (t *TextRun) GetElementType() string { return "textrun" }
func (t *TextRun) GetText() string        { return t.text }
func (t *TextRun) SetText(s string) *TextRun {
	t.text = s
	return t
}
func (t *TextRun) GetFont() *Font { return t.font }
func (t *TextRun) SetFont(f *Font) *TextRun {
	t.font = f
	return t
}
func (t *TextRun) GetHyperlink() *Hyperlink { return t.hyperlink }
func (t *TextRun) SetHyperlink(h *Hyperlink) *TextRun {
	t.hyperlink = h
	return t
}

// Break is an explicit line break (<a:br/>) within a paragraph.
type Break struct{}

func (b *Break) GetElementType() string { return "break" }

// --- Drawing (image) shape ---

// DrawingShape represents a raster image placed on the slide.
type DrawingShape struct {
	BaseShape
	path     string
	data     []byte
	mimeType string
}

func NewDrawingShape() *DrawingShape {
	return &DrawingShape{}
}

func (d *DrawingShape) GetType() ShapeType { return ShapeTypeDrawing }

func (d *DrawingShape) SetPath(path string) *DrawingShape {
	d.path = path
	return d
}
func (d *DrawingShape) GetPath() string { return d.path }

// SetImageFromFile reads image bytes from disk and infers the MIME type from
// the file extension.
func (d *DrawingShape) SetImageFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	d.path = path
	d.data = data
	d.mimeType = mimeTypeForPath(path)
	return nil
}

func (d *DrawingShape) SetImageData(data []byte, mimeType string) *DrawingShape {
	d.data = data
	d.mimeType = mimeType
	return d
}

func (d *DrawingShape) GetImageData() []byte { return d.data }
func (d *DrawingShape) GetMimeType() string  { return d.mimeType }

func mimeTypeForPath(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			switch path[i+1:] {
			case "png":
				return "image/png"
			case "jpg", "jpeg":
				return "image/jpeg"
			case "gif":
				return "image/gif"
			}
			break
		}
	}
	return "image/png"
}

// --- Auto shape ---

// AutoShapeType is a preset OOXML geometry (<a:prstGeom prst="...">).
type AutoShapeType string

const (
	AutoShapeRectangle  AutoShapeType = "rect"
	AutoShapeRoundRect  AutoShapeType = "roundRect"
	AutoShapeEllipse    AutoShapeType = "ellipse"
)

// AutoShape represents a geometric shape (rectangle, rounded rectangle, ellipse, ...)
// that may also carry its own text.
type AutoShape struct {
	BaseShape
	shapeType AutoShapeType
	text      string
	adjust    float64 // corner radius as a fraction of the smaller dimension, for roundRect
}

func NewAutoShape() *AutoShape {
	return &AutoShape{shapeType: AutoShapeRectangle}
}

func (a *AutoShape) GetType() ShapeType { return ShapeTypeAutoShape }

func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape {
	a.shapeType = t
	return a
}
func (a *AutoShape) GetAutoShapeType() AutoShapeType { return a.shapeType }

func (a *AutoShape) SetText(t string) *AutoShape {
	a.text = t
	return a
}
func (a *AutoShape) GetText() string { return a.text }

func (a *AutoShape) SetCornerAdjust(fraction float64) *AutoShape {
	a.adjust = fraction
	return a
}
func (a *AutoShape) GetCornerAdjust() float64 { return a.adjust }

// --- Line shape ---

// LineShape represents a straight connector line.
type LineShape struct {
	BaseShape
	style BorderStyle
	width int // EMU
	color Color
}

func NewLineShape() *LineShape {
	return &LineShape{
		style: BorderSolid,
		width: int(Point(1)),
		color: ColorBlack,
	}
}

func (l *LineShape) GetType() ShapeType { return ShapeTypeLine }

func (l *LineShape) SetLineStyle(s BorderStyle) *LineShape {
	l.style = s
	return l
}
func (l *LineShape) GetLineStyle() BorderStyle { return l.style }

func (l *LineShape) SetLineWidth(emu int) *LineShape {
	l.width = emu
	return l
}
func (l *LineShape) GetLineWidth() int { return l.width }

func (l *LineShape) SetLineColor(c Color) *LineShape {
	l.color = c
	return l
}
func (l *LineShape) GetLineColor() Color { return l.color }

// --- Group shape ---

// GroupShape groups several shapes under one transform.
type GroupShape struct {
	BaseShape
	shapes []Shape
}

func NewGroupShape() *GroupShape {
	return &GroupShape{}
}

func (g *GroupShape) GetType() ShapeType { return ShapeTypeGroup }

func (g *GroupShape) AddShape(s Shape) *GroupShape {
	g.shapes = append(g.shapes, s)
	return g
}

func (g *GroupShape) GetShapes() []Shape { return g.shapes }
