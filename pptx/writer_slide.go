package pptx

import (
	"archive/zip"
	"fmt"
	"strings"
)

// writeSlides writes one ppt/slides/slideN.xml (+ .rels, + any media) per
// slide in the presentation.
func (w *PPTXWriter) writeSlides(zw *zip.Writer) error {
	imageSeq := 0
	for i, slide := range w.presentation.slides {
		imgs := imagesOf(slide)
		ctx := &slideWriteContext{index: i, slide: slide, images: imgs, imageSeq: &imageSeq}

		content := ctx.renderSlideXML()
		path := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		if err := writeRawXMLToZip(zw, path, content); err != nil {
			return err
		}

		if err := ctx.writeRels(zw, i); err != nil {
			return err
		}
		if err := ctx.writeMedia(zw); err != nil {
			return err
		}
	}
	return nil
}

// slideWriteContext threads per-slide image numbering through shape
// rendering, since picture elements need stable r:id values that the rels
// part must match exactly. imageSeq is shared across slides so every media
// part in the package gets a globally unique file name.
type slideWriteContext struct {
	index     int
	slide     *Slide
	images    []*DrawingShape
	imageNums []int
	shapeID   int
	relIdx    int
	imageSeq  *int
}

func imagesOf(s *Slide) []*DrawingShape {
	var out []*DrawingShape
	var walk func(Shape)
	walk = func(sh Shape) {
		switch v := sh.(type) {
		case *DrawingShape:
			out = append(out, v)
		case *GroupShape:
			for _, child := range v.shapes {
				walk(child)
			}
		}
	}
	for _, sh := range s.shapes {
		walk(sh)
	}
	return out
}

func (ctx *slideWriteContext) renderSlideXML() string {
	ctx.shapeID = 1
	ctx.relIdx = 1

	var body strings.Builder
	for _, sh := range ctx.slide.shapes {
		body.WriteString(ctx.renderShape(sh))
	}

	bg := ""
	if ctx.slide.background != nil && ctx.slide.background.Type != FillNone {
		bg = fmt.Sprintf(`    <p:bg>
      <p:bgPr>
        %s
        <a:effectLst/>
      </p:bgPr>
    </p:bg>
`, renderFillXML(ctx.slide.background))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, bg, body.String())
}

func (ctx *slideWriteContext) renderShape(sh Shape) string {
	switch v := sh.(type) {
	case *RichTextShape:
		return ctx.renderRichText(v)
	case *AutoShape:
		return ctx.renderAutoShape(v)
	case *LineShape:
		return ctx.renderLine(v)
	case *DrawingShape:
		return ctx.renderDrawing(v)
	case *GroupShape:
		var b strings.Builder
		for _, child := range v.shapes {
			b.WriteString(ctx.renderShape(child))
		}
		return b.String()
	default:
		return ""
	}
}

func xfrmXML(b *BaseShape) string {
	rot := ""
	if b.rotation != 0 {
		rot = fmt.Sprintf(` rot="%d"`, b.rotation*60000)
	}
	flip := ""
	if b.flipHorizontal {
		flip += ` flipH="1"`
	}
	if b.flipVertical {
		flip += ` flipV="1"`
	}
	return fmt.Sprintf(`<a:xfrm%s%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>`, rot, flip, b.offsetX, b.offsetY, b.width, b.height)
}

func renderFillXML(f *Fill) string {
	if f == nil || f.Type == FillNone {
		return "<a:noFill/>"
	}
	switch f.Type {
	case FillSolid:
		return fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, f.Color.ARGB[2:])
	case FillGradientLinear, FillGradientPath:
		return fmt.Sprintf(`<a:gradFill rotWithShape="1">
            <a:gsLst>
              <a:gs pos="0"><a:srgbClr val="%s"/></a:gs>
              <a:gs pos="100000"><a:srgbClr val="%s"/></a:gs>
            </a:gsLst>
            <a:lin ang="%d" scaled="0"/>
          </a:gradFill>`, f.Color.ARGB[2:], f.EndColor.ARGB[2:], f.Rotation*60000)
	default:
		return "<a:noFill/>"
	}
}

func renderLineXML(b *Border) string {
	if b == nil || b.Style == BorderNone {
		return `<a:ln><a:noFill/></a:ln>`
	}
	dash := ""
	switch b.Style {
	case BorderDash:
		dash = `<a:prstDash val="dash"/>`
	case BorderDot:
		dash = `<a:prstDash val="dot"/>`
	}
	return fmt.Sprintf(`<a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill>%s</a:ln>`,
		b.Width, b.Color.ARGB[2:], dash)
}

func (ctx *slideWriteContext) nextShapeID() int {
	id := ctx.shapeID
	ctx.shapeID++
	return id
}

func (ctx *slideWriteContext) renderRichText(rt *RichTextShape) string {
	id := ctx.nextShapeID()
	wrap := "square"
	if !rt.wordWrap {
		wrap = "none"
	}
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          %s
          <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
          %s
          %s
        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="%s"/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, escapeXML(rt.name), xfrmXML(&rt.BaseShape), renderFillXML(rt.fill), renderLineXML(rt.border),
		wrap, renderParagraphsXML(rt.paragraphs))
}

func renderParagraphsXML(paragraphs []*Paragraph) string {
	var b strings.Builder
	for _, p := range paragraphs {
		b.WriteString(`          <a:p>
`)
		algn := ""
		if p.alignment != nil {
			algn = fmt.Sprintf(` algn="%s"`, p.alignment.Horizontal)
		}
		b.WriteString(fmt.Sprintf(`            <a:pPr%s/>
`, algn))
		for _, el := range p.elements {
			switch e := el.(type) {
			case *TextRun:
				b.WriteString(renderTextRunXML(e))
			case *Break:
				b.WriteString("            <a:br/>\n")
			}
		}
		b.WriteString(`          </a:p>
`)
	}
	return b.String()
}

func renderTextRunXML(tr *TextRun) string {
	f := tr.font
	if f == nil {
		f = NewFont()
	}
	b := boolAttr("b", f.Bold)
	i := boolAttr("i", f.Italic)
	u := ""
	if f.Underline != UnderlineNone {
		u = fmt.Sprintf(` u="%s"`, f.Underline)
	}
	strike := ""
	if f.Strikethrough {
		strike = ` strike="sngStrike"`
	}
	return fmt.Sprintf(`            <a:r>
              <a:rPr lang="en-US" sz="%d"%s%s%s%s dirty="0">
                <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
                <a:latin typeface="%s"/>
              </a:rPr>
              <a:t>%s</a:t>
            </a:r>
`, f.Size*100, b, i, u, strike, f.Color.ARGB[2:], escapeXML(f.Name), escapeXML(tr.text))
}

func boolAttr(name string, v bool) string {
	if v {
		return fmt.Sprintf(` %s="1"`, name)
	}
	return fmt.Sprintf(` %s="0"`, name)
}

func (ctx *slideWriteContext) renderAutoShape(a *AutoShape) string {
	id := ctx.nextShapeID()
	text := ""
	if a.text != "" {
		p := NewParagraph()
		p.CreateTextRun(a.text)
		text = fmt.Sprintf(`        <p:txBody>
          <a:bodyPr/>
          <a:lstStyle/>
%s        </p:txBody>
`, renderParagraphsXML([]*Paragraph{p}))
	}
	adjust := ""
	if a.shapeType == AutoShapeRoundRect && a.adjust > 0 {
		adjust = fmt.Sprintf(`<a:gd name="adj" fmla="val %d"/>`, int(a.adjust*100000))
	}
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          %s
          <a:prstGeom prst="%s"><a:avLst>%s</a:avLst></a:prstGeom>
          %s
          %s
        </p:spPr>
%s      </p:sp>
`, id, escapeXML(a.name), xfrmXML(&a.BaseShape), a.shapeType, adjust,
		renderFillXML(a.fill), renderLineXML(a.border), text)
}

func (ctx *slideWriteContext) renderLine(l *LineShape) string {
	id := ctx.nextShapeID()
	return fmt.Sprintf(`      <p:cxnSp>
        <p:nvCxnSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvCxnSpPr/>
          <p:nvPr/>
        </p:nvCxnSpPr>
        <p:spPr>
          %s
          <a:prstGeom prst="line"><a:avLst/></a:prstGeom>
          <a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>
        </p:spPr>
      </p:cxnSp>
`, id, escapeXML(l.name), xfrmXML(&l.BaseShape), l.width, l.color.ARGB[2:])
}

func (ctx *slideWriteContext) renderDrawing(d *DrawingShape) string {
	id := ctx.nextShapeID()
	relID := ctx.relIdx
	ctx.relIdx++
	*ctx.imageSeq++
	ctx.imageNums = append(ctx.imageNums, *ctx.imageSeq)
	desc := ""
	if d.description != "" {
		desc = fmt.Sprintf(` descr="%s"`, escapeXML(d.description))
	}
	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s"%s/>
          <p:cNvPicPr/>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="rId%d"/>
          <a:stretch><a:fillRect/></a:stretch>
        </p:blipFill>
        <p:spPr>
          %s
          <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
        </p:spPr>
      </p:pic>
`, id, escapeXML(d.name), desc, relID, xfrmXML(&d.BaseShape))
}

// writeRels emits ppt/slides/_rels/slideN.xml.rels with one image
// relationship per drawing shape, numbered in document order. The target
// file names are assigned up front so they match what writeMedia emits.
func (ctx *slideWriteContext) writeRels(zw *zip.Writer, slideIdx int) error {
	var b strings.Builder
	for i, num := range ctx.imageNums {
		ext := extForMime(ctx.images[i].mimeType)
		fmt.Fprintf(&b, `  <Relationship Id="rId%d" Type="%s" Target="../media/image%d.%s"/>
`, i+1, relTypeImage, num, ext)
	}
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
%s</Relationships>`, nsRelationships, b.String())
	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideIdx+1), content)
}

func (ctx *slideWriteContext) writeMedia(zw *zip.Writer) error {
	for i, num := range ctx.imageNums {
		img := ctx.images[i]
		ext := extForMime(img.mimeType)
		path := fmt.Sprintf("ppt/media/image%d.%s", num, ext)
		f, err := zw.Create(path)
		if err != nil {
			return fmt.Errorf("create media entry %s: %w", path, err)
		}
		if _, err := f.Write(img.data); err != nil {
			return fmt.Errorf("write media entry %s: %w", path, err)
		}
	}
	return nil
}
