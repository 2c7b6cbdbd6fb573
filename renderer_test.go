package htmlslide

import (
	"testing"

	"github.com/VantageDataChat/htmlslide/pptx"
)

// Regression test: renderList must set each run's PPTX font name from the
// element's font face, not from the run's own color hex.
func TestRenderListUsesFontFaceNotColorHex(t *testing.T) {
	slide := pptx.New().GetActiveSlide()
	el := Element{
		Kind: ElementList,
		Pos:  Rect{X: 0, Y: 0, W: 2, H: 1},
		Style: TextStyle{
			FontFace: "Arial",
			SizePt:   14,
		},
		Runs: []Run{
			{Text: "item one", Options: RunOptions{ColorHex: "FF0000"}},
		},
	}

	renderList(slide, el)

	shapes := slide.GetShapes()
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	rt, ok := shapes[0].(*pptx.RichTextShape)
	if !ok {
		t.Fatalf("expected *pptx.RichTextShape, got %T", shapes[0])
	}

	paras := rt.GetParagraphs()
	if len(paras) == 0 {
		t.Fatal("expected at least one paragraph")
	}
	elements := paras[0].GetElements()
	if len(elements) == 0 {
		t.Fatal("expected at least one paragraph element")
	}
	tr, ok := elements[0].(*pptx.TextRun)
	if !ok {
		t.Fatalf("expected *pptx.TextRun, got %T", elements[0])
	}

	if tr.GetFont().Name != "Arial" {
		t.Errorf("font name = %q, want %q (must not be the run color hex)", tr.GetFont().Name, "Arial")
	}
	if tr.GetFont().Color != pptx.NewColor("FF0000") {
		t.Errorf("font color = %v, want FF0000", tr.GetFont().Color)
	}
}
