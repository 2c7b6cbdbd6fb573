package htmlslide

import "testing"

func findElements(elements []Element, kind ElementKind) []Element {
	var out []Element
	for _, e := range elements {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestWalkSolidRoundedCardWithText(t *testing.T) {
	h2 := &StyledNode{Tag: "H2", Text: "Hi", Box: PixelRect{X: 10, Y: 10, W: 180, H: 40}, Computed: map[string]string{}}
	div := &StyledNode{
		Tag:      "DIV",
		Box:      PixelRect{X: 0, Y: 0, W: 200, H: 120},
		Children: []*StyledNode{h2},
		Computed: map[string]string{
			"background-color": "rgb(18, 52, 86)",
			"border-radius":    "12px",
		},
	}
	body := &StyledNode{Tag: "BODY", Box: PixelRect{X: 0, Y: 0, W: 200, H: 120}, Children: []*StyledNode{div}, Computed: map[string]string{}}

	v := &Validator{}
	data := NewWalker(v).Walk(body)

	shapes := findElements(data.Elements, ElementShape)
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	if shapes[0].Fill == nil || *shapes[0].Fill != "123456" {
		t.Errorf("fill = %v, want 123456", shapes[0].Fill)
	}
	wantRadius := 12.0 / 96
	if absF(shapes[0].RectRadiusIn-wantRadius) > 1e-9 {
		t.Errorf("radius = %v, want %v", shapes[0].RectRadiusIn, wantRadius)
	}

	texts := findElements(data.Elements, ElementText)
	if len(texts) != 1 || texts[0].PlainText != "Hi" {
		t.Errorf("texts = %+v, want one \"Hi\"", texts)
	}
}

func TestWalkPartialBordersEmitsLines(t *testing.T) {
	div := &StyledNode{
		Tag:  "DIV",
		Text: "Partial borders",
		Box:  PixelRect{X: 0, Y: 0, W: 100, H: 50},
		Computed: map[string]string{
			"border-top-width":    "2px",
			"border-top-color":    "rgb(0, 0, 0)",
			"border-bottom-width": "4px",
			"border-bottom-color": "rgb(255, 0, 0)",
		},
	}
	body := &StyledNode{Tag: "BODY", Box: PixelRect{X: 0, Y: 0, W: 100, H: 50}, Children: []*StyledNode{div}, Computed: map[string]string{}}

	v := &Validator{}
	data := NewWalker(v).Walk(body)

	lines := findElements(data.Elements, ElementLine)
	if len(lines) != 2 {
		t.Fatalf("expected 2 line elements, got %d", len(lines))
	}
	shapes := findElements(data.Elements, ElementShape)
	if len(shapes) != 0 {
		t.Errorf("expected no shape when the DIV has no background, got %d", len(shapes))
	}
}

func TestWalkStyledSpanDecomposesIntoPlaceholderAndText(t *testing.T) {
	span := &StyledNode{
		Tag:      "SPAN",
		Text:     "5,400엔",
		Box:      PixelRect{X: 10, Y: 10, W: 80, H: 30},
		Computed: map[string]string{"background-color": "rgb(255, 0, 0)", "border-radius": "8px"},
	}
	div := &StyledNode{Tag: "DIV", Box: PixelRect{X: 0, Y: 0, W: 100, H: 50}, Children: []*StyledNode{span}, Computed: map[string]string{}}
	body := &StyledNode{Tag: "BODY", Box: PixelRect{X: 0, Y: 0, W: 100, H: 50}, Children: []*StyledNode{div}, Computed: map[string]string{}}

	v := &Validator{}
	data := NewWalker(v).Walk(body)

	placeholders := findElements(data.Elements, ElementImagePlaceholder)
	if len(placeholders) != 1 {
		t.Fatalf("expected 1 image_placeholder, got %d", len(placeholders))
	}
	texts := findElements(data.Elements, ElementText)
	if len(texts) != 1 || texts[0].PlainText != "5,400엔" {
		t.Errorf("texts = %+v, want one \"5,400엔\"", texts)
	}

	// The parent DIV itself must not also be emitted as a leaf text element.
	if len(data.Elements) != 2 {
		t.Errorf("expected exactly 2 elements (placeholder + text), got %d: %+v", len(data.Elements), data.Elements)
	}
}

func TestWalkFlexListEmitsNoListElement(t *testing.T) {
	key := &StyledNode{Tag: "SPAN", Text: "취득세", Box: PixelRect{X: 0, Y: 0, W: 50, H: 20}, Computed: map[string]string{}}
	value := &StyledNode{Tag: "SPAN", Text: "약 280만원", Box: PixelRect{X: 60, Y: 0, W: 80, H: 20}, Computed: map[string]string{}}
	li := &StyledNode{Tag: "LI", Box: PixelRect{X: 0, Y: 0, W: 140, H: 20}, Children: []*StyledNode{key, value}, Computed: map[string]string{"display": "flex"}}
	ul := &StyledNode{Tag: "UL", Box: PixelRect{X: 0, Y: 0, W: 140, H: 20}, Children: []*StyledNode{li}, Computed: map[string]string{}}
	body := &StyledNode{Tag: "BODY", Box: PixelRect{X: 0, Y: 0, W: 140, H: 20}, Children: []*StyledNode{ul}, Computed: map[string]string{}}

	v := &Validator{}
	data := NewWalker(v).Walk(body)

	lists := findElements(data.Elements, ElementList)
	if len(lists) != 0 {
		t.Errorf("expected 0 list elements, got %d", len(lists))
	}
	texts := findElements(data.Elements, ElementText)
	if len(texts) != 2 {
		t.Fatalf("expected 2 text elements, got %d: %+v", len(texts), texts)
	}
}

func TestWalkVerticalTextRotation(t *testing.T) {
	p := &StyledNode{
		Tag:      "P",
		Text:     "세로",
		Box:      PixelRect{X: 0, Y: 0, W: 100, H: 300},
		Computed: map[string]string{"writing-mode": "vertical-rl"},
	}
	body := &StyledNode{Tag: "BODY", Box: PixelRect{X: 0, Y: 0, W: 100, H: 300}, Children: []*StyledNode{p}, Computed: map[string]string{}}

	v := &Validator{}
	data := NewWalker(v).Walk(body)

	texts := findElements(data.Elements, ElementText)
	if len(texts) != 1 {
		t.Fatalf("expected 1 text element, got %d", len(texts))
	}
	el := texts[0]
	if el.Style.RotationDeg == nil || *el.Style.RotationDeg != 90 {
		t.Errorf("rotation = %v, want 90", el.Style.RotationDeg)
	}
	wantW, wantH := 300.0/96, 100.0/96
	if absF(el.Pos.W-wantW) > 1e-9 || absF(el.Pos.H-wantH) > 1e-9 {
		t.Errorf("pos = %+v, want w=%.4f h=%.4f", el.Pos, wantW, wantH)
	}
}

func TestWalkIconInsideLeafDivShiftsText(t *testing.T) {
	icon := &StyledNode{Tag: "I", Classes: []string{"fa", "fa-check"}, Box: PixelRect{X: 0, Y: 0, W: 16, H: 16}, Computed: map[string]string{}}
	div := &StyledNode{
		Tag:      "DIV",
		Text:     " 완료",
		Box:      PixelRect{X: 0, Y: 0, W: 100, H: 16},
		Children: []*StyledNode{icon},
		Computed: map[string]string{},
	}
	body := &StyledNode{Tag: "BODY", Box: PixelRect{X: 0, Y: 0, W: 100, H: 16}, Children: []*StyledNode{div}, Computed: map[string]string{}}

	v := &Validator{}
	data := NewWalker(v).Walk(body)

	placeholders := findElements(data.Elements, ElementImagePlaceholder)
	if len(placeholders) != 1 {
		t.Fatalf("expected 1 image_placeholder for the icon, got %d", len(placeholders))
	}
	texts := findElements(data.Elements, ElementText)
	if len(texts) != 1 {
		t.Fatalf("expected 1 text element, got %d", len(texts))
	}
	wantX := 16.0 / 96
	if absF(texts[0].Pos.X-wantX) > 1e-9 {
		t.Errorf("text x = %v, want %v (shifted past icon)", texts[0].Pos.X, wantX)
	}
}
