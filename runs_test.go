package htmlslide

import "testing"

func TestIsIconElementByClass(t *testing.T) {
	n := &StyledNode{Tag: "I", Classes: []string{"fa", "fa-check"}}
	if !IsIconElement(n) {
		t.Error("expected fa-prefixed <i> to be an icon")
	}
}

func TestIsIconElementByEmptyWithArea(t *testing.T) {
	n := &StyledNode{Tag: "SPAN", Box: PixelRect{W: 16, H: 16}}
	if !IsIconElement(n) {
		t.Error("expected empty span with area to be an icon")
	}
}

func TestIsIconElementRejectsPlainSpan(t *testing.T) {
	n := &StyledNode{Tag: "SPAN", Text: "hello", Box: PixelRect{W: 16, H: 16}}
	if IsIconElement(n) {
		t.Error("did not expect a plain text span to be an icon")
	}
}

func TestRunParserBoldNesting(t *testing.T) {
	bold := &StyledNode{Tag: "B", Text: "bold"}
	root := &StyledNode{Tag: "P", Children: []*StyledNode{bold}}

	p := &RunParser{}
	runs := p.Parse(root, RunOptions{})

	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if !runs[0].Options.Bold {
		t.Error("expected run to be bold")
	}
	if runs[0].Text != "bold" {
		t.Errorf("text = %q", runs[0].Text)
	}
}

func TestRunParserSkipsIcons(t *testing.T) {
	icon := &StyledNode{Tag: "I", Classes: []string{"fa", "fa-check"}}
	text := &StyledNode{Tag: "SPAN", Text: "done"}
	root := &StyledNode{Tag: "DIV", Children: []*StyledNode{icon, text}}

	p := &RunParser{}
	runs := p.Parse(root, RunOptions{})

	if len(runs) != 1 || runs[0].Text != "done" {
		t.Errorf("runs = %+v, want one run \"done\"", runs)
	}
	if len(p.Icons) != 1 {
		t.Errorf("expected 1 icon recorded, got %d", len(p.Icons))
	}
}

func TestRunParserKeepsOwnTextAroundInlineChild(t *testing.T) {
	bold := &StyledNode{Tag: "B", Text: "$5"}
	root := &StyledNode{Tag: "P", Text: "Price:  today", Children: []*StyledNode{bold}}

	p := &RunParser{}
	runs := p.Parse(root, RunOptions{})

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Text != "Price:  today" {
		t.Errorf("runs[0].Text = %q, want the paragraph's own direct text", runs[0].Text)
	}
	if runs[1].Text != "$5" || !runs[1].Options.Bold {
		t.Errorf("runs[1] = %+v, want bold \"$5\"", runs[1])
	}
}

func TestRunParserImpactSuppressesBold(t *testing.T) {
	bold := &StyledNode{Tag: "B", Text: "title", Computed: map[string]string{"font-family": "Impact"}}
	root := &StyledNode{Tag: "P", Children: []*StyledNode{bold}}

	p := &RunParser{}
	runs := p.Parse(root, RunOptions{})

	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Options.Bold {
		t.Error("expected bold suppressed for single-weight font")
	}
}
