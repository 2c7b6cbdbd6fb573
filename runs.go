package htmlslide

import (
	"strconv"
	"strings"
)

// inlineTags are the tags the run parser recognizes as carrying inline
// formatting rather than being opaque leaves.
var inlineTags = map[string]bool{
	"SPAN": true, "B": true, "STRONG": true, "I": true, "EM": true,
	"U": true, "DIV": true, "A": true,
}

// iconFamilyPrefixes identifies icon-font class names by prefix or exact
// match, per the icon-detection rule shared by C3 and C4.
var iconFamilyPrefixes = []string{"fa", "icon", "material-icons"}

// IsIconElement reports whether n looks like an icon: an <i> or <span>
// carrying an icon-family class, or one with empty textual content but a
// positive computed width.
func IsIconElement(n *StyledNode) bool {
	if n.Tag != "I" && n.Tag != "SPAN" {
		return false
	}
	for _, c := range n.Classes {
		lc := strings.ToLower(c)
		for _, prefix := range iconFamilyPrefixes {
			if strings.HasPrefix(lc, prefix) {
				return true
			}
		}
	}
	if strings.TrimSpace(n.Text) == "" && n.Box.W > 0 {
		return true
	}
	return false
}

// RunParser flattens an element's descendants into styled runs, tracking
// icons it encounters so the caller (C4) can register raster requests for
// them without them ever entering the text flow.
type RunParser struct {
	// Icons accumulates icon nodes found during the walk. The caller reads
	// this after Parse returns.
	Icons []*StyledNode
}

// Parse flattens n's children into a list of runs, inheriting ambient from
// the caller (the style toggles already active from an enclosing tag) and
// composing each descendant's own toggles additively.
func (p *RunParser) Parse(n *StyledNode, ambient RunOptions) []Run {
	var runs []Run
	p.walk(n, ambient, &runs)
	return trimRuns(runs)
}

// walk emits n's own direct text (if any) followed by a run per child,
// recursing into each child's own children. n's direct text is emitted
// first since the snapshot model concatenates a node's text nodes without
// recording their position relative to element children.
func (p *RunParser) walk(n *StyledNode, opts RunOptions, out *[]Run) {
	p.emitOwnText(n, opts, out)

	for _, child := range n.Children {
		switch {
		case child.Tag == "BR":
			*out = append(*out, Run{Text: "\n"})
			continue
		case IsIconElement(child):
			p.Icons = append(p.Icons, child)
			continue
		}

		childOpts := opts
		if inlineTags[child.Tag] {
			childOpts = composeRunOptions(opts, child)
		}

		p.walk(child, childOpts, out)
	}
}

// emitOwnText appends a run for n's own direct text content, if any,
// applying n's own text-transform under opts.
func (p *RunParser) emitOwnText(n *StyledNode, opts RunOptions, out *[]Run) {
	text := strings.TrimSpace(n.Text)
	if t := n.Style("text-transform"); t != "" {
		text = ApplyTextTransform(text, TextTransform(t))
	}
	if text != "" {
		*out = append(*out, Run{Text: text, Options: opts})
	}
}

// composeRunOptions derives the run options active inside child by adding
// its own style toggles on top of the inherited opts.
func composeRunOptions(opts RunOptions, child *StyledNode) RunOptions {
	out := opts

	if weight := child.Style("font-weight"); weight != "" {
		if n, err := strconv.Atoi(weight); err == nil && n >= 600 {
			if !IsSingleWeightFont(child.Style("font-family")) {
				out.Bold = true
			}
		}
	}
	switch strings.ToUpper(child.Tag) {
	case "B", "STRONG":
		if !IsSingleWeightFont(child.Style("font-family")) {
			out.Bold = true
		}
	case "I", "EM":
		out.Italic = true
	case "U":
		out.Underline = true
	}
	if child.Style("font-style") == "italic" {
		out.Italic = true
	}
	if strings.Contains(child.Style("text-decoration"), "underline") {
		out.Underline = true
	}
	if color := child.Style("color"); color != "" {
		if hex, _, err := ParseColor(color, false); err == nil && !IsNoColor(hex) {
			out.ColorHex = hex
		}
	}
	if size := child.Style("font-size"); size != "" {
		if px, err := strconv.ParseFloat(strings.TrimSuffix(size, "px"), 64); err == nil {
			out.SizePt = PxToPoint(px)
		}
	}

	return out
}

// trimRuns trims the first run's leading whitespace and the last run's
// trailing whitespace, then drops any run left empty.
func trimRuns(runs []Run) []Run {
	if len(runs) == 0 {
		return runs
	}
	runs[0].Text = strings.TrimLeft(runs[0].Text, " \t")
	last := len(runs) - 1
	runs[last].Text = strings.TrimRight(runs[last].Text, " \t")

	out := runs[:0]
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
