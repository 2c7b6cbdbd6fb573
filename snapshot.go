package htmlslide

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// snapshotScript is evaluated once against the live page to materialize a
// StyledNode tree in a single round trip, rather than issuing one
// getComputedStyle call per property per element.
const snapshotScript = `(() => {
	const props = [
		'background-color','background-image','border-radius',
		'border-top-width','border-right-width','border-bottom-width','border-left-width',
		'border-top-color','border-right-color','border-bottom-color','border-left-color',
		'box-shadow','color','display','font-family','font-size','font-style','font-weight',
		'margin-right','object-fit','padding-left','text-align','text-decoration','text-transform',
		'transform','writing-mode',
	];
	let nextID = 0;
	function snapshot(el) {
		if (!el.id) el.id = 'htmlslide-node-' + (nextID++);
		const cs = getComputedStyle(el);
		const rect = el.getBoundingClientRect();
		const computed = {};
		for (const p of props) computed[p] = cs.getPropertyValue(p);
		const attrs = {};
		for (const a of ['src','href']) {
			const v = el.getAttribute(a);
			if (v) attrs[a] = v;
		}
		const children = [];
		let text = '';
		for (const node of el.childNodes) {
			if (node.nodeType === Node.TEXT_NODE) {
				text += node.textContent;
			} else if (node.nodeType === Node.ELEMENT_NODE) {
				children.push(snapshot(node));
			}
		}
		return {
			id: el.id || '',
			tag: el.tagName,
			classes: el.className ? el.className.split(/\s+/).filter(Boolean) : [],
			text: text,
			children: children,
			box: {x: rect.left, y: rect.top, w: rect.width, h: rect.height},
			computed: computed,
			attrs: attrs,
		};
	}
	return {
		node: snapshot(document.body),
		width: document.body.getBoundingClientRect().width,
		height: document.body.getBoundingClientRect().height,
		scrollWidth: document.body.scrollWidth,
		scrollHeight: document.body.scrollHeight,
	};
})()`

// SnapshotDOM is the production SnapshotFunc: it evaluates snapshotScript
// once against browser's current page and decodes the result into a
// StyledNode tree.
func SnapshotDOM(ctx context.Context, b Browser) (*StyledNode, BodyMetrics, error) {
	var raw map[string]any
	if err := b.Evaluate(ctx, snapshotScript, &raw); err != nil {
		return nil, BodyMetrics{}, fmt.Errorf("evaluate snapshot script: %w", err)
	}

	nodeRaw, ok := raw["node"].(map[string]any)
	if !ok {
		return nil, BodyMetrics{}, fmt.Errorf("snapshot result missing node")
	}
	root := decodeNode(nodeRaw)

	metrics := BodyMetrics{
		WidthPx:        floatOf(raw["width"]),
		HeightPx:       floatOf(raw["height"]),
		ScrollWidthPx:  floatOf(raw["scrollWidth"]),
		ScrollHeightPx: floatOf(raw["scrollHeight"]),
	}
	return root, metrics, nil
}

func decodeNode(m map[string]any) *StyledNode {
	n := &StyledNode{
		ID:   stringOf(m["id"]),
		Tag:  strings.ToUpper(stringOf(m["tag"])),
		Text: stringOf(m["text"]),
	}
	if classes, ok := m["classes"].([]any); ok {
		for _, c := range classes {
			n.Classes = append(n.Classes, stringOf(c))
		}
	}
	if box, ok := m["box"].(map[string]any); ok {
		n.Box = PixelRect{X: floatOf(box["x"]), Y: floatOf(box["y"]), W: floatOf(box["w"]), H: floatOf(box["h"])}
	}
	if computed, ok := m["computed"].(map[string]any); ok {
		n.Computed = map[string]string{}
		for k, v := range computed {
			n.Computed[k] = stringOf(v)
		}
	}
	if attrs, ok := m["attrs"].(map[string]any); ok {
		n.Attrs = map[string]string{}
		for k, v := range attrs {
			n.Attrs[k] = stringOf(v)
		}
	}
	if children, ok := m["children"].([]any); ok {
		for _, c := range children {
			if cm, ok := c.(map[string]any); ok {
				n.Children = append(n.Children, decodeNode(cm))
			}
		}
	}
	return n
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func floatOf(v any) float64 {
	f, _ := v.(float64)
	return f
}

// BuildStyledNodeFromHTML parses a static HTML fragment with goquery and
// builds a StyledNode tree from it, for tests that need a DOM shape
// without a live browser. Geometry and computed style are not derivable
// from static HTML, so callers set Box/Computed on the returned nodes
// after construction (or via WithBox/WithStyle) to describe the layout
// a browser would have produced.
func BuildStyledNodeFromHTML(html string) (*StyledNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html fixture: %w", err)
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("fixture html has no <body>")
	}
	return nodeFromSelection(body), nil
}

func nodeFromSelection(s *goquery.Selection) *StyledNode {
	sel := s.Get(0)
	classAttr, _ := s.Attr("class")
	id, _ := s.Attr("id")

	n := &StyledNode{
		ID:       id,
		Tag:      strings.ToUpper(sel.Data),
		Computed: map[string]string{},
		Attrs:    map[string]string{},
	}
	if classAttr != "" {
		n.Classes = strings.Fields(classAttr)
	}
	for _, a := range sel.Attr {
		if a.Key == "id" || a.Key == "class" {
			continue
		}
		n.Attrs[a.Key] = a.Val
	}

	var text strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			text.WriteString(c.Text())
			return
		}
		n.Children = append(n.Children, nodeFromSelection(c))
	})
	n.Text = text.String()

	return n
}

// WithBox sets n's pixel box and returns n, for fluent fixture construction.
func (n *StyledNode) WithBox(x, y, w, h float64) *StyledNode {
	n.Box = PixelRect{X: x, Y: y, W: w, H: h}
	return n
}

// WithStyle sets a single computed style property and returns n.
func (n *StyledNode) WithStyle(prop, value string) *StyledNode {
	if n.Computed == nil {
		n.Computed = map[string]string{}
	}
	n.Computed[prop] = value
	return n
}
