package xml

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
)

// Run represents a w:r element: a span of text sharing one set of character
// formatting.
type Run struct {
	node *etree.Element
}

// Node returns the w:r node.
func (r *Run) Node() *etree.Element {
	return r.node
}

// Properties returns the run's rPr, creating it when absent.
func (r *Run) Properties() *etree.Element {
	return getOrAddFirst(r.node, "rPr")
}

// isTextChild reports whether c contributes to the run's plain text.
func isTextChild(c *etree.Element) bool {
	if c.Space != "w" {
		return false
	}
	switch c.Tag {
	case "t", "tab", "cr":
		return true
	case "br":
		typ, _ := attrW(c, "type")
		return typ == "" || typ == "textWrapping"
	}
	return false
}

// Text returns the run's text. Tabs read as "\t" and line breaks as "\n".
func (r *Run) Text() string {
	var sb strings.Builder
	for _, c := range r.node.ChildElements() {
		if !isTextChild(c) {
			continue
		}
		switch c.Tag {
		case "t":
			sb.WriteString(c.Text())
		case "tab":
			sb.WriteString("\t")
		default:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// SetText replaces the run's text content. Formatting and non-text children
// such as drawings or field characters are kept in place.
func (r *Run) SetText(text string) {
	var textNodes []*etree.Element
	for _, c := range r.node.ChildElements() {
		if isTextChild(c) {
			textNodes = append(textNodes, c)
		}
	}

	// A run holding a single w:t keeps that node and its attributes.
	if len(textNodes) == 1 && textNodes[0].Tag == "t" && !strings.ContainsAny(text, "\t\n") {
		setTextNode(textNodes[0], text)
		return
	}

	insertAt := -1
	if len(textNodes) > 0 {
		insertAt = textNodes[0].Index()
	}
	for _, c := range textNodes {
		r.node.RemoveChild(c)
	}

	for _, node := range buildTextNodes(text) {
		if insertAt < 0 {
			r.node.AddChild(node)
			continue
		}
		r.node.InsertChildAt(insertAt, node)
		insertAt = node.Index() + 1
	}
}

// buildTextNodes converts plain text into w:t, w:tab and w:br nodes.
func buildTextNodes(text string) []*etree.Element {
	var nodes []*etree.Element
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		t := newW("t")
		setTextNode(t, sb.String())
		nodes = append(nodes, t)
		sb.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			nodes = append(nodes, newW("tab"))
		case '\n':
			flush()
			nodes = append(nodes, newW("br"))
		default:
			sb.WriteRune(ch)
		}
	}
	flush()
	return nodes
}

func setTextNode(t *etree.Element, text string) {
	t.SetText(text)
	if text != strings.TrimSpace(text) {
		t.CreateAttr("xml:space", "preserve")
	}
}

// FontSize returns the run's explicit w:sz. ok is false when the size is
// inherited from a style or the document defaults.
func (r *Run) FontSize() (units.Length, bool) {
	hp, ok := intAttrW(childW(childW(r.node, "rPr"), "sz"), "val")
	if !ok {
		return 0, false
	}
	return units.HalfPoints(hp), true
}

// SetFontSize writes w:sz, rounded to the nearest half-point.
func (r *Run) SetFontSize(size units.Length) {
	sz := getOrAddOrdered(r.Properties(), "sz", runPropertyOrder)
	setIntAttrW(sz, "val", size.HalfPoints())
}

// SetFont sets the run's font for every script.
func (r *Run) SetFont(name string) {
	fonts := getOrAddOrdered(r.Properties(), "rFonts", runPropertyOrder)
	for _, key := range []string{"ascii", "hAnsi", "eastAsia", "cs"} {
		setAttrW(fonts, key, name)
	}
}
