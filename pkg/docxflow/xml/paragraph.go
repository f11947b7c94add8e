package xml

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
)

// Paragraph represents a w:p element.
type Paragraph struct {
	node *etree.Element
}

// NewParagraph wraps an existing w:p node.
func NewParagraph(node *etree.Element) *Paragraph {
	return &Paragraph{node: node}
}

func (p *Paragraph) Kind() Kind           { return KindParagraph }
func (p *Paragraph) Node() *etree.Element { return p.node }
func (p *Paragraph) isElement()           {}

// Properties returns the paragraph's pPr, creating it when absent.
func (p *Paragraph) Properties() *etree.Element {
	return getOrAddFirst(p.node, "pPr")
}

func (p *Paragraph) properties() *etree.Element {
	return childW(p.node, "pPr")
}

// Runs returns the paragraph's runs in document order, including runs
// nested in hyperlinks.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.node.ChildElements() {
		switch {
		case isW(c, "r"):
			runs = append(runs, &Run{node: c})
		case isW(c, "hyperlink"):
			for _, r := range childrenW(c, "r") {
				runs = append(runs, &Run{node: r})
			}
		}
	}
	return runs
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// HasSectionBreak reports whether the paragraph terminates a section.
func (p *Paragraph) HasSectionBreak() bool {
	return childW(p.properties(), "sectPr") != nil
}

// Alignment returns the w:jc value, or "" when the paragraph inherits it.
func (p *Paragraph) Alignment() string {
	v, _ := attrW(childW(p.properties(), "jc"), "val")
	return v
}

// SetAlignment writes w:jc. val is a raw ST_Jc value such as "center" or "both".
func (p *Paragraph) SetAlignment(val string) {
	jc := getOrAddOrdered(p.Properties(), "jc", paragraphPropertyOrder)
	setAttrW(jc, "val", val)
}

// TabStop is a custom tab stop of a paragraph.
type TabStop struct {
	Alignment string
	Position  units.Length
	Leader    string
}

// TabStops returns the paragraph's own tab stops in markup order.
func (p *Paragraph) TabStops() []TabStop {
	var stops []TabStop
	for _, tab := range childrenW(childW(p.properties(), "tabs"), "tab") {
		val, _ := attrW(tab, "val")
		pos, _ := intAttrW(tab, "pos")
		leader, _ := attrW(tab, "leader")
		stops = append(stops, TabStop{Alignment: val, Position: units.Twips(pos), Leader: leader})
	}
	return stops
}

// AddTabStop adds a tab stop keeping the list sorted by position. A stop
// already at the same position is updated instead of duplicated.
func (p *Paragraph) AddTabStop(pos units.Length, alignment string) {
	tabs := getOrAddOrdered(p.Properties(), "tabs", paragraphPropertyOrder)
	twips := pos.Twips()

	var before *etree.Element
	for _, tab := range childrenW(tabs, "tab") {
		existing, _ := intAttrW(tab, "pos")
		if existing == twips {
			setAttrW(tab, "val", alignment)
			return
		}
		if existing > twips && before == nil {
			before = tab
		}
	}

	tab := newW("tab")
	setAttrW(tab, "val", alignment)
	setIntAttrW(tab, "pos", twips)
	if before != nil {
		tabs.InsertChildAt(before.Index(), tab)
	} else {
		tabs.AddChild(tab)
	}
}

// ClearTabStops removes every tab stop defined on the paragraph.
func (p *Paragraph) ClearTabStops() {
	if pPr := p.properties(); pPr != nil {
		removeChildrenW(pPr, "tabs")
	}
}
