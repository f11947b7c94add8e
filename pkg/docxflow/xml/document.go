package xml

import (
	"fmt"

	"github.com/beevik/etree"
)

// FooterStore resolves and creates the footer parts that section properties
// reference by relationship ID. The OPC package that owns the document
// implements it.
type FooterStore interface {
	// Footer returns the footer part behind relID.
	Footer(relID string) (*Footer, error)
	// NewFooter creates an empty footer part and returns its relationship ID.
	NewFooter() (string, *Footer, error)
}

// Document is the main document part (word/document.xml).
type Document struct {
	tree    *etree.Document
	body    *etree.Element
	footers FooterStore
}

// ParseDocument parses the XML of a main document part.
func ParseDocument(data []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return NewDocument(tree)
}

// NewDocument wraps an already parsed main document part.
func NewDocument(tree *etree.Document) (*Document, error) {
	root := tree.Root()
	if root == nil || root.Tag != "document" {
		return nil, fmt.Errorf("failed to parse document: missing w:document root")
	}
	body := childW(root, "body")
	if body == nil {
		return nil, fmt.Errorf("failed to parse document: missing w:body")
	}
	return &Document{tree: tree, body: body}, nil
}

// Tree returns the underlying XML tree.
func (d *Document) Tree() *etree.Document {
	return d.tree
}

// Bytes serializes the document part.
func (d *Document) Bytes() ([]byte, error) {
	return d.tree.WriteToBytes()
}

// Body returns the w:body node.
func (d *Document) Body() *etree.Element {
	return d.body
}

// SetFooterStore attaches the store used to resolve footer references.
func (d *Document) SetFooterStore(s FooterStore) {
	d.footers = s
}

// Footers returns the attached footer store, or nil.
func (d *Document) Footers() FooterStore {
	return d.footers
}

// Blocks returns the top-level paragraphs and tables of the body in document order.
func (d *Document) Blocks() []Element {
	var out []Element
	for _, c := range d.body.ChildElements() {
		switch {
		case isW(c, "p"):
			out = append(out, &Paragraph{node: c})
		case isW(c, "tbl"):
			out = append(out, &Table{node: c})
		}
	}
	return out
}

// Paragraphs returns the top-level paragraphs of the body.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range childrenW(d.body, "p") {
		out = append(out, &Paragraph{node: p})
	}
	return out
}

// Tables returns the top-level tables of the body.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, t := range childrenW(d.body, "tbl") {
		out = append(out, &Table{node: t})
	}
	return out
}

// Sections returns one Section per section break plus the final section
// described by the body-level sectPr. A body without a trailing sectPr gets
// an empty one so that the last section is always addressable.
func (d *Document) Sections() []*Section {
	var out []*Section
	for _, p := range childrenW(d.body, "p") {
		if sp := childW(childW(p, "pPr"), "sectPr"); sp != nil {
			out = append(out, &Section{doc: d, node: sp})
		}
	}

	last := childW(d.body, "sectPr")
	if last == nil {
		last = newW("sectPr")
		d.body.AddChild(last)
	}
	return append(out, &Section{doc: d, node: last})
}

// SectionCount returns the number of sections without materializing a
// trailing sectPr.
func (d *Document) SectionCount() int {
	n := 1
	for _, p := range childrenW(d.body, "p") {
		if childW(childW(p, "pPr"), "sectPr") != nil {
			n++
		}
	}
	return n
}
