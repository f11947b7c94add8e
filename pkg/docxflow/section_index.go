package docxflow

import (
	"github.com/beevik/etree"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

// SectionIndex maps the body position of every paragraph and table to the
// ordinal of the section it belongs to. It is computed once when a document
// is loaded and never rebuilt: elements inserted later are unknown to it and
// structural edits do not move existing entries.
type SectionIndex struct {
	// Paragraphs[i] is the section ordinal of the i-th top-level paragraph.
	Paragraphs []int
	// Tables[i] is the section ordinal of the i-th top-level table.
	Tables []int

	paragraphPos map[*etree.Element]int
	tablePos     map[*etree.Element]int
	sectionPos   map[*etree.Element]int
}

// BuildSectionIndex scans the body once in document order. A paragraph
// belongs to the section its own break closes, so the ordinal is recorded
// before it is advanced.
func BuildSectionIndex(doc *xml.Document) *SectionIndex {
	idx := &SectionIndex{
		paragraphPos: make(map[*etree.Element]int),
		tablePos:     make(map[*etree.Element]int),
		sectionPos:   make(map[*etree.Element]int),
	}

	ordinal := 0
	for _, block := range doc.Blocks() {
		switch el := block.(type) {
		case *xml.Paragraph:
			idx.paragraphPos[el.Node()] = len(idx.Paragraphs)
			idx.Paragraphs = append(idx.Paragraphs, ordinal)
			if el.HasSectionBreak() {
				ordinal++
			}
		case *xml.Table:
			idx.tablePos[el.Node()] = len(idx.Tables)
			idx.Tables = append(idx.Tables, ordinal)
		}
	}

	for i, s := range doc.Sections() {
		idx.sectionPos[s.Node()] = i
	}
	return idx
}

// SectionCount returns the number of sections seen at load time.
func (idx *SectionIndex) SectionCount() int {
	return len(idx.sectionPos)
}

// SectionOf returns the section ordinal of el. ok is false for elements that
// did not exist at load time, including nested paragraphs and tables.
func (idx *SectionIndex) SectionOf(el xml.Element) (int, bool) {
	if el == nil {
		return 0, false
	}
	switch el.(type) {
	case *xml.Paragraph:
		if pos, ok := idx.paragraphPos[el.Node()]; ok {
			return idx.Paragraphs[pos], true
		}
	case *xml.Table:
		if pos, ok := idx.tablePos[el.Node()]; ok {
			return idx.Tables[pos], true
		}
	case *xml.Section:
		if pos, ok := idx.sectionPos[el.Node()]; ok {
			return pos, true
		}
	}
	return 0, false
}
