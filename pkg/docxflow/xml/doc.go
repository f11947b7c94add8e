// Package xml provides views over the WordprocessingML tree of a DOCX document.
//
// The views wrap nodes of a mutable etree tree rather than unmarshalling into
// Go structs, so every element and attribute the package does not know about
// survives a load/save round trip untouched. Mutations insert or replace only
// the property nodes they own and keep the child order required by the
// WordprocessingML schema.
//
// # Structure Organization
//
//   - types.go: the Element sum type (Paragraph, Table, Section) and node helpers
//   - order.go: schema child order for property containers (pPr, rPr, tblPr, tcPr, sectPr)
//   - document.go: Document and body traversal
//   - paragraph.go: paragraphs, alignment and tab stops
//   - run.go: runs, run text and font size
//   - table.go: tables, rows, cells, widths, layout and borders
//   - section.go: section page geometry, footer references and page numbering
//   - field.go: PAGE field construction and removal inside footer parts
//
// # Key Concepts
//
// Element: anything a selector can hold. Code that acts on elements type
// switches on *Paragraph, *Table and *Section.
//
// Section: a sectPr node. Every sectPr found in a paragraph's pPr terminates a
// section; the sectPr at the end of the body describes the last section.
//
// # XML Namespaces
//
// Nodes are addressed with the conventional prefixes used by Word:
//   - w: WordprocessingML main namespace
//   - r: relationships namespace
package xml
