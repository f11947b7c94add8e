// Package docxflow batch-edits Microsoft Word documents (DOCX) through a
// select, filter, apply pipeline.
//
// An Editor loads a document and hands out selectors over its paragraphs,
// tables and sections. A selector is narrowed with conditions and section
// filters, then actions mutate every selected element in place:
//
//	ed, err := docxflow.Open("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sel := ed.SelectParagraphs().
//	    Where(docxflow.MustPattern(`【TARGET】`)).
//	    Apply(docxflow.NewReplaceText("【TARGET】", "")).
//	    Apply(docxflow.NewAlignParagraph(docxflow.AlignCenter))
//	if err := sel.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := ed.Save("report-out.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sections
//
// Every paragraph and table belongs to the section whose break follows it.
// The mapping is computed once when the document is loaded; InSection and
// FromSection answer from that snapshot, so elements added later belong to
// no section.
//
// # Conditions
//
//   - PatternCondition: regular expression search over paragraph text
//   - ColumnCountCondition: tables with a given number of columns
//   - TableTextCondition: tables containing a substring
//   - FuncCondition: any predicate; a panic counts as no match
//
// Not, All and Any combine conditions.
//
// # Actions
//
// Paragraphs: NewReplaceText, NewAlignParagraph, NewSetFontSize,
// NewAdjustFontSize, NewSetTabStop, NewClearAndSetTabStop.
//
// Tables: NewReplaceText, NewSetFontSize, NewRemoveTableBorders,
// NewSetTableWidth, NewSetTableColumnWidth, NewAutoFitTable, NewAutoFitRatio.
//
// Sections: NewSetSectionOrientation, NewAddPageNumber, NewClearPageNumber.
//
// Actions skip elements they do not handle, except NewSetSectionOrientation,
// which reports an *ElementKindError. Arguments that can never be valid are
// rejected by the constructors with a *ValidationError, and column widths
// that do not match a table fail with a *CardinalityError before the table
// is touched.
//
// # Architecture
//
//   - units: length conversions and percentage widths
//   - xml: views over the WordprocessingML tree
//   - recipe: YAML recipes compiled to selector pipelines
package docxflow
