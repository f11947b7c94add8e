package docxflow

import (
	"fmt"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

// RemoveTableBordersAction suppresses every border of a table and its cells,
// including borders a table style would supply.
type RemoveTableBordersAction struct{}

// NewRemoveTableBorders returns the border removal action.
func NewRemoveTableBorders() *RemoveTableBordersAction {
	return &RemoveTableBordersAction{}
}

func (a *RemoveTableBordersAction) Execute(el xml.Element) error {
	t, ok := el.(*xml.Table)
	if !ok {
		return nil
	}
	t.SetBorders(xml.BorderNil)
	for _, cell := range t.Cells() {
		cell.SetBorders(xml.BorderNil)
	}
	return nil
}

// TableWidthAction fixes the total width of a table.
type TableWidthAction struct {
	Width units.Length
}

// NewSetTableWidth fixes the table layout at width.
func NewSetTableWidth(width units.Length) *TableWidthAction {
	return &TableWidthAction{Width: width}
}

func (a *TableWidthAction) Execute(el xml.Element) error {
	t, ok := el.(*xml.Table)
	if !ok {
		return nil
	}
	t.SetLayout(xml.LayoutFixed)
	t.SetWidth(a.Width.Twips(), xml.WidthDxa)
	return nil
}

// ColumnWidthAction assigns a width to every column of a table.
type ColumnWidthAction struct {
	Widths []units.Length
}

// NewSetTableColumnWidth assigns widths[i] to column i. The table must have
// exactly len(widths) columns.
func NewSetTableColumnWidth(widths []units.Length) *ColumnWidthAction {
	return &ColumnWidthAction{Widths: append([]units.Length(nil), widths...)}
}

// Column widths are carried by the cells; the grid is updated to agree.
func (a *ColumnWidthAction) Execute(el xml.Element) error {
	t, ok := el.(*xml.Table)
	if !ok {
		return nil
	}
	n := t.ColumnCount()
	if len(a.Widths) != n {
		return &CardinalityError{What: "column widths", Expected: n, Got: len(a.Widths)}
	}

	twips := make([]int64, n)
	for i, w := range a.Widths {
		twips[i] = w.Twips()
	}

	t.SetLayout(xml.LayoutFixed)
	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			cell.SetWidth(spanWidth(twips, cell), xml.WidthDxa)
		}
	}
	for i, w := range twips {
		t.SetGridColumnWidth(i, w)
	}
	return nil
}

// spanWidth sums the widths of the grid columns a cell covers.
func spanWidth(widths []int64, cell *xml.Cell) int64 {
	var total int64
	for col := cell.GridColumn(); col < cell.GridColumn()+cell.GridSpan() && col < len(widths); col++ {
		if col >= 0 {
			total += widths[col]
		}
	}
	return total
}

// AutoFitMode selects how a table resolves its width.
type AutoFitMode int

const (
	// AutoFitContents sizes the table to its contents.
	AutoFitContents AutoFitMode = iota
	// AutoFitWindow stretches the table over the available width.
	AutoFitWindow
	// AutoFitFixed fixes the table at the default content width split evenly
	// between the columns.
	AutoFitFixed
	// AutoFitRatio gives the first column a share of the available width and
	// splits the rest evenly. Use NewAutoFitRatio.
	AutoFitRatio
)

func (m AutoFitMode) String() string {
	switch m {
	case AutoFitContents:
		return "contents"
	case AutoFitWindow:
		return "window"
	case AutoFitFixed:
		return "fixed"
	case AutoFitRatio:
		return "ratio"
	default:
		return "unknown"
	}
}

// ParseAutoFitMode parses "contents", "window" or "fixed".
func ParseAutoFitMode(s string) (AutoFitMode, error) {
	switch s {
	case "contents", "content":
		return AutoFitContents, nil
	case "window":
		return AutoFitWindow, nil
	case "fixed":
		return AutoFitFixed, nil
	}
	return 0, NewValidationError("autofit", fmt.Sprintf("unknown autofit mode %q", s))
}

// AutoFitAction rewrites the layout and width directives of a table.
type AutoFitAction struct {
	mode  AutoFitMode
	ratio float64
}

// NewAutoFitTable applies one of AutoFitContents, AutoFitWindow or
// AutoFitFixed.
func NewAutoFitTable(mode AutoFitMode) *AutoFitAction {
	return &AutoFitAction{mode: mode}
}

// NewAutoFitRatio gives the first column ratio of the width. ratio must lie
// strictly between 0 and 1.
func NewAutoFitRatio(ratio float64) (*AutoFitAction, error) {
	if !(ratio > 0 && ratio < 1) {
		return nil, NewValidationError("first_column_ratio", fmt.Sprintf("ratio must be between 0 and 1 exclusive, got %g", ratio))
	}
	return &AutoFitAction{mode: AutoFitRatio, ratio: ratio}, nil
}

// Mode returns the layout mode the action applies.
func (a *AutoFitAction) Mode() AutoFitMode {
	return a.mode
}

func (a *AutoFitAction) Execute(el xml.Element) error {
	t, ok := el.(*xml.Table)
	if !ok {
		return nil
	}

	t.RemoveProperty("tblLayout")
	t.RemoveProperty("tblW")

	switch a.mode {
	case AutoFitContents:
		t.SetLayout(xml.LayoutAutofit)
		t.SetWidth(0, xml.WidthAuto)
	case AutoFitWindow:
		t.SetLayout(xml.LayoutAutofit)
		t.SetWidth(units.FullWidthPercent, xml.WidthPercent)
	case AutoFitFixed:
		a.fixed(t)
	case AutoFitRatio:
		a.firstColumnRatio(t)
	}
	return nil
}

func (a *AutoFitAction) fixed(t *xml.Table) {
	total := units.DefaultContentWidth
	t.SetLayout(xml.LayoutFixed)
	t.SetWidth(total.Twips(), xml.WidthDxa)

	n := t.ColumnCount()
	if n == 0 {
		return
	}
	twips := make([]int64, n)
	for i, w := range units.SplitEven(total, n) {
		twips[i] = w.Twips()
		t.SetGridColumnWidth(i, twips[i])
	}
	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			cell.SetWidth(spanWidth(twips, cell), xml.WidthDxa)
		}
	}
}

// firstColumnRatio writes percentage widths onto the first row's cells; Word
// derives the column widths of a fixed percentage table from that row.
func (a *AutoFitAction) firstColumnRatio(t *xml.Table) {
	t.SetLayout(xml.LayoutFixed)
	t.SetWidth(units.FullWidthPercent, xml.WidthPercent)

	rows := t.Rows()
	if len(rows) == 0 {
		return
	}
	widths := units.SplitPercent(a.ratio, t.ColumnCount())
	for _, cell := range rows[0].Cells() {
		cell.SetWidth(spanWidth(widths, cell), xml.WidthPercent)
	}
}
