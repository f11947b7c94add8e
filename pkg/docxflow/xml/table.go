package xml

import (
	"strings"

	"github.com/beevik/etree"
)

// Width types (ST_TblWidth).
const (
	WidthAuto    = "auto"
	WidthDxa     = "dxa"
	WidthPercent = "pct"
)

// Table layout types (ST_TblLayoutType).
const (
	LayoutAutofit = "autofit"
	LayoutFixed   = "fixed"
)

// BorderNil is the border value that suppresses a border, including one a
// table style would otherwise supply.
const BorderNil = "nil"

// BorderEdges are the six edges written for a table or cell border set.
var BorderEdges = []string{"top", "left", "bottom", "right", "insideH", "insideV"}

// Logical edge aliases used by newer producers.
var edgeAliases = map[string]string{"left": "start", "right": "end"}

// Table represents a w:tbl element.
type Table struct {
	node *etree.Element
}

func (t *Table) Kind() Kind           { return KindTable }
func (t *Table) Node() *etree.Element { return t.node }
func (t *Table) isElement()           {}

// Properties returns the table's tblPr, creating it when absent.
func (t *Table) Properties() *etree.Element {
	return getOrAddFirst(t.node, "tblPr")
}

func (t *Table) properties() *etree.Element {
	return childW(t.node, "tblPr")
}

// Rows returns the table rows.
func (t *Table) Rows() []*Row {
	var rows []*Row
	for _, tr := range childrenW(t.node, "tr") {
		rows = append(rows, &Row{node: tr})
	}
	return rows
}

// Cells returns every cell of every row in row-major order.
func (t *Table) Cells() []*Cell {
	var cells []*Cell
	for _, row := range t.Rows() {
		cells = append(cells, row.Cells()...)
	}
	return cells
}

// ColumnCount returns the number of grid columns. Tables without a tblGrid
// are measured by their widest row.
func (t *Table) ColumnCount() int {
	if cols := childrenW(childW(t.node, "tblGrid"), "gridCol"); len(cols) > 0 {
		return len(cols)
	}
	widest := 0
	for _, row := range t.Rows() {
		if n := row.gridWidth(); n > widest {
			widest = n
		}
	}
	return widest
}

// GridColumnWidths returns the w:gridCol widths in twips.
func (t *Table) GridColumnWidths() []int64 {
	var widths []int64
	for _, col := range childrenW(childW(t.node, "tblGrid"), "gridCol") {
		v, _ := intAttrW(col, "w")
		widths = append(widths, v)
	}
	return widths
}

// SetGridColumnWidth writes the width of grid column i in twips, creating the
// tblGrid when the table has none.
func (t *Table) SetGridColumnWidth(i int, twips int64) {
	grid := childW(t.node, "tblGrid")
	if grid == nil {
		grid = newW("tblGrid")
		if pr := t.properties(); pr != nil {
			t.node.InsertChildAt(pr.Index()+1, grid)
		} else {
			t.node.InsertChildAt(0, grid)
		}
	}
	cols := childrenW(grid, "gridCol")
	for len(cols) <= i {
		col := newW("gridCol")
		grid.AddChild(col)
		cols = append(cols, col)
	}
	setIntAttrW(cols[i], "w", twips)
}

// Width returns the tblW value and type.
func (t *Table) Width() (int64, string, bool) {
	return widthOf(childW(t.properties(), "tblW"))
}

// SetWidth writes tblW.
func (t *Table) SetWidth(value int64, typ string) {
	tblW := getOrAddOrdered(t.Properties(), "tblW", tablePropertyOrder)
	setIntAttrW(tblW, "w", value)
	setAttrW(tblW, "type", typ)
}

// Layout returns the tblLayout type, or "" when unset.
func (t *Table) Layout() string {
	v, _ := attrW(childW(t.properties(), "tblLayout"), "type")
	return v
}

// SetLayout writes tblLayout.
func (t *Table) SetLayout(typ string) {
	layout := getOrAddOrdered(t.Properties(), "tblLayout", tablePropertyOrder)
	setAttrW(layout, "type", typ)
}

// LayoutMode classifies the table as "fixed", "window" or "contents".
func (t *Table) LayoutMode() string {
	if t.Layout() == LayoutFixed {
		return "fixed"
	}
	if v, typ, ok := t.Width(); ok && typ == WidthPercent && v >= 5000 {
		return "window"
	}
	return "contents"
}

// RemoveProperty deletes every w:local child of tblPr.
func (t *Table) RemoveProperty(local string) {
	if pr := t.properties(); pr != nil {
		removeChildrenW(pr, local)
	}
}

// SetBorders sets every edge of tblBorders to val.
func (t *Table) SetBorders(val string) {
	borders := getOrAddOrdered(t.Properties(), "tblBorders", tablePropertyOrder)
	setEdges(borders, val)
}

// BorderValue returns the val of a tblBorders edge.
func (t *Table) BorderValue(edge string) (string, bool) {
	return attrW(childW(childW(t.properties(), "tblBorders"), edge), "val")
}

func setEdges(borders *etree.Element, val string) {
	for _, edge := range BorderEdges {
		b := getOrAddOrdered(borders, edge, borderOrder)
		setAttrW(b, "val", val)
		if alias, ok := edgeAliases[edge]; ok {
			if a := childW(borders, alias); a != nil {
				setAttrW(a, "val", val)
			}
		}
	}
}

// Row represents a w:tr element.
type Row struct {
	node *etree.Element
}

// Node returns the w:tr node.
func (r *Row) Node() *etree.Element {
	return r.node
}

// gridBefore returns the number of grid columns skipped before the first cell.
func (r *Row) gridBefore() int {
	n, _ := intAttrW(childW(childW(r.node, "trPr"), "gridBefore"), "val")
	return int(n)
}

// Cells returns the row's cells with their starting grid column.
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	col := r.gridBefore()
	for _, tc := range childrenW(r.node, "tc") {
		c := &Cell{node: tc, gridCol: col}
		cells = append(cells, c)
		col += c.GridSpan()
	}
	return cells
}

// CellAt returns the cell that covers grid column col, or nil.
func (r *Row) CellAt(col int) *Cell {
	for _, c := range r.Cells() {
		if col >= c.gridCol && col < c.gridCol+c.GridSpan() {
			return c
		}
	}
	return nil
}

func (r *Row) gridWidth() int {
	n := r.gridBefore()
	for _, c := range r.Cells() {
		n += c.GridSpan()
	}
	return n
}

// Cell represents a w:tc element.
type Cell struct {
	node    *etree.Element
	gridCol int
}

// Node returns the w:tc node.
func (c *Cell) Node() *etree.Element {
	return c.node
}

// GridColumn returns the first grid column the cell occupies.
func (c *Cell) GridColumn() int {
	return c.gridCol
}

// GridSpan returns the number of grid columns the cell spans.
func (c *Cell) GridSpan() int {
	n, ok := intAttrW(childW(childW(c.node, "tcPr"), "gridSpan"), "val")
	if !ok || n < 1 {
		return 1
	}
	return int(n)
}

// Properties returns the cell's tcPr, creating it when absent.
func (c *Cell) Properties() *etree.Element {
	return getOrAddFirst(c.node, "tcPr")
}

// Paragraphs returns the paragraphs directly inside the cell.
func (c *Cell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range childrenW(c.node, "p") {
		out = append(out, &Paragraph{node: p})
	}
	return out
}

// Text returns the cell's paragraph texts joined by newlines.
func (c *Cell) Text() string {
	var parts []string
	for _, p := range c.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// Width returns the tcW value and type.
func (c *Cell) Width() (int64, string, bool) {
	return widthOf(childW(childW(c.node, "tcPr"), "tcW"))
}

// SetWidth writes tcW.
func (c *Cell) SetWidth(value int64, typ string) {
	tcW := getOrAddOrdered(c.Properties(), "tcW", cellPropertyOrder)
	setIntAttrW(tcW, "w", value)
	setAttrW(tcW, "type", typ)
}

// SetBorders sets every edge of tcBorders to val.
func (c *Cell) SetBorders(val string) {
	borders := getOrAddOrdered(c.Properties(), "tcBorders", cellPropertyOrder)
	setEdges(borders, val)
}

// BorderValue returns the val of a tcBorders edge.
func (c *Cell) BorderValue(edge string) (string, bool) {
	return attrW(childW(childW(childW(c.node, "tcPr"), "tcBorders"), edge), "val")
}

func widthOf(el *etree.Element) (int64, string, bool) {
	if el == nil {
		return 0, "", false
	}
	v, _ := intAttrW(el, "w")
	typ, _ := attrW(el, "type")
	return v, typ, true
}
