package xml

import "github.com/beevik/etree"

// Child sequences of the property containers this package edits, in the order
// the WordprocessingML schema requires. Elements missing from a list are left
// where they are and never used as insertion anchors.
var (
	paragraphPropertyOrder = []string{
		"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr",
		"widowControl", "numPr", "suppressLineNumbers", "pBdr", "shd", "tabs",
		"suppressAutoHyphens", "kinsoku", "wordWrap", "overflowPunct",
		"topLinePunct", "autoSpaceDE", "autoSpaceDN", "bidi", "adjustRightInd",
		"snapToGrid", "spacing", "ind", "contextualSpacing", "mirrorIndents",
		"suppressOverlap", "jc", "textDirection", "textAlignment",
		"textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr", "sectPr",
		"pPrChange",
	}

	runPropertyOrder = []string{
		"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps",
		"strike", "dstrike", "outline", "shadow", "emboss", "imprint",
		"noProof", "snapToGrid", "vanish", "webHidden", "color", "spacing",
		"w", "kern", "position", "sz", "szCs", "highlight", "u", "effect",
		"bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang",
		"eastAsianLayout", "specVanish", "oMath",
	}

	tablePropertyOrder = []string{
		"tblStyle", "tblpPr", "tblOverlap", "bidiVisual",
		"tblStyleRowBandSize", "tblStyleColBandSize", "tblW", "jc",
		"tblCellSpacing", "tblInd", "tblBorders", "shd", "tblLayout",
		"tblCellMar", "tblLook", "tblCaption", "tblDescription", "tblPrChange",
	}

	cellPropertyOrder = []string{
		"cnfStyle", "tcW", "gridSpan", "hMerge", "vMerge", "tcBorders", "shd",
		"noWrap", "tcMar", "textDirection", "tcFitText", "vAlign", "hideMark",
		"headers", "cellIns", "cellDel", "cellMerge", "tcPrChange",
	}

	borderOrder = []string{
		"top", "start", "left", "bottom", "end", "right", "insideH", "insideV",
		"tl2br", "tr2bl",
	}

	sectionPropertyOrder = []string{
		"headerReference", "footerReference", "footnotePr", "endnotePr",
		"type", "pgSz", "pgMar", "paperSrc", "pgBorders", "lnNumType",
		"pgNumType", "cols", "formProt", "vAlign", "noEndnote", "titlePg",
		"textDirection", "bidi", "rtlGutter", "docGrid", "printerSettings",
		"sectPrChange",
	}
)

func rank(order []string, local string) int {
	for i, name := range order {
		if name == local {
			return i
		}
	}
	return -1
}

// insertOrdered places child under parent before the first sibling that the
// schema orders after it.
func insertOrdered(parent, child *etree.Element, order []string) {
	r := rank(order, child.Tag)
	if r >= 0 {
		for _, sib := range parent.ChildElements() {
			if sib.Space != "w" {
				continue
			}
			if sr := rank(order, sib.Tag); sr > r {
				parent.InsertChildAt(sib.Index(), child)
				return
			}
		}
	}
	parent.AddChild(child)
}

// getOrAddOrdered returns the w:local child of parent, creating it in schema
// position when absent.
func getOrAddOrdered(parent *etree.Element, local string, order []string) *etree.Element {
	if c := childW(parent, local); c != nil {
		return c
	}
	c := newW(local)
	insertOrdered(parent, c, order)
	return c
}

// getOrAddFirst returns the w:local child of parent, creating it as the first
// element child when absent. Used for pPr, rPr, tblPr and tcPr, which always
// lead their parent.
func getOrAddFirst(parent *etree.Element, local string) *etree.Element {
	if c := childW(parent, local); c != nil {
		return c
	}
	c := newW(local)
	children := parent.ChildElements()
	if len(children) == 0 {
		parent.AddChild(c)
	} else {
		parent.InsertChildAt(children[0].Index(), c)
	}
	return c
}
