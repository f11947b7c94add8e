package xml

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
)

// Page orientations (ST_PageOrientation).
const (
	OrientPortrait  = "portrait"
	OrientLandscape = "landscape"
)

// Header/footer reference kinds (ST_HdrFtr).
const (
	FooterDefault = "default"
	FooterFirst   = "first"
	FooterEven    = "even"
)

// Section represents a w:sectPr element and the page scope it describes.
type Section struct {
	doc  *Document
	node *etree.Element
}

func (s *Section) Kind() Kind           { return KindSection }
func (s *Section) Node() *etree.Element { return s.node }
func (s *Section) isElement()           {}

// Document returns the document the section belongs to.
func (s *Section) Document() *Document {
	return s.doc
}

func (s *Section) pageSize() *etree.Element {
	return childW(s.node, "pgSz")
}

// PageWidth returns the page width. ok is false when the section sets none.
func (s *Section) PageWidth() (units.Length, bool) {
	v, ok := intAttrW(s.pageSize(), "w")
	return units.Twips(v), ok
}

// PageHeight returns the page height. ok is false when the section sets none.
func (s *Section) PageHeight() (units.Length, bool) {
	v, ok := intAttrW(s.pageSize(), "h")
	return units.Twips(v), ok
}

// SetPageSize writes the page width and height.
func (s *Section) SetPageSize(width, height units.Length) {
	pgSz := getOrAddOrdered(s.node, "pgSz", sectionPropertyOrder)
	setIntAttrW(pgSz, "w", width.Twips())
	setIntAttrW(pgSz, "h", height.Twips())
}

// Orientation returns the page orientation; an absent w:orient is portrait.
func (s *Section) Orientation() string {
	if v, ok := attrW(s.pageSize(), "orient"); ok {
		return v
	}
	return OrientPortrait
}

// SetOrientation writes w:orient.
func (s *Section) SetOrientation(orient string) {
	pgSz := getOrAddOrdered(s.node, "pgSz", sectionPropertyOrder)
	setAttrW(pgSz, "orient", orient)
}

// FooterReference returns the relationship ID of the footer of the given
// kind, or "" when the section inherits it.
func (s *Section) FooterReference(kind string) string {
	for _, ref := range childrenW(s.node, "footerReference") {
		if t, _ := attrW(ref, "type"); t == kind {
			return ref.SelectAttrValue("r:id", "")
		}
	}
	return ""
}

// FooterReferences returns the relationship IDs of all footers the section
// references.
func (s *Section) FooterReferences() []string {
	var ids []string
	for _, ref := range childrenW(s.node, "footerReference") {
		if id := ref.SelectAttrValue("r:id", ""); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetFooterReference points the footer of the given kind at relID.
func (s *Section) SetFooterReference(kind, relID string) {
	var ref *etree.Element
	for _, r := range childrenW(s.node, "footerReference") {
		if t, _ := attrW(r, "type"); t == kind {
			ref = r
			break
		}
	}
	if ref == nil {
		ref = newW("footerReference")
		setAttrW(ref, "type", kind)
		insertOrdered(s.node, ref, sectionPropertyOrder)
	}
	if s.doc != nil {
		s.doc.ensureNamespace("r", NamespaceR)
	}
	ref.CreateAttr("r:id", relID)
}

// PageNumberStart returns w:pgNumType/@w:start.
func (s *Section) PageNumberStart() (int, bool) {
	v, ok := intAttrW(childW(s.node, "pgNumType"), "start")
	return int(v), ok
}

// SetPageNumberStart restarts page numbering at n in this section.
func (s *Section) SetPageNumberStart(n int) {
	pg := getOrAddOrdered(s.node, "pgNumType", sectionPropertyOrder)
	setAttrW(pg, "start", strconv.Itoa(n))
}

// ClearPageNumberStart makes the section continue numbering from the previous one.
func (s *Section) ClearPageNumberStart() {
	pg := childW(s.node, "pgNumType")
	if pg == nil {
		return
	}
	pg.RemoveAttr(w("start"))
	if len(pg.Attr) == 0 && len(pg.ChildElements()) == 0 {
		s.node.RemoveChild(pg)
	}
}

// PageNumberFormat returns w:pgNumType/@w:fmt, or "" for the default decimal.
func (s *Section) PageNumberFormat() string {
	v, _ := attrW(childW(s.node, "pgNumType"), "fmt")
	return v
}

// SetPageNumberFormat writes the page number format (ST_NumberFormat).
func (s *Section) SetPageNumberFormat(format string) {
	pg := getOrAddOrdered(s.node, "pgNumType", sectionPropertyOrder)
	setAttrW(pg, "fmt", format)
}

// ensureNamespace declares prefix on the document root when missing.
func (d *Document) ensureNamespace(prefix, uri string) {
	root := d.tree.Root()
	if root.SelectAttr("xmlns:"+prefix) == nil {
		root.CreateAttr("xmlns:"+prefix, uri)
	}
}
