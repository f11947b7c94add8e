package xml

import (
	"strconv"

	"github.com/beevik/etree"
)

const (
	// NamespaceW is the WordprocessingML main namespace.
	NamespaceW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// NamespaceR is the officeDocument relationships namespace.
	NamespaceR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Kind identifies the variant of an Element.
type Kind int

const (
	KindParagraph Kind = iota
	KindTable
	KindSection
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	case KindSection:
		return "section"
	default:
		return "unknown"
	}
}

// Element is a selectable document element. The set of implementations is
// closed: *Paragraph, *Table and *Section.
type Element interface {
	Kind() Kind
	// Node returns the markup node backing the element.
	Node() *etree.Element
	isElement()
}

// w returns the prefixed WordprocessingML tag.
func w(local string) string {
	return "w:" + local
}

// isW reports whether el is the WordprocessingML element named local.
func isW(el *etree.Element, local string) bool {
	return el != nil && el.Space == "w" && el.Tag == local
}

// childW returns the first w:local child of el.
func childW(el *etree.Element, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if isW(c, local) {
			return c
		}
	}
	return nil
}

// childrenW returns every w:local child of el.
func childrenW(el *etree.Element, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if isW(c, local) {
			out = append(out, c)
		}
	}
	return out
}

// removeChildrenW removes every w:local child of el and reports how many were removed.
func removeChildrenW(el *etree.Element, local string) int {
	n := 0
	for _, c := range childrenW(el, local) {
		el.RemoveChild(c)
		n++
	}
	return n
}

// attrW returns the value of the w:key attribute.
func attrW(el *etree.Element, key string) (string, bool) {
	if el == nil {
		return "", false
	}
	a := el.SelectAttr(w(key))
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// intAttrW parses the w:key attribute as an integer.
func intAttrW(el *etree.Element, key string) (int64, bool) {
	v, ok := attrW(el, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// Some producers write floating point twips.
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, false
		}
		n = int64(f)
	}
	return n, true
}

func setAttrW(el *etree.Element, key, value string) {
	el.CreateAttr(w(key), value)
}

func setIntAttrW(el *etree.Element, key string, value int64) {
	el.CreateAttr(w(key), strconv.FormatInt(value, 10))
}

// newW creates an unparented WordprocessingML element.
func newW(local string) *etree.Element {
	return etree.NewElement(w(local))
}
