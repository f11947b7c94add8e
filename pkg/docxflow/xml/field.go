package xml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
)

// Footer is a footer part (word/footerN.xml).
type Footer struct {
	tree *etree.Document
	root *etree.Element
}

// NewFooterTree returns an empty footer part.
func NewFooterTree() *etree.Document {
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := tree.CreateElement("w:ftr")
	root.CreateAttr("xmlns:w", NamespaceW)
	root.CreateAttr("xmlns:r", NamespaceR)
	return tree
}

// WrapFooter wraps a parsed footer part.
func WrapFooter(tree *etree.Document) (*Footer, error) {
	root := tree.Root()
	if root == nil || root.Tag != "ftr" {
		return nil, fmt.Errorf("not a footer part: missing w:ftr root")
	}
	return &Footer{tree: tree, root: root}, nil
}

// Tree returns the footer's XML tree.
func (f *Footer) Tree() *etree.Document {
	return f.tree
}

// Paragraphs returns the top-level paragraphs of the footer.
func (f *Footer) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range childrenW(f.root, "p") {
		out = append(out, &Paragraph{node: p})
	}
	return out
}

// PageNumberField describes the paragraph AppendPageNumber writes.
type PageNumberField struct {
	// Alignment is an ST_Jc value; empty leaves the paragraph default.
	Alignment string
	// Font is applied to all scripts when set.
	Font string
	// Size is applied when positive.
	Size units.Length
}

// AppendPageNumber writes a PAGE complex field into the footer's trailing
// paragraph when it is empty, or into a new paragraph otherwise.
func (f *Footer) AppendPageNumber(field PageNumberField) *Paragraph {
	p := f.trailingEmptyParagraph()
	if p == nil {
		p = &Paragraph{node: newW("p")}
		f.root.AddChild(p.node)
	}
	if field.Alignment != "" {
		p.SetAlignment(field.Alignment)
	}

	addRun := func() *Run {
		r := &Run{node: newW("r")}
		p.node.AddChild(r.node)
		if field.Font != "" {
			r.SetFont(field.Font)
		}
		if field.Size > 0 {
			r.SetFontSize(field.Size)
		}
		return r
	}
	fldChar := func(typ string) {
		fc := newW("fldChar")
		setAttrW(fc, "fldCharType", typ)
		addRun().node.AddChild(fc)
	}

	fldChar("begin")
	instr := newW("instrText")
	instr.CreateAttr("xml:space", "preserve")
	instr.SetText(" PAGE ")
	addRun().node.AddChild(instr)
	fldChar("separate")
	addRun().SetText("1")
	fldChar("end")
	return p
}

// HasPageField reports whether the footer contains a PAGE field.
func (f *Footer) HasPageField() bool {
	for _, fs := range f.root.FindElements(".//w:fldSimple") {
		if isPageInstruction(fs.SelectAttrValue("w:instr", "")) {
			return true
		}
	}
	for _, fld := range complexFields(f.root) {
		if isPageInstruction(fld.instr) {
			return true
		}
	}
	return false
}

// ClearPageFields removes every PAGE field, simple or complex, and returns the
// number of fields removed. A paragraph left without content is removed too,
// unless it is the last block of the footer.
func (f *Footer) ClearPageFields() int {
	removed := 0
	var touched []*etree.Element
	touch := func(el *etree.Element) {
		if p := enclosingParagraph(el); p != nil {
			touched = append(touched, p)
		}
	}

	for _, fs := range f.root.FindElements(".//w:fldSimple") {
		if isPageInstruction(fs.SelectAttrValue("w:instr", "")) {
			if parent := fs.Parent(); parent != nil {
				touch(fs)
				parent.RemoveChild(fs)
				removed++
			}
		}
	}

	doomed := map[*etree.Element]bool{}
	var order []*etree.Element
	for _, fld := range complexFields(f.root) {
		if !isPageInstruction(fld.instr) {
			continue
		}
		removed++
		for _, r := range fld.runs {
			if !doomed[r] {
				doomed[r] = true
				order = append(order, r)
			}
		}
	}
	for _, r := range order {
		if parent := r.Parent(); parent != nil {
			touch(r)
			parent.RemoveChild(r)
		}
	}

	for _, p := range touched {
		parent := p.Parent()
		if parent == nil || !isEmptyParagraph(p) || f.blockCount() <= 1 {
			continue
		}
		parent.RemoveChild(p)
	}
	return removed
}

func enclosingParagraph(el *etree.Element) *etree.Element {
	for cur := el.Parent(); cur != nil; cur = cur.Parent() {
		if isW(cur, "p") {
			return cur
		}
	}
	return nil
}

func isEmptyParagraph(p *etree.Element) bool {
	for _, c := range p.ChildElements() {
		if !isW(c, "pPr") {
			return false
		}
	}
	return true
}

func (f *Footer) trailingEmptyParagraph() *Paragraph {
	children := f.root.ChildElements()
	if len(children) == 0 {
		return nil
	}
	last := children[len(children)-1]
	if !isW(last, "p") || !isEmptyParagraph(last) {
		return nil
	}
	return &Paragraph{node: last}
}

func (f *Footer) blockCount() int {
	return len(f.Paragraphs()) + len(childrenW(f.root, "tbl"))
}

type complexField struct {
	instr string
	runs  []*etree.Element
}

// complexFields collects begin..end run sequences in document order. Nested
// fields are reported separately; an outer field's runs include the inner ones.
func complexFields(root *etree.Element) []complexField {
	type frame struct {
		instr strings.Builder
		runs  []*etree.Element
	}
	var (
		stack []*frame
		done  []complexField
	)

	for _, r := range root.FindElements(".//w:r") {
		closedHere := map[*frame]bool{}
		for _, c := range r.ChildElements() {
			switch {
			case isW(c, "fldChar"):
				typ, _ := attrW(c, "fldCharType")
				switch typ {
				case "begin":
					stack = append(stack, &frame{})
				case "end":
					if len(stack) == 0 {
						continue
					}
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					top.runs = append(top.runs, r)
					closedHere[top] = true
					done = append(done, complexField{instr: top.instr.String(), runs: top.runs})
				}
			case isW(c, "instrText"):
				if len(stack) > 0 {
					stack[len(stack)-1].instr.WriteString(c.Text())
				}
			}
		}
		for _, fr := range stack {
			if !closedHere[fr] {
				fr.runs = append(fr.runs, r)
			}
		}
	}
	return done
}

func isPageInstruction(instr string) bool {
	fields := strings.Fields(instr)
	return len(fields) > 0 && strings.EqualFold(fields[0], "PAGE")
}
