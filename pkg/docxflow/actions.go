package docxflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

// Action mutates a document element in place. Actions ignore elements of a
// kind they do not handle unless documented otherwise. Applying an action
// twice leaves the element in the same state as applying it once, except
// where the action's own arguments make that impossible (ReplaceText with a
// replacement containing the searched text).
type Action interface {
	Execute(el xml.Element) error
}

// ActionFunc adapts a function to Action.
type ActionFunc func(el xml.Element) error

func (f ActionFunc) Execute(el xml.Element) error { return f(el) }

// scopedAction is implemented by actions that log through the editor.
type scopedAction interface {
	executeIn(sc scope, el xml.Element) error
}

func executeIn(sc scope, a Action, el xml.Element) error {
	if scoped, ok := a.(scopedAction); ok {
		return scoped.executeIn(sc, el)
	}
	return a.Execute(el)
}

// paragraphsOf returns the paragraphs an action addressing text visits:
// the paragraph itself, or every paragraph of every cell of a table.
func paragraphsOf(el xml.Element) []*xml.Paragraph {
	switch v := el.(type) {
	case *xml.Paragraph:
		return []*xml.Paragraph{v}
	case *xml.Table:
		var out []*xml.Paragraph
		for _, cell := range v.Cells() {
			out = append(out, cell.Paragraphs()...)
		}
		return out
	}
	return nil
}

// ReplaceTextAction replaces text run by run. Text spanning several runs is
// not found; runs are never merged or split so formatting boundaries stay.
type ReplaceTextAction struct {
	Old string
	New string
}

// NewReplaceText replaces every occurrence of old with new.
func NewReplaceText(old, new string) *ReplaceTextAction {
	return &ReplaceTextAction{Old: old, New: new}
}

func (a *ReplaceTextAction) Execute(el xml.Element) error {
	if a.Old == "" || a.Old == a.New {
		return nil
	}
	for _, p := range paragraphsOf(el) {
		for _, r := range p.Runs() {
			text := r.Text()
			if strings.Contains(text, a.Old) {
				r.SetText(strings.ReplaceAll(text, a.Old, a.New))
			}
		}
	}
	return nil
}

// Paragraph alignment names.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

var alignmentValues = map[string]string{
	AlignLeft:    "left",
	AlignCenter:  "center",
	AlignRight:   "right",
	AlignJustify: "both",
}

// AlignParagraphAction sets paragraph alignment.
type AlignParagraphAction struct {
	Alignment string
}

// NewAlignParagraph aligns paragraphs left, center, right or justify. Any
// other name makes the action a no-op.
func NewAlignParagraph(alignment string) *AlignParagraphAction {
	return &AlignParagraphAction{Alignment: alignment}
}

func (a *AlignParagraphAction) Execute(el xml.Element) error {
	p, ok := el.(*xml.Paragraph)
	if !ok {
		return nil
	}
	val, ok := alignmentValues[strings.ToLower(a.Alignment)]
	if !ok {
		return nil
	}
	p.SetAlignment(val)
	return nil
}

// minFontSize is the smallest size a relative adjustment produces.
const minFontSize = 1.0

// FontSizeAction sets or adjusts the font size of every run.
type FontSizeAction struct {
	size     float64
	relative bool
}

// NewSetFontSize sets every run to pt points.
func NewSetFontSize(pt float64) (*FontSizeAction, error) {
	if pt <= 0 {
		return nil, NewValidationError("font_size", fmt.Sprintf("font size must be positive, got %g", pt))
	}
	return &FontSizeAction{size: pt}, nil
}

// NewAdjustFontSize adds delta points to every run that has an explicit
// size. Runs inheriting their size are left alone.
func NewAdjustFontSize(delta float64) *FontSizeAction {
	return &FontSizeAction{size: delta, relative: true}
}

// ParseFontSize reads "12" as an absolute size and "+2" or "-1.5" as a
// relative one.
func ParseFontSize(s string) (*FontSizeAction, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, NewValidationError("font_size", fmt.Sprintf("invalid font size %q", s))
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return NewAdjustFontSize(v), nil
	}
	return NewSetFontSize(v)
}

// Relative reports whether the action adjusts rather than sets.
func (a *FontSizeAction) Relative() bool {
	return a.relative
}

func (a *FontSizeAction) Execute(el xml.Element) error {
	for _, p := range paragraphsOf(el) {
		for _, r := range p.Runs() {
			if !a.relative {
				r.SetFontSize(units.Pt(a.size))
				continue
			}
			current, ok := r.FontSize()
			if !ok {
				continue
			}
			size := current.Points() + a.size
			if size < minFontSize {
				size = minFontSize
			}
			r.SetFontSize(units.Pt(size))
		}
	}
	return nil
}

// TabStopAction adds a left tab stop, optionally clearing the existing ones.
type TabStopAction struct {
	Position units.Length
	Clear    bool
}

// NewSetTabStop adds a left tab stop at cm centimetres.
func NewSetTabStop(cm float64) *TabStopAction {
	return &TabStopAction{Position: units.Cm(cm)}
}

// NewClearAndSetTabStop replaces all tab stops with one at cm centimetres.
func NewClearAndSetTabStop(cm float64) *TabStopAction {
	return &TabStopAction{Position: units.Cm(cm), Clear: true}
}

func (a *TabStopAction) Execute(el xml.Element) error {
	p, ok := el.(*xml.Paragraph)
	if !ok {
		return nil
	}
	if a.Clear {
		p.ClearTabStops()
	}
	p.AddTabStop(a.Position, "left")
	return nil
}
