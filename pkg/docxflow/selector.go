package docxflow

import (
	"fmt"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

// Selector is an immutable snapshot of selected elements. Narrowing returns a
// new Selector; Apply mutates the selected elements and keeps the membership,
// so chained Apply calls act on the same elements even when earlier actions
// changed the surrounding document.
type Selector struct {
	elements []xml.Element
	editor   *Editor
	err      error
}

func newSelector(editor *Editor, elements []xml.Element) *Selector {
	return &Selector{elements: elements, editor: editor}
}

func (s *Selector) derive(elements []xml.Element) *Selector {
	return &Selector{elements: elements, editor: s.editor, err: s.err}
}

// Where keeps the elements matching cond. A nil condition keeps everything.
func (s *Selector) Where(cond Condition) *Selector {
	if cond == nil {
		return s.derive(s.elements)
	}
	sc := s.scope(s.logger())
	var kept []xml.Element
	for _, el := range s.elements {
		if checkIn(sc, cond, el) {
			kept = append(kept, el)
		}
	}
	return s.derive(kept)
}

// GetByIndex keeps the single element at i. Negative indices count from the
// end; an index out of range yields an empty selection.
func (s *Selector) GetByIndex(i int) *Selector {
	n := len(s.elements)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return s.derive(nil)
	}
	return s.derive([]xml.Element{s.elements[i]})
}

// InSection keeps the elements that belonged to section i when the document
// was loaded.
func (s *Selector) InSection(i int) *Selector {
	return s.Where(NewFuncCondition(func(el xml.Element) bool {
		ord, ok := s.sectionOf(el)
		return ok && ord == i
	}))
}

// FromSection keeps the elements that belonged to section i or a later one
// when the document was loaded.
func (s *Selector) FromSection(i int) *Selector {
	return s.Where(NewFuncCondition(func(el xml.Element) bool {
		ord, ok := s.sectionOf(el)
		return ok && ord >= i
	}))
}

func (s *Selector) sectionOf(el xml.Element) (int, bool) {
	if s.editor == nil {
		return 0, false
	}
	return s.editor.SectionOf(el)
}

// Apply executes action on every selected element in order. The first error
// stops the run and is kept in Err; elements already visited stay mutated.
// Apply on a selector holding an error does nothing.
func (s *Selector) Apply(action Action) *Selector {
	if s.err != nil || action == nil {
		return s
	}
	logger := s.logger().WithField("action", fmt.Sprintf("%T", action))

	if len(s.elements) == 0 {
		if s.editor == nil || s.editor.config.WarnOnEmptySelection {
			logger.Warn("no elements selected, nothing to apply")
		}
		return s
	}

	sc := s.scope(logger)
	for i, el := range s.elements {
		if err := executeIn(sc, action, el); err != nil {
			logger.Debug("failed on element %d: %v", i, err)
			return &Selector{
				elements: s.elements,
				editor:   s.editor,
				err:      fmt.Errorf("apply to %s %d of %d: %w", kindName(el), i, len(s.elements), err),
			}
		}
	}
	logger.Debug("applied to %d elements", len(s.elements))
	return s
}

func (s *Selector) logger() *Logger {
	if s.editor != nil && s.editor.logger != nil {
		return s.editor.logger
	}
	return GetLogger()
}

// scope returns the settings conditions and actions run under: the editor's
// pattern timeout and the given logger.
func (s *Selector) scope(logger *Logger) scope {
	sc := scope{logger: logger, patternTimeout: DefaultConfig().PatternTimeout}
	if s.editor != nil {
		sc.patternTimeout = s.editor.config.PatternTimeout
	}
	return sc
}

// Count returns the number of selected elements.
func (s *Selector) Count() int {
	return len(s.elements)
}

// Get returns the selected elements.
func (s *Selector) Get() []xml.Element {
	return append([]xml.Element(nil), s.elements...)
}

// Each calls fn for every selected element.
func (s *Selector) Each(fn func(i int, el xml.Element)) {
	for i, el := range s.elements {
		fn(i, el)
	}
}

// Err returns the first error an Apply in the chain ran into.
func (s *Selector) Err() error {
	return s.err
}
