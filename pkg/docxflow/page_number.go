package docxflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

var errNoFooterStore = errors.New("document has no footer store")

type pageNumberOptions struct {
	start     int
	restart   bool
	alignment string
	font      string
	size      float64
	format    string
}

// PageNumberOption configures NewAddPageNumber.
type PageNumberOption func(*pageNumberOptions)

// WithStartNumber sets the number of the section's first page. Default 1.
func WithStartNumber(n int) PageNumberOption {
	return func(o *pageNumberOptions) { o.start = n }
}

// WithRestart selects restarting at the start number (true, the default) or
// continuing from the previous section.
func WithRestart(restart bool) PageNumberOption {
	return func(o *pageNumberOptions) { o.restart = restart }
}

// WithAlignment aligns the page number left, center or right. Default center.
func WithAlignment(alignment string) PageNumberOption {
	return func(o *pageNumberOptions) { o.alignment = alignment }
}

// WithFont sets the font of the page number.
func WithFont(name string) PageNumberOption {
	return func(o *pageNumberOptions) { o.font = name }
}

// WithFontSize sets the size of the page number in points.
func WithFontSize(pt float64) PageNumberOption {
	return func(o *pageNumberOptions) { o.size = pt }
}

// WithNumberFormat sets the numbering format, e.g. "decimal" or "lowerRoman".
func WithNumberFormat(format string) PageNumberOption {
	return func(o *pageNumberOptions) { o.format = format }
}

// AddPageNumberAction puts a PAGE field into a section's default footer.
type AddPageNumberAction struct {
	opts pageNumberOptions
}

// NewAddPageNumber returns an action adding a centered page number that
// restarts at 1 unless configured otherwise.
func NewAddPageNumber(opts ...PageNumberOption) (*AddPageNumberAction, error) {
	o := pageNumberOptions{start: 1, restart: true, alignment: AlignCenter}
	for _, opt := range opts {
		opt(&o)
	}

	var issues []ValidationIssue
	if o.start < 0 {
		issues = append(issues, ValidationIssue{Field: "start", Message: fmt.Sprintf("must not be negative, got %d", o.start)})
	}
	if o.size < 0 {
		issues = append(issues, ValidationIssue{Field: "size", Message: fmt.Sprintf("must not be negative, got %g", o.size)})
	}
	o.alignment = strings.ToLower(o.alignment)
	if o.alignment == AlignJustify {
		issues = append(issues, ValidationIssue{Field: "align", Message: "page numbers cannot be justified"})
	} else if _, ok := alignmentValues[o.alignment]; !ok {
		issues = append(issues, ValidationIssue{Field: "align", Message: fmt.Sprintf("unknown alignment %q", o.alignment)})
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return &AddPageNumberAction{opts: o}, nil
}

// Execute reuses the section's default footer when no other section shares
// it, dropping the page numbers it already holds; otherwise the section gets
// a footer of its own.
func (a *AddPageNumberAction) Execute(el xml.Element) error {
	s, ok := el.(*xml.Section)
	if !ok {
		return nil
	}
	store := s.Document().Footers()
	if store == nil {
		return errNoFooterStore
	}

	var footer *xml.Footer
	relID := s.FooterReference(xml.FooterDefault)
	if relID != "" && footerUsers(s.Document(), relID) == 1 {
		f, err := store.Footer(relID)
		if err != nil {
			return fmt.Errorf("failed to load footer %s: %w", relID, err)
		}
		f.ClearPageFields()
		footer = f
	} else {
		id, f, err := store.NewFooter()
		if err != nil {
			return fmt.Errorf("failed to create footer: %w", err)
		}
		s.SetFooterReference(xml.FooterDefault, id)
		footer = f
	}

	field := xml.PageNumberField{
		Alignment: alignmentValues[a.opts.alignment],
		Font:      a.opts.font,
	}
	if a.opts.size > 0 {
		field.Size = units.Pt(a.opts.size)
	}
	footer.AppendPageNumber(field)

	if a.opts.restart {
		s.SetPageNumberStart(a.opts.start)
	} else {
		s.ClearPageNumberStart()
	}
	if a.opts.format != "" {
		s.SetPageNumberFormat(a.opts.format)
	}
	return nil
}

// footerUsers counts the sections referencing relID.
func footerUsers(doc *xml.Document, relID string) int {
	n := 0
	for _, s := range doc.Sections() {
		for _, id := range s.FooterReferences() {
			if id == relID {
				n++
				break
			}
		}
	}
	return n
}

// ClearPageNumberAction removes PAGE fields from every footer of a section.
type ClearPageNumberAction struct{}

// NewClearPageNumber returns the page number removal action.
func NewClearPageNumber() *ClearPageNumberAction {
	return &ClearPageNumberAction{}
}

func (a *ClearPageNumberAction) Execute(el xml.Element) error {
	s, ok := el.(*xml.Section)
	if !ok {
		return nil
	}
	refs := s.FooterReferences()
	if len(refs) == 0 {
		return nil
	}
	store := s.Document().Footers()
	if store == nil {
		return errNoFooterStore
	}
	for _, relID := range refs {
		f, err := store.Footer(relID)
		if err != nil {
			return fmt.Errorf("failed to load footer %s: %w", relID, err)
		}
		f.ClearPageFields()
	}
	return nil
}
