package docxflow

import (
	"fmt"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

// OrientationAction turns the pages of a section.
type OrientationAction struct {
	Orientation string
}

// NewSetSectionOrientation returns an action setting xml.OrientLandscape or
// xml.OrientPortrait.
func NewSetSectionOrientation(orientation string) (*OrientationAction, error) {
	switch orientation {
	case xml.OrientLandscape, xml.OrientPortrait:
		return &OrientationAction{Orientation: orientation}, nil
	}
	return nil, NewValidationError("orientation", fmt.Sprintf("unknown orientation %q", orientation))
}

// Execute swaps the page dimensions as needed so that a landscape page is at
// least as wide as it is high and a portrait page at least as high as it is
// wide. A section missing either dimension is given the A4 page size.
func (a *OrientationAction) Execute(el xml.Element) error {
	return a.executeIn(defaultScope(), el)
}

func (a *OrientationAction) executeIn(sc scope, el xml.Element) error {
	s, ok := el.(*xml.Section)
	if !ok {
		return &ElementKindError{Action: "set section orientation", Want: xml.KindSection.String(), Got: kindName(el)}
	}

	width, hasWidth := s.PageWidth()
	height, hasHeight := s.PageHeight()
	if !hasWidth || !hasHeight {
		sc.logger.Warn("section page size incomplete, assuming A4 (%s x %s)", units.A4Width, units.A4Height)
		width, height = units.A4Width, units.A4Height
	}

	long, short := width, height
	if short > long {
		long, short = short, long
	}

	s.SetOrientation(a.Orientation)
	if a.Orientation == xml.OrientLandscape {
		s.SetPageSize(long, short)
	} else {
		s.SetPageSize(short, long)
	}
	return nil
}

func kindName(el xml.Element) string {
	if el == nil {
		return "nil"
	}
	return el.Kind().String()
}
