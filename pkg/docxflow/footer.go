package docxflow

import (
	"fmt"
	"path"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

// packageFooters resolves footer references of the main document against the
// package's relationships and creates new footer parts on demand.
type packageFooters struct {
	pkg     *Package
	footers map[string]*xml.Footer
}

func newPackageFooters(pkg *Package) *packageFooters {
	return &packageFooters{pkg: pkg, footers: make(map[string]*xml.Footer)}
}

// Footer returns the footer part behind relID.
func (s *packageFooters) Footer(relID string) (*xml.Footer, error) {
	if f, ok := s.footers[relID]; ok {
		return f, nil
	}

	rel, ok, err := s.pkg.Relationship(documentPartName, relID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("relationship %s not found", relID)
	}
	if rel.Type != RelTypeFooter {
		return nil, fmt.Errorf("relationship %s is not a footer: %s", relID, rel.Type)
	}

	partName := ResolveTarget(documentPartName, rel.Target)
	tree, err := s.pkg.XMLPart(partName)
	if err != nil {
		return nil, err
	}
	f, err := xml.WrapFooter(tree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", partName, err)
	}
	s.footers[relID] = f
	return f, nil
}

// NewFooter creates word/footerN.xml with the first free N, relates it to the
// main document and registers its content type.
func (s *packageFooters) NewFooter() (string, *xml.Footer, error) {
	var partName string
	for n := 1; ; n++ {
		partName = fmt.Sprintf("word/footer%d.xml", n)
		if !s.pkg.HasPart(partName) {
			break
		}
	}

	tree := xml.NewFooterTree()
	f, err := xml.WrapFooter(tree)
	if err != nil {
		return "", nil, err
	}

	relID, err := s.pkg.AddRelationship(documentPartName, RelTypeFooter, path.Base(partName))
	if err != nil {
		return "", nil, err
	}
	if err := s.pkg.AddOverride(partName, ContentTypeFooter); err != nil {
		return "", nil, err
	}
	s.pkg.SetXMLPart(partName, tree)
	s.footers[relID] = f
	return relID, f, nil
}
