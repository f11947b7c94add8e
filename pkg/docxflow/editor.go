package docxflow

import (
	"bytes"
	"fmt"
	"io"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

// Editor owns one loaded document. It builds the section index once, hands
// out selectors over the document's elements and writes the document back on
// request; nothing is saved implicitly. An Editor is not safe for concurrent
// use.
type Editor struct {
	name   string
	pkg    *Package
	doc    *xml.Document
	index  *SectionIndex
	config *Config
	logger *Logger
}

// Open loads the document at path with the default configuration.
func Open(path string) (*Editor, error) {
	return OpenWithConfig(path, nil)
}

// OpenWithConfig loads the document at path. Unset fields of cfg take their
// defaults.
func OpenWithConfig(path string, cfg *Config) (*Editor, error) {
	pkg, err := OpenPackage(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	e, err := newEditor(path, pkg, cfg)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	return e, nil
}

// OpenReader loads a document from r.
func OpenReader(r io.ReaderAt, size int64, cfg *Config) (*Editor, error) {
	pkg, err := ReadPackage(r, size)
	if err != nil {
		return nil, NewDocumentError("read", "", err)
	}
	e, err := newEditor("", pkg, cfg)
	if err != nil {
		return nil, NewDocumentError("read", "", err)
	}
	return e, nil
}

// OpenBytes loads a document held in memory.
func OpenBytes(content []byte, cfg *Config) (*Editor, error) {
	return OpenReader(bytes.NewReader(content), int64(len(content)), cfg)
}

func newEditor(name string, pkg *Package, cfg *Config) (*Editor, error) {
	config := NewConfigWithDefaults(cfg)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tree, err := pkg.XMLPart(documentPartName)
	if err != nil {
		return nil, err
	}
	doc, err := xml.NewDocument(tree)
	if err != nil {
		return nil, err
	}
	doc.SetFooterStore(newPackageFooters(pkg))

	logger := GetLogger()
	if name != "" {
		logger = logger.WithField("document", name)
	} else {
		logger = logger.WithFields(Fields{})
	}
	logger.SetLevel(ParseLogLevel(config.LogLevel))

	e := &Editor{
		name:   name,
		pkg:    pkg,
		doc:    doc,
		index:  BuildSectionIndex(doc),
		config: config,
		logger: logger,
	}
	logger.Debug("loaded %d paragraphs, %d tables, %d sections",
		len(e.index.Paragraphs), len(e.index.Tables), e.index.SectionCount())
	return e, nil
}

// SelectParagraphs selects the top-level paragraphs of the body.
func (e *Editor) SelectParagraphs() *Selector {
	var els []xml.Element
	for _, p := range e.doc.Paragraphs() {
		els = append(els, p)
	}
	return newSelector(e, els)
}

// SelectTables selects the top-level tables of the body.
func (e *Editor) SelectTables() *Selector {
	var els []xml.Element
	for _, t := range e.doc.Tables() {
		els = append(els, t)
	}
	return newSelector(e, els)
}

// SelectSections selects the sections in document order.
func (e *Editor) SelectSections() *Selector {
	var els []xml.Element
	for _, s := range e.doc.Sections() {
		els = append(els, s)
	}
	return newSelector(e, els)
}

// SectionOf returns the load-time section ordinal of el.
func (e *Editor) SectionOf(el xml.Element) (int, bool) {
	return e.index.SectionOf(el)
}

// SectionIndex returns the index built when the document was loaded.
func (e *Editor) SectionIndex() *SectionIndex {
	return e.index
}

// Document returns the main document part.
func (e *Editor) Document() *xml.Document {
	return e.doc
}

// Package returns the underlying package.
func (e *Editor) Package() *Package {
	return e.pkg
}

// Config returns a copy of the editor's configuration.
func (e *Editor) Config() Config {
	return *e.config
}

// Logger returns the editor's logger.
func (e *Editor) Logger() *Logger {
	return e.logger
}

// Save writes the whole document to path.
func (e *Editor) Save(path string) error {
	if err := e.pkg.Save(path); err != nil {
		return NewDocumentError("save", path, err)
	}
	e.logger.Info("saved %s", path)
	return nil
}

// WriteTo writes the whole document to w.
func (e *Editor) WriteTo(w io.Writer) (int64, error) {
	n, err := e.pkg.WriteTo(w)
	if err != nil {
		return n, NewDocumentError("write", e.name, err)
	}
	return n, nil
}

func (e *Editor) String() string {
	return fmt.Sprintf("Editor(%s)", e.name)
}
