package docxflow

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const (
	documentPartName     = "word/document.xml"
	contentTypesPartName = "[Content_Types].xml"

	relationshipsNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"
	contentTypesNamespace  = "http://schemas.openxmlformats.org/package/2006/content-types"

	// RelTypeFooter is the relationship type of footer parts.
	RelTypeFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	// ContentTypeFooter is the content type of footer parts.
	ContentTypeFooter = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// ContentTypeDefault maps a file extension to a content type
type ContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeOverride maps a single part to a content type
type ContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypes represents [Content_Types].xml
type ContentTypes struct {
	XMLName   xml.Name              `xml:"Types"`
	Namespace string                `xml:"xmlns,attr"`
	Defaults  []ContentTypeDefault  `xml:"Default"`
	Overrides []ContentTypeOverride `xml:"Override"`
}

// Package is a DOCX package held in memory. Parts are kept as raw bytes in
// their original zip order; parts opened as XML trees, relationship sets and
// the content types are reserialized on write.
type Package struct {
	names        []string
	raw          map[string][]byte
	trees        map[string]*etree.Document
	rels         map[string]*Relationships
	contentTypes *ContentTypes
}

// ReadPackage reads a DOCX package from r.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	pkg := &Package{
		raw:   make(map[string][]byte),
		trees: make(map[string]*etree.Document),
		rels:  make(map[string]*Relationships),
	}

	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		content, err := readZipFile(file)
		if err != nil {
			return nil, err
		}
		if _, dup := pkg.raw[file.Name]; !dup {
			pkg.names = append(pkg.names, file.Name)
		}
		pkg.raw[file.Name] = content
	}

	if _, ok := pkg.raw[documentPartName]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", documentPartName)
	}

	return pkg, nil
}

// OpenPackage reads a DOCX package from a file path.
func OpenPackage(filename string) (*Package, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ReadPackage(bytes.NewReader(content), int64(len(content)))
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", file.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", file.Name, err)
	}
	return content, nil
}

// HasPart reports whether the package contains partName.
func (p *Package) HasPart(partName string) bool {
	_, ok := p.raw[partName]
	return ok
}

// ListParts returns the part names in package order.
func (p *Package) ListParts() []string {
	return append([]string(nil), p.names...)
}

// Part returns the current content of a part.
func (p *Package) Part(partName string) ([]byte, error) {
	if _, ok := p.raw[partName]; !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}
	return p.content(partName)
}

// SetPart stores raw content for a part, appending it when new.
func (p *Package) SetPart(partName string, content []byte) {
	p.addName(partName)
	delete(p.trees, partName)
	p.raw[partName] = content
}

func (p *Package) addName(partName string) {
	if _, ok := p.raw[partName]; !ok {
		p.names = append(p.names, partName)
		p.raw[partName] = nil
	}
}

// XMLPart returns the parsed tree of a part. The tree is cached and written
// back when the package is saved, so edits made through it persist.
func (p *Package) XMLPart(partName string) (*etree.Document, error) {
	if tree, ok := p.trees[partName]; ok {
		return tree, nil
	}
	content, ok := p.raw[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(content); err != nil {
		return nil, fmt.Errorf("failed to parse part %s: %w", partName, err)
	}
	p.trees[partName] = tree
	return tree, nil
}

// SetXMLPart stores a tree as the content of a part, appending it when new.
func (p *Package) SetXMLPart(partName string, tree *etree.Document) {
	p.addName(partName)
	p.trees[partName] = tree
}

// relsPartName converts a part name to its relationships part name,
// e.g. "word/document.xml" -> "word/_rels/document.xml.rels".
func relsPartName(partName string) string {
	dir, base := path.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

func (p *Package) relationships(partName string) (*Relationships, error) {
	if rels, ok := p.rels[partName]; ok {
		return rels, nil
	}

	rels := &Relationships{Namespace: relationshipsNamespace}
	relPath := relsPartName(partName)
	if content, ok := p.raw[relPath]; ok {
		if err := xml.Unmarshal(content, rels); err != nil {
			return nil, fmt.Errorf("failed to parse relationships: %w", err)
		}
		if rels.Namespace == "" {
			rels.Namespace = relationshipsNamespace
		}
	}
	p.rels[partName] = rels
	return rels, nil
}

// Relationships returns the relationships of a part. A part without a
// relationships part has none.
func (p *Package) Relationships(partName string) ([]Relationship, error) {
	rels, err := p.relationships(partName)
	if err != nil {
		return nil, err
	}
	return append([]Relationship(nil), rels.Relationship...), nil
}

// Relationship looks up a relationship of partName by ID.
func (p *Package) Relationship(partName, id string) (Relationship, bool, error) {
	rels, err := p.relationships(partName)
	if err != nil {
		return Relationship{}, false, err
	}
	for _, rel := range rels.Relationship {
		if rel.ID == id {
			return rel, true, nil
		}
	}
	return Relationship{}, false, nil
}

// AddRelationship adds a relationship from partName and returns its new ID.
func (p *Package) AddRelationship(partName, relType, target string) (string, error) {
	rels, err := p.relationships(partName)
	if err != nil {
		return "", err
	}

	maxID := 0
	for _, rel := range rels.Relationship {
		if n, err := extractRelationshipNumber(rel.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	id := "rId" + strconv.Itoa(maxID+1)
	rels.Relationship = append(rels.Relationship, Relationship{ID: id, Type: relType, Target: target})
	p.addName(relsPartName(partName))
	return id, nil
}

// extractRelationshipNumber extracts the numeric ID from a relationship ID like "rId6"
func extractRelationshipNumber(rID string) (int, error) {
	if !strings.HasPrefix(rID, "rId") {
		return 0, fmt.Errorf("invalid relationship ID format: %s", rID)
	}
	num, err := strconv.Atoi(strings.TrimPrefix(rID, "rId"))
	if err != nil {
		return 0, fmt.Errorf("invalid relationship ID number: %s", rID)
	}
	return num, nil
}

// ResolveTarget resolves a relationship target of sourcePart to a part name.
func ResolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(sourcePart), target)
}

func (p *Package) loadContentTypes() (*ContentTypes, error) {
	if p.contentTypes != nil {
		return p.contentTypes, nil
	}
	ct := &ContentTypes{Namespace: contentTypesNamespace}
	if content, ok := p.raw[contentTypesPartName]; ok {
		if err := xml.Unmarshal(content, ct); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", contentTypesPartName, err)
		}
		if ct.Namespace == "" {
			ct.Namespace = contentTypesNamespace
		}
	}
	p.contentTypes = ct
	p.addName(contentTypesPartName)
	return ct, nil
}

// AddOverride registers the content type of a single part. An existing
// override for the part is replaced.
func (p *Package) AddOverride(partName, contentType string) error {
	ct, err := p.loadContentTypes()
	if err != nil {
		return err
	}
	name := "/" + strings.TrimPrefix(partName, "/")
	for i := range ct.Overrides {
		if ct.Overrides[i].PartName == name {
			ct.Overrides[i].ContentType = contentType
			return nil
		}
	}
	ct.Overrides = append(ct.Overrides, ContentTypeOverride{PartName: name, ContentType: contentType})
	return nil
}

// ContentType returns the content type registered for a part, from its
// override or its extension default.
func (p *Package) ContentType(partName string) (string, error) {
	ct, err := p.loadContentTypes()
	if err != nil {
		return "", err
	}
	name := "/" + strings.TrimPrefix(partName, "/")
	for _, o := range ct.Overrides {
		if strings.EqualFold(o.PartName, name) {
			return o.ContentType, nil
		}
	}
	ext := strings.TrimPrefix(path.Ext(partName), ".")
	for _, d := range ct.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType, nil
		}
	}
	return "", nil
}

// content returns the bytes written for a part.
func (p *Package) content(name string) ([]byte, error) {
	if name == contentTypesPartName && p.contentTypes != nil {
		return marshalWithHeader(p.contentTypes)
	}
	if strings.Contains(name, "_rels/") && strings.HasSuffix(name, ".rels") {
		for source, rels := range p.rels {
			if relsPartName(source) == name {
				return marshalWithHeader(rels)
			}
		}
	}
	if tree, ok := p.trees[name]; ok {
		return tree.WriteToBytes()
	}
	return p.raw[name], nil
}

// marshalWithHeader produces compact XML preceded by the standalone
// declaration Word requires.
func marshalWithHeader(v interface{}) ([]byte, error) {
	output, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), output...), nil
}

// WriteTo writes the package as a zip archive.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, name := range p.names {
		content, err := p.content(name)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize %s: %w", name, err)
		}
		fw, err := zw.Create(name)
		if err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("failed to close zip writer: %w", err)
	}
	return buf.WriteTo(w)
}

// Bytes returns the package as a zip archive.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the package to filename.
func (p *Package) Save(filename string) error {
	content, err := p.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
