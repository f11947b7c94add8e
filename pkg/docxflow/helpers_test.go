package docxflow

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type testPart struct {
	name    string
	content string
}

const testDocumentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`

// createDOCXBytes creates a minimal DOCX file with the given body markup.
// rels are extra Relationship elements of the main document.
func createDOCXBytes(body, rels string, extra ...testPart) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	write := func(name, content string) {
		fw, _ := w.Create(name)
		io.WriteString(fw, content)
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	write("word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
`+rels+`</Relationships>`)

	write("word/document.xml", testDocumentHeader+body+`</w:body></w:document>`)

	write("word/styles.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`)

	for _, part := range extra {
		write(part.name, part.content)
	}

	w.Close()
	return buf.Bytes()
}

func openBody(t *testing.T, body string) *Editor {
	t.Helper()
	ed, err := OpenBytes(createDOCXBytes(body, ""), nil)
	require.NoError(t, err)
	return ed
}

// reopen saves ed to memory and loads the result.
func reopen(t *testing.T, ed *Editor) *Editor {
	t.Helper()
	var buf bytes.Buffer
	_, err := ed.WriteTo(&buf)
	require.NoError(t, err)
	out, err := OpenBytes(buf.Bytes(), nil)
	require.NoError(t, err)
	return out
}

func documentXML(t *testing.T, ed *Editor) string {
	t.Helper()
	out, err := ed.Document().Bytes()
	require.NoError(t, err)
	return string(out)
}

func para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

// breakPara is a paragraph closing a section.
func breakPara(text string) string {
	return `<w:p><w:pPr><w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:pPr><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

// table builds a rows x cols table; cell texts are "r<row>c<col>".
func table(rows, cols int) string {
	var sb strings.Builder
	sb.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblLook w:val="04A0"/></w:tblPr><w:tblGrid>`)
	for c := 0; c < cols; c++ {
		sb.WriteString(`<w:gridCol w:w="2000"/>`)
	}
	sb.WriteString(`</w:tblGrid>`)
	for r := 0; r < rows; r++ {
		sb.WriteString(`<w:tr>`)
		for c := 0; c < cols; c++ {
			fmt.Fprintf(&sb, `<w:tc><w:p><w:r><w:t>r%dc%d</w:t></w:r></w:p></w:tc>`, r, c)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)
	return sb.String()
}

// captureLogs routes the package logger to a buffer for the test's duration.
// Editors must be opened after the call to log there.
func captureLogs(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := GetLogger()
	SetLogger(NewLogger(&buf, level))
	t.Cleanup(func() { SetLogger(previous) })
	return &buf
}
