package main

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow"
	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

const body = `<w:p><w:r><w:t>Quarterly report</w:t></w:r></w:p>` +
	`<w:tbl><w:tblGrid><w:gridCol/><w:gridCol/></w:tblGrid><w:tr><w:tc><w:p/></w:tc><w:tc><w:p/></w:tc></w:tr></w:tbl>` +
	`<w:p><w:pPr><w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:pPr></w:p>` +
	`<w:p><w:r><w:t>Appendix</w:t></w:r></w:p>` +
	`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`

func writeDocx(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	write := func(name, content string) {
		fw, err := w.Create(name)
		require.NoError(t, err)
		io.WriteString(fw, content)
	}
	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`)
	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`)
	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`+body+`</w:body></w:document>`)
	require.NoError(t, w.Close())

	path := filepath.Join(dir, "in.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	previous := docxflow.GetLogger()
	t.Cleanup(func() { docxflow.SetLogger(previous) })

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	in := writeDocx(t, dir)
	recipePath := filepath.Join(dir, "recipe.yaml")
	require.NoError(t, os.WriteFile(recipePath, []byte(`
steps:
  - select: paragraphs
    where:
      - pattern: "^Quarterly"
    apply:
      - replace_text: {old: Quarterly, new: Annual}
  - select: sections
    index: -1
    apply:
      - orientation: landscape
      - page_number: {align: right}
`), 0o644))
	out := filepath.Join(dir, "out.docx")

	stdout, _, err := run(t, "apply", "--recipe", recipePath, "--output", out, in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved "+out)
	assert.Contains(t, stdout, "MATCHED")

	ed, err := docxflow.Open(out)
	require.NoError(t, err)
	assert.Equal(t, "Annual report", ed.SelectParagraphs().Get()[0].(*xml.Paragraph).Text())
	last := ed.SelectSections().GetByIndex(-1).Get()[0].(*xml.Section)
	assert.Equal(t, xml.OrientLandscape, last.Orientation())
	assert.True(t, ed.Package().HasPart("word/footer1.xml"))
}

func TestApplyErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeDocx(t, dir)
	recipePath := filepath.Join(dir, "recipe.yaml")
	require.NoError(t, os.WriteFile(recipePath, []byte("steps:\n  - select: tables\n    apply:\n      - column_widths: [1cm]\n"), 0o644))
	out := filepath.Join(dir, "out.docx")

	_, _, err := run(t, "apply", "--recipe", recipePath, in)
	assert.Error(t, err, "--output is required")

	_, _, err = run(t, "apply", "--recipe", recipePath, "--output", in, in)
	assert.Error(t, err)

	stdout, _, err := run(t, "apply", "--recipe", recipePath, "--output", out, in)
	require.Error(t, err)
	assert.True(t, docxflow.IsCardinalityError(err))
	assert.Contains(t, stdout, "step 1")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "nothing is saved when a step fails")
}

func TestInspect(t *testing.T) {
	in := writeDocx(t, t.TempDir())

	stdout, _, err := run(t, "inspect", in)
	require.NoError(t, err)
	for _, want := range []string{"Sections", "Tables", "ORIENTATION", "portrait", "21.00 x 29.70 cm", "COLUMNS"} {
		assert.Contains(t, stdout, want)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	in := writeDocx(t, t.TempDir())
	_, _, err := run(t, "--log-level", "chatty", "inspect", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "docxflow version development")
}
