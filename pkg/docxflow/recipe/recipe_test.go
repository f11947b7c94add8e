package recipe

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow"
	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

func init() {
	docxflow.SetLogger(nil)
}

func testDocx(body string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	write := func(name, content string) {
		fw, _ := w.Create(name)
		io.WriteString(fw, content)
	}
	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`)
	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`)
	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`+body+`</w:body></w:document>`)
	w.Close()
	return buf.Bytes()
}

func para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func table(cols int, text string) string {
	var sb strings.Builder
	sb.WriteString(`<w:tbl><w:tblGrid>`)
	for c := 0; c < cols; c++ {
		sb.WriteString(`<w:gridCol w:w="2000"/>`)
	}
	sb.WriteString(`</w:tblGrid><w:tr>`)
	for c := 0; c < cols; c++ {
		fmt.Fprintf(&sb, `<w:tc><w:p><w:r><w:t>%s%d</w:t></w:r></w:p></w:tc>`, text, c)
	}
	sb.WriteString(`</w:tr></w:tbl>`)
	return sb.String()
}

const sectionBreak = `<w:p><w:pPr><w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:pPr></w:p>`

func openTestEditor(t *testing.T) *docxflow.Editor {
	t.Helper()
	body := para("Report") + para("【TARGET】") + table(4, "财务") + table(3, "misc") + sectionBreak +
		para("Appendix") + `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`
	ed, err := docxflow.OpenBytes(testDocx(body), nil)
	require.NoError(t, err)
	return ed
}

const fullRecipe = `
steps:
  - name: fill target
    select: paragraphs
    where:
      - pattern: "^【TARGET】$"
    apply:
      - replace_text: {old: "【TARGET】", new: "hello"}
      - align: center
      - font_size: "+2"
      - tab_stop: 4.5
      - clear_tab_stop: 4.5
  - select: tables
    in_section: 0
    where:
      - table_text: "财务"
      - columns: 4
    apply:
      - remove_borders: true
      - table_width: 15cm
      - column_widths: [3cm, 2.5cm, 2cm, 2cm]
      - autofit: window
      - first_column_ratio: 0.3
  - select: sections
    from_section: 1
    index: -1
    apply:
      - orientation: landscape
      - page_number: {start: 1, restart: true, align: center, font: Arial, size: 10}
      - clear_page_numbers: true
`

func TestParseFullRecipe(t *testing.T) {
	r, err := Parse([]byte(fullRecipe))
	require.NoError(t, err)
	require.Len(t, r.Steps, 3)

	assert.Equal(t, "fill target", r.Steps[0].Name)
	assert.Len(t, r.Steps[0].Apply, 5)
	assert.Equal(t, "+2", r.Steps[0].Apply[2].FontSize)

	tables := r.Steps[1]
	require.NotNil(t, tables.InSection)
	assert.Equal(t, 0, *tables.InSection)
	assert.Equal(t, []string{"3cm", "2.5cm", "2cm", "2cm"}, tables.Apply[2].ColumnWidths)

	sections := r.Steps[2]
	require.NotNil(t, sections.Index)
	assert.Equal(t, -1, *sections.Index)
	pn := sections.Apply[1].PageNumber
	require.NotNil(t, pn)
	assert.Equal(t, "Arial", pn.Font)
	assert.Equal(t, 10.0, pn.Size)

	// Marshal and parse again to check the YAML names are stable.
	out, err := r.Marshal()
	require.NoError(t, err)
	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, r, again)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		fields []string
	}{
		{
			name:   "no steps",
			yaml:   `steps: []`,
			fields: []string{"steps"},
		},
		{
			name: "unknown selection",
			yaml: `
steps:
  - select: images
    apply:
      - align: left`,
			fields: []string{"steps[0].select"},
		},
		{
			name: "two actions in one entry",
			yaml: `
steps:
  - select: paragraphs
    apply:
      - align: left
        font_size: "12"`,
			fields: []string{"steps[0].apply[0]"},
		},
		{
			name: "invalid arguments are all reported",
			yaml: `
steps:
  - select: tables
    where:
      - pattern: "(unclosed"
    apply:
      - first_column_ratio: 1.5
      - table_width: wide
      - align: diagonal
  - select: sections
    in_section: 0
    from_section: 1
    apply:
      - orientation: sideways
      - page_number: {start: -1}`,
			fields: []string{
				"steps[0].where[0].pattern",
				"steps[0].apply[0].first_column_ratio",
				"steps[0].apply[1].table_width",
				"steps[0].apply[2].align",
				"steps[1]",
				"steps[1].apply[0].orientation",
				"steps[1].apply[1].page_number",
			},
		},
		{
			name: "empty condition and action",
			yaml: `
steps:
  - select: paragraphs
    where:
      - {}
    apply:
      - {}`,
			fields: []string{"steps[0].where[0]", "steps[0].apply[0]"},
		},
		{
			name: "missing apply",
			yaml: `
steps:
  - select: paragraphs`,
			fields: []string{"steps[0].apply"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)

			var ve *docxflow.ValidationError
			require.ErrorAs(t, err, &ve)
			var fields []string
			for _, issue := range ve.Issues {
				fields = append(fields, issue.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`
steps:
  - select: paragraphs
    aply:
      - align: left`))
	require.Error(t, err)
	assert.False(t, docxflow.IsValidationError(err))
	assert.Contains(t, err.Error(), "aply")
}

func TestRun(t *testing.T) {
	ed := openTestEditor(t)
	r, err := Parse([]byte(fullRecipe))
	require.NoError(t, err)

	report, err := r.Run(ed)
	require.NoError(t, err)

	want := []StepResult{
		{Step: "step 1 (fill target)", Select: "paragraphs", Matched: 1, Actions: 5},
		{Step: "step 2", Select: "tables", Matched: 1, Actions: 5},
		{Step: "step 3", Select: "sections", Matched: 1, Actions: 3},
	}
	assert.Equal(t, want, report.Steps)
	assert.Equal(t, 3, report.Matched())

	paragraphs := ed.SelectParagraphs().Get()
	target := paragraphs[1].(*xml.Paragraph)
	assert.Equal(t, "hello", target.Text())
	assert.Equal(t, "center", target.Alignment())
	assert.Equal(t, "Report", paragraphs[0].(*xml.Paragraph).Text())

	tables := ed.SelectTables().Get()
	first := tables[0].(*xml.Table)
	assert.Equal(t, xml.LayoutFixed, first.Layout())
	w, typ, ok := first.Width()
	require.True(t, ok)
	assert.Equal(t, int64(5000), w)
	assert.Equal(t, xml.WidthPercent, typ)
	_, _, ok = tables[1].(*xml.Table).Width()
	assert.False(t, ok, "the three column table is not selected")

	sections := ed.SelectSections().Get()
	assert.Equal(t, xml.OrientPortrait, sections[0].(*xml.Section).Orientation())
	last := sections[1].(*xml.Section)
	assert.Equal(t, xml.OrientLandscape, last.Orientation())
	start, ok := last.PageNumberStart()
	require.True(t, ok)
	assert.Equal(t, 1, start)
}

func TestRunStopsAtFailingStep(t *testing.T) {
	ed := openTestEditor(t)
	r, err := Parse([]byte(`
steps:
  - select: paragraphs
    apply:
      - replace_text: {old: Report, new: Summary}
  - select: tables
    apply:
      - column_widths: [3cm, 3cm, 3cm, 3cm]
  - select: paragraphs
    apply:
      - replace_text: {old: Appendix, new: Annex}`))
	require.NoError(t, err)

	report, err := r.Run(ed)
	require.Error(t, err)
	assert.True(t, docxflow.IsCardinalityError(err))
	assert.True(t, strings.HasPrefix(err.Error(), "step 2: "))
	require.Len(t, report.Steps, 2)
	assert.Equal(t, 2, report.Steps[1].Matched)

	var texts []string
	for _, el := range ed.SelectParagraphs().Get() {
		texts = append(texts, el.(*xml.Paragraph).Text())
	}
	assert.Contains(t, texts, "Summary")
	assert.Contains(t, texts, "Appendix", "steps after the failure do not run")
}

func TestRunUsesEditorPatternTimeout(t *testing.T) {
	ed, err := docxflow.OpenBytes(testDocx(para("aaaa")), &docxflow.Config{LogLevel: "off", PatternTimeout: 0})
	require.NoError(t, err)
	r := &Recipe{Steps: []Step{{
		Select: SelectParagraphs,
		Where:  []ConditionSpec{{Pattern: "a+"}},
		Apply:  []ActionSpec{{Align: "right"}},
	}}}

	report, err := r.Run(ed)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Steps[0].Matched)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullRecipe), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, r.Steps, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("steps: []"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, docxflow.IsValidationError(err))
	assert.Contains(t, err.Error(), bad)
}

func TestReportWriteTable(t *testing.T) {
	report := Report{Steps: []StepResult{
		{Step: "step 1", Select: "tables", Matched: 2, Actions: 1},
	}}
	var buf bytes.Buffer
	report.WriteTable(&buf)

	out := buf.String()
	for _, want := range []string{"STEP", "SELECT", "MATCHED", "step 1", "tables"} {
		assert.Contains(t, out, want)
	}
}
