package xml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
)

func TestParagraphText(t *testing.T) {
	doc := parseBody(t, `<w:p>
<w:r><w:t>Hello</w:t></w:r>
<w:hyperlink r:id="rId9"><w:r><w:t xml:space="preserve"> link</w:t></w:r></w:hyperlink>
<w:r><w:tab/><w:t>x</w:t><w:br/><w:t>y</w:t><w:br w:type="page"/></w:r>
</w:p>`)

	p := doc.Paragraphs()[0]
	assert.Len(t, p.Runs(), 3)
	assert.Equal(t, "Hello link\tx\ny", p.Text())
}

func TestParagraphAlignmentSchemaOrder(t *testing.T) {
	doc := parseBody(t, `<w:p><w:pPr><w:pStyle w:val="Body"/><w:rPr><w:b/></w:rPr></w:pPr></w:p>`)
	p := doc.Paragraphs()[0]
	assert.Equal(t, "", p.Alignment())

	p.SetAlignment("both")
	assert.Equal(t, "both", p.Alignment())
	assert.Contains(t, serialize(t, doc), `<w:pStyle w:val="Body"/><w:jc w:val="both"/><w:rPr><w:b/></w:rPr>`)

	p.SetAlignment("right")
	assert.Equal(t, "right", p.Alignment())
	assert.NotContains(t, serialize(t, doc), `w:val="both"`)
}

func TestParagraphCreatesPropertiesFirst(t *testing.T) {
	doc := parseBody(t, `<w:p><w:r><w:t>a</w:t></w:r></w:p>`)
	doc.Paragraphs()[0].SetAlignment("center")
	assert.Contains(t, serialize(t, doc), `<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r>`)
}

func TestParagraphTabStops(t *testing.T) {
	doc := parseBody(t, `<w:p><w:pPr><w:spacing w:after="0"/></w:pPr></w:p>`)
	p := doc.Paragraphs()[0]

	p.AddTabStop(units.Cm(5), "left")
	p.AddTabStop(units.Cm(2), "left")
	p.AddTabStop(units.Cm(5), "right")

	stops := p.TabStops()
	require.Len(t, stops, 2)
	assert.Equal(t, units.Cm(2).Twips(), stops[0].Position.Twips())
	assert.Equal(t, units.Cm(5).Twips(), stops[1].Position.Twips())
	assert.Equal(t, "right", stops[1].Alignment)
	assert.Contains(t, serialize(t, doc), `<w:pPr><w:tabs>`)

	p.ClearTabStops()
	assert.Empty(t, p.TabStops())
	assert.NotContains(t, serialize(t, doc), "w:tabs")
}

func TestParagraphHasSectionBreak(t *testing.T) {
	doc := parseBody(t, `<w:p><w:pPr><w:sectPr/></w:pPr></w:p><w:p/>`)
	assert.True(t, doc.Paragraphs()[0].HasSectionBreak())
	assert.False(t, doc.Paragraphs()[1].HasSectionBreak())
}

func TestRunSetText(t *testing.T) {
	tests := []struct {
		name string
		run  string
		text string
		want string
	}{
		{
			name: "single text node keeps attributes",
			run:  `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">old </w:t></w:r>`,
			text: "new",
			want: `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">new</w:t></w:r>`,
		},
		{
			name: "tabs and breaks are rebuilt in place",
			run:  `<w:r><w:rPr><w:i/></w:rPr><w:t>a</w:t><w:tab/><w:t>b</w:t><w:drawing/></w:r>`,
			text: "x\ty\nz",
			want: `<w:r><w:rPr><w:i/></w:rPr><w:t>x</w:t><w:tab/><w:t>y</w:t><w:br/><w:t>z</w:t><w:drawing/></w:r>`,
		},
		{
			name: "run without text gains a text node",
			run:  `<w:r><w:rPr><w:b/></w:rPr></w:r>`,
			text: " padded",
			want: `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve"> padded</w:t></w:r>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseBody(t, `<w:p>`+tt.run+`</w:p>`)
			r := doc.Paragraphs()[0].Runs()[0]
			r.SetText(tt.text)
			assert.Equal(t, tt.text, r.Text())
			assert.Contains(t, serialize(t, doc), tt.want)
		})
	}
}

func TestRunFontSize(t *testing.T) {
	doc := parseBody(t, `<w:p><w:r><w:rPr><w:b/><w:color w:val="FF0000"/><w:u w:val="single"/></w:rPr><w:t>a</w:t></w:r><w:r><w:t>b</w:t></w:r></w:p>`)
	runs := doc.Paragraphs()[0].Runs()

	_, ok := runs[0].FontSize()
	assert.False(t, ok)

	runs[0].SetFontSize(units.Pt(11))
	size, ok := runs[0].FontSize()
	require.True(t, ok)
	assert.InDelta(t, 11.0, size.Points(), 1e-9)
	assert.Contains(t, serialize(t, doc), `<w:color w:val="FF0000"/><w:sz w:val="22"/><w:u w:val="single"/>`)

	runs[1].SetFont("Arial")
	assert.Contains(t, serialize(t, doc), `<w:rFonts w:ascii="Arial" w:hAnsi="Arial" w:eastAsia="Arial" w:cs="Arial"/>`)
}
