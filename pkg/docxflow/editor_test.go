package docxflow

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

func writeTestDocument(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.docx")
	require.NoError(t, os.WriteFile(path, createDOCXBytes(body, ""), 0o644))
	return path
}

func TestOpenSave(t *testing.T) {
	logs := captureLogs(t, LogInfo)
	in := writeTestDocument(t, para("Hello")+table(1, 2)+breakPara("end")+para("tail"))

	ed, err := Open(in)
	require.NoError(t, err)
	assert.Equal(t, 3, ed.SelectParagraphs().Count())
	assert.Equal(t, 1, ed.SelectTables().Count())
	assert.Equal(t, 2, ed.SelectSections().Count())
	assert.Equal(t, 2, ed.SectionIndex().SectionCount())

	require.NoError(t, ed.SelectParagraphs().GetByIndex(0).Apply(NewReplaceText("Hello", "Bye")).Err())

	out := filepath.Join(t.TempDir(), "output.docx")
	require.NoError(t, ed.Save(out))
	assert.Contains(t, logs.String(), "saved "+out)
	assert.Contains(t, logs.String(), "document="+in)

	saved, err := Open(out)
	require.NoError(t, err)
	assert.Equal(t, "Bye", saved.SelectParagraphs().Get()[0].(*xml.Paragraph).Text())

	// The input is never written.
	original, err := Open(in)
	require.NoError(t, err)
	assert.Equal(t, "Hello", original.SelectParagraphs().Get()[0].(*xml.Paragraph).Text())
}

func TestOpenErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.docx")
	_, err := Open(missing)
	require.Error(t, err)
	assert.True(t, IsDocumentError(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var de *DocumentError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "open", de.Operation)
	assert.Equal(t, missing, de.Path)

	_, err = OpenBytes([]byte("garbage"), nil)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "read", de.Operation)

	_, err = OpenWithConfig(writeTestDocument(t, para("x")), &Config{LogLevel: "loud"})
	require.Error(t, err)
	assert.True(t, IsDocumentError(err))
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestOpenBrokenDocumentPart(t *testing.T) {
	_, err := OpenBytes(createBrokenDocument(t), nil)
	require.Error(t, err)
	assert.True(t, IsDocumentError(err))
}

func createBrokenDocument(t *testing.T) []byte {
	t.Helper()
	pkg := readTestPackage(t, createDOCXBytes(para("x"), ""))
	pkg.SetPart("word/document.xml", []byte(`<w:document xmlns:w="`+xml.NamespaceW+`"/>`))
	out, err := pkg.Bytes()
	require.NoError(t, err)
	return out
}

func TestEditorConfig(t *testing.T) {
	ed, err := OpenBytes(createDOCXBytes(para("x"), ""), &Config{LogLevel: "debug", WarnOnEmptySelection: true})
	require.NoError(t, err)

	cfg := ed.Config()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, LogDebug, ed.Logger().Level())

	cfg.LogLevel = "error"
	assert.Equal(t, "debug", ed.Config().LogLevel, "Config returns a copy")
	assert.Equal(t, "Editor()", ed.String())
}

func TestEditorLoggerDoesNotChangeGlobal(t *testing.T) {
	captureLogs(t, LogWarn)
	_, err := OpenBytes(createDOCXBytes(para("x"), ""), &Config{LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, LogWarn, GetLogger().Level())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEditorWriteToError(t *testing.T) {
	ed := openBody(t, para("x"))
	_, err := ed.WriteTo(failingWriter{})
	require.Error(t, err)
	assert.True(t, IsDocumentError(err))

	err = ed.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "out.docx"))
	require.Error(t, err)
	assert.True(t, IsDocumentError(err))
}
