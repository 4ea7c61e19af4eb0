package textextract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Roe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>jane@example.com</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Skills</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>R&amp;D</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": documentRels,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFromFile_Docx(t *testing.T) {
	text, err := FromFile("cv.DOCX", buildDocx(t))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Roe\njane@example.com\nSkills\nGo\tR&D\n")
}

func TestFromFile_Unsupported(t *testing.T) {
	for _, name := range []string{"cv.txt", "cv", "cv.pdf.exe", "cv.odt"} {
		_, err := FromFile(name, []byte("hello"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestFromFile_CorruptDocuments(t *testing.T) {
	for _, name := range []string{"cv.pdf", "cv.docx", "cv.doc"} {
		_, err := FromFile(name, []byte("definitely not a document"))
		assert.ErrorIs(t, err, ErrUnreadableDocument, name)
	}
}

func TestFromMime(t *testing.T) {
	text, err := FromMime(MimePlain, []byte("Jane\nSkills"))
	require.NoError(t, err)
	assert.Equal(t, "Jane\nSkills", text)

	_, err = FromMime("image/png", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSupportedAndMimeFor(t *testing.T) {
	assert.True(t, Supported("resume.pdf"))
	assert.True(t, Supported("RESUME.Doc"))
	assert.False(t, Supported("resume.rtf"))

	mime, err := MimeFor("a.docx")
	require.NoError(t, err)
	assert.Equal(t, MimeDocx, mime)
}

func TestDocumentXMLToText(t *testing.T) {
	got := documentXMLToText(`<w:p><w:r><w:t>a</w:t><w:br/><w:t>b &lt;c&gt;</w:t></w:r></w:p>`)
	assert.Equal(t, "a\nb <c>\n", got)
}
