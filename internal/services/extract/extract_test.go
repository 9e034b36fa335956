// extract_test.go covers file-type detection and the DOCX readers.
package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r><w:r><w:t xml:space="preserve"> | QA Lead</w:t></w:r></w:p>
    <w:p></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Cloud</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>AWS, Azure</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Testing</w:t></w:r></w:p></w:tc>
        <w:tc><w:p></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>Led testing efforts.</w:t></w:r></w:p>
  </w:body>
</w:document>`

// buildDOCX zips a minimal package holding only word/document.xml.
func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestReadDOCX(t *testing.T) {
	text, err := readDOCX(buildDOCX(t, documentXML))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe | QA Lead\nCloud | AWS, Azure\nTesting\nLed testing efforts.", text)
}

// A body paragraph that repeats a cell's text must survive, and tables stay
// where they sit between paragraphs.
func TestReadDOCX_DocumentOrder(t *testing.T) {
	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Profile</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Skills</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Go, SQL</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>Skills</w:t></w:r></w:p>
    <w:p><w:r><w:t>Closing</w:t></w:r></w:p>
  </w:body>
</w:document>`
	expected := "Profile\nSkills | Go, SQL\nSkills\nClosing"

	text, err := readDOCX(buildDOCX(t, body))
	require.NoError(t, err)
	assert.Equal(t, expected, text)

	result, err := Extract("cv.docx", buildDOCX(t, body))
	require.NoError(t, err)
	assert.Equal(t, expected, result.Text)
}

func TestReadDOCXFallback(t *testing.T) {
	text, err := readDOCXFallback(buildDOCX(t, documentXML))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe | QA Lead\nCloud | AWS, Azure\nTesting\nLed testing efforts.", text)
}

func TestReadDOCXFallback_MissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = readDOCXFallback(buf.Bytes())
	assert.True(t, errors.Is(err, ErrInvalidFile))
}

func TestExtract_DOCX(t *testing.T) {
	result, err := Extract("cv.docx", buildDOCX(t, documentXML))
	require.NoError(t, err)

	assert.Equal(t, KindDOCX, result.Kind)
	assert.Contains(t, result.Text, "Jane Doe | QA Lead")
	assert.Contains(t, result.Text, "Cloud | AWS, Azure")
	assert.Greater(t, result.WordCount, 5)
}

func TestExtract_Errors(t *testing.T) {
	emptyDoc := buildDOCX(t, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p></w:p></w:body></w:document>`)

	tests := []struct {
		name     string
		filename string
		data     []byte
		expected error
	}{
		{name: "unsupported extension", filename: "cv.txt", data: []byte("hello"), expected: ErrUnsupportedFormat},
		{name: "no extension", filename: "cv", data: []byte("hello"), expected: ErrUnsupportedFormat},
		{name: "pdf without magic", filename: "cv.pdf", data: []byte("not a pdf"), expected: ErrInvalidFile},
		{name: "legacy binary doc", filename: "cv.doc", data: []byte("\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1"), expected: ErrInvalidFile},
		{name: "docx without text", filename: "cv.DOCX", data: emptyDoc, expected: ErrEmptyText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.filename, tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.True(t, IsInputError(err))
		})
	}
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract("cv.pdf", []byte("%PDF-1.7 truncated"))
	require.Error(t, err)
	assert.False(t, IsInputError(err))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidatePDF([]byte("%PDF-1.4")))
	assert.False(t, ValidatePDF([]byte("%PD")))
	assert.True(t, ValidateDOCX([]byte("PK\x03\x04rest")))
	assert.False(t, ValidateDOCX([]byte("PK")))
}
