package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kayaai/career-navigator/internal/models"
)

func samplePDF(t *testing.T, lines ...string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.Cell(0, 8, line)
		doc.Ln(8)
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func sampleDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDocumentExtractor_PDF(t *testing.T) {
	data := samplePDF(t, "Jane Doe", "Senior Software Engineer")

	text, err := NewDocumentExtractor().Extract(data, FormatPDF)

	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Senior Software Engineer")
}

func TestDocumentExtractor_PDFWithoutText(t *testing.T) {
	text, err := NewDocumentExtractor().Extract(samplePDF(t), FormatPDF)

	require.Error(t, err)
	assert.Empty(t, text)
	assert.Contains(t, err.Error(), "Error reading PDF")
}

func TestDocumentExtractor_DOCX(t *testing.T) {
	data := sampleDOCX(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t xml:space="preserve">Skills: </w:t></w:r><w:r><w:t>Go &amp; SQL</w:t></w:r></w:p>`)

	text, err := NewDocumentExtractor().Extract(data, FormatDOCX)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go & SQL\n", text)
}

func TestDocumentExtractor_EmptyDOCX(t *testing.T) {
	text, err := NewDocumentExtractor().Extract(sampleDOCX(t, `<w:p></w:p>`), FormatDOCX)

	require.Error(t, err)
	assert.Empty(t, text)
	assert.Contains(t, err.Error(), "Error reading DOCX")
}

func TestDocumentExtractor_Garbage(t *testing.T) {
	garbage := []byte("definitely not a document")
	e := NewDocumentExtractor()

	text, err := e.Extract(garbage, FormatPDF)
	assert.Empty(t, text)
	assert.ErrorContains(t, err, "Error reading PDF")

	text, err = e.Extract(garbage, FormatDOCX)
	assert.Empty(t, text)
	assert.ErrorContains(t, err, "Error reading DOCX")
}

func TestDocumentExtractor_DetectFormat(t *testing.T) {
	e := NewDocumentExtractor()
	pdfData := samplePDF(t, "Jane Doe")
	docxData := sampleDOCX(t, `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`)

	tests := []struct {
		name     string
		mime     string
		filename string
		data     []byte
		want     DocumentFormat
	}{
		{"declared pdf", "application/pdf", "resume", nil, FormatPDF},
		{"declared docx with params", MIMEDOCX + "; charset=binary", "resume", nil, FormatDOCX},
		{"pdf extension", "application/octet-stream", "Resume.PDF", nil, FormatPDF},
		{"docx extension", "", "resume.docx", nil, FormatDOCX},
		{"sniffed pdf", "application/octet-stream", "upload", pdfData, FormatPDF},
		{"sniffed docx", "", "upload", docxData, FormatDOCX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.DetectFormat(tt.mime, tt.filename, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := e.DetectFormat("text/plain", "notes.txt", []byte("plain text resume"))
		assert.True(t, errors.Is(err, models.ErrUnsupportedFormat))
	})
}
