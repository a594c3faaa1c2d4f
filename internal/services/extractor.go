package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"kayaai/career-navigator/internal/models"
)

type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type DocumentExtractor interface {
	DetectFormat(declaredMIME, filename string, data []byte) (DocumentFormat, error)
	Extract(data []byte, format DocumentFormat) (string, error)
}

type documentExtractor struct{}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{}
}

// DetectFormat trusts the declared MIME type first, then the extension, then
// the content itself.
func (e *documentExtractor) DetectFormat(declaredMIME, filename string, data []byte) (DocumentFormat, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(declaredMIME, ";")[0]))
	switch mediaType {
	case MIMEPDF:
		return FormatPDF, nil
	case MIMEDOCX:
		return FormatDOCX, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	}

	detected := mimetype.Detect(data)
	switch {
	case detected.Is(MIMEPDF):
		return FormatPDF, nil
	case detected.Is(MIMEDOCX):
		return FormatDOCX, nil
	}

	return "", fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, detected.String())
}

// Extract returns "" together with a user-facing error whenever the document
// cannot be read or holds no text.
func (e *documentExtractor) Extract(data []byte, format DocumentFormat) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = e.extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("Error reading PDF: %w", err)
		}
	case FormatDOCX:
		text, err = e.extractDOCX(data)
		if err != nil {
			return "", fmt.Errorf("Error reading DOCX: %w", err)
		}
	default:
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, format)
	}

	return text, nil
}

func (e *documentExtractor) extractPDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Keep whatever the other pages give us.
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	text = textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

func (e *documentExtractor) extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	text, err := paragraphsFromDocumentXML(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in DOCX")
	}

	return text, nil
}

// paragraphsFromDocumentXML flattens word/document.xml into one line per
// paragraph.
func paragraphsFromDocumentXML(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		sb     strings.Builder
		inText bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br", "cr":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
