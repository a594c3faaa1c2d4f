package services

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer renders benchmark documents, which use **bold** headings
// and one bullet per line, to HTML. Raw HTML in the input is dropped.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
	}
}

func (r *MarkdownRenderer) Render(text string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "<pre>" + html.EscapeString(text) + "</pre>"
	}
	return buf.String()
}
