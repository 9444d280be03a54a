// Package markdown renders post bodies to HTML and derives plain text from
// rendered HTML.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

// Renderer converts markdown with GitHub flavoured extensions.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// ToHTML renders markdown to HTML. Raw HTML inside the source is escaped.
func (r *Renderer) ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainText strips every tag from rendered HTML and trims the result.
func PlainText(rendered string) string {
	z := html.NewTokenizer(strings.NewReader(rendered))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input: either way keep what was collected
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
