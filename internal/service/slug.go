package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/d60-Lab/blog-engine/pkg/markdown"
)

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpace = regexp.MustCompile(`\s+`)
)

// Slugify lowercases title, drops everything outside [a-z0-9\s-] and joins the
// words with hyphens. It never returns an empty string.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "")
	s = strings.TrimSpace(slugSpace.ReplaceAllString(s, " "))
	s = strings.ReplaceAll(s, " ", "-")
	if s == "" {
		return uuid.New().String()
	}
	return s
}

const (
	metaDescriptionMax  = 160
	metaDescriptionKeep = 157
)

// MetaDescription renders src, strips tags and truncates the text to 160 runes.
func MetaDescription(r MarkdownRenderer, src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	html, err := r.ToHTML(src)
	if err != nil {
		return "", err
	}
	text := []rune(markdown.PlainText(html))
	if len(text) > metaDescriptionMax {
		return string(text[:metaDescriptionKeep]) + "...", nil
	}
	return string(text), nil
}
