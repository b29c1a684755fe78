// Package markdown renders banner content and cleans user-supplied text.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type MarkdownService interface {
	// ToHTMLSanitized renders markdown and strips anything outside the UGC policy.
	ToHTMLSanitized(markdown string) (string, error)
	// Sanitize keeps the UGC subset of user-supplied HTML.
	Sanitize(html string) string
	// StripTags removes all markup, leaving plain text.
	StripTags(text string) string
}

type markdownServiceImpl struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewMarkdownService() MarkdownService {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	ugc := bluemonday.UGCPolicy()
	ugc.RequireNoFollowOnLinks(true)
	ugc.AddTargetBlankToFullyQualifiedLinks(true)

	return &markdownServiceImpl{
		md:     md,
		ugc:    ugc,
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *markdownServiceImpl) ToHTMLSanitized(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return s.ugc.Sanitize(buf.String()), nil
}

func (s *markdownServiceImpl) Sanitize(html string) string {
	return strings.TrimSpace(s.ugc.Sanitize(html))
}

func (s *markdownServiceImpl) StripTags(text string) string {
	return strings.TrimSpace(s.strict.Sanitize(text))
}
