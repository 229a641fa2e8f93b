// Package render turns article content into the sanitized HTML detail
// page. Markdown conversion and sanitization are the only places raw
// article content meets HTML, so both live here.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdownInstance is initialized once and reused. The configuration
// never changes and the goldmark converter is safe to share; per-call
// state lives in each Convert invocation.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once

	// sanitizePolicy strips everything a reader-submitted document
	// should not inject into the page: scripts, event handlers, frames.
	sanitizePolicy = bluemonday.UGCPolicy()
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
		)
	})
	return markdownInstance
}

// Markdown converts article content to sanitized HTML. The result is
// safe to hand to html/template without further escaping.
func Markdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	return template.HTML(sanitizePolicy.SanitizeBytes(buf.Bytes())), nil
}
