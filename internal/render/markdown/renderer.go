// Package markdown renders post bodies to HTML using goldmark.
package markdown

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// Renderer converts markdown to HTML with GitHub Flavored Markdown
// extensions enabled.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a markdown renderer.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Render converts markdown bytes to HTML bytes.
func (r *Renderer) Render(_ context.Context, markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}
