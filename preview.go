package book2pdf

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// previewTemplate wraps Goldmark's fragment output in a complete HTML5
// document.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// PreviewRenderer renders the combined document to a single HTML page for
// quick inspection without a LaTeX toolchain. It is not the final output
// path; that belongs to Pandoc.
type PreviewRenderer struct {
	md goldmark.Markdown
}

// NewPreviewRenderer creates a renderer with GFM extensions and syntax
// highlighting.
func NewPreviewRenderer() *PreviewRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // heading IDs are the cross-reference link targets
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &PreviewRenderer{md: md}
}

// RenderHTML converts the combined markdown to a standalone HTML5
// document. Cancellation is supported via the goroutine + select pattern
// since Goldmark doesn't take a context.
func (r *PreviewRenderer) RenderHTML(ctx context.Context, title, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("rendering preview: %w", err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, title, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
