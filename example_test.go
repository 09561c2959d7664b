package book2pdf_test

import (
	"context"
	"fmt"
	"strings"

	book2pdf "github.com/alnah/go-book2pdf"
)

// ExampleRewriter_RewriteLine demonstrates cross-reference rewriting
// against a small index. Image rewrites additionally need an assets
// directory and a dimension prober.
func ExampleRewriter_RewriteLine() {
	index := book2pdf.Index{
		"Closures": {Stem: "Closures", Path: "TSPL.docc/LanguageGuide/Closures.md", Title: "Closures"},
	}

	rewriter := book2pdf.NewRewriter(index, "", nil)

	line, err := rewriter.RewriteLine(context.Background(), "See <doc:Closures> for details.")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(line)
	// Output: See [Closures](#closures) for details.
}

// ExamplePreviewRenderer_RenderHTML demonstrates rendering combined
// markdown to a standalone HTML page for quick inspection.
func ExamplePreviewRenderer_RenderHTML() {
	renderer := book2pdf.NewPreviewRenderer()

	page, err := renderer.RenderHTML(context.Background(), "Preview", "# The Basics\n\nSwift is safe.")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(page, "<h1") {
		fmt.Println("HTML generated successfully")
	}
	// Output: HTML generated successfully
}
