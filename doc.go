// Package book2pdf assembles a multi-file DocC-style Markdown book into a
// single Pandoc-flavored Markdown document and drives Pandoc to render it.
//
// # Quick Start
//
// Create a service, combine the book, and render:
//
//	svc := book2pdf.New()
//
//	book := book2pdf.DefaultBook("/path/to/swift-book")
//	combined, err := svc.Combine(ctx, book)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := combined.WriteFile("book-combined.md"); err != nil {
//	    log.Fatal(err)
//	}
//	err = svc.Render(ctx, "book-combined.md", book, book2pdf.RenderOptions{
//	    PDFPath: "book.pdf",
//	})
//
// # Combination Pipeline
//
// Combine runs these stages:
//
//  1. Index the book tree (stem -> path and title, from each file's
//     first level-1 heading)
//  2. Pre-shift the root document's heading levels via Pandoc
//  3. Preprocess every included chapter concurrently (cross-reference
//     resolution, optionality-marker fix-up, retina image rescaling,
//     heading shift, definition-list reflow)
//  4. Reassemble chapters in root-document order behind a YAML
//     front-matter block
//
// The combined document is the sole artifact handed to Pandoc for final
// PDF/ePUB output.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := book2pdf.New(
//	    book2pdf.WithPandocPath("/opt/pandoc/bin/pandoc"),
//	    book2pdf.WithWorkers(4),
//	    book2pdf.WithChapters([]string{"Closures", "Enumerations"}),
//	)
//
// # External Tools
//
// The service shells out to pandoc (heading pre-shift and final
// rendering) and to file(1) (image dimension probing). Both run behind
// the CommandRunner interface so tests can substitute fakes. Release
// timestamps come from the book's git checkout via go-git; no git binary
// is required.
package book2pdf
