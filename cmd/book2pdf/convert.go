package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	book2pdf "github.com/alnah/go-book2pdf"
	"github.com/alnah/go-book2pdf/internal/config"
)

// ErrMissingBookPath indicates the required positional argument is absent.
var ErrMissingBookPath = errors.New("usage: book2pdf [flags] <book-path>")

// runConvert executes the whole conversion: combine, write the combined
// artifact, optionally preview, and render the final outputs.
func runConvert(ctx context.Context, flags *convertFlags, bookPath string) error {
	if bookPath == "" {
		return ErrMissingBookPath
	}

	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	book := book2pdf.DefaultBook(bookPath)
	if cfg.Book.RootFile != "" {
		book.RootFile = cfg.Book.RootFile
	}
	if cfg.Book.AssetsDir != "" {
		book.AssetsDir = cfg.Book.AssetsDir
	}

	svc := book2pdf.New(
		book2pdf.WithPandocPath(cfg.Pandoc.Path),
		book2pdf.WithWorkers(cfg.Build.Workers),
		book2pdf.WithChapters(cfg.Build.Chapters),
		book2pdf.WithVersionSuffix(cfg.Build.VersionSuffix),
	)

	combined, err := svc.Combine(ctx, book)
	if err != nil {
		return err
	}

	if err := combined.WriteFile(cfg.Output.Combined); err != nil {
		return err
	}
	fmt.Printf("Preprocessed Markdown content written to %s\n", cfg.Output.Combined)

	if flags.previewHTML != "" {
		if err := writePreview(ctx, combined, flags.previewHTML); err != nil {
			return err
		}
		fmt.Printf("HTML preview written to %s\n", flags.previewHTML)
	}

	if flags.preprocessOnly {
		return nil
	}

	renderOpts := book2pdf.RenderOptions{
		PDFPath:    cfg.Output.PDF,
		EPUBPath:   cfg.Output.EPUB,
		DebugLaTeX: flags.debugLaTeX,
	}
	if err := svc.Render(ctx, cfg.Output.Combined, book, renderOpts); err != nil {
		return err
	}

	if renderOpts.EPUBPath != "" {
		fmt.Printf("Output written to %s\n", renderOpts.EPUBPath)
	}
	if renderOpts.PDFPath != "" {
		fmt.Printf("Output written to %s\n", renderOpts.PDFPath)
	}
	return nil
}

// resolveConfig merges the config file (if any) with command-line flags.
// Flags win over file values.
func resolveConfig(flags *convertFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.pandocPath != "" {
		cfg.Pandoc.Path = flags.pandocPath
	}
	if flags.outputPDF != "" {
		cfg.Output.PDF = flags.outputPDF
	}
	if flags.outputEPUB != "" {
		cfg.Output.EPUB = flags.outputEPUB
	}
	if flags.combinedPath != "" {
		cfg.Output.Combined = flags.combinedPath
	}
	if flags.versionSuffix != "" {
		cfg.Build.VersionSuffix = flags.versionSuffix
	}
	if len(flags.chapters) > 0 {
		cfg.Build.Chapters = flags.chapters
	}
	if flags.workers > 0 {
		cfg.Build.Workers = flags.workers
	}

	return cfg, nil
}

// writePreview renders the combined document to a standalone HTML file.
func writePreview(ctx context.Context, combined *book2pdf.Combined, path string) error {
	html, err := book2pdf.NewPreviewRenderer().RenderHTML(ctx, "Combined Book Preview", combined.Text())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	return nil
}
