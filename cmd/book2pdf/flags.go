package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// convertFlags holds all flags for the book2pdf CLI.
type convertFlags struct {
	config         string
	pandocPath     string
	outputPDF      string
	outputEPUB     string
	combinedPath   string
	previewHTML    string
	versionSuffix  string
	chapters       []string
	workers        int
	debugLaTeX     bool
	preprocessOnly bool
	verbose        bool
	showVersion    bool
}

// parseFlags parses command-line arguments. The single positional
// argument is the book working-copy path.
func parseFlags(args []string) (*convertFlags, string, error) {
	flags := &convertFlags{}

	fs := flag.NewFlagSet("book2pdf", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: book2pdf [flags] <book-path>\n\n")
		fmt.Fprintf(fs.Output(), "Convert a DocC-style Markdown book to PDF and ePUB using pandoc.\n\n")
		fs.PrintDefaults()
	}

	fs.StringVarP(&flags.config, "config", "c", "", "config file name or path")
	fs.StringVar(&flags.pandocPath, "pandoc-path", "", "path to the pandoc executable")
	fs.StringVar(&flags.outputPDF, "output-pdf", "", "PDF output path")
	fs.StringVar(&flags.outputEPUB, "output-epub", "", "ePUB output path")
	fs.StringVar(&flags.combinedPath, "combined-path", "", "combined markdown output path")
	fs.StringVar(&flags.previewHTML, "preview-html", "", "also write an HTML preview of the combined document")
	fs.StringVar(&flags.versionSuffix, "version-suffix", "", "suffix spliced into the title's version fragment")
	fs.StringSliceVar(&flags.chapters, "chapters", nil, "restrict inclusion to these chapter stems")
	fs.IntVar(&flags.workers, "workers", 0, "chapter preprocessing concurrency (0 = auto)")
	fs.BoolVar(&flags.debugLaTeX, "debug-latex", false, "dump the LaTeX intermediate instead of the final PDF")
	fs.BoolVar(&flags.preprocessOnly, "preprocess-only", false, "stop after writing the combined markdown")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&flags.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, "", err
	}

	bookPath := ""
	if fs.NArg() > 0 {
		bookPath = fs.Arg(0)
	}

	return flags, bookPath, nil
}
