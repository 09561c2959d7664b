package main

import (
	"reflect"
	"testing"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		want     convertFlags
		wantPath string
	}{
		{
			name:     "book path only",
			args:     []string{"book2pdf", "/work/swift-book"},
			wantPath: "/work/swift-book",
		},
		{
			name: "all flags",
			args: []string{
				"book2pdf",
				"--config", "book.yaml",
				"--pandoc-path", "/opt/pandoc",
				"--output-pdf", "out.pdf",
				"--output-epub", "out.epub",
				"--combined-path", "combined.md",
				"--preview-html", "preview.html",
				"--version-suffix", "beta 1",
				"--chapters", "TheBasics,Closures",
				"--workers", "4",
				"--debug-latex",
				"--preprocess-only",
				"--verbose",
				"/work/swift-book",
			},
			want: convertFlags{
				config:         "book.yaml",
				pandocPath:     "/opt/pandoc",
				outputPDF:      "out.pdf",
				outputEPUB:     "out.epub",
				combinedPath:   "combined.md",
				previewHTML:    "preview.html",
				versionSuffix:  "beta 1",
				chapters:       []string{"TheBasics", "Closures"},
				workers:        4,
				debugLaTeX:     true,
				preprocessOnly: true,
				verbose:        true,
			},
			wantPath: "/work/swift-book",
		},
		{
			name: "short flags",
			args: []string{"book2pdf", "-c", "book", "-v", "/work/swift-book"},
			want: convertFlags{config: "book", verbose: true},
			wantPath: "/work/swift-book",
		},
		{
			name: "version without book path",
			args: []string{"book2pdf", "--version"},
			want: convertFlags{showVersion: true},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, bookPath, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			if !reflect.DeepEqual(*flags, tt.want) {
				t.Errorf("parseFlags() = %+v, want %+v", *flags, tt.want)
			}
			if bookPath != tt.wantPath {
				t.Errorf("book path = %q, want %q", bookPath, tt.wantPath)
			}
		})
	}
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	t.Parallel()

	if _, _, err := parseFlags([]string{"book2pdf", "--bogus"}); err == nil {
		t.Fatal("parseFlags() accepted an unknown flag")
	}
}
