package book2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default book layout, matching the swift-book source tree.
const (
	DefaultRootFile  = "TSPL.docc/The-Swift-Programming-Language.md"
	DefaultAssetsDir = "TSPL.docc/Assets"
)

// Book locates a documentation source tree.
type Book struct {
	Dir       string // root directory of the working copy (required)
	RootFile  string // root document, relative to Dir
	AssetsDir string // image assets, relative to Dir
}

// DefaultBook returns a Book rooted at dir with the standard layout.
func DefaultBook(dir string) Book {
	return Book{
		Dir:       dir,
		RootFile:  DefaultRootFile,
		AssetsDir: DefaultAssetsDir,
	}
}

// RootPath returns the absolute path of the root document.
func (b Book) RootPath() string {
	return filepath.Join(b.Dir, filepath.FromSlash(b.RootFile))
}

// AssetsPath returns the absolute path of the assets directory.
func (b Book) AssetsPath() string {
	return filepath.Join(b.Dir, filepath.FromSlash(b.AssetsDir))
}

// Validate checks that the book directory and root document exist.
func (b Book) Validate() error {
	if b.Dir == "" {
		return ErrEmptyBookPath
	}
	if _, err := os.Stat(b.RootPath()); err != nil {
		return fmt.Errorf("%w: %s", ErrRootNotFound, b.RootPath())
	}
	return nil
}

// Combined is the assembled document: front matter followed by the
// reassembled body, in root-document order.
type Combined struct {
	Lines []string
}

// Text joins the combined lines with newlines.
func (c *Combined) Text() string {
	return strings.Join(c.Lines, "\n")
}

// WriteFile writes the combined document to path.
func (c *Combined) WriteFile(path string) error {
	if len(c.Lines) == 0 {
		return ErrEmptyCombined
	}
	if err := os.WriteFile(path, []byte(c.Text()), 0o644); err != nil {
		return fmt.Errorf("writing combined document: %w", err)
	}
	return nil
}

// RenderOptions selects the final output formats produced by Pandoc.
type RenderOptions struct {
	PDFPath    string // PDF output path ("" = skip)
	EPUBPath   string // ePUB output path ("" = skip)
	DebugLaTeX bool   // emit the LaTeX intermediate instead of the PDF
}

// Validate checks that at least one output is requested.
func (o RenderOptions) Validate() error {
	if o.PDFPath == "" && o.EPUBPath == "" {
		return ErrNoRenderOutputs
	}
	return nil
}
