package book2pdf

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// markdownExtension is the recognized source extension for book documents.
const markdownExtension = ".md"

// Document is one indexed source file. The inclusion directives and
// cross-references in the book identify documents by stem, the filename
// without extension.
type Document struct {
	Stem  string
	Path  string
	Title string // text of the first level-1 heading, "" if none
}

// HasTitle reports whether a level-1 heading was found for the document.
func (d Document) HasTitle() bool {
	return d.Title != ""
}

// Index maps document stems to their indexed documents. It is built once
// per run, before any concurrent work starts, and is read-only afterward.
type Index map[string]Document

// BuildIndex walks the book tree and indexes every markdown file.
// Two files sharing a stem abort the run: colliding stems would make
// cross-references ambiguous.
func BuildIndex(dir string) (Index, error) {
	index := make(Index)

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIndexRead, err)
		}
		if entry.IsDir() || filepath.Ext(path) != markdownExtension {
			return nil
		}

		stem := strings.TrimSuffix(entry.Name(), markdownExtension)
		if prev, ok := index[stem]; ok {
			return fmt.Errorf("%w: %q indexed at both %s and %s", ErrDuplicateStem, stem, prev.Path, path)
		}

		title, err := titleFromFirstHeading(path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIndexRead, err)
		}

		index[stem] = Document{Stem: stem, Path: path, Title: title}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return index, nil
}

// Lookup returns the document for stem, failing with ErrUnknownReference
// when the stem was never indexed.
func (idx Index) Lookup(stem string) (Document, error) {
	doc, ok := idx[stem]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownReference, stem)
	}
	return doc, nil
}

// Title returns the title of the document for stem, failing when the stem
// is unknown or the document has no level-1 heading.
func (idx Index) Title(stem string) (string, error) {
	doc, err := idx.Lookup(stem)
	if err != nil {
		return "", err
	}
	if !doc.HasTitle() {
		return "", fmt.Errorf("%w: %q (%s)", ErrMissingTitle, stem, doc.Path)
	}
	return doc.Title, nil
}

// titleFromFirstHeading scans a file for its first line-initial "# "
// heading and returns the heading text with the marker stripped.
func titleFromFirstHeading(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- paths come from walking the user-provided book tree
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", scanner.Err()
}
