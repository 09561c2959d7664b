package book2pdf

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// commentSpanPattern removes HTML comment spans in full, including
// malformed ones containing double dashes, tolerant of embedded line
// breaks. The upstream book sources still contain a few of those.
var commentSpanPattern = regexp.MustCompile(`(?s)<!--.+?-->`)

// pageBreak forces a page break before each chapter in PDF output; it
// does not hurt the ePUB output.
const pageBreak = `\newpage{}`

// ChapterPreprocessor turns one chapter document into its final line
// sequence: comment spans stripped, every line rewritten, definition
// lists reflowed, and the result framed with a leading page break and a
// trailing blank line.
type ChapterPreprocessor struct {
	index    Index
	rewriter *Rewriter
}

// NewChapterPreprocessor creates a preprocessor over an index and a
// rewriter keyed to the same book.
func NewChapterPreprocessor(index Index, rewriter *Rewriter) *ChapterPreprocessor {
	return &ChapterPreprocessor{index: index, rewriter: rewriter}
}

// Preprocess loads the chapter identified by stem and produces its fully
// rewritten lines.
func (p *ChapterPreprocessor) Preprocess(ctx context.Context, stem string) ([]string, error) {
	doc, err := p.index.Lookup(stem)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(doc.Path) // #nosec G304 -- path comes from the index built over the book tree
	if err != nil {
		return nil, fmt.Errorf("reading chapter %q: %w", stem, err)
	}

	text := normalizeLineEndings(string(data))
	text = commentSpanPattern.ReplaceAllString(text, "")

	body, err := reflowDefinitionLists(ctx, splitLines(text), p.rewriter.RewriteLine)
	if err != nil {
		return nil, fmt.Errorf("preprocessing chapter %q: %w", stem, err)
	}

	framed := make([]string, 0, len(body)+2)
	framed = append(framed, pageBreak)
	framed = append(framed, body...)
	framed = append(framed, "")
	return framed, nil
}

// crlfOrCR matches Windows and old-Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// splitLines splits content into lines without keeping line endings,
// dropping the empty trailing element a final newline would produce.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
