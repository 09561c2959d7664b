package book2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Precompiled rewrite patterns, constructed once at startup.
var (
	// Cross-reference directive: <doc:Stem> or <doc:Stem#Section-Name>
	crossRefPattern = regexp.MustCompile(`<doc:([\w#-]+)>`)

	// Optionality markers in grammar-production blocks.
	doubleOptionalityPattern = regexp.MustCompile(`\*\*_\?_\*\*`)
	singleOptionalityPattern = regexp.MustCompile(`\*_\?_\*`)

	// Image reference at the start of a line: ![caption](filename-prefix)
	imageRefPattern = regexp.MustCompile(`^!\[([^\]]*)\]\(([\w-]+)\)`)

	// ATX heading of any level.
	headingPattern = regexp.MustCompile(`^#+ .`)
)

// retinaDPI converts half the pixel width of a @2x asset into a display
// width percentage matching the online presentation of the book.
const retinaDPI = 7.6

// retinaSuffix selects the doubled-resolution variant of an asset.
const retinaSuffix = "@2x.png"

// Rewriter applies the single-line markdown rewrites to chapter content.
// It reads the index and probes assets but never mutates either.
type Rewriter struct {
	index      Index
	assetsPath string
	prober     DimensionProber
}

// NewRewriter creates a Rewriter over an index, the book's assets
// directory, and a dimension prober.
func NewRewriter(index Index, assetsPath string, prober DimensionProber) *Rewriter {
	return &Rewriter{index: index, assetsPath: assetsPath, prober: prober}
}

// RewriteLine applies all rewrites that can be done within a single line,
// in fixed order. Multi-line rewriting happens in the reflow state
// machine that this feeds.
func (r *Rewriter) RewriteLine(ctx context.Context, line string) (string, error) {
	line, err := r.rewriteCrossReferences(line)
	if err != nil {
		return "", err
	}
	line = rewriteOptionalityMarkers(line)
	line, err = r.rewriteImageReference(ctx, line)
	if err != nil {
		return "", err
	}
	return shiftHeadingLevel(line), nil
}

// rewriteCrossReferences converts <doc:...> directives into markdown
// links. A section fragment supplies its own label (hyphens become
// spaces); otherwise the label is the target document's indexed title.
func (r *Rewriter) rewriteCrossReferences(line string) (string, error) {
	var firstErr error

	line = crossRefPattern.ReplaceAllStringFunc(line, func(directive string) string {
		target := crossRefPattern.FindStringSubmatch(directive)[1]

		var label string
		if _, section, ok := strings.Cut(target, "#"); ok {
			label = strings.ReplaceAll(section, "-", " ")
		} else {
			title, err := r.index.Title(target)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return directive
			}
			label = title
		}

		slug := strings.ReplaceAll(strings.ToLower(label), " ", "-")
		return fmt.Sprintf("[%s](#%s)", label, slug)
	})

	if firstErr != nil {
		return "", firstErr
	}
	return line, nil
}

// rewriteOptionalityMarkers moves the ? of a grammar optionality marker
// outside its emphasis markers: **_?_** becomes ?** and *_?_* becomes ?*.
func rewriteOptionalityMarkers(line string) string {
	line = doubleOptionalityPattern.ReplaceAllString(line, "?**")
	return singleOptionalityPattern.ReplaceAllString(line, "?*")
}

// rewriteImageReference redirects an image reference to its @2x asset and
// appends an explicit display width computed from the asset's probed
// pixel width.
func (r *Rewriter) rewriteImageReference(ctx context.Context, line string) (string, error) {
	match := imageRefPattern.FindStringSubmatch(line)
	if match == nil {
		return line, nil
	}
	caption, prefix := match[1], match[2]

	filename := prefix + retinaSuffix
	assetPath := filepath.Join(r.assetsPath, filename)
	if _, err := os.Stat(assetPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, assetPath)
	}

	width, _, err := r.prober.ProbeDimensions(ctx, assetPath)
	if err != nil {
		return "", err
	}

	// Halving the @2x width and dividing by the reference DPI matches the
	// image presentation of the online web version.
	scalePercentage := int(float64(width) / 2 / retinaDPI)
	return fmt.Sprintf("![%s](%s){ width=%d%% }", caption, filename, scalePercentage), nil
}

// shiftHeadingLevel nests a heading one level deeper. Chapter content
// sits one level below the root document's own headings.
func shiftHeadingLevel(line string) string {
	if headingPattern.MatchString(line) {
		return "#" + line
	}
	return line
}
