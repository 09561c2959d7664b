package book2pdf

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// dimensionsPattern extracts "<width> x <height>" from probe output,
// e.g. `PNG image data, 1520 x 600, 8-bit/color RGBA`.
var dimensionsPattern = regexp.MustCompile(`(\d+) x (\d+)`)

// DimensionProber reports the pixel dimensions of an image asset.
// Implementations must be safe for concurrent use: chapter preprocessing
// probes assets from multiple goroutines.
type DimensionProber interface {
	ProbeDimensions(ctx context.Context, path string) (width, height int, err error)
}

// FileProber probes image dimensions by running file(1) and parsing its
// stdout.
type FileProber struct {
	Runner CommandRunner
}

// NewFileProber creates a FileProber with a real command runner.
func NewFileProber() *FileProber {
	return &FileProber{Runner: &ExecRunner{}}
}

// ProbeDimensions runs the probe tool against path and parses the first
// "<width> x <height>" occurrence in its output.
func (p *FileProber) ProbeDimensions(ctx context.Context, path string) (int, int, error) {
	stdout, stderr, err := p.Runner.Run(ctx, "file", path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: probing %s: %s: %v", ErrSubprocess, path, stderr, err)
	}

	match := dimensionsPattern.FindStringSubmatch(stdout)
	if match == nil {
		return 0, 0, fmt.Errorf("%w: no dimensions in probe output for %s: %q", ErrProbeParse, path, stdout)
	}

	width, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: width %q: %v", ErrProbeParse, match[1], err)
	}
	height, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: height %q: %v", ErrProbeParse, match[2], err)
	}

	return width, height, nil
}
