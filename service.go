package book2pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Compile-time interface implementation checks.
var (
	_ CommandRunner   = (*ExecRunner)(nil)
	_ DimensionProber = (*FileProber)(nil)
)

// serviceConfig holds Service construction options.
type serviceConfig struct {
	pandocPath    string
	workers       int
	chapters      []string
	versionSuffix string
}

// Service orchestrates the book combination pipeline.
type Service struct {
	cfg    serviceConfig
	runner CommandRunner
	prober DimensionProber
}

// Option customizes a Service.
type Option func(*Service)

// WithPandocPath sets the pandoc executable location.
func WithPandocPath(path string) Option {
	return func(s *Service) { s.cfg.pandocPath = path }
}

// WithWorkers sets the chapter preprocessing concurrency.
// Zero selects an automatic value from the available CPUs.
func WithWorkers(n int) Option {
	return func(s *Service) { s.cfg.workers = n }
}

// WithChapters restricts inclusion to the named chapter stems, for fast
// iteration on a specific conversion problem.
func WithChapters(stems []string) Option {
	return func(s *Service) { s.cfg.chapters = stems }
}

// WithVersionSuffix appends a build suffix to the version fragment of the
// book title, e.g. "beta 3" turns "Name (6.2)" into "Name (6.2 beta 3)".
func WithVersionSuffix(suffix string) Option {
	return func(s *Service) { s.cfg.versionSuffix = suffix }
}

// WithRunner injects a command runner (used by tests to fake pandoc and
// the dimension probe).
func WithRunner(r CommandRunner) Option {
	return func(s *Service) { s.runner = r }
}

// WithProber injects a dimension prober.
func WithProber(p DimensionProber) Option {
	return func(s *Service) { s.prober = p }
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}

	for _, opt := range opts {
		opt(s)
	}

	if s.runner == nil {
		s.runner = &ExecRunner{}
	}
	if s.prober == nil {
		s.prober = &FileProber{Runner: s.runner}
	}

	return s
}

// Combine runs the full pipeline: index the tree, pre-shift the root
// document's headings, preprocess every referenced chapter concurrently,
// and reassemble everything behind the front matter. The index is built
// completely before any concurrent task starts and is read-only for the
// rest of the run.
func (s *Service) Combine(ctx context.Context, book Book) (*Combined, error) {
	if err := book.Validate(); err != nil {
		return nil, err
	}

	index, err := BuildIndex(book.Dir)
	if err != nil {
		return nil, err
	}

	front, err := s.buildFrontMatter(book, index)
	if err != nil {
		return nil, err
	}

	shifted, err := NewPandocWithRunner(s.cfg.pandocPath, s.runner).ShiftRootHeadings(ctx, book.RootPath())
	if err != nil {
		return nil, err
	}

	rewriter := NewRewriter(index, book.AssetsPath(), s.prober)
	preprocessor := NewChapterPreprocessor(index, rewriter)
	resolver := NewInclusionResolver(preprocessor.Preprocess, s.cfg.workers, s.cfg.chapters)

	body, err := resolver.Resolve(ctx, splitLines(normalizeLineEndings(shifted)))
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(front)+len(body))
	lines = append(lines, front...)
	lines = append(lines, body...)
	return &Combined{Lines: lines}, nil
}

// Render drives pandoc over an already-written combined document.
func (s *Service) Render(ctx context.Context, combinedPath string, book Book, opts RenderOptions) error {
	return NewPandocWithRunner(s.cfg.pandocPath, s.runner).Render(ctx, combinedPath, book, opts)
}

// buildFrontMatter assembles the metadata block from the root document's
// indexed title and the checkout's release date.
func (s *Service) buildFrontMatter(book Book, index Index) ([]string, error) {
	rootStem := stemOf(book.RootFile)

	title, err := index.Title(rootStem)
	if err != nil {
		return nil, fmt.Errorf("resolving book title: %w", err)
	}
	title = applyVersionSuffix(title, s.cfg.versionSuffix)

	release, err := ResolveReleaseInfo(book.Dir)
	if err != nil {
		return nil, err
	}

	return NewFrontMatter(title, release.Date).Lines()
}

// stemOf returns the document stem of a file path.
func stemOf(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
