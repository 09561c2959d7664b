package book2pdf

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// inclusionPattern recognizes a chapter inclusion directive in the root
// document: a list item with a backtick-quoted <doc:Stem> reference.
var inclusionPattern = regexp.MustCompile("^-\\s*`<doc:(\\w+)>`.*$")

// preprocessFunc produces the final line sequence for one chapter stem.
type preprocessFunc func(ctx context.Context, stem string) ([]string, error)

// chapterResult is the per-task message sent to the aggregating consumer.
type chapterResult struct {
	stem  string
	lines []string
	err   error
}

// InclusionResolver splices preprocessed chapter content into the root
// document. Chapters are preprocessed concurrently, but the substitution
// pass is strictly sequential: output order is determined by the order of
// directives in the root document, never by task completion order.
type InclusionResolver struct {
	preprocess preprocessFunc
	workers    int
	subset     map[string]bool // nil = all chapters
}

// NewInclusionResolver creates a resolver that fans chapter preprocessing
// out over at most workers concurrent tasks. A non-empty subset restricts
// inclusion to the named stems, which speeds up iteration on a single
// conversion problem.
func NewInclusionResolver(preprocess preprocessFunc, workers int, subset []string) *InclusionResolver {
	r := &InclusionResolver{
		preprocess: preprocess,
		workers:    ResolveWorkers(workers),
	}
	if len(subset) > 0 {
		r.subset = make(map[string]bool, len(subset))
		for _, stem := range subset {
			r.subset[stem] = true
		}
	}
	return r
}

// Resolve runs both passes over the root document's lines and returns the
// reassembled stream. Any chapter failure cancels the remaining tasks and
// aborts the whole resolution; no partial output is returned.
func (r *InclusionResolver) Resolve(ctx context.Context, rootLines []string) ([]string, error) {
	stems := r.scanDirectives(rootLines)

	chapters, err := r.preprocessAll(ctx, stems)
	if err != nil {
		return nil, err
	}

	return r.substitute(rootLines, chapters)
}

// scanDirectives collects the distinct chapter stems referenced by
// inclusion directives, in order of first appearance. Content before the
// first top-level heading is skipped: the upstream heading shift leaves
// orphaned former-heading text above the real start of the document.
func (r *InclusionResolver) scanDirectives(rootLines []string) []string {
	var stems []string
	seen := make(map[string]bool)

	inBody := false
	for _, line := range rootLines {
		if !inBody {
			inBody = strings.HasPrefix(line, "# ")
			continue
		}
		match := inclusionPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		stem := match[1]
		if seen[stem] || !r.includes(stem) {
			continue
		}
		seen[stem] = true
		stems = append(stems, stem)
	}
	return stems
}

// preprocessAll dispatches one task per stem, bounded by the worker
// count, and aggregates results. The first failure cancels outstanding
// siblings; the join barrier always waits for every task to report so no
// goroutine outlives the call.
func (r *InclusionResolver) preprocessAll(ctx context.Context, stems []string) (map[string][]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, r.workers)
	results := make(chan chapterResult)

	var wg sync.WaitGroup
	for _, stem := range stems {
		wg.Add(1)
		go func(stem string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- chapterResult{stem: stem, err: ctx.Err()}
				return
			}

			lines, err := r.preprocess(ctx, stem)
			results <- chapterResult{stem: stem, lines: lines, err: err}
		}(stem)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	chapters := make(map[string][]string, len(stems))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		chapters[res.stem] = res.lines
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return chapters, nil
}

// substitute re-scans the root lines sequentially, splicing preprocessed
// chapters in place of their directives and inserting a page break before
// each top-level heading.
func (r *InclusionResolver) substitute(rootLines []string, chapters map[string][]string) ([]string, error) {
	var out []string

	inBody := false
	for _, line := range rootLines {
		if !inBody {
			if strings.HasPrefix(line, "# ") {
				inBody = true
				out = append(out, line)
			}
			continue
		}

		if match := inclusionPattern.FindStringSubmatch(line); match != nil {
			stem := match[1]
			if !r.includes(stem) {
				continue
			}
			lines, ok := chapters[stem]
			if !ok {
				return nil, fmt.Errorf("%w: chapter %q missing from preprocessed results", ErrUnknownReference, stem)
			}
			out = append(out, lines...)
			continue
		}

		if strings.HasPrefix(line, "# ") {
			out = append(out, pageBreak)
		}
		out = append(out, line)
	}

	return out, nil
}

// includes reports whether stem passes the optional chapter subset.
func (r *InclusionResolver) includes(stem string) bool {
	return r.subset == nil || r.subset[stem]
}
