package book2pdf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

// CommandRunner abstracts command execution to enable testing without
// real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// DefaultPandocPath is used when no explicit pandoc location is given.
const DefaultPandocPath = "pandoc"

// rootHeadingShift lifts the root document's section headings ("Language
// Guide", "Language Reference", ...) to level 1 so they become the
// toplevel structure of the table of contents.
const rootHeadingShift = -2

// Pandoc invokes the pandoc CLI for the heading pre-shift of the root
// document and for final rendering of the combined document.
type Pandoc struct {
	Path   string
	Runner CommandRunner
}

// NewPandoc creates a Pandoc wrapper with a real command runner.
func NewPandoc(path string) *Pandoc {
	return NewPandocWithRunner(path, &ExecRunner{})
}

// NewPandocWithRunner creates a Pandoc wrapper over an explicit runner.
func NewPandocWithRunner(path string, runner CommandRunner) *Pandoc {
	if path == "" {
		path = DefaultPandocPath
	}
	return &Pandoc{Path: path, Runner: runner}
}

// ShiftRootHeadings runs the root document through a markdown-to-markdown
// pass that shifts all heading levels by rootHeadingShift, returning the
// rewritten markdown text.
func (p *Pandoc) ShiftRootHeadings(ctx context.Context, rootPath string) (string, error) {
	stdout, stderr, err := p.Runner.Run(ctx, p.Path,
		"--from", "markdown",
		"--to", "markdown",
		rootPath,
		fmt.Sprintf("--shift-heading-level-by=%d", rootHeadingShift),
	)
	if err != nil {
		return "", fmt.Errorf("%w: shifting root headings: %s: %v", ErrSubprocess, stderr, err)
	}
	return stdout, nil
}

// renderJob is one pandoc invocation producing one output file.
type renderJob struct {
	to      string
	output  string
	options []string
}

// Render produces the requested output formats from the combined
// markdown document. Jobs run sequentially; the first failure aborts.
func (p *Pandoc) Render(ctx context.Context, combinedPath string, book Book, opts RenderOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	common := []string{
		"--from", "markdown",
		combinedPath,
		"--resource-path", book.AssetsPath(),
		"--standalone",
	}

	for _, job := range renderJobs(opts) {
		args := append(append([]string{}, common...), "--to", job.to)
		args = append(args, job.options...)
		args = append(args, "--output", job.output)

		_, stderr, err := p.Runner.Run(ctx, p.Path, args...)
		if err != nil {
			return fmt.Errorf("%w: rendering %s: %s: %v", ErrSubprocess, job.output, stderr, err)
		}
	}
	return nil
}

// renderJobs expands RenderOptions into concrete pandoc invocations,
// mirroring the pdf and epub3 option sets of the book production setup.
func renderJobs(opts RenderOptions) []renderJob {
	var jobs []renderJob

	if opts.EPUBPath != "" {
		jobs = append(jobs, renderJob{
			to:     "epub3",
			output: opts.EPUBPath,
			options: []string{
				"--toc",
				"--split-level=2",
			},
		})
	}

	if opts.PDFPath != "" {
		if opts.DebugLaTeX {
			texPath := opts.PDFPath[:len(opts.PDFPath)-len(filepath.Ext(opts.PDFPath))] + ".tex"
			jobs = append(jobs, renderJob{to: "latex", output: texPath})
		} else {
			jobs = append(jobs, renderJob{
				to:     "pdf",
				output: opts.PDFPath,
				options: []string{
					"--pdf-engine", "lualatex",
					"--variable", "linkcolor=[HTML]{de5d43}",
				},
			})
		}
	}

	return jobs
}
