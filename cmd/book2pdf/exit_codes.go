package main

import (
	"errors"
	"os"

	book2pdf "github.com/alnah/go-book2pdf"
	"github.com/alnah/go-book2pdf/internal/config"
)

// Exit codes for the book2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error (authoring errors included)
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // pandoc or probe subprocess failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Subprocess errors (exit 4)
	if errors.Is(err, book2pdf.ErrSubprocess) ||
		errors.Is(err, book2pdf.ErrProbeParse) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, book2pdf.ErrRootNotFound) ||
		errors.Is(err, book2pdf.ErrIndexRead) {
		return ExitIO
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, book2pdf.ErrEmptyBookPath) ||
		errors.Is(err, book2pdf.ErrNoRenderOutputs) ||
		errors.Is(err, ErrMissingBookPath) {
		return ExitUsage
	}

	// Authoring errors (unknown references, duplicate stems, missing
	// assets) and anything unexpected.
	return ExitGeneral
}
