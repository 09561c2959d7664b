package book2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Indexing errors.
	ErrDuplicateStem = errors.New("duplicate document stem")
	ErrIndexRead     = errors.New("failed to read document during indexing")

	// Reference resolution errors.
	ErrUnknownReference = errors.New("reference to unknown document")
	ErrMissingTitle     = errors.New("referenced document has no title")

	// Image rescaling errors.
	ErrAssetNotFound = errors.New("image asset not found")
	ErrProbeParse    = errors.New("failed to parse dimension probe output")

	// Subprocess errors.
	ErrSubprocess = errors.New("external tool failed")

	// Git metadata errors.
	ErrNoReleaseDate = errors.New("no release date derivable from checkout")

	// Input validation errors.
	ErrEmptyBookPath   = errors.New("book path cannot be empty")
	ErrRootNotFound    = errors.New("root document not found")
	ErrEmptyCombined   = errors.New("combined document is empty")
	ErrNoRenderOutputs = errors.New("no render outputs requested")
)
