package html2deck

import "errors"

// Sentinel errors for library operations.
var (
	// Per-job render failures. Recorded in RenderResult.Err; they never
	// abort the surrounding batch.
	ErrSourceNotFound    = errors.New("source HTML file not found")
	ErrNavigationTimeout = errors.New("page navigation timed out")
	ErrCaptureFailure    = errors.New("page capture failed")
	ErrWritePage         = errors.New("failed to write page file")

	// Session failures. Fatal to the whole batch.
	ErrBrowserConnect = errors.New("failed to launch or connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")

	// Merge failures.
	ErrNoSuccessfulPages = errors.New("no successfully rendered pages to merge")
	ErrMergeIO           = errors.New("failed to write merged document")

	// Deck assembly failures.
	ErrIncompleteDeck   = errors.New("deck rendering incomplete")
	ErrConversionFailed = errors.New("presentation conversion failed")

	// Validation errors.
	ErrInvalidPageSpec    = errors.New("invalid page spec")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)
