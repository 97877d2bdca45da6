package main

import (
	"errors"
	"os"

	html2deck "github.com/hollisjv/go-html2deck"
	"github.com/hollisjv/go-html2deck/internal/config"
)

// Exit codes for the html2deck CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Deck built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, merge write failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, html2deck.ErrBrowserConnect) ||
		errors.Is(err, html2deck.ErrPageCreate) ||
		errors.Is(err, html2deck.ErrNavigationTimeout) ||
		errors.Is(err, html2deck.ErrCaptureFailure) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, html2deck.ErrSourceNotFound) ||
		errors.Is(err, html2deck.ErrWritePage) ||
		errors.Is(err, html2deck.ErrMergeIO) ||
		errors.Is(err, ErrNoSlides) ||
		errors.Is(err, ErrNotADir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, html2deck.ErrInvalidPageSpec) ||
		errors.Is(err, html2deck.ErrInvalidWorkerCount) ||
		errors.Is(err, html2deck.ErrNoSuccessfulPages) ||
		errors.Is(err, html2deck.ErrIncompleteDeck) ||
		errors.Is(err, ErrNoInput) {
		return ExitUsage
	}

	return ExitGeneral
}
