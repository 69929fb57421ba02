package main

import (
	"errors"
	"os"

	mdtranslate "github.com/alnah/go-mdtranslate"
	"github.com/alnah/go-mdtranslate/internal/config"
)

// Exit codes for the mdtranslate CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All (language, artifact) pairs succeeded
	ExitGeneral = 1 // General/unexpected error, or nothing succeeded
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitPartial = 5 // Some (language, artifact) pairs failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrPartialFailure) {
		return ExitPartial
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidOutput) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, mdtranslate.ErrEmptyMarkdown) ||
		errors.Is(err, mdtranslate.ErrSegmentation) ||
		errors.Is(err, mdtranslate.ErrUnknownLanguage) ||
		errors.Is(err, mdtranslate.ErrUnknownProvider) ||
		errors.Is(err, mdtranslate.ErrNoProviders) ||
		errors.Is(err, mdtranslate.ErrCloudAuth) {
		return ExitUsage
	}

	return ExitGeneral
}
