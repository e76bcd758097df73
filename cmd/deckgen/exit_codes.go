package main

import (
	"errors"
	"os"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/history"
	"github.com/alnah/go-deckgen/internal/outline"
)

// Exit codes for the deckgen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All decks rendered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, outline or assets
	ExitIO      = 3 // File not found, permission denied, deck not written
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, deckgen.ErrPersist) ||
		errors.Is(err, history.ErrOpen) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnknownTheme) ||
		errors.Is(err, ErrInvalidWorkers) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, outline.ErrUnsupportedFormat) ||
		errors.Is(err, outline.ErrEmptyOutline) ||
		errors.Is(err, outline.ErrParse) ||
		errors.Is(err, deckgen.ErrInvalidOutputDir) ||
		errors.Is(err, deckgen.ErrInvalidAssetPath) ||
		errors.Is(err, deckgen.ErrThemeCatalog) ||
		errors.Is(err, deckgen.ErrThemesNotFound) ||
		errors.Is(err, deckgen.ErrTemplateNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}
