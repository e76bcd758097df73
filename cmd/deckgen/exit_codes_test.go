package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/history"
	"github.com/alnah/go-deckgen/internal/outline"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"persist", deckgen.ErrPersist, ExitIO},
		{"history open", history.ErrOpen, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped batch failure", fmt.Errorf("1 of 2 decks failed: %w", &os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"unknown theme", ErrUnknownTheme, ExitUsage},
		{"invalid workers", ErrInvalidWorkers, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"outline format", outline.ErrUnsupportedFormat, ExitUsage},
		{"empty outline", outline.ErrEmptyOutline, ExitUsage},
		{"outline parse", fmt.Errorf("x: %w", outline.ErrParse), ExitUsage},
		{"invalid output dir", deckgen.ErrInvalidOutputDir, ExitUsage},
		{"invalid asset path", deckgen.ErrInvalidAssetPath, ExitUsage},
		{"theme catalogue", deckgen.ErrThemeCatalog, ExitUsage},
		{"themes not found", deckgen.ErrThemesNotFound, ExitUsage},
		{"template not found", deckgen.ErrTemplateNotFound, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"internal render error", fmt.Errorf("%w: boom", deckgen.ErrInternal), ExitGeneral},
		{"panic while writing", fmt.Errorf("%w: internal error: boom", deckgen.ErrPersist), ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes must follow Unix conventions")
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
