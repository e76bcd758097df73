package main

import (
	"errors"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/hints"
	"github.com/alnah/go-deckgen/internal/outline"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configName)
	case errors.Is(err, deckgen.ErrInvalidOutputDir), errors.Is(err, deckgen.ErrPersist):
		return hints.ForOutputDirectory()
	case errors.Is(err, deckgen.ErrInvalidAssetPath):
		return hints.ForAssetPath()
	case errors.Is(err, outline.ErrUnsupportedFormat):
		return hints.ForOutlineFormat()
	}
	return ""
}

// imagesDegraded reports whether any rendered slide lost its image.
func imagesDegraded(results []renderResult) bool {
	for _, r := range results {
		if r.Report == nil {
			continue
		}
		for _, s := range r.Report.Slides {
			for _, w := range s.Warnings {
				if w == deckgen.WarnImageUnavailable {
					return true
				}
			}
		}
	}
	return false
}
