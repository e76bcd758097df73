package deckgen

import "errors"

// Sentinel errors for library operations.
var (
	// ErrPersist is returned when the rendered deck cannot be written. It is
	// the only error Render returns for a well-formed call.
	ErrPersist = errors.New("failed to persist deck")

	// ErrInternal is returned when Render recovers from a panic outside
	// slide composition and package writing.
	ErrInternal = errors.New("internal render error")

	// ErrSlideComposition is recorded on a failed SlideOutcome.
	ErrSlideComposition = errors.New("slide composition failed")

	// ErrEmptyTopic is returned by input validation in front ends.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// Configuration errors.
	ErrInvalidOutputDir = errors.New("invalid output directory")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrThemeCatalog     = errors.New("invalid theme catalogue")

	// Asset loading errors.
	ErrThemesNotFound   = errors.New("theme catalogue not found")
	ErrTemplateNotFound = errors.New("template not found")
)
