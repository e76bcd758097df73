package pptx

import "errors"

// Sentinel errors for document building and writing.
var (
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidTemplate = errors.New("invalid template")
	ErrNilPresentation = errors.New("presentation is nil")
	ErrWritePackage    = errors.New("failed to write package")
)
