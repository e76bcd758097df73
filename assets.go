package deckgen

import (
	"errors"

	"github.com/alnah/go-deckgen/internal/assets"
)

// AssetLoader defines the contract for loading the theme catalogue and
// template descriptors. Implementations may load from the filesystem,
// embedded assets, S3, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to the embedded catalogue. Implement this interface for custom
// backends.
type AssetLoader interface {
	// LoadThemes returns the raw YAML theme catalogue.
	// Returns ErrThemesNotFound if no catalogue exists.
	LoadThemes() ([]byte, error)

	// LoadTemplate returns a template by name: the bytes of a .pptx
	// package or a YAML descriptor.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) ([]byte, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - themes.yaml for the theme catalogue
//   - templates/{name}.pptx for designer templates
//   - templates/{name}.yaml for template descriptors
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps internal AssetResolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadThemes() ([]byte, error) {
	data, err := a.resolver.LoadThemes()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

func (a *assetLoaderAdapter) LoadTemplate(name string) ([]byte, error) {
	data, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrThemesNotFound):
		return wrapError(ErrThemesNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*assetLoaderAdapter)(nil)
	_ AssetLoader = (*assets.AssetResolver)(nil)
	_ AssetLoader = (*assets.EmbeddedLoader)(nil)
)
