package deckgen

import (
	"log/slog"
	"time"
)

// Option configures a Renderer.
type Option func(*Renderer)

// defaultOutputDir is used when no output directory is specified.
const defaultOutputDir = "generated_ppts"

// WithOutputDir sets the directory decks are written to. It is created on
// first render.
// Panics if dir is empty (programmer error, similar to time.NewTicker).
func WithOutputDir(dir string) Option {
	if dir == "" {
		panic("deckgen: WithOutputDir directory must not be empty")
	}
	return func(r *Renderer) {
		r.outputDir = dir
	}
}

// WithAssetPath loads themes.yaml and templates from dir, falling back to
// the embedded assets for anything missing there.
// Panics if dir is empty.
func WithAssetPath(dir string) Option {
	if dir == "" {
		panic("deckgen: WithAssetPath directory must not be empty")
	}
	return func(r *Renderer) {
		r.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
// Panics if loader is nil.
func WithAssetLoader(loader AssetLoader) Option {
	if loader == nil {
		panic("deckgen: WithAssetLoader loader must not be nil")
	}
	return func(r *Renderer) {
		r.loader = loader
	}
}

// WithThemeCatalog sets the theme catalogue instead of loading it from the
// asset loader. The catalogue may be shared between renderers.
// Panics if c is nil.
func WithThemeCatalog(c *ThemeCatalog) Option {
	if c == nil {
		panic("deckgen: WithThemeCatalog catalogue must not be nil")
	}
	return func(r *Renderer) {
		r.catalog = c
	}
}

// WithImageSource sets where slide pictures come from. Without it no
// pictures are fetched and image requests degrade the slide.
// Panics if src is nil.
func WithImageSource(src ImageSource) Option {
	if src == nil {
		panic("deckgen: WithImageSource source must not be nil")
	}
	return func(r *Renderer) {
		r.images = src
	}
}

// WithLogger sets the logger for render diagnostics. The default discards.
// Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("deckgen: WithLogger logger must not be nil")
	}
	return func(r *Renderer) {
		r.logger = l
	}
}

// WithClock sets the time source used for document metadata and report
// durations.
// Panics if now is nil.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("deckgen: WithClock function must not be nil")
	}
	return func(r *Renderer) {
		r.clock = now
	}
}
