package main

import (
	"log/slog"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/imagesrc"
)

// newRenderer builds a Renderer from the resolved configuration.
func newRenderer(cfg *config.Config, env *Environment, logger *slog.Logger) (*deckgen.Renderer, error) {
	opts := []deckgen.Option{
		deckgen.WithLogger(logger),
		deckgen.WithClock(env.Now),
	}
	if cfg.Output.Dir != "" {
		opts = append(opts, deckgen.WithOutputDir(cfg.Output.Dir))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, deckgen.WithAssetPath(cfg.Assets.BasePath))
	}
	if !cfg.Images.Disabled {
		opts = append(opts, deckgen.WithImageSource(imageSource(cfg.Images, env, logger)))
	}
	return deckgen.NewRenderer(opts...)
}

// imageSource returns the injected source or the HTTP chain.
func imageSource(cfg config.ImagesConfig, env *Environment, logger *slog.Logger) deckgen.ImageSource {
	if env.Images != nil {
		return env.Images
	}
	return imagesrc.New(imagesrc.Options{
		PrimaryURL:      cfg.PrimaryURL,
		FallbackURL:     cfg.FallbackURL,
		PrimaryTimeout:  cfg.PrimaryTimeout,
		FallbackTimeout: cfg.FallbackTimeout,
		UserAgent:       "go-deckgen/" + Version,
		Logger:          logger,
	})
}
