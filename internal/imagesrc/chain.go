// Package imagesrc obtains slide pictures from remote image services.
//
// A Chain tries its attempts in order, each under its own timeout, and
// returns the first response that decodes as an image. Results are
// normalized to PNG, JPEG or GIF no wider or taller than MaxDimension.
package imagesrc

import (
	"context"
	"log/slog"
	"time"

	deckgen "github.com/alnah/go-deckgen"
)

// Attempt is one way of getting an image for a prompt.
type Attempt struct {
	Name    string
	Timeout time.Duration // zero means no per-attempt limit
	Fetch   func(ctx context.Context, prompt string) ([]byte, error)
}

// Chain tries attempts in order until one yields a usable image.
// A Chain is safe for concurrent use.
type Chain struct {
	attempts []Attempt
	logger   *slog.Logger
}

// Compile-time interface implementation check.
var _ deckgen.ImageSource = (*Chain)(nil)

// NewChain creates a chain. A nil logger discards.
func NewChain(logger *slog.Logger, attempts ...Attempt) *Chain {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Chain{attempts: attempts, logger: logger}
}

// Fetch returns the first image any attempt produces. It reports false when
// every attempt failed or ctx is done.
func (c *Chain) Fetch(ctx context.Context, prompt string) (*deckgen.Image, bool) {
	for _, a := range c.attempts {
		if ctx.Err() != nil {
			break
		}
		img, err := c.try(ctx, a, prompt)
		if err != nil {
			c.logger.Debug("image attempt failed", "source", a.Name, "error", err)
			continue
		}
		c.logger.Debug("image fetched", "source", a.Name, "format", img.Format, "width", img.Width, "height", img.Height)
		return img, true
	}
	c.logger.Warn("no image obtained", "prompt", prompt, "attempts", len(c.attempts))
	return nil, false
}

func (c *Chain) try(ctx context.Context, a Attempt, prompt string) (*deckgen.Image, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	data, err := a.Fetch(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return Normalize(data)
}
