package deckgen

import "context"

// Image is a decoded-and-normalized raster ready to embed.
type Image struct {
	Data   []byte
	Format string // png, jpeg or gif
	Width  int    // pixels
	Height int    // pixels
}

// ImageSource turns a text prompt into an image. Fetch returns false when
// no image could be obtained; it never fails the render.
type ImageSource interface {
	Fetch(ctx context.Context, prompt string) (*Image, bool)
}

// ImageSourceFunc adapts a function to ImageSource.
type ImageSourceFunc func(ctx context.Context, prompt string) (*Image, bool)

// Fetch calls f.
func (f ImageSourceFunc) Fetch(ctx context.Context, prompt string) (*Image, bool) {
	return f(ctx, prompt)
}

// noImages is the default source: every request is absent.
type noImages struct{}

func (noImages) Fetch(context.Context, string) (*Image, bool) { return nil, false }

// Compile-time interface checks.
var (
	_ ImageSource = noImages{}
	_ ImageSource = ImageSourceFunc(nil)
)

// usable reports whether img can be placed on a slide.
func (img *Image) usable() bool {
	return img != nil && len(img.Data) > 0 && img.Width > 0 && img.Height > 0
}
