package imagesrc

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	deckgen "github.com/alnah/go-deckgen"
)

// MaxDimension is the largest width or height kept as is.
const MaxDimension = 1920

// Normalize checks data is an image and converts it to something a deck
// can embed. PNG, JPEG and GIF within MaxDimension are returned untouched;
// other formats are re-encoded as PNG and oversized images are scaled down
// preserving the aspect ratio.
func Normalize(data []byte) (*deckgen.Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty %dx%d", ErrUndecodable, cfg.Width, cfg.Height)
	}

	embeddable := format == "png" || format == "jpeg" || format == "gif"
	oversized := cfg.Width > MaxDimension || cfg.Height > MaxDimension
	if embeddable && !oversized {
		return &deckgen.Image{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if oversized {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	outFormat, encFormat := "png", imaging.PNG
	if format == "jpeg" {
		outFormat, encFormat = "jpeg", imaging.JPEG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, encFormat, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", outFormat, err)
	}

	b := img.Bounds()
	return &deckgen.Image{Data: buf.Bytes(), Format: outFormat, Width: b.Dx(), Height: b.Dy()}, nil
}
