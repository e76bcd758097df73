// Package outline reads slide outlines from JSON, YAML and Markdown files
// and builds the fallback outline used when only a topic is known.
package outline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/yamlutil"
)

// Sentinel errors for outline decoding.
var (
	ErrUnsupportedFormat = errors.New("unsupported outline format")
	ErrEmptyOutline      = errors.New("outline has no slides")
	ErrParse             = errors.New("failed to parse outline")
)

// Format is an outline encoding.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ReadFile reads and parses the outline at path. The format follows the
// file extension.
func ReadFile(path string) (*deckgen.Outline, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path) // #nosec G304 -- path is user-provided CLI input
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := yamlutil.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return Parse(data, format)
}

// Parse decodes data in the given format. Unknown fields are ignored so
// outlines produced by other tools load as long as the known fields match.
func Parse(data []byte, format Format) (*deckgen.Outline, error) {
	var (
		o   *deckgen.Outline
		err error
	)
	switch format {
	case FormatJSON:
		o = &deckgen.Outline{}
		dec := json.NewDecoder(bytes.NewReader(data))
		if derr := dec.Decode(o); derr != nil {
			err = fmt.Errorf("%w: %v", ErrParse, derr)
		}
	case FormatYAML:
		o = &deckgen.Outline{}
		if yerr := yamlutil.Unmarshal(data, o); yerr != nil {
			err = fmt.Errorf("%w: %v", ErrParse, yerr)
		}
	case FormatMarkdown:
		o, err = parseMarkdown(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if len(o.Slides) == 0 {
		return nil, ErrEmptyOutline
	}
	return o, nil
}

// Static returns the outline used when no content is supplied: a cover
// and one slide of generic talking points.
func Static(topic string) deckgen.Outline {
	topic = strings.TrimSpace(topic)
	return deckgen.Outline{
		Topic: topic,
		Slides: []deckgen.SlideSpec{
			{
				ID:       1,
				Kind:     string(deckgen.KindCover),
				Title:    topic,
				Subtitle: "An overview",
			},
			{
				ID:    2,
				Kind:  string(deckgen.KindBulletedList),
				Title: "Key points",
				Content: &deckgen.Content{BulletPoints: []string{
					"What " + topic + " is",
					"Why " + topic + " matters",
					"Where " + topic + " is heading",
				}},
			},
		},
	}
}
