package pptx

import (
	"fmt"

	"github.com/alnah/go-deckgen/internal/yamlutil"
)

// PlaceholderType is the OOXML placeholder type attribute.
type PlaceholderType string

// Placeholder types used by the built-in layouts.
const (
	PlaceholderTitle       PlaceholderType = "title"
	PlaceholderCenterTitle PlaceholderType = "ctrTitle"
	PlaceholderSubtitle    PlaceholderType = "subTitle"
	PlaceholderBody        PlaceholderType = "body"
	PlaceholderPicture     PlaceholderType = "pic"
)

// IsTitle reports whether the type is one of the title variants.
func (t PlaceholderType) IsTitle() bool {
	return t == PlaceholderTitle || t == PlaceholderCenterTitle
}

func (t PlaceholderType) valid() bool {
	switch t {
	case PlaceholderTitle, PlaceholderCenterTitle, PlaceholderSubtitle, PlaceholderBody, PlaceholderPicture:
		return true
	}
	return false
}

// PlaceholderSpec describes one placeholder of a layout.
type PlaceholderSpec struct {
	Idx      int             `yaml:"idx"`
	Type     PlaceholderType `yaml:"type"`
	Name     string          `yaml:"name"`
	Rect     `yaml:",inline"`
	FontSize float64 `yaml:"fontSize"` // points, 0 inherits from the master
}

// LayoutSpec is a named slide layout.
type LayoutSpec struct {
	Name         string            `yaml:"name"`
	Placeholders []PlaceholderSpec `yaml:"placeholders"`
}

// Placeholder returns the placeholder with the given idx.
func (l LayoutSpec) Placeholder(idx int) (PlaceholderSpec, bool) {
	for _, ph := range l.Placeholders {
		if ph.Idx == idx {
			return ph, true
		}
	}
	return PlaceholderSpec{}, false
}

// Palette holds the theme colors.
type Palette struct {
	Background Color `yaml:"background"`
	Title      Color `yaml:"title"`
	Text       Color `yaml:"text"`
	Accent     Color `yaml:"accent"`
	AccentText Color `yaml:"accentText"` // text drawn on accent fills
	Band       Color `yaml:"band"`       // alternate table row fill
}

// Fonts holds the theme typefaces.
type Fonts struct {
	Latin     string `yaml:"latin"`
	EastAsian string `yaml:"eastAsian"`
}

// SlideSize is the slide dimension in EMU.
type SlideSize struct {
	Width  int64 `yaml:"width"`
	Height int64 `yaml:"height"`
}

// Template is the base artifact a presentation is built from.
// A Template is read-only once parsed and may be shared between documents.
type Template struct {
	Name      string       `yaml:"name"`
	SlideSize SlideSize    `yaml:"slideSize"`
	Palette   Palette      `yaml:"palette"`
	Fonts     Fonts        `yaml:"fonts"`
	Layouts   []LayoutSpec `yaml:"layouts"`

	pkg *templatePackage // set when read from a .pptx package
}

// ParseTemplate decodes a template and validates it. Data starting with a
// zip signature is read as a .pptx package with ReadTemplate; anything
// else is a YAML descriptor. Missing slide size, palette entries, fonts and
// layouts are filled from the blank template.
func ParseTemplate(data []byte) (*Template, error) {
	if isPackage(data) {
		return ReadTemplate(data)
	}

	var t Template
	if err := yamlutil.UnmarshalStrict(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	t.applyDefaults()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// FromPackage reports whether the template was read from a .pptx package,
// in which case its master, layouts and theme are written unchanged.
func (t *Template) FromPackage() bool {
	return t.pkg != nil
}

// Layout returns the layout at index i.
func (t *Template) Layout(i int) (LayoutSpec, bool) {
	if i < 0 || i >= len(t.Layouts) {
		return LayoutSpec{}, false
	}
	return t.Layouts[i], true
}

// Validate checks the template is writable.
func (t *Template) Validate() error {
	if t.SlideSize.Width <= 0 || t.SlideSize.Height <= 0 {
		return fmt.Errorf("%w: slide size must be positive", ErrInvalidTemplate)
	}
	if len(t.Layouts) == 0 {
		return fmt.Errorf("%w: no layouts", ErrInvalidTemplate)
	}

	colors := map[string]Color{
		"palette.background": t.Palette.Background,
		"palette.title":      t.Palette.Title,
		"palette.text":       t.Palette.Text,
		"palette.accent":     t.Palette.Accent,
		"palette.accentText": t.Palette.AccentText,
		"palette.band":       t.Palette.Band,
	}
	for field, c := range colors {
		if _, err := ParseColor(string(c)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, field, err)
		}
	}

	for i, layout := range t.Layouts {
		seen := make(map[int]bool, len(layout.Placeholders))
		for _, ph := range layout.Placeholders {
			if !ph.Type.valid() {
				return fmt.Errorf("%w: layout %d: unknown placeholder type %q", ErrInvalidTemplate, i, ph.Type)
			}
			if seen[ph.Idx] {
				return fmt.Errorf("%w: layout %d: duplicate placeholder idx %d", ErrInvalidTemplate, i, ph.Idx)
			}
			if ph.W < 0 || ph.H < 0 {
				return fmt.Errorf("%w: layout %d: placeholder %d has negative size", ErrInvalidTemplate, i, ph.Idx)
			}
			seen[ph.Idx] = true
		}
	}
	return nil
}

func (t *Template) applyDefaults() {
	blank := BlankTemplate()
	if t.SlideSize.Width == 0 && t.SlideSize.Height == 0 {
		t.SlideSize = blank.SlideSize
	}
	fill := func(c *Color, def Color) {
		if c.IsZero() {
			*c = def
			return
		}
		if parsed, err := ParseColor(string(*c)); err == nil {
			*c = parsed
		}
	}
	fill(&t.Palette.Background, blank.Palette.Background)
	fill(&t.Palette.Title, blank.Palette.Title)
	fill(&t.Palette.Text, blank.Palette.Text)
	fill(&t.Palette.Accent, blank.Palette.Accent)
	fill(&t.Palette.AccentText, blank.Palette.AccentText)
	fill(&t.Palette.Band, blank.Palette.Band)
	if t.Fonts.Latin == "" {
		t.Fonts.Latin = blank.Fonts.Latin
	}
	if len(t.Layouts) == 0 {
		t.Layouts = blank.Layouts
	}
}
