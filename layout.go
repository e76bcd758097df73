package deckgen

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alnah/go-deckgen/internal/assets"
	"github.com/alnah/go-deckgen/internal/pptx"
	"github.com/alnah/go-deckgen/internal/yamlutil"
)

// Role names a content region of a slide layout.
type Role string

// Region roles.
const (
	RoleTitle    Role = "title"
	RoleSubtitle Role = "subtitle"
	RoleBody     Role = "body"
	RoleLeft     Role = "left"
	RoleRight    Role = "right"
)

func (r Role) valid() bool {
	switch r {
	case RoleTitle, RoleSubtitle, RoleBody, RoleLeft, RoleRight:
		return true
	}
	return false
}

// Placement tells where a slide kind goes in a template: the layout to
// instantiate and the placeholder idx of each region.
type Placement struct {
	Layout  int          `json:"layout"`
	Regions map[Role]int `json:"regions"`
}

// Region returns the placeholder idx for role.
func (p Placement) Region(role Role) (int, bool) {
	idx, ok := p.Regions[role]
	return idx, ok
}

// genericPlacement is used when neither the theme nor the default theme
// knows the kind: title and content on the second generic layout.
func genericPlacement() Placement {
	return Placement{Layout: 1, Regions: map[Role]int{RoleTitle: 0, RoleBody: 1}}
}

// Theme is a read-only view of one catalogue entry.
type Theme struct {
	Name        string
	Description string
	Template    string           // template asset name
	ChartKinds  []pptx.ChartKind // first is the default
	Kinds       []Kind           // kinds with an explicit placement
}

type theme struct {
	name        string
	description string
	template    string
	chartKinds  []pptx.ChartKind
	placements  map[Kind]Placement
}

// ThemeCatalog maps theme names to templates and kind placements.
// A catalogue is immutable once loaded and safe for concurrent use.
type ThemeCatalog struct {
	themes map[string]*theme
	order  []string
	def    string
}

type catalogFile struct {
	Default string      `yaml:"default"`
	Themes  []themeFile `yaml:"themes"`
}

type themeFile struct {
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description"`
	Template    string                   `yaml:"template"`
	ChartKinds  []string                 `yaml:"chartKinds"`
	Placements  map[string]placementFile `yaml:"placements"`
}

type placementFile struct {
	Layout  int            `yaml:"layout"`
	Regions map[string]int `yaml:"regions"`
}

// LoadThemeCatalog reads and parses the catalogue provided by loader.
func LoadThemeCatalog(loader AssetLoader) (*ThemeCatalog, error) {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	data, err := loader.LoadThemes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeCatalog, err)
	}
	return ParseThemeCatalog(data)
}

// DefaultThemeCatalog returns the built-in catalogue.
func DefaultThemeCatalog() (*ThemeCatalog, error) {
	return LoadThemeCatalog(assets.NewEmbeddedLoader())
}

// ParseThemeCatalog decodes a YAML catalogue. Theme names are matched
// case-insensitively. When no default is named, the first theme is the
// default.
func ParseThemeCatalog(data []byte) (*ThemeCatalog, error) {
	var file catalogFile
	if err := yamlutil.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeCatalog, err)
	}
	if len(file.Themes) == 0 {
		return nil, fmt.Errorf("%w: no themes", ErrThemeCatalog)
	}

	c := &ThemeCatalog{themes: make(map[string]*theme, len(file.Themes))}
	for i, tf := range file.Themes {
		t, err := buildTheme(tf)
		if err != nil {
			return nil, fmt.Errorf("%w: themes[%d]: %v", ErrThemeCatalog, i, err)
		}
		if _, dup := c.themes[t.name]; dup {
			return nil, fmt.Errorf("%w: duplicate theme %q", ErrThemeCatalog, t.name)
		}
		c.themes[t.name] = t
		c.order = append(c.order, t.name)
	}

	c.def = strings.ToLower(strings.TrimSpace(file.Default))
	if c.def == "" {
		c.def = c.order[0]
	}
	if _, ok := c.themes[c.def]; !ok {
		return nil, fmt.Errorf("%w: default theme %q is not defined", ErrThemeCatalog, file.Default)
	}
	return c, nil
}

func buildTheme(tf themeFile) (*theme, error) {
	name := strings.ToLower(strings.TrimSpace(tf.Name))
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}
	if err := assets.ValidateAssetName(tf.Template); err != nil {
		return nil, fmt.Errorf("theme %q: template: %v", name, err)
	}

	t := &theme{
		name:        name,
		description: tf.Description,
		template:    tf.Template,
		placements:  make(map[Kind]Placement, len(tf.Placements)),
	}

	for _, raw := range tf.ChartKinds {
		k := pptx.ChartKind(strings.ToLower(strings.TrimSpace(raw)))
		if !k.Valid() {
			return nil, fmt.Errorf("theme %q: unsupported chart kind %q", name, raw)
		}
		t.chartKinds = append(t.chartKinds, k)
	}
	if len(t.chartKinds) == 0 {
		t.chartKinds = []pptx.ChartKind{pptx.ChartColumn}
	}

	for tag, pf := range tf.Placements {
		kind, ok := lookupKind(tag)
		if !ok {
			return nil, fmt.Errorf("theme %q: unknown slide kind %q", name, tag)
		}
		if pf.Layout < 0 {
			return nil, fmt.Errorf("theme %q: %s: negative layout index", name, kind)
		}
		p := Placement{Layout: pf.Layout, Regions: make(map[Role]int, len(pf.Regions))}
		for roleName, idx := range pf.Regions {
			role := Role(strings.ToLower(roleName))
			if !role.valid() {
				return nil, fmt.Errorf("theme %q: %s: unknown region %q", name, kind, roleName)
			}
			if idx < 0 {
				return nil, fmt.Errorf("theme %q: %s: negative placeholder idx for %s", name, kind, role)
			}
			p.Regions[role] = idx
		}
		t.placements[kind] = p
	}
	return t, nil
}

// lookup returns the named theme or the default theme. The boolean is
// false when the name was not found.
func (c *ThemeCatalog) lookup(name string) (*theme, bool) {
	if c == nil {
		return nil, false
	}
	if t, ok := c.themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, true
	}
	return c.themes[c.def], false
}

// Resolve returns the placement of kind in theme. An unknown theme resolves
// against the default theme; a kind missing from the theme uses its
// bulleted-list placement; when that is missing too the generic
// title-and-content placement is returned. Resolve never fails.
func (c *ThemeCatalog) Resolve(themeName string, kind Kind) Placement {
	t, _ := c.lookup(themeName)
	if t == nil {
		return genericPlacement()
	}
	if p, ok := t.placements[kind]; ok {
		return clonePlacement(p)
	}
	if p, ok := t.placements[KindBulletedList]; ok {
		return clonePlacement(p)
	}
	return genericPlacement()
}

func clonePlacement(p Placement) Placement {
	return Placement{Layout: p.Layout, Regions: maps.Clone(p.Regions)}
}

// Names returns the theme names in catalogue order.
func (c *ThemeCatalog) Names() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.order)
}

// DefaultTheme returns the name of the default theme.
func (c *ThemeCatalog) DefaultTheme() string {
	if c == nil {
		return ""
	}
	return c.def
}

// Theme returns the named theme without falling back to the default.
func (c *ThemeCatalog) Theme(name string) (Theme, bool) {
	t, ok := c.lookup(name)
	if !ok {
		return Theme{}, false
	}
	return t.view(), true
}

func (t *theme) view() Theme {
	kinds := make([]Kind, 0, len(t.placements))
	for _, k := range Kinds {
		if _, ok := t.placements[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return Theme{
		Name:        t.name,
		Description: t.description,
		Template:    t.template,
		ChartKinds:  slices.Clone(t.chartKinds),
		Kinds:       kinds,
	}
}
