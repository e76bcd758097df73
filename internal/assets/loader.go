package assets

// ThemesFile is the catalogue file name at the root of an asset directory.
const ThemesFile = "themes.yaml"

// AssetLoader defines the contract for loading the theme catalogue and
// templates (.pptx packages or YAML descriptors). Implementations may load
// from embedded assets, the filesystem, a database, etc.
type AssetLoader interface {
	// LoadThemes returns the raw theme catalogue.
	// Returns ErrThemesNotFound if the location has no catalogue.
	LoadThemes() ([]byte, error)

	// LoadTemplate loads a template by name (without extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) ([]byte, error)
}
