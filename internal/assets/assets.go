package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadThemes returns the built-in theme catalogue.
func LoadThemes() ([]byte, error) {
	return defaultLoader.LoadThemes()
}

// LoadTemplate loads a built-in template descriptor by name.
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTemplate(name string) ([]byte, error) {
	return defaultLoader.LoadTemplate(name)
}
