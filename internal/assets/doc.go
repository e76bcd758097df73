// Package assets provides the theme catalogue and the template descriptors
// slide decks are built from.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in catalogue (corporate, midnight,
// minimal) compiled into the binary.
//
// FilesystemLoader allows users to provide custom themes and templates from
// a directory, with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the renderer. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This enables overriding a single template while keeping the rest
// of the catalogue.
//
// # Directory Structure
//
//	{basePath}/
//	├── themes.yaml              # theme catalogue
//	└── templates/
//	    ├── {name}.pptx          # designer template, preferred when present
//	    └── {name}.yaml          # template descriptor (e.g., midnight.yaml)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
