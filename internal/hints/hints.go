// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-deckgen/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a common CI environment variable is set.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForImagesUnavailable returns hints for decks whose image slides degraded.
// In CI and containers the image services are often unreachable.
func ForImagesUnavailable() string {
	var hints []string
	if (inCI() || IsInContainer()) && os.Getenv("DECKGEN_NO_IMAGES") == "" {
		hints = append(hints, "set DECKGEN_NO_IMAGES=1 for offline builds")
	} else {
		hints = append(hints, "use --no-images to skip image fetching")
	}
	if os.Getenv("DECKGEN_IMAGE_URL") == "" {
		hints = append(hints, "set DECKGEN_IMAGE_URL to use another image service")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and a file under the user config directory.
func ForConfigNotFound(name string) string {
	hint := "use --config /path/to/file.yaml"
	if name != "" && !fileutil.IsFilePath(name) {
		if dir, err := os.UserConfigDir(); err == nil {
			hint += " or create " + filepath.Join(dir, "go-deckgen", name+".yaml")
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable, or pass --output")
}

// ForThemeNotFound returns hints listing the available themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; run 'deckgen themes' for details")
}

// ForOutlineFormat returns hints for unsupported outline files.
func ForOutlineFormat() string {
	return format("outlines must be .json, .yaml, .yml or .md files")
}

// ForAssetPath returns hints for custom asset directory errors.
func ForAssetPath() string {
	return format("the directory may hold themes.yaml and templates/<name>.yaml; omit --asset-path to use built-in assets")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
