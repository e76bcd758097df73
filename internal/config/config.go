// Package config loads deckgen YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-deckgen/internal/fileutil"
	"github.com/alnah/go-deckgen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits for multi-tenant safety.
const (
	MaxPathLength   = 4096 // Filesystem paths
	MaxURLLength    = 2048 // Browser limit
	MaxThemeLength  = 64   // Theme and template names
	MaxFontLength   = 100  // Typeface names
	MaxAddrLength   = 255  // host:port
	MaxLevelLength  = 10   // "debug", "info", "warn", "error"
	MaxFormatLength = 10   // "text", "json"
)

// Timeout bounds for image attempts.
const (
	MinImageTimeout = 100 * time.Millisecond
	MaxImageTimeout = 5 * time.Minute
)

// configDirName is the directory under the user config dir searched for
// named configs.
const configDirName = "go-deckgen"

// Config holds all configuration for deck rendering and serving.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Theme  ThemeConfig  `yaml:"theme"`
	Assets AssetsConfig `yaml:"assets"`
	Images ImagesConfig `yaml:"images"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig defines where rendered decks are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = "generated_ppts"
}

// ThemeConfig selects the default theme and font override.
type ThemeConfig struct {
	Name string `yaml:"name"` // Empty = catalogue default
	Font string `yaml:"font"` // Empty = template fonts
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ImagesConfig controls the image source chain.
type ImagesConfig struct {
	Disabled        bool          `yaml:"disabled"`
	PrimaryURL      string        `yaml:"primaryURL"`      // Prompt is appended, URL-escaped
	FallbackURL     string        `yaml:"fallbackURL"`     // Fetched as is
	PrimaryTimeout  time.Duration `yaml:"primaryTimeout"`  // default 30s
	FallbackTimeout time.Duration `yaml:"fallbackTimeout"` // default 10s
}

// ServerConfig defines the HTTP API options.
type ServerConfig struct {
	Addr        string `yaml:"addr"`        // default ":8000"
	HistoryPath string `yaml:"historyPath"` // sqlite file; empty disables history
	Workers     int    `yaml:"workers"`     // concurrent renders; 0 = GOMAXPROCS
}

// LogConfig defines logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text" or "json"
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"theme.name", c.Theme.Name, MaxThemeLength},
		{"theme.font", c.Theme.Font, MaxFontLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"images.primaryURL", c.Images.PrimaryURL, MaxURLLength},
		{"images.fallbackURL", c.Images.FallbackURL, MaxURLLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"server.historyPath", c.Server.HistoryPath, MaxPathLength},
		{"log.level", c.Log.Level, MaxLevelLength},
		{"log.format", c.Log.Format, MaxFormatLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	for name, u := range map[string]string{
		"images.primaryURL":  c.Images.PrimaryURL,
		"images.fallbackURL": c.Images.FallbackURL,
	} {
		if u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("%w: %s must be an http(s) URL, got %q", ErrInvalidValue, name, u)
		}
	}

	for name, d := range map[string]time.Duration{
		"images.primaryTimeout":  c.Images.PrimaryTimeout,
		"images.fallbackTimeout": c.Images.FallbackTimeout,
	} {
		if d != 0 && (d < MinImageTimeout || d > MaxImageTimeout) {
			return fmt.Errorf("%w: %s must be between %s and %s, got %s", ErrInvalidValue, name, MinImageTimeout, MaxImageTimeout, d)
		}
	}

	if c.Server.Workers < 0 {
		return fmt.Errorf("%w: server.workers must not be negative, got %d", ErrInvalidValue, c.Server.Workers)
	}

	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
		}
	}
	if c.Log.Format != "" {
		switch strings.ToLower(c.Log.Format) {
		case "text", "json":
		default:
			return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with every value left to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-deckgen/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
