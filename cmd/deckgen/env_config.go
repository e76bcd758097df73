package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-deckgen/internal/config"
)

// envConfig holds configuration from DECKGEN_* environment variables.
type envConfig struct {
	ConfigPath string // DECKGEN_CONFIG

	// Rendering
	Theme     string // DECKGEN_THEME
	Font      string // DECKGEN_FONT
	OutputDir string // DECKGEN_OUTPUT_DIR
	AssetPath string // DECKGEN_ASSET_PATH

	// Images
	NoImages     bool          // DECKGEN_NO_IMAGES
	ImageURL     string        // DECKGEN_IMAGE_URL
	FallbackURL  string        // DECKGEN_FALLBACK_IMAGE_URL
	ImageTimeout time.Duration // DECKGEN_IMAGE_TIMEOUT

	// Server
	Addr        string // DECKGEN_ADDR
	HistoryPath string // DECKGEN_HISTORY
	Workers     int    // DECKGEN_WORKERS

	// Logging
	LogLevel  string // DECKGEN_LOG_LEVEL
	LogFormat string // DECKGEN_LOG_FORMAT
}

// knownEnvVars lists valid DECKGEN_* environment variables.
var knownEnvVars = map[string]bool{
	"DECKGEN_CONFIG":             true,
	"DECKGEN_THEME":              true,
	"DECKGEN_FONT":               true,
	"DECKGEN_OUTPUT_DIR":         true,
	"DECKGEN_ASSET_PATH":         true,
	"DECKGEN_NO_IMAGES":          true,
	"DECKGEN_IMAGE_URL":          true,
	"DECKGEN_FALLBACK_IMAGE_URL": true,
	"DECKGEN_IMAGE_TIMEOUT":      true,
	"DECKGEN_ADDR":               true,
	"DECKGEN_HISTORY":            true,
	"DECKGEN_WORKERS":            true,
	"DECKGEN_LOG_LEVEL":          true,
	"DECKGEN_LOG_FORMAT":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers, booleans and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("DECKGEN_CONFIG"),
		Theme:       os.Getenv("DECKGEN_THEME"),
		Font:        os.Getenv("DECKGEN_FONT"),
		OutputDir:   os.Getenv("DECKGEN_OUTPUT_DIR"),
		AssetPath:   os.Getenv("DECKGEN_ASSET_PATH"),
		ImageURL:    os.Getenv("DECKGEN_IMAGE_URL"),
		FallbackURL: os.Getenv("DECKGEN_FALLBACK_IMAGE_URL"),
		Addr:        os.Getenv("DECKGEN_ADDR"),
		HistoryPath: os.Getenv("DECKGEN_HISTORY"),
		LogLevel:    os.Getenv("DECKGEN_LOG_LEVEL"),
		LogFormat:   os.Getenv("DECKGEN_LOG_FORMAT"),
	}

	if v := os.Getenv("DECKGEN_NO_IMAGES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoImages = b
		}
	}
	if v := os.Getenv("DECKGEN_IMAGE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ImageTimeout = d
		}
	}
	if v := os.Getenv("DECKGEN_WORKERS"); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DECKGEN_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DECKGEN_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment values to cfg.
// Only empty/zero config values are set, so the priority is
// flags > env vars > config file > defaults (flags are applied later).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" && cfg.Theme.Name == "" {
		cfg.Theme.Name = env.Theme
	}
	if env.Font != "" && cfg.Theme.Font == "" {
		cfg.Theme.Font = env.Font
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}

	if env.NoImages {
		cfg.Images.Disabled = true
	}
	if env.ImageURL != "" && cfg.Images.PrimaryURL == "" {
		cfg.Images.PrimaryURL = env.ImageURL
	}
	if env.FallbackURL != "" && cfg.Images.FallbackURL == "" {
		cfg.Images.FallbackURL = env.FallbackURL
	}
	if env.ImageTimeout > 0 && cfg.Images.PrimaryTimeout == 0 {
		cfg.Images.PrimaryTimeout = env.ImageTimeout
	}

	if env.Addr != "" && cfg.Server.Addr == "" {
		cfg.Server.Addr = env.Addr
	}
	if env.HistoryPath != "" && cfg.Server.HistoryPath == "" {
		cfg.Server.HistoryPath = env.HistoryPath
	}
	if env.Workers > 0 && cfg.Server.Workers == 0 {
		cfg.Server.Workers = env.Workers
	}

	if env.LogLevel != "" && cfg.Log.Level == "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" && cfg.Log.Format == "" {
		cfg.Log.Format = env.LogFormat
	}
}

// loadConfig resolves the configuration: the named file (flag first, then
// DECKGEN_CONFIG) or defaults, overlaid with environment values.
func loadConfig(flagConfig string) (*config.Config, error) {
	env := loadEnvConfig()

	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
