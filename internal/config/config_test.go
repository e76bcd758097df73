package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Images.Disabled {
		t.Error("images should be enabled by default")
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{"empty", "", 10, false},
		{"at limit", "abcde", 5, false},
		{"over limit", "abcdef", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("field", tt.value, tt.max)
			if tt.wantErr != errors.Is(err, ErrFieldTooLong) {
				t.Errorf("validateFieldLength(%q, %d) = %v, wantErr %v", tt.value, tt.max, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "field") {
				t.Errorf("error should name the field, got %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "complete valid config",
			cfg: Config{
				Output: OutputConfig{Dir: "out"},
				Theme:  ThemeConfig{Name: "midnight", Font: "Inter"},
				Images: ImagesConfig{
					PrimaryURL:      "https://img.example.com/prompt/",
					FallbackURL:     "http://fallback.example.com/1024/768",
					PrimaryTimeout:  20 * time.Second,
					FallbackTimeout: 5 * time.Second,
				},
				Server: ServerConfig{Addr: ":9000", HistoryPath: "renders.db", Workers: 4},
				Log:    LogConfig{Level: "DEBUG", Format: "json"},
			},
		},
		{
			name:    "theme name too long",
			cfg:     Config{Theme: ThemeConfig{Name: strings.Repeat("x", MaxThemeLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "font too long",
			cfg:     Config{Theme: ThemeConfig{Font: strings.Repeat("x", MaxFontLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "non http image url",
			cfg:     Config{Images: ImagesConfig{PrimaryURL: "ftp://example.com"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "timeout too short",
			cfg:     Config{Images: ImagesConfig{PrimaryTimeout: time.Millisecond}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "timeout too long",
			cfg:     Config{Images: ImagesConfig{FallbackTimeout: time.Hour}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative workers",
			cfg:     Config{Server: ServerConfig{Workers: -1}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown log level",
			cfg:     Config{Log: LogConfig{Level: "trace"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown log format",
			cfg:     Config{Log: LogConfig{Format: "xml"}},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "deckgen.yaml")
		content := `
output:
  dir: ./decks
theme:
  name: midnight
  font: Inter
assets:
  basePath: ./assets
images:
  disabled: true
  primaryTimeout: 15s
server:
  addr: ":9000"
  historyPath: renders.db
log:
  level: debug
  format: json
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Dir != "./decks" || cfg.Theme.Name != "midnight" || cfg.Theme.Font != "Inter" {
			t.Errorf("unexpected output/theme: %+v %+v", cfg.Output, cfg.Theme)
		}
		if !cfg.Images.Disabled || cfg.Images.PrimaryTimeout != 15*time.Second {
			t.Errorf("unexpected images: %+v", cfg.Images)
		}
		if cfg.Server.Addr != ":9000" || cfg.Log.Format != "json" {
			t.Errorf("unexpected server/log: %+v %+v", cfg.Server, cfg.Log)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("theme:\n  colour: red\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation runs after parse", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "invalid.yaml")
		if err := os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

// Changes the working directory, so it does not run in parallel.
func TestLoadConfig_ByName(t *testing.T) {
	t.Run("resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "team.yaml"), []byte("theme:\n  name: fromyaml\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "team.yml"), []byte("theme:\n  name: fromyml\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("team")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Theme.Name != "fromyaml" {
			t.Errorf("Theme.Name = %q, want fromyaml (should prefer .yaml)", cfg.Theme.Name)
		}
	})

	t.Run("resolves yml when yaml is absent", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "team.yml"), []byte("theme:\n  name: fromyml\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("team")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Theme.Name != "fromyml" {
			t.Errorf("Theme.Name = %q, want fromyml", cfg.Theme.Name)
		}
	})

	t.Run("not found lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nonexistent.yml") {
			t.Errorf("error should list tried paths, got %v", err)
		}
	})
}
