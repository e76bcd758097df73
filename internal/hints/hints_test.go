package hints

// Notes:
// - ForImagesUnavailable tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable

import (
	"strings"
	"testing"
)

func TestForImagesUnavailable_InCI(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("CI", "true")
	t.Setenv("DECKGEN_NO_IMAGES", "")
	t.Setenv("DECKGEN_IMAGE_URL", "")

	hint := ForImagesUnavailable()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("expected hint prefix, got %q", hint)
	}
	if !strings.Contains(hint, "DECKGEN_NO_IMAGES=1") {
		t.Error("expected DECKGEN_NO_IMAGES suggestion in CI")
	}
	if !strings.Contains(hint, "DECKGEN_IMAGE_URL") {
		t.Error("expected DECKGEN_IMAGE_URL suggestion")
	}
}

func TestForImagesUnavailable_InDocker(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("JENKINS_URL", "")
	t.Setenv("DECKGEN_NO_IMAGES", "")

	if hint := ForImagesUnavailable(); !strings.Contains(hint, "DECKGEN_NO_IMAGES=1") {
		t.Errorf("expected DECKGEN_NO_IMAGES suggestion in Docker, got %q", hint)
	}
}

func TestForImagesUnavailable_Local(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("JENKINS_URL", "")
	t.Setenv("DECKGEN_IMAGE_URL", "https://img.example/")

	hint := ForImagesUnavailable()
	if !strings.Contains(hint, "--no-images") {
		t.Errorf("expected --no-images suggestion, got %q", hint)
	}
	if strings.Contains(hint, "DECKGEN_IMAGE_URL") {
		t.Errorf("image URL already set, got %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantCreate bool
	}{
		{"config name", "work", true},
		{"explicit path", "./work.yaml", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.input)
			if !strings.Contains(hint, "--config") {
				t.Errorf("expected --config suggestion, got %q", hint)
			}
			if got := strings.Contains(hint, "or create"); got != tt.wantCreate {
				t.Errorf("create suggestion = %v, want %v (%q)", got, tt.wantCreate, hint)
			}
		})
	}
}

func TestForThemeNotFound(t *testing.T) {
	t.Parallel()

	if got := ForThemeNotFound(nil); got != "" {
		t.Errorf("ForThemeNotFound(nil) = %q, want empty", got)
	}
	got := ForThemeNotFound([]string{"corporate", "midnight"})
	if !strings.Contains(got, "corporate, midnight") {
		t.Errorf("ForThemeNotFound() = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"output":  ForOutputDirectory(),
		"outline": ForOutlineFormat(),
		"assets":  ForAssetPath(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s hint = %q", name, hint)
		}
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q", got)
	}
}
