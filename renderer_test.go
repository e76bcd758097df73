package deckgen_test

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/pptx"
)

// fourSlides is the end-to-end outline: cover, list, table, chart.
func fourSlides() deckgen.Outline {
	return deckgen.Outline{
		Topic: "Solar energy",
		Slides: []deckgen.SlideSpec{
			{ID: 1, Kind: "cover", Title: "Solar energy", Subtitle: "An overview"},
			{ID: 2, Kind: "bulleted-list", Title: "Benefits", Content: &deckgen.Content{
				BulletPoints: []string{"Renewable", "Low running cost", "Quiet"},
			}},
			{ID: 3, Kind: "table", Title: "Capacity", Table: &deckgen.TableData{
				Headers: []string{"Year", "GW"},
				Rows:    [][]any{{2022.0, 1.2}, {2023.0, 1.9}, {2024.0}},
			}},
			{ID: 4, Kind: "chart", Title: "Growth", Chart: &deckgen.ChartData{
				Labels: []string{"2022", "2023", "2024"},
				Values: []float64{1.2, 1.9, 2.7},
				Type:   "line",
			}},
		},
	}
}

func newRenderer(t *testing.T, opts ...deckgen.Option) *deckgen.Renderer {
	t.Helper()
	opts = append([]deckgen.Option{deckgen.WithOutputDir(t.TempDir())}, opts...)
	r, err := deckgen.NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}
	return r
}

// readParts returns every part of the package at path.
func readParts(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("zip.OpenReader() unexpected error: %v", err)
	}
	defer zr.Close()

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(data)
	}
	return parts
}

func slideCount(parts map[string]string) int {
	n := 0
	for name := range parts {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// TestRender_EndToEnd - Four-slide deck written to disk
// ---------------------------------------------------------------------------

func TestRender_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r, err := deckgen.NewRenderer(
		deckgen.WithOutputDir(filepath.Join(dir, "nested", "out")),
		deckgen.WithClock(func() time.Time { return created }),
	)
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}

	var seen []int
	res, err := r.Render(context.Background(), deckgen.Input{
		Outline: fourSlides(),
		Theme:   "corporate",
		OnSlide: func(o deckgen.SlideOutcome) { seen = append(seen, o.Index) },
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	info, err := os.Stat(res.Path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
	if filepath.Base(res.Path) != res.Filename || !strings.HasSuffix(res.Filename, ".pptx") {
		t.Errorf("Filename = %q, Path = %q", res.Filename, res.Path)
	}

	rep := res.Report
	if rep.Topic != "Solar energy" || rep.Theme != "corporate" || rep.TemplateFallback {
		t.Errorf("report = %+v", rep)
	}
	if len(rep.Slides) != 4 || rep.Rendered() != 4 {
		t.Errorf("slides = %d, rendered = %d, want 4/4", len(rep.Slides), rep.Rendered())
	}
	if len(seen) != 4 || seen[3] != 3 {
		t.Errorf("OnSlide indices = %v", seen)
	}

	parts := readParts(t, res.Path)
	if got := slideCount(parts); got != 4 {
		t.Errorf("slide parts = %d, want 4", got)
	}
	if !strings.Contains(parts["docProps/core.xml"], "Solar energy") {
		t.Error("document title not set")
	}
	if !strings.Contains(parts["docProps/core.xml"], "2024-05-01T12:00:00Z") {
		t.Error("created time not taken from clock")
	}
	if !strings.Contains(parts["ppt/slides/slide3.xml"], "<a:tbl>") {
		t.Error("table slide has no table")
	}
	var chart string
	for name, content := range parts {
		if strings.HasPrefix(name, "ppt/charts/") {
			chart = content
		}
	}
	if !strings.Contains(chart, "<c:lineChart>") || !strings.Contains(chart, `<c:ptCount val="3"/>`) {
		t.Errorf("chart part missing line series of 3 points")
	}
}

// ---------------------------------------------------------------------------
// TestRender_SlideCountWithFailures - Every outline entry yields a slide
// ---------------------------------------------------------------------------

func TestRender_SlideCountWithFailures(t *testing.T) {
	t.Parallel()

	panicky := deckgen.ImageSourceFunc(func(_ context.Context, prompt string) (*deckgen.Image, bool) {
		panic("source exploded on " + prompt)
	})
	r := newRenderer(t, deckgen.WithImageSource(panicky))

	outline := fourSlides()
	outline.Slides[1].Visual = &deckgen.Visual{NeedImage: true, ImagePrompt: "panels"}
	outline.Slides[3].Visual = &deckgen.Visual{NeedImage: true, ImagePrompt: "graph"}

	res, err := r.Render(context.Background(), deckgen.Input{Outline: outline})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	if res.Report.Failed() != 2 || res.Report.Rendered() != 2 {
		t.Errorf("failed %d rendered %d, want 2/2", res.Report.Failed(), res.Report.Rendered())
	}
	for _, i := range []int{1, 3} {
		o := res.Report.Slides[i]
		if o.Status != deckgen.StatusFailed || !errors.Is(o.Err, deckgen.ErrSlideComposition) {
			t.Errorf("slide %d = %+v", i, o)
		}
	}
	if got := slideCount(readParts(t, res.Path)); got != 4 {
		t.Errorf("slide parts = %d, want 4", got)
	}
}

// ---------------------------------------------------------------------------
// TestRender_Fallbacks - Theme, template and image fallbacks
// ---------------------------------------------------------------------------

func TestRender_UnknownThemeUsesDefault(t *testing.T) {
	t.Parallel()

	res, err := newRenderer(t).Render(context.Background(), deckgen.Input{
		Outline: fourSlides(),
		Theme:   "does-not-exist",
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if res.Report.Theme != "corporate" {
		t.Errorf("Theme = %q, want corporate", res.Report.Theme)
	}
}

func TestRender_MissingTemplateFallsBackToBlank(t *testing.T) {
	t.Parallel()

	catalog, err := deckgen.ParseThemeCatalog([]byte(`
themes:
  - name: ghost
    template: not-shipped
    placements:
      bulleted-list:
        layout: 1
        regions: {title: 0, body: 1}
`))
	if err != nil {
		t.Fatalf("ParseThemeCatalog() unexpected error: %v", err)
	}

	res, err := newRenderer(t, deckgen.WithThemeCatalog(catalog)).Render(context.Background(), deckgen.Input{
		Outline: fourSlides(),
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if !res.Report.TemplateFallback {
		t.Error("TemplateFallback = false, want true")
	}
	if len(res.Report.Slides) != 4 {
		t.Errorf("slides = %d, want 4", len(res.Report.Slides))
	}
	parts := readParts(t, res.Path)
	if !strings.Contains(parts["ppt/slideLayouts/slideLayout7.xml"], "Picture with Caption") {
		t.Error("blank layouts not written")
	}
}

func TestRender_NoImageSourceDegrades(t *testing.T) {
	t.Parallel()

	outline := deckgen.Outline{Topic: "t", Slides: []deckgen.SlideSpec{{
		Kind:    "image-feature",
		Title:   "Picture",
		Content: &deckgen.Content{TextBody: "fallback text"},
		Visual:  &deckgen.Visual{NeedImage: true, ImagePrompt: "anything"},
	}}}

	res, err := newRenderer(t).Render(context.Background(), deckgen.Input{Outline: outline})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if res.Report.Degraded() != 1 {
		t.Errorf("Degraded() = %d, want 1", res.Report.Degraded())
	}
	parts := readParts(t, res.Path)
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "fallback text") {
		t.Error("slide text lost without image")
	}
	for name := range parts {
		if strings.HasPrefix(name, "ppt/media/") {
			t.Errorf("unexpected media part %s", name)
		}
	}
}

func TestRender_FontOverride(t *testing.T) {
	t.Parallel()

	res, err := newRenderer(t).Render(context.Background(), deckgen.Input{
		Outline: fourSlides(),
		Font:    "Noto Sans",
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	parts := readParts(t, res.Path)
	if !strings.Contains(parts["ppt/theme/theme1.xml"], `typeface="Noto Sans"`) {
		t.Error("theme fonts not overridden")
	}
	if !strings.Contains(parts["ppt/slides/slide2.xml"], `typeface="Noto Sans"`) {
		t.Error("body runs not overridden")
	}
}

// ---------------------------------------------------------------------------
// TestRender_UniqueNames - Concurrent renders never collide
// ---------------------------------------------------------------------------

func TestRender_UniqueNames(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	const n = 8
	names := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Render(context.Background(), deckgen.Input{Outline: fourSlides()})
			if err != nil {
				t.Errorf("Render() unexpected error: %v", err)
				return
			}
			names[i] = res.Filename
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, name := range names {
		if name == "" || seen[name] {
			t.Errorf("duplicate or missing name %q", name)
		}
		seen[name] = true
	}
	entries, err := os.ReadDir(r.OutputDir())
	if err != nil {
		t.Fatalf("ReadDir() unexpected error: %v", err)
	}
	if len(entries) != n {
		t.Errorf("files = %d, want %d", len(entries), n)
	}
}

// ---------------------------------------------------------------------------
// TestRender_PersistError - Output failures are the only render error
// ---------------------------------------------------------------------------

func TestRender_PersistError(t *testing.T) {
	t.Parallel()

	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := deckgen.NewRenderer(deckgen.WithOutputDir(blocker))
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}
	_, err = r.Render(context.Background(), deckgen.Input{Outline: fourSlides()})
	if !errors.Is(err, deckgen.ErrPersist) {
		t.Errorf("Render() error = %v, want ErrPersist", err)
	}
}

func TestRender_PanicIsInternalError(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	r := newRenderer(t, deckgen.WithOutputDir(out))
	res, err := r.Render(context.Background(), deckgen.Input{
		Outline: fourSlides(),
		OnSlide: func(deckgen.SlideOutcome) { panic("callback broke") },
	})
	if !errors.Is(err, deckgen.ErrInternal) || errors.Is(err, deckgen.ErrPersist) {
		t.Errorf("Render() error = %v, want ErrInternal", err)
	}
	if res != nil {
		t.Errorf("Render() result = %+v, want nil", res)
	}
	if entries, _ := os.ReadDir(out); len(entries) != 0 {
		t.Errorf("no deck should be written, found %d files", len(entries))
	}
}

func TestRender_EmptyOutline(t *testing.T) {
	t.Parallel()

	res, err := newRenderer(t).Render(context.Background(), deckgen.Input{})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if len(res.Report.Slides) != 0 {
		t.Errorf("slides = %d", len(res.Report.Slides))
	}
	if got := slideCount(readParts(t, res.Path)); got != 0 {
		t.Errorf("slide parts = %d, want 0", got)
	}
}

// ---------------------------------------------------------------------------
// TestNewRenderer - Construction and options
// ---------------------------------------------------------------------------

func TestNewRenderer_InvalidAssetPath(t *testing.T) {
	t.Parallel()

	_, err := deckgen.NewRenderer(deckgen.WithAssetPath(filepath.Join(t.TempDir(), "missing")))
	if !errors.Is(err, deckgen.ErrInvalidAssetPath) {
		t.Errorf("NewRenderer() error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewRenderer_CustomAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	catalog := `
default: house
themes:
  - name: house
    template: corporate
    chartKinds: [pie]
`
	if err := os.WriteFile(filepath.Join(dir, "themes.yaml"), []byte(catalog), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newRenderer(t, deckgen.WithAssetPath(dir))
	if names := r.Catalog().Names(); len(names) != 1 || names[0] != "house" {
		t.Errorf("Names() = %v, want [house]", names)
	}

	// Templates still resolve from the embedded assets.
	res, err := r.Render(context.Background(), deckgen.Input{Outline: fourSlides()})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if res.Report.TemplateFallback {
		t.Error("embedded template not found through custom path")
	}
}

// writeDesignerTemplate saves a .pptx built from the corporate layouts
// with its own theme name and accent under dir/templates/corporate.pptx.
func writeDesignerTemplate(t *testing.T, dir string) string {
	t.Helper()

	loader, err := deckgen.NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}
	data, err := loader.LoadTemplate("corporate")
	if err != nil {
		t.Fatal(err)
	}
	tpl, err := pptx.ParseTemplate(data)
	if err != nil {
		t.Fatal(err)
	}
	tpl.Name = "Designer Brand"
	tpl.Palette.Accent = "7A1F5C"

	path := filepath.Join(dir, "templates", "corporate.pptx")
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := pptx.New(tpl).Write(f); err != nil {
		t.Fatalf("writing template: %v", err)
	}
	return path
}

func TestRender_DesignerTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := readParts(t, writeDesignerTemplate(t, dir))

	res, err := newRenderer(t, deckgen.WithAssetPath(dir)).Render(context.Background(), deckgen.Input{
		Outline: fourSlides(),
		Theme:   "corporate",
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if res.Report.TemplateFallback {
		t.Error("designer template should load without fallback")
	}
	if len(res.Report.Slides) != 4 {
		t.Errorf("slides = %d, want 4", len(res.Report.Slides))
	}

	parts := readParts(t, res.Path)
	theme := parts["ppt/theme/theme1.xml"]
	if theme != source["ppt/theme/theme1.xml"] {
		t.Error("theme part should be copied from the designer template")
	}
	if !strings.Contains(theme, `name="Designer Brand"`) || !strings.Contains(theme, "7A1F5C") {
		t.Errorf("designer theme missing from output:\n%s", theme)
	}
	if parts["ppt/slideMasters/slideMaster1.xml"] != source["ppt/slideMasters/slideMaster1.xml"] {
		t.Error("slide master should be copied from the designer template")
	}
	if slideCount(parts) != 4 {
		t.Errorf("slide parts = %d, want 4", slideCount(parts))
	}
}

func TestNewRenderer_BadCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "themes.yaml"), []byte("themes: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := deckgen.NewRenderer(deckgen.WithAssetPath(dir))
	if !errors.Is(err, deckgen.ErrThemeCatalog) {
		t.Errorf("NewRenderer() error = %v, want ErrThemeCatalog", err)
	}
}

func TestOptions_PanicOnInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"WithOutputDir", func() { deckgen.WithOutputDir("") }},
		{"WithAssetPath", func() { deckgen.WithAssetPath("") }},
		{"WithAssetLoader", func() { deckgen.WithAssetLoader(nil) }},
		{"WithThemeCatalog", func() { deckgen.WithThemeCatalog(nil) }},
		{"WithImageSource", func() { deckgen.WithImageSource(nil) }},
		{"WithLogger", func() { deckgen.WithLogger(nil) }},
		{"WithClock", func() { deckgen.WithClock(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}
