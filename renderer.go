package deckgen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-deckgen/internal/fileutil"
	"github.com/alnah/go-deckgen/internal/pptx"
)

// deckExtension is the file extension of rendered decks.
const deckExtension = ".pptx"

// creator is written to the document properties.
const creator = "go-deckgen"

// Renderer turns outlines into .pptx files.
// Create with NewRenderer and call Render for each outline. A Renderer is
// safe for concurrent use.
type Renderer struct {
	outputDir string
	assetPath string
	loader    AssetLoader
	catalog   *ThemeCatalog
	images    ImageSource
	logger    *slog.Logger
	clock     func() time.Time

	mu        sync.Mutex
	templates map[string]*pptx.Template
}

// Input is one render request.
type Input struct {
	Outline    Outline
	Theme      string // catalogue name; unknown names use the default theme
	Font       string // overrides the template fonts when set
	SkipImages bool   // ignore image requests

	// OnSlide is called after each slide is composed, in order, on the
	// rendering goroutine.
	OnSlide func(SlideOutcome)
}

// Result describes a written deck.
type Result struct {
	Filename string  `json:"filename"`
	Path     string  `json:"path"`
	Report   *Report `json:"report"`
}

// NewRenderer creates a Renderer. The theme catalogue is loaded from the
// asset loader unless WithThemeCatalog is given.
// Returns ErrInvalidAssetPath if the asset path is unusable and
// ErrThemeCatalog if the catalogue cannot be loaded.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		outputDir: defaultOutputDir,
		images:    noImages{},
		logger:    slog.New(slog.DiscardHandler),
		clock:     time.Now,
		templates: make(map[string]*pptx.Template),
	}

	for _, opt := range opts {
		opt(r)
	}

	// WithAssetLoader wins over WithAssetPath
	if r.loader == nil {
		loader, err := NewAssetLoader(r.assetPath)
		if err != nil {
			return nil, err
		}
		r.loader = loader
	}

	if r.catalog == nil {
		catalog, err := LoadThemeCatalog(r.loader)
		if err != nil {
			return nil, err
		}
		r.catalog = catalog
	}

	return r, nil
}

// Catalog returns the theme catalogue used by the renderer.
func (r *Renderer) Catalog() *ThemeCatalog {
	return r.catalog
}

// OutputDir returns the directory decks are written to.
func (r *Renderer) OutputDir() string {
	return r.outputDir
}

// Render composes every slide of the outline and writes the deck.
// Slide-level problems are recorded in the report and never fail the
// render; the only error for a well-formed call is ErrPersist. The context
// bounds image fetches only.
// Recovers from internal panics to prevent crashes from propagating to
// callers: a panic while writing the package is reported as ErrPersist,
// any other as ErrInternal.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, rec)
		}
	}()

	start := r.clock()
	th, found := r.catalog.lookup(input.Theme)
	if th == nil {
		return nil, fmt.Errorf("%w: empty catalogue", ErrThemeCatalog)
	}
	if !found && input.Theme != "" {
		r.logger.Warn("unknown theme, using default", "theme", input.Theme, "default", th.name)
	}

	report := &Report{Topic: input.Outline.Topic, Theme: th.name}

	tpl, err := r.template(th.template)
	if err != nil {
		r.logger.Warn("template unavailable, using blank template", "template", th.template, "error", err)
		tpl = pptx.BlankTemplate()
		report.TemplateFallback = true
	}
	tpl = withFont(tpl, input.Font)

	doc := pptx.New(tpl)
	doc.SetProperties(pptx.Properties{
		Title:   input.Outline.Topic,
		Creator: creator,
		Created: start,
	})

	comp := &compositor{
		size:       tpl.SlideSize,
		style:      TextStyle{Font: input.Font, FontEA: input.Font},
		table:      tableStyleFrom(tpl.Palette),
		chartKinds: th.chartKinds,
		images:     r.images,
		skipImages: input.SkipImages,
		logger:     r.logger.With("topic", input.Outline.Topic),
	}

	for i, spec := range input.Outline.Slides {
		kind := ParseKind(spec.kindTag())
		placement := r.catalog.Resolve(th.name, kind)
		slide := doc.AddSlide(placement.Layout)
		outcome := comp.composite(ctx, i, spec, slide, placement)
		report.Slides = append(report.Slides, outcome)
		if input.OnSlide != nil {
			input.OnSlide(outcome)
		}
	}

	filename := uuid.NewString() + deckExtension
	path := filepath.Join(r.outputDir, filename)
	if err := persist(r.outputDir, path, doc.Write); err != nil {
		return nil, err
	}

	report.Duration = r.clock().Sub(start)
	r.logger.Info("deck rendered",
		"file", filename,
		"theme", th.name,
		"slides", len(report.Slides),
		"degraded", report.Degraded(),
		"failed", report.Failed(),
	)

	return &Result{Filename: filename, Path: path, Report: report}, nil
}

// persist writes the package atomically under dir. Failures and panics in
// write are reported as ErrPersist and leave no file behind.
func persist(dir, path string, write func(io.Writer) error) error {
	if err := fileutil.EnsureDir(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	guarded := func(w io.Writer) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("internal error: %v", rec)
			}
		}()
		return write(w)
	}
	if err := fileutil.WriteAtomic(path, guarded); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// template returns the parsed template, loading it on first use.
// Parsed templates are shared between renders.
func (r *Renderer) template(name string) (*pptx.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tpl, ok := r.templates[name]; ok {
		return tpl, nil
	}
	data, err := r.loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	tpl, err := pptx.ParseTemplate(data)
	if err != nil {
		return nil, err
	}
	r.templates[name] = tpl
	return tpl, nil
}

// withFont returns tpl with both theme fonts replaced by font.
func withFont(tpl *pptx.Template, font string) *pptx.Template {
	if font == "" {
		return tpl
	}
	cp := *tpl
	cp.Fonts = pptx.Fonts{Latin: font, EastAsian: font}
	return &cp
}
