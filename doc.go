// Package deckgen renders slide outlines into PowerPoint (.pptx) decks.
//
// # Quick Start
//
// Create a renderer and render an outline:
//
//	r, err := deckgen.NewRenderer(deckgen.WithOutputDir("decks"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := r.Render(ctx, deckgen.Input{
//	    Theme: "corporate",
//	    Outline: deckgen.Outline{
//	        Topic: "Quarterly review",
//	        Slides: []deckgen.SlideSpec{
//	            {Kind: "cover", Title: "Quarterly review", Subtitle: "Q3"},
//	            {Kind: "bulleted-list", Title: "Highlights",
//	                Content: &deckgen.Content{BulletPoints: []string{"Revenue up", "Churn down"}}},
//	        },
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Path, res.Report.Degraded())
//
// # Rendering Pipeline
//
// Every slide goes through the same stages:
//
//  1. Kind resolution (ParseKind; unknown kinds render as bulleted lists)
//  2. Layout resolution against the theme catalogue (ThemeCatalog.Resolve)
//  3. Composition: title, kind-specific body, optional picture
//  4. Outcome recording in the Report
//
// A slide that cannot be composed is kept partially filled and marked
// failed; a slide composed with fallbacks (missing region, missing picture)
// is marked degraded. The deck always has one slide per outline entry.
// Render only returns an error when the file cannot be written (ErrPersist).
//
// # Slide Kinds
//
//	cover          title + subtitle
//	bulleted-list  title + bullets fitted to the body box
//	two-column     title + independent left and right lists
//	table          header row + body rows, banded
//	chart          one categorical series (column, bar, line, pie)
//	image-feature  large picture with caption
//
// # Themes
//
// A theme pairs a template descriptor (slide size, palette, fonts, layouts)
// with a placement per slide kind. The built-in catalogue has corporate,
// midnight and minimal. Override it with WithAssetPath or WithAssetLoader:
//
//	assets/
//	├── themes.yaml
//	└── templates/
//	    └── custom.yaml
//
// Templates that cannot be loaded fall back to a blank Office-style
// template and the report records TemplateFallback.
//
// # Images
//
// Pictures are requested through an ImageSource. The renderer has none by
// default, so image requests degrade the slide without failing it:
//
//	r, err := deckgen.NewRenderer(deckgen.WithImageSource(src))
//
// # Concurrency
//
// A Renderer is safe for concurrent use. Each Render call builds its own
// document; renders share only the read-only catalogue, the parsed
// templates and the output directory, where file names are random UUIDs.
package deckgen
