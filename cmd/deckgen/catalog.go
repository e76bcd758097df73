package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/hints"
	"github.com/alnah/go-deckgen/internal/pptx"
)

// ErrUnknownTheme is returned by inspect for a theme missing from the catalogue.
var ErrUnknownTheme = errors.New("unknown theme")

// catalogFlags holds flags for themes and inspect.
type catalogFlags struct {
	common    commonFlags
	assetPath string
}

func parseCatalogFlags(name string, args []string, env *Environment, usage func(io.Writer)) (*catalogFlags, []string, error) {
	f := &catalogFlags{}
	fs := newFlagSet(name, env.Stderr, usage)
	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// loadAssets resolves the asset loader and catalogue for f.
func loadAssets(f *catalogFlags) (deckgen.AssetLoader, *deckgen.ThemeCatalog, error) {
	cfg, err := loadConfig(f.common.config)
	if err != nil {
		return nil, nil, err
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}

	loader, err := deckgen.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := deckgen.LoadThemeCatalog(loader)
	if err != nil {
		return nil, nil, err
	}
	return loader, catalog, nil
}

// runThemes lists the theme catalogue.
func runThemes(args []string, env *Environment) error {
	f, rest, err := parseCatalogFlags("themes", args, env, printThemesUsage)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, rest[0])
	}
	_, catalog, err := loadAssets(f)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range catalog.Names() {
		th, _ := catalog.Theme(name)
		marker := ""
		if name == catalog.DefaultTheme() {
			marker = "(default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, marker, th.Description)
	}
	return tw.Flush()
}

// runInspect prints the layouts of a theme's template with the idx of
// each placeholder, followed by the theme's placements.
func runInspect(args []string, env *Environment) error {
	f, rest, err := parseCatalogFlags("inspect", args, env, printInspectUsage)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: inspect takes exactly one theme name", ErrUsage)
	}
	loader, catalog, err := loadAssets(f)
	if err != nil {
		return err
	}

	th, ok := catalog.Theme(rest[0])
	if !ok {
		return fmt.Errorf("%w: %q%s", ErrUnknownTheme, rest[0], hints.ForThemeNotFound(catalog.Names()))
	}
	data, err := loader.LoadTemplate(th.Template)
	if err != nil {
		return err
	}
	tmpl, err := pptx.ParseTemplate(data)
	if err != nil {
		return err
	}

	printTemplate(env.Stdout, th, tmpl)
	printPlacements(env.Stdout, catalog, th)
	return nil
}

func inches(emu int64) float64 {
	return float64(emu) / float64(pptx.EMUPerInch)
}

func printTemplate(w io.Writer, th deckgen.Theme, tmpl *pptx.Template) {
	fmt.Fprintf(w, "Theme:      %s\n", th.Name)
	fmt.Fprintf(w, "Template:   %s\n", th.Template)
	source := "YAML descriptor"
	if tmpl.FromPackage() {
		source = ".pptx package"
	}
	fmt.Fprintf(w, "Source:     %s\n", source)
	fmt.Fprintf(w, "Slide size: %.2f x %.2f in\n", inches(tmpl.SlideSize.Width), inches(tmpl.SlideSize.Height))
	fmt.Fprintf(w, "Fonts:      %s / %s\n", tmpl.Fonts.Latin, tmpl.Fonts.EastAsian)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layouts:")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, l := range tmpl.Layouts {
		fmt.Fprintf(tw, "  [%d] %s\t\t\t\n", i, l.Name)
		for _, ph := range l.Placeholders {
			fmt.Fprintf(tw, "      idx %d\t%s\t%q\t%.2f,%.2f %.2fx%.2f in\n",
				ph.Idx, ph.Type, ph.Name,
				inches(ph.X), inches(ph.Y), inches(ph.W), inches(ph.H))
		}
	}
	_ = tw.Flush()
}

func printPlacements(w io.Writer, catalog *deckgen.ThemeCatalog, th deckgen.Theme) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Placements:")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, kind := range deckgen.Kinds {
		p := catalog.Resolve(th.Name, kind)
		roles := make([]string, 0, len(p.Regions))
		for role, idx := range p.Regions {
			roles = append(roles, fmt.Sprintf("%s=%d", role, idx))
		}
		slices.Sort(roles)

		note := ""
		if !slices.Contains(th.Kinds, kind) {
			note = "(fallback)"
		}
		fmt.Fprintf(tw, "  %s\tlayout %d\t%v\t%s\n", kind, p.Layout, roles, note)
	}
	_ = tw.Flush()
}

// isHelp reports whether err is a --help request.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
