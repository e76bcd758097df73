package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-deckgen/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// deckFlags holds flags that shape the renderer.
type deckFlags struct {
	theme     string
	font      string
	output    string
	assetPath string
	noImages  bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	deck    deckFlags
	topic   string
	workers int
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common  commonFlags
	deck    deckFlags
	addr    string
	history string
	workers int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addDeckFlags adds renderer flags to a FlagSet.
func addDeckFlags(fs *flag.FlagSet, f *deckFlags) {
	fs.StringVarP(&f.theme, "theme", "t", "", "theme name (default: catalogue default)")
	fs.StringVar(&f.font, "font", "", "typeface override")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noImages, "no-images", false, "do not fetch images")
}

// newFlagSet creates a FlagSet that reports errors to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args and wraps parse errors as usage errors.
// flag.ErrHelp is returned unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", stderr, printRenderUsage)
	addCommonFlags(fs, &f.common)
	addDeckFlags(fs, &f.deck)
	fs.StringVar(&f.topic, "topic", "", "render the built-in outline for a topic")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = auto)")

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", stderr, printServeUsage)
	addCommonFlags(fs, &f.common)
	addDeckFlags(fs, &f.deck)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8000)")
	fs.StringVar(&f.history, "history", "", "sqlite file for render history")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent renders (0 = auto)")

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return f, nil
}

// mergeDeckFlags applies explicitly set flags over cfg.
func mergeDeckFlags(f *deckFlags, cfg *config.Config) {
	if f.theme != "" {
		cfg.Theme.Name = f.theme
	}
	if f.font != "" {
		cfg.Theme.Font = f.font
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.noImages {
		cfg.Images.Disabled = true
	}
}
