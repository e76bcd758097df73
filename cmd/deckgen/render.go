package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/hints"
	"github.com/alnah/go-deckgen/internal/outline"
)

// maxWorkers bounds parallel renders.
const maxWorkers = 32

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no input specified")
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// renderJob is one deck to render.
type renderJob struct {
	Source string // file path, or "topic:<topic>"
	load   func() (*deckgen.Outline, error)
}

// renderResult holds the outcome of one job.
type renderResult struct {
	Source   string
	Path     string
	Report   *deckgen.Report
	Err      error
	Duration time.Duration
}

// renderSettings are the per-deck inputs shared by a batch.
type renderSettings struct {
	theme      string
	font       string
	skipImages bool
}

func runRender(ctx context.Context, args []string, env *Environment) error {
	f, inputs, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(f.workers); err != nil {
		return err
	}

	jobs, err := buildJobs(inputs, f.topic)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.common.config)
	if err != nil {
		return err
	}
	mergeDeckFlags(&f.deck, cfg)

	logger := newLogger(env.Stderr, cfg.Log, f.common.quiet, f.common.verbose)
	r, err := newRenderer(cfg, env, logger)
	if err != nil {
		return err
	}

	results := renderBatch(ctx, r, jobs, settingsFrom(cfg), resolveWorkers(f.workers, len(jobs)))
	return reportResults(results, f.common.quiet, f.common.verbose, env)
}

func settingsFrom(cfg *config.Config) renderSettings {
	return renderSettings{
		theme:      cfg.Theme.Name,
		font:       cfg.Theme.Font,
		skipImages: cfg.Images.Disabled,
	}
}

// validateWorkers checks the --workers value.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkers, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidWorkers, n, maxWorkers)
	}
	return nil
}

// resolveWorkers returns the effective concurrency for jobs.
func resolveWorkers(n, jobs int) int {
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// buildJobs turns outline paths and the --topic flag into render jobs.
func buildJobs(paths []string, topic string) ([]renderJob, error) {
	jobs := make([]renderJob, 0, len(paths)+1)
	for _, p := range paths {
		jobs = append(jobs, renderJob{
			Source: p,
			load:   func() (*deckgen.Outline, error) { return outline.ReadFile(p) },
		})
	}

	if topic = strings.TrimSpace(topic); topic != "" {
		jobs = append(jobs, renderJob{
			Source: "topic:" + topic,
			load: func() (*deckgen.Outline, error) {
				o := outline.Static(topic)
				return &o, nil
			},
		})
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: pass outline files or --topic", ErrNoInput)
	}
	return jobs, nil
}

// renderBatch renders jobs with at most workers in flight. Results keep
// the job order. A failing job does not stop the others.
func renderBatch(ctx context.Context, r *deckgen.Renderer, jobs []renderJob, s renderSettings, workers int) []renderResult {
	results := make([]renderResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = renderOne(ctx, r, job, s)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func renderOne(ctx context.Context, r *deckgen.Renderer, job renderJob, s renderSettings) (result renderResult) {
	start := time.Now()
	result.Source = job.Source
	defer func() { result.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	o, err := job.load()
	if err != nil {
		result.Err = err
		return result
	}

	res, err := r.Render(ctx, deckgen.Input{
		Outline:    *o,
		Theme:      s.theme,
		Font:       s.font,
		SkipImages: s.skipImages,
	})
	if err != nil {
		result.Err = err
		return result
	}
	result.Path = res.Path
	result.Report = res.Report
	return result
}

// reportResults prints one line per job and a summary, and returns an
// error wrapping the first failure.
func reportResults(results []renderResult, quiet, verbose bool, env *Environment) error {
	var failed int
	var first error

	for _, r := range results {
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Source, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %d slides, %d degraded, %d failed)\n",
				r.Source, r.Path, r.Duration.Round(time.Millisecond),
				len(r.Report.Slides), r.Report.Degraded(), r.Report.Failed())
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Path)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	if !quiet && imagesDegraded(results) {
		fmt.Fprintf(env.Stderr, "some slides were rendered without images%s\n", hints.ForImagesUnavailable())
	}

	if first != nil {
		return fmt.Errorf("%d of %d decks failed: %w", failed, len(results), first)
	}
	return nil
}
