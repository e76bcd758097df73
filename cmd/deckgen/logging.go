package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/alnah/go-deckgen/internal/config"
)

// newLogger builds the CLI logger. --verbose and --quiet override the
// configured level.
func newLogger(w io.Writer, cfg config.LogConfig, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
