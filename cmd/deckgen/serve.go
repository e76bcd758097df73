package main

import (
	"context"
	"runtime"

	"github.com/alnah/go-deckgen/internal/history"
	"github.com/alnah/go-deckgen/internal/server"
)

// runServe starts the HTTP API and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(f.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(f.common.config)
	if err != nil {
		return err
	}
	mergeDeckFlags(&f.deck, cfg)
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.history != "" {
		cfg.Server.HistoryPath = f.history
	}
	if f.workers > 0 {
		cfg.Server.Workers = f.workers
	}
	if cfg.Server.Workers == 0 {
		cfg.Server.Workers = runtime.GOMAXPROCS(0)
	}

	logger := newLogger(env.Stderr, cfg.Log, f.common.quiet, f.common.verbose)
	r, err := newRenderer(cfg, env, logger)
	if err != nil {
		return err
	}

	var store *history.Store
	if cfg.Server.HistoryPath != "" {
		store, err = history.Open(cfg.Server.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	srv := server.New(server.Config{
		Addr:     cfg.Server.Addr,
		Renderer: r,
		History:  store,
		Logger:   logger,
		Workers:  cfg.Server.Workers,
	})
	return srv.ListenAndServe(ctx)
}
