// Package server exposes the renderer over HTTP and WebSocket.
//
// Routes:
//
//	POST /api/generate      render an outline (or a topic) and return a download link
//	GET  /ws/generate       same request over WebSocket, streaming slide events
//	GET  /download/:name    fetch a rendered deck
//	GET  /api/themes        list the theme catalogue
//	GET  /api/renders       list recent renders
//	GET  /healthz           liveness check
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/history"
)

// Defaults.
const (
	DefaultAddr     = ":8000"
	DefaultWorkers  = 4
	MaxTopicLength  = 200
	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr     string
	Renderer *deckgen.Renderer // required
	History  *history.Store    // optional
	Logger   *slog.Logger
	Workers  int // concurrent renders
}

// Server serves render requests. Renders beyond Workers wait for a free
// slot until the request context ends.
type Server struct {
	addr     string
	renderer *deckgen.Renderer
	history  *history.Store
	logger   *slog.Logger
	slots    chan struct{}
	engine   *gin.Engine
}

// New creates a Server.
// Panics if cfg.Renderer is nil (programmer error).
func New(cfg Config) *Server {
	if cfg.Renderer == nil {
		panic("server: Config.Renderer must not be nil")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		addr:     cfg.Addr,
		renderer: cfg.Renderer,
		history:  cfg.History,
		logger:   cfg.Logger,
		slots:    make(chan struct{}, cfg.Workers),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.healthz)
	r.GET("/download/:name", s.download)
	r.GET("/ws/generate", s.generateWS)

	api := r.Group("/api")
	{
		api.POST("/generate", s.generate)
		api.GET("/themes", s.themes)
		api.GET("/renders", s.renders)
	}
	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr, "output", s.renderer.OutputDir())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// acquire takes a render slot.
func (s *Server) acquire(ctx context.Context) (release func(), err error) {
	select {
	case s.slots <- struct{}{}:
		return func() { <-s.slots }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrBusy, ctx.Err())
	}
}
