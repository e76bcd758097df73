package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/outline"
)

// GenerateRequest is the body of POST /api/generate and the first message
// of /ws/generate. Without an outline the built-in outline for Topic is
// rendered.
type GenerateRequest struct {
	Topic     string           `json:"topic"`
	Theme     string           `json:"theme"`
	Font      string           `json:"font"`
	UseImages *bool            `json:"use_images"` // default true
	Outline   *deckgen.Outline `json:"outline"`
}

// GenerateResponse describes a rendered deck.
type GenerateResponse struct {
	Status      string          `json:"status"`
	Topic       string          `json:"topic"`
	Filename    string          `json:"filename"`
	DownloadURL string          `json:"download_url"`
	Report      *deckgen.Report `json:"report"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// normalize validates the request and fills the outline.
func (req *GenerateRequest) normalize() (deckgen.Outline, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" && req.Outline != nil {
		req.Topic = strings.TrimSpace(req.Outline.Topic)
	}
	if req.Topic == "" {
		return deckgen.Outline{}, deckgen.ErrEmptyTopic
	}
	if utf8.RuneCountInString(req.Topic) > MaxTopicLength {
		return deckgen.Outline{}, fmt.Errorf("%w: %d characters, max %d", ErrTopicTooLong, utf8.RuneCountInString(req.Topic), MaxTopicLength)
	}

	if req.Outline == nil || len(req.Outline.Slides) == 0 {
		return outline.Static(req.Topic), nil
	}
	o := *req.Outline
	if o.Topic == "" {
		o.Topic = req.Topic
	}
	return o, nil
}

// render runs one request through the renderer and records it.
func (s *Server) render(ctx context.Context, req GenerateRequest, onSlide func(deckgen.SlideOutcome)) (*GenerateResponse, error) {
	o, err := req.normalize()
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.renderer.Render(ctx, deckgen.Input{
		Outline:    o,
		Theme:      req.Theme,
		Font:       req.Font,
		SkipImages: req.UseImages != nil && !*req.UseImages,
		OnSlide:    onSlide,
	})
	if err != nil {
		return nil, err
	}

	if s.history != nil {
		if _, err := s.history.Record(ctx, res); err != nil {
			s.logger.Warn("history not recorded", "file", res.Filename, "error", err)
		}
	}

	return &GenerateResponse{
		Status:      "success",
		Topic:       o.Topic,
		Filename:    res.Filename,
		DownloadURL: "/download/" + res.Filename,
		Report:      res.Report,
	}, nil
}

// statusFor maps render errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, deckgen.ErrEmptyTopic),
		errors.Is(err, ErrTopicTooLong),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, errorResponse{Status: "error", Error: err.Error()})
}

func (s *Server) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	resp, err := s.render(c.Request.Context(), req, nil)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
