package imagesrc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default endpoints and timeouts.
const (
	DefaultPrimaryURL      = "https://image.pollinations.ai/prompt/"
	DefaultFallbackURL     = "https://picsum.photos/1024/768"
	DefaultPrimaryTimeout  = 30 * time.Second
	DefaultFallbackTimeout = 10 * time.Second
)

// MaxBodySize caps downloaded image bodies.
const MaxBodySize = 20 << 20

// Options configures the default chain. Zero fields use the defaults.
type Options struct {
	PrimaryURL      string // prompt is appended, path-escaped
	FallbackURL     string // fetched as is
	PrimaryTimeout  time.Duration
	FallbackTimeout time.Duration
	UserAgent       string
	Client          *http.Client
	Logger          *slog.Logger
}

// New creates the default two-step chain: a prompt-driven generator, then a
// stock photo service that ignores the prompt.
func New(opts Options) *Chain {
	if opts.PrimaryURL == "" {
		opts.PrimaryURL = DefaultPrimaryURL
	}
	if opts.FallbackURL == "" {
		opts.FallbackURL = DefaultFallbackURL
	}
	if opts.PrimaryTimeout <= 0 {
		opts.PrimaryTimeout = DefaultPrimaryTimeout
	}
	if opts.FallbackTimeout <= 0 {
		opts.FallbackTimeout = DefaultFallbackTimeout
	}

	get := &getter{client: opts.Client, userAgent: opts.UserAgent}
	if get.client == nil {
		get.client = http.DefaultClient
	}

	return NewChain(opts.Logger,
		Attempt{
			Name:    "primary",
			Timeout: opts.PrimaryTimeout,
			Fetch: func(ctx context.Context, prompt string) ([]byte, error) {
				prompt = strings.TrimSpace(prompt)
				if prompt == "" {
					return nil, ErrEmptyPrompt
				}
				return get.get(ctx, opts.PrimaryURL+url.PathEscape(prompt))
			},
		},
		Attempt{
			Name:    "fallback",
			Timeout: opts.FallbackTimeout,
			Fetch: func(ctx context.Context, _ string) ([]byte, error) {
				return get.get(ctx, opts.FallbackURL)
			},
		},
	)
}

type getter struct {
	client    *http.Client
	userAgent string
}

// get downloads rawURL. Only 2xx responses with a non-empty body of at
// most MaxBodySize bytes succeed.
func (g *getter) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, ErrTooLarge
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	return body, nil
}
