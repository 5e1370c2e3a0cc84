// Package imagegen talks to the cover image generation backend. The client
// never fails observably: every error is logged and replaced by a fallback URL.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/metrics"
)

type Strategy string

const (
	StrategyPlaceholder Strategy = "placeholder"
	StrategyStock       Strategy = "stock"
)

const (
	DefaultPath           = "/gerar-capa"
	DefaultPlaceholderURL = "https://via.placeholder.com/300x400.png?text=Capa+Indisponivel"
	defaultTimeout        = 10 * time.Second
	maxResponseBytes      = 1 << 20
)

var ErrExternalService = apperror.New(apperror.KindExternalService, "IMAGE_GENERATION_FAILED", "image generation failed")

type Config struct {
	// BaseURL of the generation backend. Empty disables outbound calls.
	BaseURL           string
	Path              string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Fallback          Strategy
	PlaceholderURL    string
}

// CoverRequest is what the backend receives.
type CoverRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Prompt is the text the cover is generated from.
func (r CoverRequest) Prompt() string {
	return CoverPrompt(r.Title, r.Description)
}

// CoverPrompt returns title + " " + description, or title alone when the
// description is blank.
func CoverPrompt(title, description string) string {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if description == "" {
		return title
	}
	return title + " " + description
}

type generateRequest struct {
	CoverRequest
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	URL string `json:"url"`
}

type Client struct {
	httpClient *http.Client
	cfg        Config
	limiter    *rate.Limiter
	random     RandomSource
}

func NewClient(cfg Config, random RandomSource) *Client {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Fallback == "" {
		cfg.Fallback = StrategyPlaceholder
	}
	if cfg.PlaceholderURL == "" {
		cfg.PlaceholderURL = DefaultPlaceholderURL
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if random == nil {
		random = NewRandomSource(time.Now().UnixNano())
	}

	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		limiter:    rate.NewLimiter(limit, cfg.Burst),
		random:     random,
	}
}

// Enabled reports whether a backend is configured.
func (c *Client) Enabled() bool {
	return c.cfg.BaseURL != ""
}

// GenerateCoverURL returns a generated cover URL, or the fallback URL when the
// backend is disabled, slow, unreachable or returns anything unexpected.
func (c *Client) GenerateCoverURL(ctx context.Context, req CoverRequest) string {
	if !c.Enabled() {
		metrics.CoverGeneration.WithLabelValues(metrics.CoverDisabled).Inc()
		return c.Fallback(req.Prompt())
	}

	coverURL, err := c.generate(ctx, req)
	if err != nil {
		metrics.CoverGeneration.WithLabelValues(metrics.CoverFallback).Inc()
		log.Warn().Err(err).
			Str("title", req.Title).
			Str("strategy", string(c.cfg.Fallback)).
			Msg("Cover generation failed, using fallback")
		return c.Fallback(req.Prompt())
	}

	metrics.CoverGeneration.WithLabelValues(metrics.CoverGenerated).Inc()
	return coverURL
}

func (c *Client) generate(ctx context.Context, req CoverRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", ErrExternalService.Wrap(fmt.Errorf("rate limiter: %w", err))
	}

	body, err := json.Marshal(generateRequest{CoverRequest: req, Prompt: req.Prompt()})
	if err != nil {
		return "", ErrExternalService.Wrap(err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + c.cfg.Path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", ErrExternalService.Wrap(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", ErrExternalService.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", ErrExternalService.Wrap(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return "", ErrExternalService.Wrap(fmt.Errorf("decode response: %w", err))
	}

	if err := validateCoverURL(out.URL); err != nil {
		return "", ErrExternalService.Wrap(err)
	}
	return out.URL, nil
}

func validateCoverURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("response has no url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url %q", raw)
	}
	return nil
}

// Fallback returns the substitute URL for prompt under the configured strategy.
func (c *Client) Fallback(prompt string) string {
	if c.cfg.Fallback == StrategyStock {
		return StockPhotoURL(prompt, c.random)
	}
	return c.cfg.PlaceholderURL
}

// StockPhotoURL builds a stock photo search URL from the first word of the
// prompt and a four digit suffix drawn from random.
func StockPhotoURL(prompt string, random RandomSource) string {
	word := "book"
	if fields := strings.Fields(prompt); len(fields) > 0 {
		word = fields[0]
	}
	return fmt.Sprintf("https://source.unsplash.com/500x700/?book,%s,%d",
		url.QueryEscape(word), 1000+random.IntN(9000))
}
