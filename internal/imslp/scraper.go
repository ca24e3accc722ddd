package imslp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"scribe/internal/logging"
	"scribe/internal/works"
)

const maxPageBytes = 8 << 20

// Scraper fetches and parses IMSLP work pages.
type Scraper struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     *slog.Logger
}

var _ works.Scraper = (*Scraper)(nil)

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithRequestsPerMinute throttles page fetches. Zero or less disables
// throttling.
func WithRequestsPerMinute(n int) Option {
	return func(s *Scraper) {
		if n <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		s.userAgent = ua
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a scraper. Requests time out after timeout.
func New(timeout time.Duration, opts ...Option) *Scraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &Scraper{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape downloads url and extracts its metadata. A page without work
// information yields an empty Metadata and no error.
func (s *Scraper) Scrape(ctx context.Context, url string) (works.Metadata, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return works.Metadata{}, fmt.Errorf("wait for scrape slot: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return works.Metadata{}, fmt.Errorf("build request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	requestStart := time.Now()
	resp, err := s.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return works.Metadata{}, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return works.Metadata{}, fmt.Errorf("imslp returned %d (latency=%v)", resp.StatusCode, latency)
	}

	meta, err := Parse(io.LimitReader(resp.Body, maxPageBytes))
	if errors.Is(err, ErrNoContent) {
		s.logger.Debug("page content not matching",
			logging.String("url", url),
			logging.String("reason", err.Error()),
		)
		return works.Metadata{}, nil
	}
	if err != nil {
		return works.Metadata{}, err
	}
	return meta, nil
}
