package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

// HTTPConfig holds HTTP source tuning.
type HTTPConfig struct {
	URL            string
	Timeout        time.Duration
	MaxConcurrency int64
	RetryCount     int
	RetryDelay     time.Duration
}

// DefaultHTTPConfig returns default configuration for a URL.
func DefaultHTTPConfig(url string) HTTPConfig {
	return HTTPConfig{
		URL:            url,
		Timeout:        10 * time.Second,
		MaxConcurrency: 4,
		RetryCount:     1,
		RetryDelay:     100 * time.Millisecond,
	}
}

// HTTPSource fetches CSV content over HTTP. The upstream's ETag or
// Last-Modified header is the version token; an upstream that sends
// neither is treated as uncacheable.
type HTTPSource struct {
	config HTTPConfig
	client *http.Client
	sem    *semaphore.Weighted
}

// NewHTTPSource creates an HTTP-backed source.
func NewHTTPSource(config HTTPConfig) *HTTPSource {
	return &HTTPSource{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		sem: semaphore.NewWeighted(config.MaxConcurrency),
	}
}

// Name returns the upstream URL.
func (s *HTTPSource) Name() string {
	return s.config.URL
}

// Version issues a HEAD request and returns the upstream's validator
// header.
func (s *HTTPSource) Version() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("semaphore acquire: %w", err)
	}
	defer s.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.config.URL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http status %d", resp.StatusCode)
	}

	if v := resp.Header.Get("ETag"); v != "" {
		return v, nil
	}
	return resp.Header.Get("Last-Modified"), nil
}

// Open fetches the CSV body, retrying transient failures.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("semaphore acquire: %w", err)
	}
	defer s.sem.Release(1)

	var lastErr error
	for attempt := 0; attempt <= s.config.RetryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(s.config.RetryDelay)
		}

		body, err := s.fetch(ctx)
		if err == nil {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("fetch failed after %d attempts: %w", s.config.RetryCount+1, lastErr)
}

// fetch performs a single GET of the upstream content.
func (s *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
