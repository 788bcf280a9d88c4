// Package client provides the DataSource HTTP client used by the pagination
// controller: it POSTs a row request and decodes the returned page.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sternrassler/infinite-scroll/pkg/cache"
	"github.com/Sternrassler/infinite-scroll/pkg/rows"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for DataSource requests.
var (
	datasourceRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "infinite_scroll_datasource_requests_total",
		Help: "Total DataSource requests by status",
	}, []string{"status"})

	datasourceRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "infinite_scroll_datasource_request_duration_seconds",
		Help:    "DataSource request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	datasourceErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "infinite_scroll_datasource_errors_total",
		Help: "Total DataSource errors by class",
	}, []string{"class"})
)

// Client fetches row pages from a DataSource endpoint.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// URL is the DataSource endpoint rows are POSTed to
	URL string

	// UserAgent header sent with every request (optional)
	UserAgent string

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration

	// Cache enables the shared page cache (optional)
	Cache *cache.Manager
}

// DefaultConfig returns a configuration for the given endpoint.
func DefaultConfig(fetchURL string) Config {
	return Config{
		URL:       fetchURL,
		UserAgent: "infinite-scroll/0.1.0",
	}
}

// New creates a new DataSource client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}

	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", cfg.URL, err)
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cfg.Cache,
		config: cfg,
		logger: log.With().Str("component", "datasource-client").Logger(),
	}, nil
}

// FetchPage POSTs the payload to the DataSource and returns the decoded page.
// Any failure is returned as a *TransportError.
func (c *Client) FetchPage(ctx context.Context, payload rows.Payload) (rows.Page, error) {
	startTime := time.Now()
	defer func() {
		datasourceRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	key := cache.PageKey{URL: c.config.URL, Payload: payload}
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			c.logger.Debug().Str("key", key.String()).Msg("Page served from cache")
			datasourceRequestsTotal.WithLabelValues("cached").Inc()
			return entry.Rows, nil
		case err != cache.ErrCacheMiss:
			c.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache get error")
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		RawJSON("payload", body).
		Msg("Requesting rows")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		datasourceErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		datasourceRequestsTotal.WithLabelValues("network_error").Inc()
		return nil, &TransportError{
			ErrorClass: ErrorClassNetwork,
			Message:    "post rows request",
			Err:        err,
		}
	}
	defer resp.Body.Close()

	datasourceRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errClass := classifyStatus(resp.StatusCode)
		datasourceErrorsTotal.WithLabelValues(string(errClass)).Inc()
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	page, err := decodePage(resp.Body)
	if err != nil {
		datasourceErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassDecode,
			Message:    "decode rows",
			Err:        err,
		}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, cache.NewEntry(page, resp.Header)); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache page")
		}
	}

	c.logger.Debug().
		Int("rows", len(page)).
		Dur("duration", time.Since(startTime)).
		Msg("Rows received")

	return page, nil
}

// decodePage parses a JSON array of opaque row records.
func decodePage(r io.Reader) (rows.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrMalformedResponse
	}

	var page rows.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return page, nil
}

// URL returns the DataSource endpoint.
func (c *Client) URL() string {
	return c.config.URL
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
