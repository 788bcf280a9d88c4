package pagination

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sternrassler/infinite-scroll/pkg/rows"
	"github.com/Sternrassler/infinite-scroll/pkg/scroll"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PageFetcher is the interface a DataSource must implement.
type PageFetcher interface {
	// FetchPage sends the payload and returns the page of rows it selects.
	FetchPage(ctx context.Context, payload rows.Payload) (rows.Page, error)
}

// Config holds controller configuration.
type Config struct {
	// Fetcher issues DataSource requests (required)
	Fetcher PageFetcher

	// Filters returns the current filters; called every time a request is sent
	Filters func() rows.FilterSet

	// AppendData receives every non-empty page that is still current (required)
	AppendData func(rows.Page)

	// ClearData is called by ResetAndRefetch before refetching from row 0 (optional)
	ClearData func()

	// Scroll is the threshold policy
	Scroll scroll.Config

	// Viewport is measured by OnScroll (optional when only TriggerIfNeeded is used)
	Viewport scroll.Viewport

	// FetchTimeout bounds each fetch. Zero means no timeout.
	FetchTimeout time.Duration

	// OnError is called after a failed fetch (optional)
	OnError func(error)

	// Logger overrides the default component logger (optional)
	Logger *zerolog.Logger
}

// DefaultConfig returns a configuration with the default threshold policy.
// Fetcher and AppendData still have to be set.
func DefaultConfig() Config {
	return Config{
		Scroll: scroll.DefaultConfig(),
	}
}

// Controller owns the fetch state of one scrolled list.
type Controller struct {
	monitor *scroll.Monitor
	config  Config
	logger  zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  FetchState
	idle   chan struct{} // closed while state is StateIdle
	closed bool
}

// fetchResult is the single resolution of one fetch.
type fetchResult struct {
	rowIndex int
	page     rows.Page
	err      error
}

// New creates a controller.
func New(cfg Config) (*Controller, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}

	if cfg.AppendData == nil {
		return nil, fmt.Errorf("append callback is required")
	}

	if err := cfg.Scroll.Validate(); err != nil {
		return nil, err
	}

	if cfg.FetchTimeout < 0 {
		return nil, fmt.Errorf("fetch_timeout must be >= 0 (got %s)", cfg.FetchTimeout)
	}

	logger := log.With().Str("component", "pagination").Logger()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	ctx, cancel := context.WithCancel(context.Background())

	idle := make(chan struct{})
	close(idle)

	return &Controller{
		monitor: scroll.NewMonitor(cfg.Scroll),
		config:  cfg,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		state:   StateIdle,
		idle:    idle,
	}, nil
}

// State returns the current fetch state.
func (c *Controller) State() FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnScroll measures the configured viewport and triggers a fetch if needed.
// It returns without measuring while a fetch is in flight.
func (c *Controller) OnScroll() bool {
	if c.config.Viewport == nil {
		c.logger.Debug().Msg("OnScroll without viewport, ignoring")
		return false
	}

	c.mu.Lock()
	busy := c.state != StateIdle || c.closed
	c.mu.Unlock()
	if busy {
		return false
	}

	return c.TriggerIfNeeded(c.config.Viewport.Geometry())
}

// TriggerIfNeeded starts a fetch at the rendered row count when the monitor
// reports that more rows are needed and no fetch is in flight.
// It returns true if a fetch was started.
func (c *Controller) TriggerIfNeeded(g scroll.Geometry) bool {
	c.mu.Lock()
	if c.state != StateIdle || c.closed {
		c.mu.Unlock()
		return false
	}
	if !c.monitor.Evaluate(g) {
		c.mu.Unlock()
		return false
	}

	// The index is fixed now, at decision time.
	rowIndex := len(g.RowHeights)
	c.beginFetchLocked()
	c.mu.Unlock()

	c.logger.Debug().
		Int("row_index", rowIndex).
		Float64("pixels_below", scroll.PixelsBelow(g)).
		Msg("Threshold reached, fetching rows")

	fetchesTotal.WithLabelValues(triggerScroll).Inc()
	c.issueFetch(rowIndex)
	return true
}

// ResetAndRefetch restarts the list from row 0, typically after the filters
// changed. ClearData runs on every reset, on the caller's goroutine. The call
// returns without waiting for the fetch; results arrive through the callbacks.
//
// While idle, a fetch for row 0 is issued after ClearData. While a fetch is in
// flight, the in-flight page is marked stale and replaced by a fetch for row 0
// once it resolves.
func (c *Controller) ResetAndRefetch() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	switch c.state {
	case StateIdle:
		c.beginFetchLocked()
		c.mu.Unlock()

		c.logger.Debug().Msg("Reset while idle, clearing and fetching from row 0")
		c.clearData()
		fetchesTotal.WithLabelValues(triggerReset).Inc()
		c.issueFetch(0)

	case StateFetching:
		c.state = StateFetchingWithResetPending
		c.mu.Unlock()

		c.logger.Debug().Msg("Reset while fetching, in-flight page will be discarded")
		c.clearData()

	default:
		c.mu.Unlock()
		c.clearData()
	}
}

// Wait blocks until no fetch is in flight or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the controller. Further triggers and resets are ignored and an
// in-flight fetch is cancelled without its page being applied.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	return nil
}

// beginFetchLocked moves Idle -> Fetching. c.mu must be held.
func (c *Controller) beginFetchLocked() {
	c.state = StateFetching
	c.idle = make(chan struct{})
}

// finishLocked moves to Idle. c.mu must be held.
func (c *Controller) finishLocked() {
	c.state = StateIdle
	close(c.idle)
}

// issueFetch builds the payload from the filters as they are now and hands
// the fetch's single result to complete.
func (c *Controller) issueFetch(rowIndex int) {
	var filters rows.FilterSet
	if c.config.Filters != nil {
		filters = c.config.Filters()
	}
	payload := rows.NewPayload(rowIndex, filters)

	result := c.fetch(rowIndex, payload)
	go func() {
		c.complete(<-result)
	}()
}

// fetch runs the request on its own goroutine and resolves the returned
// channel exactly once.
func (c *Controller) fetch(rowIndex int, payload rows.Payload) <-chan fetchResult {
	result := make(chan fetchResult, 1)

	go func() {
		ctx := c.ctx
		if c.config.FetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.config.FetchTimeout)
			defer cancel()
		}

		page, err := c.config.Fetcher.FetchPage(ctx, payload)
		result <- fetchResult{rowIndex: rowIndex, page: page, err: err}
	}()

	return result
}

// complete applies a resolved fetch to the state machine.
func (c *Controller) complete(res fetchResult) {
	c.mu.Lock()

	if c.closed {
		c.finishLocked()
		c.mu.Unlock()
		return
	}

	if res.err != nil {
		c.mu.Unlock()
		c.reportFailure(res)

		// A pending reset is dropped; the next trigger starts fresh.
		c.mu.Lock()
		c.finishLocked()
		c.mu.Unlock()
		return
	}

	if c.state == StateFetchingWithResetPending {
		c.state = StateFetching
		c.mu.Unlock()

		pagesDiscardedTotal.Inc()
		c.logger.Debug().
			Int("row_index", res.rowIndex).
			Int("rows", len(res.page)).
			Msg("Discarding stale page, refetching from row 0")

		fetchesTotal.WithLabelValues(triggerReplacement).Inc()
		c.issueFetch(0)
		return
	}
	c.mu.Unlock()

	if len(res.page) > 0 {
		c.config.AppendData(res.page)
		rowsAppendedTotal.Add(float64(len(res.page)))
	}

	c.logger.Debug().
		Int("row_index", res.rowIndex).
		Int("rows", len(res.page)).
		Msg("Fetch complete")

	c.mu.Lock()
	if c.state == StateFetchingWithResetPending && !c.closed {
		// The reset arrived while this page was being appended, so the page
		// may have landed after the clear.
		c.state = StateFetching
		c.mu.Unlock()

		c.clearData()
		fetchesTotal.WithLabelValues(triggerReset).Inc()
		c.issueFetch(0)
		return
	}
	c.finishLocked()
	c.mu.Unlock()
}

func (c *Controller) reportFailure(res fetchResult) {
	fetchFailuresTotal.Inc()
	c.logger.Warn().
		Err(res.err).
		Int("row_index", res.rowIndex).
		Msg("Failed to fetch rows")

	if c.config.OnError != nil {
		c.config.OnError(res.err)
	}
}

func (c *Controller) clearData() {
	if c.config.ClearData != nil {
		c.config.ClearData()
	}
}
