package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sternrassler/infinite-scroll/pkg/pagination"
	"github.com/Sternrassler/infinite-scroll/pkg/rows"
	"github.com/Sternrassler/infinite-scroll/pkg/scroll"
	"github.com/rs/zerolog"
)

// page is the simulated document: a window over a growing list of rows.
type page struct {
	mu         sync.Mutex
	window     scroll.Window
	rowHeight  float64
	searchText string
}

func newPage(cfg simConfig) *page {
	return &page{
		window: scroll.Window{
			Height:  cfg.Viewport.Height,
			Content: &scroll.Content{},
		},
		rowHeight:  cfg.Viewport.RowHeight,
		searchText: cfg.Run.SearchText,
	}
}

// Geometry implements scroll.Viewport.
func (p *page) Geometry() scroll.Geometry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window.Geometry()
}

func (p *page) filters() rows.FilterSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return rows.FilterSet{{Key: "searchText", Value: p.searchText}}
}

func (p *page) appendRows(pg rows.Page) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for range pg {
		p.window.Content.Elements = append(p.window.Content.Elements, scroll.Element{
			Kind:   scroll.DefaultRowKind,
			Height: p.rowHeight,
		})
	}
	p.window.Content.Height = float64(len(p.window.Content.Elements)) * p.rowHeight
}

func (p *page) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.window.Content.Elements = nil
	p.window.Content.Height = 0
	p.window.ScrollTop = 0
}

func (p *page) scrollBy(delta float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	top := p.window.ScrollTop + delta
	if limit := p.window.Content.Height - p.window.Height; top > limit {
		top = limit
	}
	if top < 0 {
		top = 0
	}
	p.window.ScrollTop = top
}

func (p *page) setSearchText(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchText = s
}

func (p *page) rowCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window.Content.RowCount()
}

// result summarizes a finished simulation.
type result struct {
	Rows     int
	Fetches  int
	Failures int
}

// simulate fills the initial viewport, then scrolls cfg.Run.Steps times,
// waiting for each triggered fetch to settle before the next step.
func simulate(ctx context.Context, cfg simConfig, fetcher pagination.PageFetcher, logger zerolog.Logger) (result, error) {
	var res result
	pg := newPage(cfg)

	ctrlCfg := pagination.DefaultConfig()
	ctrlCfg.Fetcher = fetcher
	ctrlCfg.Filters = pg.filters
	ctrlCfg.AppendData = pg.appendRows
	ctrlCfg.ClearData = pg.clear
	ctrlCfg.Scroll = cfg.scrollConfig()
	ctrlCfg.Viewport = pg
	ctrlCfg.OnError = func(err error) {
		res.Failures++
	}
	ctrlCfg.Logger = &logger

	ctrl, err := pagination.New(ctrlCfg)
	if err != nil {
		return res, fmt.Errorf("create controller: %w", err)
	}
	defer ctrl.Close()

	settle := func(fetched bool) error {
		if !fetched {
			return nil
		}
		res.Fetches++
		return ctrl.Wait(ctx)
	}

	if err := settle(ctrl.OnScroll()); err != nil {
		return res, err
	}

	for step := 1; step <= cfg.Run.Steps; step++ {
		if step == cfg.Run.ResetAtStep {
			logger.Info().
				Int("step", step).
				Str("search_text", cfg.Run.ResetSearchText).
				Msg("Changing filter and resetting list")
			pg.setSearchText(cfg.Run.ResetSearchText)
			ctrl.ResetAndRefetch()
			if err := settle(true); err != nil {
				return res, err
			}
		}

		pg.scrollBy(cfg.Run.ScrollStep)
		if err := settle(ctrl.OnScroll()); err != nil {
			return res, err
		}

		logger.Debug().
			Int("step", step).
			Int("rows", pg.rowCount()).
			Msg("Scrolled")
	}

	res.Rows = pg.rowCount()
	return res, nil
}
