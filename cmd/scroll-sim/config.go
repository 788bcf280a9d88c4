package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/Sternrassler/infinite-scroll/pkg/scroll"
	"github.com/pelletier/go-toml/v2"
)

// simConfig is the TOML configuration of one simulated scroll session.
type simConfig struct {
	// URL of the DataSource rows are fetched from
	URL string `toml:"url"`

	// TimeoutMS bounds each DataSource request (0 = none)
	TimeoutMS int `toml:"timeout_ms"`

	// RedisAddr enables the shared page cache when set
	RedisAddr string `toml:"redis_addr"`

	Scroll   scrollSection   `toml:"scroll"`
	Viewport viewportSection `toml:"viewport"`
	Run      runSection      `toml:"run"`
}

type scrollSection struct {
	ThresholdRows int     `toml:"threshold_rows"`
	ThresholdPx   float64 `toml:"threshold_px"`
}

type viewportSection struct {
	Height    float64 `toml:"height"`
	RowHeight float64 `toml:"row_height"`
}

type runSection struct {
	Steps      int     `toml:"steps"`
	ScrollStep float64 `toml:"scroll_step"`
	SearchText string  `toml:"search_text"`

	// ResetAtStep replaces the search text with ResetSearchText and resets
	// the list before that step runs (0 = never)
	ResetAtStep     int    `toml:"reset_at_step"`
	ResetSearchText string `toml:"reset_search_text"`
}

func defaultSimConfig() simConfig {
	return simConfig{
		URL: "http://localhost:8080/fetchrows",
		Scroll: scrollSection{
			ThresholdPx: scroll.DefaultThresholdPx,
		},
		Viewport: viewportSection{
			Height:    600,
			RowHeight: 40,
		},
		Run: runSection{
			Steps:      20,
			ScrollStep: 200,
		},
	}
}

// loadConfig reads a TOML file on top of the defaults.
func loadConfig(path string) (simConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return simConfig{}, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (simConfig, error) {
	cfg := defaultSimConfig()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return simConfig{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return simConfig{}, err
	}
	return cfg, nil
}

func (c simConfig) validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("timeout_ms must be >= 0 (got %d)", c.TimeoutMS)
	}
	if err := c.scrollConfig().Validate(); err != nil {
		return err
	}
	if c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport.height must be > 0 (got %g)", c.Viewport.Height)
	}
	if c.Viewport.RowHeight <= 0 {
		return fmt.Errorf("viewport.row_height must be > 0 (got %g)", c.Viewport.RowHeight)
	}
	if c.Run.Steps < 0 {
		return fmt.Errorf("run.steps must be >= 0 (got %d)", c.Run.Steps)
	}
	return nil
}

func (c simConfig) scrollConfig() scroll.Config {
	return scroll.Config{
		ThresholdRows: c.Scroll.ThresholdRows,
		ThresholdPx:   c.Scroll.ThresholdPx,
	}
}

func (c simConfig) timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
