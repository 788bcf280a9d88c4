package scroll

import "fmt"

// DefaultThresholdPx is the pixel distance used when no threshold is configured.
const DefaultThresholdPx = 1000

// Config holds the threshold policy.
type Config struct {
	// ThresholdRows triggers a fetch when this many rendered rows or fewer lie
	// below the viewport. Zero means not configured.
	ThresholdRows int

	// ThresholdPx triggers a fetch when the unseen content height below the
	// viewport is at most this many pixels. Ignored when ThresholdRows is set.
	ThresholdPx float64
}

// DefaultConfig returns the default threshold policy.
func DefaultConfig() Config {
	return Config{
		ThresholdPx: DefaultThresholdPx,
	}
}

// Validate checks the configuration for impossible values.
func (c Config) Validate() error {
	if c.ThresholdRows < 0 {
		return fmt.Errorf("threshold_rows must be >= 0 (got %d)", c.ThresholdRows)
	}
	if c.ThresholdPx < 0 {
		return fmt.Errorf("threshold_px must be >= 0 (got %g)", c.ThresholdPx)
	}
	return nil
}

// Geometry describes the viewport and content region at one scroll tick.
type Geometry struct {
	ViewportTop    float64
	ViewportHeight float64
	ContentTop     float64
	ContentHeight  float64
	ContentMargin  float64

	// RowHeights are the outer heights of the rendered rows, in document order.
	RowHeights []float64
}

// Monitor evaluates whether more rows should be fetched.
type Monitor struct {
	config Config
}

// NewMonitor creates a monitor with the given threshold policy.
func NewMonitor(config Config) *Monitor {
	return &Monitor{config: config}
}

// Config returns the monitor's threshold policy.
func (m *Monitor) Config() Config {
	return m.config
}

// Evaluate reports whether the content left below the viewport has dropped
// to or under the configured threshold.
func (m *Monitor) Evaluate(g Geometry) bool {
	below := PixelsBelow(g)

	// Content shorter than the viewport: nothing left to scroll.
	if below < 0 {
		return true
	}

	if m.config.ThresholdRows > 0 {
		return RowsBelow(g.RowHeights, below) <= m.config.ThresholdRows
	}
	return below <= m.config.ThresholdPx
}

// PixelsBelow returns the height of content below the bottom of the viewport.
// Negative when the content does not fill the viewport.
func PixelsBelow(g Geometry) float64 {
	above := g.ViewportTop - g.ContentTop - g.ContentMargin
	return g.ContentHeight - g.ViewportHeight - above
}

// RowsBelow counts the rows, walking back from the last one, whose cumulative
// height fits within pixelsBelow. Only the rows below the fold are visited.
func RowsBelow(rowHeights []float64, pixelsBelow float64) int {
	var (
		count int
		total float64
	)
	for i := len(rowHeights) - 1; i >= 0; i-- {
		total += rowHeights[i]
		if total > pixelsBelow {
			break
		}
		count++
	}
	return count
}
