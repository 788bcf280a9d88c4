// Package scroll decides when a scrolled list needs more rows.
//
// The Monitor is a pure predicate over the current viewport geometry: it
// never mutates state and never touches the network, so it can be evaluated
// on every scroll notification.
//
// Two threshold policies are supported:
//
//   - ThresholdRows: trigger when no more than N rendered rows remain below
//     the visible viewport. Takes precedence when set.
//   - ThresholdPx: trigger when the unseen content below the viewport is no
//     taller than N pixels.
//
// Example usage:
//
//	monitor := scroll.NewMonitor(scroll.DefaultConfig())
//	viewport := &scroll.Window{ScrollTop: 400, Height: 800, Content: content}
//	if monitor.Evaluate(viewport.Geometry()) {
//		// fetch more rows
//	}
//
// Geometry is ephemeral: it is recomputed on every tick and never stored.
package scroll
