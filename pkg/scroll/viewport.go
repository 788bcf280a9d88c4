package scroll

// DefaultRowKind is the element kind counted as a row when no selector is set.
const DefaultRowKind = "row"

// Viewport is the region whose scroll position is observed.
type Viewport interface {
	// Geometry measures the viewport and its content at this instant.
	Geometry() Geometry
}

// Element is one rendered child of the content region.
type Element struct {
	Kind   string
	Height float64
}

// RowSelector reports whether an element counts as a row for threshold math.
type RowSelector func(Element) bool

// SelectKind returns a selector matching elements of the given kind.
func SelectKind(kind string) RowSelector {
	return func(e Element) bool {
		return e.Kind == kind
	}
}

// Content is the region rows are rendered into.
type Content struct {
	Top       float64
	Height    float64
	MarginTop float64
	Elements  []Element

	// Selector picks the row elements; nil selects DefaultRowKind.
	Selector RowSelector
}

// RowHeights returns the heights of the elements selected as rows.
func (c *Content) RowHeights() []float64 {
	if c == nil {
		return nil
	}

	sel := c.Selector
	if sel == nil {
		sel = SelectKind(DefaultRowKind)
	}

	heights := make([]float64, 0, len(c.Elements))
	for _, e := range c.Elements {
		if sel(e) {
			heights = append(heights, e.Height)
		}
	}
	return heights
}

// RowCount returns the number of elements selected as rows.
func (c *Content) RowCount() int {
	return len(c.RowHeights())
}

// geometry measures the content against a viewport. A nil Content measures
// as an empty region at the top of the document.
func (c *Content) geometry(viewportTop, viewportHeight float64) Geometry {
	if c == nil {
		return Geometry{ViewportTop: viewportTop, ViewportHeight: viewportHeight}
	}
	return Geometry{
		ViewportTop:    viewportTop,
		ViewportHeight: viewportHeight,
		ContentTop:     c.Top,
		ContentHeight:  c.Height,
		ContentMargin:  c.MarginTop,
		RowHeights:     c.RowHeights(),
	}
}

// Window observes the whole visible window.
type Window struct {
	ScrollTop float64
	Height    float64
	Content   *Content
}

// Geometry implements Viewport.
func (w *Window) Geometry() Geometry {
	return w.Content.geometry(w.ScrollTop, w.Height)
}

// Region observes a scrollable element. Its top offset excludes the top
// padding and border of the region.
type Region struct {
	Top        float64
	Height     float64
	PaddingTop float64
	BorderTop  float64
	Content    *Content
}

// Geometry implements Viewport.
func (r *Region) Geometry() Geometry {
	return r.Content.geometry(r.Top+r.PaddingTop+r.BorderTop, r.Height)
}
