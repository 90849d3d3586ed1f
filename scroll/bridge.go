package scroll

// Rect is a bounding rectangle in viewport pixels.
type Rect struct {
	Top, Left     float64
	Width, Height float64
}

// Proxy is what the trigger system reads scroll state through.
type Proxy interface {
	ScrollTop() float64
	SetScrollTop(v float64)
	BoundingRect() Rect
}

// Bridge exposes a Scroller as a Proxy. It keeps the fixed canvas in step
// with the scroll offset and asks the triggers to recompute on every
// scroller update.
type Bridge struct {
	scroller  *Scroller
	width     float64
	height    float64
	canvasTop float64
}

func NewBridge(s *Scroller) *Bridge {
	b := &Bridge{scroller: s}
	s.AddListener(func(st Status) {
		b.canvasTop = st.Offset.Y
	})
	return b
}

// Connect makes every scroller update recompute the triggers.
func (b *Bridge) Connect(t *Triggers) {
	b.scroller.AddListener(func(Status) {
		t.Update()
	})
}

func (b *Bridge) ScrollTop() float64 {
	return b.scroller.ScrollTop()
}

func (b *Bridge) SetScrollTop(v float64) {
	b.scroller.SetScrollTop(v)
}

// BoundingRect always covers the full viewport.
func (b *Bridge) BoundingRect() Rect {
	return Rect{Top: 0, Left: 0, Width: b.width, Height: b.height}
}

// SetViewport resizes the proxy rectangle and the scrollable range.
func (b *Bridge) SetViewport(width, height, contentHeight float64) {
	b.width = width
	b.height = height
	b.scroller.SetSize(height, contentHeight)
}

// CanvasTop is the vertical offset applied to the canvas so it appears
// fixed while the page scrolls underneath.
func (b *Bridge) CanvasTop() float64 {
	return b.canvasTop
}
