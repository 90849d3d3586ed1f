package scroll

import "math"

// Trigger maps a scroll range onto animation progress in [0, 1].
type Trigger struct {
	// Start and End return scroll positions for a viewport height.
	Start func(viewportHeight float64) float64
	End   func(viewportHeight float64) float64
	// Scrub ties progress directly to the scroll position. Without it the
	// trigger jumps to 1 once Start is passed and back to 0 before it.
	Scrub bool
	// Snap is the progress increment the scroll settles on. Zero disables.
	Snap float64

	progress float64
	start    float64
	end      float64
}

func (t *Trigger) Progress() float64 {
	return t.progress
}

func (t *Trigger) update(scrollTop, viewportHeight float64) {
	t.start = t.Start(viewportHeight)
	t.end = t.End(viewportHeight)

	if !t.Scrub || t.end <= t.start {
		if scrollTop >= t.start {
			t.progress = 1
		} else {
			t.progress = 0
		}
		return
	}

	p := (scrollTop - t.start) / (t.end - t.start)
	t.progress = math.Max(0, math.Min(1, p))
}

// snapTarget returns the scroll position of the closest snap point when the
// scroll sits strictly inside the trigger range.
func (t *Trigger) snapTarget(scrollTop float64) (float64, bool) {
	if t.Snap <= 0 || t.end <= t.start {
		return 0, false
	}
	if scrollTop <= t.start || scrollTop >= t.end {
		return 0, false
	}
	p := math.Round(t.progress/t.Snap) * t.Snap
	p = math.Max(0, math.Min(1, p))
	target := t.start + p*(t.end-t.start)
	if math.Abs(target-scrollTop) <= restThreshold {
		return 0, false
	}
	return target, true
}

// Triggers recomputes a set of triggers against a proxy.
type Triggers struct {
	proxy Proxy
	list  []*Trigger
}

func NewTriggers(p Proxy) *Triggers {
	return &Triggers{proxy: p}
}

func (ts *Triggers) Add(t *Trigger) {
	if t == nil || t.Start == nil || t.End == nil {
		return
	}
	ts.list = append(ts.list, t)
	ts.updateOne(t)
}

func (ts *Triggers) Update() {
	for _, t := range ts.list {
		ts.updateOne(t)
	}
}

func (ts *Triggers) updateOne(t *Trigger) {
	t.update(ts.proxy.ScrollTop(), ts.proxy.BoundingRect().Height)
}

// SnapTarget returns the first pending snap position, if any.
func (ts *Triggers) SnapTarget() (float64, bool) {
	top := ts.proxy.ScrollTop()
	for _, t := range ts.list {
		if v, ok := t.snapTarget(top); ok {
			return v, true
		}
	}
	return 0, false
}
