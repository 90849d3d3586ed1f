package scroll

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/redact/common"
)

// Status is handed to listeners after every scroller update.
type Status struct {
	Offset common.Vec2
	Limit  common.Vec2
}

type Listener func(Status)

const restThreshold = 0.5

// Scroller is a damped vertical scroll body. Wheel input moves a target and
// each update closes Damping of the remaining distance. The body lives in a
// chipmunk space with no gravity so the integration step is the physics
// engine's.
type Scroller struct {
	space *cp.Space
	body  *cp.Body

	damping float64
	target  float64
	limit   float64

	listeners []Listener
}

func NewScroller(damping float64) *Scroller {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{})
	space.AddBody(body)

	return &Scroller{
		space:   space,
		body:    body,
		damping: common.Clamp(damping, 0, 1),
	}
}

func (s *Scroller) SetDamping(d float64) {
	s.damping = common.Clamp(d, 0, 1)
}

// SetSize sets the scrollable limit from the viewport and content heights.
func (s *Scroller) SetSize(viewportHeight, contentHeight float64) {
	s.limit = math.Max(0, contentHeight-viewportHeight)
	s.target = common.Clamp(s.target, 0, s.limit)
	if top := s.ScrollTop(); top > s.limit {
		s.place(s.limit)
	}
}

func (s *Scroller) Limit() float64 {
	return s.limit
}

func (s *Scroller) ScrollTop() float64 {
	return s.body.Position().Y
}

// SetScrollTop jumps to v without easing.
func (s *Scroller) SetScrollTop(v float64) {
	v = common.Clamp(v, 0, s.limit)
	s.target = v
	s.place(v)
}

// ScrollTo eases toward v over the following updates.
func (s *Scroller) ScrollTo(v float64) {
	s.target = common.Clamp(v, 0, s.limit)
}

// AddDelta moves the target by dy, as a wheel notch does.
func (s *Scroller) AddDelta(dy float64) {
	s.ScrollTo(s.target + dy)
}

func (s *Scroller) Target() float64 {
	return s.target
}

// Moving reports whether the body is still travelling toward its target.
func (s *Scroller) Moving() bool {
	return math.Abs(s.target-s.ScrollTop()) > restThreshold
}

func (s *Scroller) AddListener(l Listener) {
	if l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
}

// Update steps the body by dt seconds and notifies listeners.
func (s *Scroller) Update(dt float64) {
	if dt > 0 {
		pos := s.ScrollTop()
		dist := s.target - pos
		if math.Abs(dist) <= restThreshold {
			s.place(s.target)
		} else {
			// Step integrates positions before velocities, so the velocity
			// has to be in place before the step that should use it.
			s.body.SetVelocity(0, dist*s.damping/dt)
			s.space.Step(dt)
			top := s.ScrollTop()
			switch {
			case math.Abs(s.target-top) <= restThreshold:
				s.place(s.target)
			case top < 0 || top > s.limit:
				s.place(common.Clamp(top, 0, s.limit))
			}
		}
	}

	st := Status{
		Offset: common.Vec2{X: 0, Y: s.ScrollTop()},
		Limit:  common.Vec2{X: 0, Y: s.limit},
	}
	for _, l := range s.listeners {
		l(st)
	}
}

func (s *Scroller) place(y float64) {
	s.body.SetPosition(cp.Vector{X: 0, Y: y})
	s.body.SetVelocity(0, 0)
}
