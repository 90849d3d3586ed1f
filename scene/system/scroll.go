package system

import (
	"math"

	"github.com/milk9111/redact/prefabs"
	"github.com/milk9111/redact/scene"
	"github.com/milk9111/redact/scroll"
)

// ScrollSystem feeds wheel input into the smooth scroller, lets the bridge
// recompute triggers, and maps the camera trigger onto the camera position.
type ScrollSystem struct {
	Scroller *scroll.Scroller
	Bridge   *scroll.Bridge
	Triggers *scroll.Triggers
	Camera   *scroll.Trigger

	section       float64
	width, height float64
	idle          float64
}

func NewScrollSystem(spec *prefabs.SceneSpec) *ScrollSystem {
	sc := scroll.NewScroller(spec.Scroll.Damping)
	b := scroll.NewBridge(sc)
	ts := scroll.NewTriggers(b)
	ss := &ScrollSystem{
		Scroller: sc,
		Bridge:   b,
		Triggers: ts,
		section:  float64(spec.SectionIndex(spec.Trigger.Section)),
	}

	// Sections are one viewport tall. The run starts when the point one
	// viewport below the section's top meets the viewport bottom, and ends
	// when that point meets the viewport top.
	ss.Camera = &scroll.Trigger{
		Start: func(h float64) float64 { return ss.section * h },
		End:   func(h float64) float64 { return (ss.section + 1) * h },
		Scrub: spec.Trigger.Scrub,
		Snap:  spec.Trigger.Snap,
	}
	ts.Add(ss.Camera)
	b.Connect(ts)
	return ss
}

// Reload applies a new scene spec while keeping the current scroll
// position, clamped to the new page length on the next update.
func (ss *ScrollSystem) Reload(spec *prefabs.SceneSpec) {
	ss.Scroller.SetDamping(spec.Scroll.Damping)
	ss.section = float64(spec.SectionIndex(spec.Trigger.Section))
	ss.Camera.Scrub = spec.Trigger.Scrub
	ss.Camera.Snap = spec.Trigger.Snap
	// Forces SetViewport on the next update so the content height follows
	// the section count.
	ss.width, ss.height = 0, 0
	ss.idle = 0
}

func (ss *ScrollSystem) Update(s *scene.State) {
	if s == nil {
		return
	}
	spec := s.Spec

	if s.Viewport.Width != ss.width || s.Viewport.Height != ss.height {
		ss.width, ss.height = s.Viewport.Width, s.Viewport.Height
		content := float64(len(spec.Scroll.Sections)) * ss.height
		ss.Bridge.SetViewport(ss.width, ss.height, content)
	}

	if s.Input.WheelY != 0 && !s.Orbit.Enabled {
		ss.Scroller.AddDelta(-s.Input.WheelY * spec.Scroll.WheelSpeed)
		ss.idle = 0
	}

	ss.Scroller.Update(s.Delta)
	s.ScrollY = ss.Bridge.ScrollTop()
	s.CanvasTop = ss.Bridge.CanvasTop()

	p := ss.Camera.Progress()
	d := spec.Trigger.SectionDistance
	a := spec.Trigger.RotationAngle
	s.Camera.Position.X = p * d * math.Sin(a)
	s.Camera.Position.Y = -p * d * math.Cos(a)

	if ss.Scroller.Moving() {
		ss.idle = 0
		return
	}
	ss.idle += s.Delta
	if ss.idle < spec.Scroll.SnapDelay.Seconds() {
		return
	}
	if target, ok := ss.Triggers.SnapTarget(); ok {
		ss.Scroller.ScrollTo(target)
		ss.idle = 0
	}
}
