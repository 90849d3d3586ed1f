package system

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/redact/clock"
	"github.com/milk9111/redact/prefabs"
	"github.com/milk9111/redact/scene"
)

const tick = 10 * time.Millisecond

type harness struct {
	s     *scene.State
	sched *scene.Scheduler
	clk   *clock.Manual
	last  time.Duration
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	spec := prefabs.DefaultSceneSpec()
	s := scene.NewState(&spec, 1280, 720, 1)
	sched := scene.NewScheduler(
		NewTweenSystem(),
		NewPointerSystem(),
		NewInteractionSystem(),
		NewScrollSystem(&spec),
		NewFrameSystem(),
		NewControlsSystem(),
	)
	return &harness{s: s, sched: sched, clk: clock.NewManual(), last: -tick}
}

func (h *harness) tickAt(at time.Duration, in scene.Input) {
	h.clk.Set(at)
	h.s.Elapsed = h.clk.Elapsed()
	h.s.Input = in
	h.sched.Update(h.s)
	h.last = at
}

// runTo ticks every 10ms up to and including until.
func (h *harness) runTo(until time.Duration, in scene.Input) {
	for next := h.last + tick; next <= until; next += tick {
		h.tickAt(next, in)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIntroSequence(t *testing.T) {
	h := newHarness(t)
	cursor := scene.Input{CursorX: 960, CursorY: 180}

	h.runTo(0, cursor)
	if !h.s.Redacted || h.s.QuestionIn {
		t.Fatalf("scene must start redacted and out, got redacted=%v in=%v", h.s.Redacted, h.s.QuestionIn)
	}
	if h.s.PlaneGroup.Position.Y != 20 {
		t.Fatalf("card should start at drop height, got %v", h.s.PlaneGroup.Position.Y)
	}

	h.runTo(time.Second, cursor)
	if h.s.Uniforms.Redact != 1 {
		t.Fatalf("forced redact should reach 1 after 1s, got %v", h.s.Uniforms.Redact)
	}

	h.runTo(2*time.Second, cursor)
	if h.s.PlaneGroup.Position.Y != 0 {
		t.Fatalf("card should land at 2s, got y=%v", h.s.PlaneGroup.Position.Y)
	}

	h.runTo(2240*time.Millisecond, cursor)
	if h.s.QuestionIn {
		t.Fatalf("question must not be in before 2.25s")
	}
	h.runTo(2250*time.Millisecond, cursor)
	if !h.s.QuestionIn {
		t.Fatalf("question should be in at 2.25s")
	}
	if !h.s.Redacted {
		t.Fatalf("redacted clears only after the settle delay")
	}

	h.runTo(2350*time.Millisecond, cursor)
	if h.s.Redacted {
		t.Fatalf("redacted should clear 100ms after the intro un-redact")
	}

	h.runTo(3250*time.Millisecond, cursor)
	if h.s.Uniforms.Redact != 0 {
		t.Fatalf("un-redact should finish at 0, got %v", h.s.Uniforms.Redact)
	}
	x, y := h.s.PointerRotation()
	if h.s.CameraGroup.Rotation.X != x || h.s.CameraGroup.Rotation.Y != y {
		t.Fatalf("camera should follow pointer once revealed, got %+v", h.s.CameraGroup.Rotation)
	}
	if !near(y, 0.25) || !near(x, -0.125) {
		t.Fatalf("unexpected pointer rotation x=%v y=%v", x, y)
	}
}

func TestClickTransitions(t *testing.T) {
	h := newHarness(t)
	cursor := scene.Input{CursorX: 960, CursorY: 180}
	click := cursor
	click.Clicked = true

	h.runTo(4*time.Second, cursor)
	if h.s.Redacted {
		t.Fatalf("expected revealed card after intro")
	}

	h.tickAt(4010*time.Millisecond, click)
	if !h.s.Redacted {
		t.Fatalf("redact click must set redacted immediately")
	}

	h.runTo(5200*time.Millisecond, cursor)
	if h.s.Uniforms.Redact != 1 {
		t.Fatalf("redact blend should reach 1, got %v", h.s.Uniforms.Redact)
	}
	if h.s.CameraGroup.Rotation.X != 0 || h.s.CameraGroup.Rotation.Y != 0 {
		t.Fatalf("camera should level out while redacted, got %+v", h.s.CameraGroup.Rotation)
	}

	h.tickAt(5210*time.Millisecond, click)
	h.runTo(5300*time.Millisecond, cursor)
	if !h.s.Redacted {
		t.Fatalf("redacted must hold until the settle delay passes")
	}
	h.runTo(5310*time.Millisecond, cursor)
	if h.s.Redacted {
		t.Fatalf("redacted should clear 100ms after the un-redact click")
	}

	h.runTo(6300*time.Millisecond, cursor)
	if h.s.Uniforms.Redact != 0 {
		t.Fatalf("un-redact blend should reach 0, got %v", h.s.Uniforms.Redact)
	}
	x, y := h.s.PointerRotation()
	if h.s.CameraGroup.Rotation.X != x || h.s.CameraGroup.Rotation.Y != y {
		t.Fatalf("camera should follow pointer again")
	}
}

func TestRepeatedUnredactRestartsSettle(t *testing.T) {
	h := newHarness(t)
	cursor := scene.Input{CursorX: 100, CursorY: 100}
	click := cursor
	click.Clicked = true

	h.runTo(500*time.Millisecond, cursor)
	h.tickAt(510*time.Millisecond, click)
	h.tickAt(560*time.Millisecond, click)
	h.runTo(650*time.Millisecond, cursor)
	if !h.s.Redacted {
		t.Fatalf("second click inside the settle window should restart it")
	}
	h.runTo(660*time.Millisecond, cursor)
	if h.s.Redacted {
		t.Fatalf("redacted should clear 100ms after the last un-redact")
	}
}

func newFrameState(t *testing.T) *scene.State {
	t.Helper()
	spec := prefabs.DefaultSceneSpec()
	return scene.NewState(&spec, 1280, 720, 3)
}

func TestOffsetConverges(t *testing.T) {
	s := newFrameState(t)
	s.Redacted = true
	s.Pointer.X, s.Pointer.Y = 800, 400
	fs := NewFrameSystem()

	for n := 1; n <= 120; n++ {
		s.Elapsed = time.Duration(n) * tick
		fs.Update(s)
		remain := math.Pow(0.95, float64(n))
		if !near(s.Offset.X, 800*(1-remain)) || !near(s.Offset.Y, 400*(1-remain)) {
			t.Fatalf("frame %d: offset %+v, want %v remaining", n, s.Offset, remain)
		}
	}
}

func TestGlitchSuppression(t *testing.T) {
	cases := []struct {
		name     string
		moving   bool
		redacted bool
		suppress bool
	}{
		{"idle_revealed", false, false, false},
		{"moving", true, false, true},
		{"redacted", false, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newFrameState(t)
			s.Pointer.Moving = c.moving
			s.Redacted = c.redacted
			s.Elapsed = 10 * time.Millisecond
			NewFrameSystem().Update(s)
			if c.suppress && !s.Glitch.IsZero() {
				t.Fatalf("glitch should be suppressed, got %+v", s.Glitch)
			}
			if !c.suppress && s.Glitch.IsZero() {
				t.Fatalf("glitch should apply during the first cycle")
			}
		})
	}
}

func TestFrameIdleBeforeQuestionIn(t *testing.T) {
	s := newFrameState(t)
	s.Redacted = false
	s.Pointer.X, s.Pointer.Y = 1200, 50
	uniforms := s.Uniforms
	plane := s.PlaneGroup
	camera := s.CameraGroup

	fs := NewFrameSystem()
	for n := 0; n < 300; n++ {
		s.Elapsed = time.Duration(n) * tick
		s.Redacted = n%2 == 0
		fs.Update(s)
		if s.Uniforms != uniforms || s.PlaneGroup != plane || s.CameraGroup != camera {
			t.Fatalf("frame %d mutated uniforms or transforms before question in", n)
		}
	}
}

func TestFrameWritesAfterQuestionIn(t *testing.T) {
	s := newFrameState(t)
	s.QuestionIn = true
	s.Redacted = true
	s.Pointer.X, s.Pointer.Y = 640, 360
	s.Elapsed = 1500 * time.Millisecond

	NewFrameSystem().Update(s)

	tt := 1.5
	if !near(s.Uniforms.Time, tt) {
		t.Fatalf("uTime %v, want %v", s.Uniforms.Time, tt)
	}
	wantOffX := (640 - s.Offset.X) * 0.001
	wantOffY := -(360 - s.Offset.Y) * 0.001 * 16 / 9
	if !near(s.Uniforms.Offset.X, wantOffX) || !near(s.Uniforms.Offset.Y, wantOffY) {
		t.Fatalf("uOffset %+v, want (%v, %v)", s.Uniforms.Offset, wantOffX, wantOffY)
	}
	if !near(s.PlaneGroup.Position.Y, math.Sin(tt)*0.1) ||
		!near(s.PlaneGroup.Rotation.X, math.Sin(tt)*0.05) ||
		!near(s.PlaneGroup.Rotation.Y, math.Cos(tt)*0.05) {
		t.Fatalf("unexpected plane bob %+v", s.PlaneGroup)
	}
	if s.CameraGroup.Rotation.X != 0 || s.CameraGroup.Rotation.Y != 0 {
		t.Fatalf("redacted frame must not rotate the camera")
	}

	s.Redacted = false
	s.Pointer.X = 1280 * 4
	NewFrameSystem().Update(s)
	if !near(s.CameraGroup.Rotation.Y, 3.5) {
		t.Fatalf("pointer rotation is unclamped, got %v", s.CameraGroup.Rotation.Y)
	}
}

func TestPointerDebounce(t *testing.T) {
	s := newFrameState(t)
	ps := NewPointerSystem()
	steps := []struct {
		at     time.Duration
		x, y   float64
		moving bool
	}{
		{0, 10, 10, true},
		{50 * time.Millisecond, 10, 10, true},
		{60 * time.Millisecond, 12, 10, true},
		{150 * time.Millisecond, 12, 10, true},
		{160 * time.Millisecond, 12, 10, false},
		{500 * time.Millisecond, 12, 10, false},
	}
	for _, st := range steps {
		s.Elapsed = st.at
		s.Input = scene.Input{CursorX: st.x, CursorY: st.y}
		ps.Update(s)
		if s.Pointer.Moving != st.moving {
			t.Fatalf("at %v: moving=%v, want %v", st.at, s.Pointer.Moving, st.moving)
		}
	}
}

func TestScrollMovesCameraAndSnaps(t *testing.T) {
	s := newFrameState(t)
	ss := NewScrollSystem(s.Spec)

	s.Input = scene.Input{WheelY: -7.5}
	ss.Update(s)
	s.Input = scene.Input{}

	for i := 0; i < 1000 && ss.Scroller.Moving(); i++ {
		ss.Update(s)
	}
	if s.ScrollY != 900 {
		t.Fatalf("scroll should rest at 900, got %v", s.ScrollY)
	}
	if s.CanvasTop != s.ScrollY {
		t.Fatalf("canvas top %v should track scroll %v", s.CanvasTop, s.ScrollY)
	}
	if !near(ss.Camera.Progress(), 0.25) || !near(s.Camera.Position.Y, -3.75) {
		t.Fatalf("progress %v camera y %v", ss.Camera.Progress(), s.Camera.Position.Y)
	}

	for i := 0; i < 600; i++ {
		ss.Update(s)
	}
	if s.ScrollY != 720 || s.Camera.Position.Y != 0 {
		t.Fatalf("scroll should snap back to the trigger start, got scroll=%v cam=%v", s.ScrollY, s.Camera.Position.Y)
	}
}

func TestScrollResize(t *testing.T) {
	s := newFrameState(t)
	ss := NewScrollSystem(s.Spec)
	ss.Update(s)
	if ss.Scroller.Limit() != 720*2 {
		t.Fatalf("limit %v, want %v", ss.Scroller.Limit(), 720*2)
	}
	s.SetViewport(800, 600)
	ss.Update(s)
	if ss.Scroller.Limit() != 600*2 {
		t.Fatalf("limit after resize %v, want %v", ss.Scroller.Limit(), 600*2)
	}
	if r := ss.Bridge.BoundingRect(); r.Width != 800 || r.Height != 600 {
		t.Fatalf("bounding rect %+v should follow resize", r)
	}
}

func TestScrollReload(t *testing.T) {
	s := newFrameState(t)
	ss := NewScrollSystem(s.Spec)
	ss.Update(s)
	ss.Scroller.SetScrollTop(900)

	spec := prefabs.DefaultSceneSpec()
	spec.Scroll.Damping = 1
	spec.Scroll.Sections = append(spec.Scroll.Sections, prefabs.SectionSpec{ID: "section3"})
	spec.Trigger.Section = "section2"
	spec.Trigger.Scrub = false
	spec.Trigger.Snap = 0

	ss.Reload(&spec)
	s.Spec = &spec
	ss.Update(s)
	if ss.Scroller.Limit() != 720*3 {
		t.Fatalf("limit after reload %v, want %v", ss.Scroller.Limit(), 720*3)
	}
	if s.ScrollY != 900 {
		t.Fatalf("reload should keep the scroll position, got %v", s.ScrollY)
	}
	if ss.Camera.Progress() != 0 {
		t.Fatalf("step trigger before section2 should be 0, got %v", ss.Camera.Progress())
	}

	ss.Scroller.ScrollTo(2000)
	ss.Update(s)
	if s.ScrollY != 2000 {
		t.Fatalf("full damping should land in one update, got %v", s.ScrollY)
	}
	if ss.Camera.Progress() != 1 || !near(s.Camera.Position.Y, -15) {
		t.Fatalf("progress %v camera y %v past section2", ss.Camera.Progress(), s.Camera.Position.Y)
	}
}

func TestControls(t *testing.T) {
	s := newFrameState(t)
	cs := NewControlsSystem()
	before := s.Orbit

	s.Input = scene.Input{CursorX: 10, CursorY: 10, Held: true}
	cs.Update(s)
	if s.Orbit != before {
		t.Fatalf("disabled controls must not move the camera")
	}

	ToggleControls(s)
	cs.Update(s)
	s.Input = scene.Input{CursorX: 110, CursorY: 10, Held: true}
	cs.Update(s)
	if s.Orbit.Theta >= before.Theta {
		t.Fatalf("dragging right should orbit, theta %v", s.Orbit.Theta)
	}
	if s.Orbit.Radius < s.Spec.Controls.MinDistance || s.Orbit.Radius > s.Spec.Controls.MaxDistance {
		t.Fatalf("radius %v outside limits", s.Orbit.Radius)
	}
	if s.Orbit.Phi > s.Spec.Controls.MaxPolarAngle {
		t.Fatalf("phi %v beyond max polar angle", s.Orbit.Phi)
	}

	s.Input = scene.Input{WheelY: -200}
	cs.Update(s)
	if s.Orbit.Radius != s.Spec.Controls.MaxDistance {
		t.Fatalf("radius should clamp to max, got %v", s.Orbit.Radius)
	}
}
