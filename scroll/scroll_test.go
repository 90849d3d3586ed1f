package scroll

import (
	"math"
	"testing"
)

const dt = 1.0 / 60

func TestScrollerDampedApproach(t *testing.T) {
	s := NewScroller(0.1)
	s.SetSize(720, 720*4)
	s.ScrollTo(1000)

	for i := 1; i <= 30; i++ {
		s.Update(dt)
		want := 1000 * (1 - math.Pow(0.9, float64(i)))
		if math.Abs(s.ScrollTop()-want) > 1e-6*1000+restThreshold {
			t.Fatalf("step %d: scrollTop %v, want about %v", i, s.ScrollTop(), want)
		}
	}
	if !s.Moving() {
		t.Fatalf("scroller should still be moving after 30 steps")
	}

	for i := 0; i < 500; i++ {
		s.Update(dt)
	}
	if s.Moving() || s.ScrollTop() != 1000 {
		t.Fatalf("scroller should rest on target, got %v moving=%v", s.ScrollTop(), s.Moving())
	}
}

func TestScrollerClampsToLimit(t *testing.T) {
	cases := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"above_top", -500, 0},
		{"past_bottom", 10000, 720 * 2},
		{"inside", 300, 300},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewScroller(0.1)
			s.SetSize(720, 720*3)
			s.AddDelta(c.delta)
			if s.Target() != c.want {
				t.Fatalf("target %v, want %v", s.Target(), c.want)
			}
			s.SetScrollTop(c.delta)
			if s.ScrollTop() != c.want {
				t.Fatalf("SetScrollTop(%v) = %v, want %v", c.delta, s.ScrollTop(), c.want)
			}
		})
	}
}

func TestBridgeTracksCanvasAndTriggers(t *testing.T) {
	s := NewScroller(1)
	b := NewBridge(s)
	b.SetViewport(1280, 720, 720*3)

	rect := b.BoundingRect()
	if rect != (Rect{Width: 1280, Height: 720}) {
		t.Fatalf("bounding rect %+v should cover the viewport", rect)
	}

	ts := NewTriggers(b)
	trig := &Trigger{
		Start: func(h float64) float64 { return h },
		End:   func(h float64) float64 { return 2 * h },
		Scrub: true,
	}
	ts.Add(trig)
	b.Connect(ts)

	s.ScrollTo(1080)
	s.Update(dt)

	if b.CanvasTop() != 1080 {
		t.Fatalf("canvas top %v should follow scroll", b.CanvasTop())
	}
	if math.Abs(trig.Progress()-0.5) > 1e-9 {
		t.Fatalf("trigger progress %v, want 0.5", trig.Progress())
	}

	b.SetScrollTop(0)
	s.Update(dt)
	if trig.Progress() != 0 {
		t.Fatalf("trigger progress %v, want 0 above start", trig.Progress())
	}
}

func TestTriggerModes(t *testing.T) {
	cases := []struct {
		name   string
		scrub  bool
		scroll float64
		want   float64
	}{
		{"scrub_before", true, 100, 0},
		{"scrub_mid", true, 900, 0.25},
		{"scrub_after", true, 2000, 1},
		{"step_before", false, 100, 0},
		{"step_after_start", false, 800, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := &Trigger{
				Start: func(h float64) float64 { return h },
				End:   func(h float64) float64 { return 2 * h },
				Scrub: c.scrub,
			}
			tr.update(c.scroll, 720)
			if math.Abs(tr.Progress()-c.want) > 1e-9 {
				t.Fatalf("progress %v, want %v", tr.Progress(), c.want)
			}
		})
	}
}

func TestTriggerSnap(t *testing.T) {
	s := NewScroller(1)
	b := NewBridge(s)
	b.SetViewport(1280, 720, 720*3)
	ts := NewTriggers(b)
	ts.Add(&Trigger{
		Start: func(h float64) float64 { return h },
		End:   func(h float64) float64 { return 2 * h },
		Scrub: true,
		Snap:  1,
	})
	b.Connect(ts)

	cases := []struct {
		name   string
		scroll float64
		want   float64
		ok     bool
	}{
		{"near_start", 800, 720, true},
		{"near_end", 1300, 1440, true},
		{"outside", 300, 0, false},
		{"on_end", 1440, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b.SetScrollTop(c.scroll)
			s.Update(dt)
			got, ok := ts.SnapTarget()
			if ok != c.ok || (ok && got != c.want) {
				t.Fatalf("SnapTarget() = %v, %v; want %v, %v", got, ok, c.want, c.ok)
			}
		})
	}
}
