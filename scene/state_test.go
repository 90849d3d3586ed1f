package scene

import (
	"math"
	"testing"

	"github.com/milk9111/redact/prefabs"
	"github.com/milk9111/redact/tween"
)

func TestNewState(t *testing.T) {
	s := NewState(nil, 1280, 720, 7)
	if !s.Redacted || s.QuestionIn {
		t.Fatalf("scene must start redacted and out")
	}
	if s.CameraGroup.Position.Z != s.Spec.Camera.GroupZ {
		t.Fatalf("camera group z %v", s.CameraGroup.Position.Z)
	}
	if s.Orbit.Enabled || s.Orbit.Radius != s.Spec.Camera.GroupZ {
		t.Fatalf("unexpected orbit %+v", s.Orbit)
	}
	if s.Glitcher.Seed() != 7 {
		t.Fatalf("glitch seed %d", s.Glitcher.Seed())
	}
	if s.Delta != 1.0/60 {
		t.Fatalf("delta %v", s.Delta)
	}
}

func TestPointerRotation(t *testing.T) {
	cases := []struct {
		name   string
		px, py float64
		wx, wy float64
	}{
		{"center", 640, 360, 0, 0},
		{"top_left", 0, 0, -0.25, -0.5},
		{"bottom_right", 1280, 720, 0.25, 0.5},
		{"outside", 2560, 1440, 0.75, 1.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewState(nil, 1280, 720, 1)
			s.Pointer.X, s.Pointer.Y = c.px, c.py
			x, y := s.PointerRotation()
			if math.Abs(x-c.wx) > 1e-12 || math.Abs(y-c.wy) > 1e-12 {
				t.Fatalf("rotation (%v, %v), want (%v, %v)", x, y, c.wx, c.wy)
			}
		})
	}

	s := NewState(nil, 0, 0, 1)
	if x, y := s.PointerRotation(); x != 0 || y != 0 {
		t.Fatalf("empty viewport should not rotate, got (%v, %v)", x, y)
	}
}

func TestGlitchParams(t *testing.T) {
	spec := prefabs.DefaultSceneSpec()
	spec.Glitch.Spread = 2
	p := GlitchParams(&spec, nil)
	if p.Spread != 2 || p.RestMin != spec.Glitch.RestMin || p.Ease == nil {
		t.Fatalf("unexpected params %+v", p)
	}
	p = GlitchParams(&spec, tween.Linear)
	if p.Ease(0.5) != 0.5 {
		t.Fatalf("explicit ease should be kept")
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (r recordSystem) Update(*State) {
	*r.log = append(*r.log, r.name)
}

func TestSchedulerOrder(t *testing.T) {
	var log []string
	sched := NewScheduler(recordSystem{"a", &log}, recordSystem{"b", &log})
	sched.Add(nil)
	sched.Add(recordSystem{"c", &log})

	s := NewState(nil, 1280, 720, 1)
	sched.Update(s)
	sched.Update(s)

	want := []string{"a", "b", "c", "a", "b", "c"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}
	if s.Frame != 2 {
		t.Fatalf("frame %d, want 2", s.Frame)
	}
	if len(sched.Systems()) != 3 {
		t.Fatalf("systems %d, want 3", len(sched.Systems()))
	}
}
