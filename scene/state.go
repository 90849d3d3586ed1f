// Package scene holds the explicit state of the question scene. Systems and
// event handlers receive a *State instead of reaching for globals, so the
// whole frame update runs without a window.
package scene

import (
	"time"

	"github.com/milk9111/redact/common"
	"github.com/milk9111/redact/glitch"
	"github.com/milk9111/redact/prefabs"
	"github.com/milk9111/redact/tween"
)

// Pointer is the latest cursor sample and its idle debounce.
type Pointer struct {
	X, Y   float64
	Moving bool
	// IdleAt is when Moving clears unless another move arrives first.
	IdleAt      time.Duration
	HasDeadline bool
}

func (p Pointer) Pos() common.Vec2 {
	return common.Vec2{X: p.X, Y: p.Y}
}

// Input is one tick's worth of window events, in viewport pixels.
type Input struct {
	CursorX, CursorY float64
	Clicked          bool
	Held             bool
	WheelY           float64
}

// Uniforms mirror the shader material's uniforms. The texture itself is
// owned by the material.
type Uniforms struct {
	Alpha  float64
	Offset common.Vec2
	Time   float64
	Redact float64
}

// Transform is a position and XYZ Euler rotation in world units/radians.
type Transform struct {
	Position common.Vec3
	Rotation common.Vec3
}

type Viewport struct {
	Width, Height float64
}

// Orbit is the orbit-controls camera state, used only when enabled.
type Orbit struct {
	Enabled  bool
	Radius   float64
	Theta    float64
	Phi      float64
	VelTheta float64
	VelPhi   float64
}

type State struct {
	Spec *prefabs.SceneSpec

	Elapsed time.Duration
	// Delta is the length of one tick in seconds.
	Delta float64
	Frame int

	Viewport Viewport
	Input    Input
	Pointer  Pointer

	Offset common.Vec2
	// Glitch is the contribution used by the last frame, after suppression.
	Glitch common.Vec2

	Redacted   bool
	QuestionIn bool

	Uniforms    Uniforms
	PlaneGroup  Transform
	CameraGroup Transform
	Camera      Transform
	Orbit       Orbit

	ScrollY   float64
	CanvasTop float64

	Timeline *tween.Timeline
	Glitcher *glitch.Generator

	RedactEase tween.Ease
	// PendingUnredact clears Redacted once the un-redact settles.
	PendingUnredact *tween.Tween
}

// NewState builds the initial scene for a viewport. The card starts above
// the frame and redacted; the interaction system plays the intro.
func NewState(spec *prefabs.SceneSpec, width, height float64, seed uint64) *State {
	if spec == nil {
		def := prefabs.DefaultSceneSpec()
		spec = &def
	}
	s := &State{
		Spec:     spec,
		Delta:    1.0 / 60,
		Viewport: Viewport{Width: width, Height: height},
		Timeline: tween.NewTimeline(),
		Redacted: true,
		Orbit: Orbit{
			Enabled: spec.Controls.Enabled,
			Radius:  spec.Camera.GroupZ,
			Theta:   0,
			Phi:     1.5707963267948966,
		},
	}
	s.CameraGroup.Position = common.Vec3{Z: spec.Camera.GroupZ}
	s.PlaneGroup.Rotation.Z = spec.Trigger.RotationAngle
	s.Glitcher = glitch.NewGenerator(seed, GlitchParams(spec, nil), width, height)
	s.RedactEase = tween.Power3Out
	return s
}

// GlitchParams converts the scene's glitch settings. A nil ease keeps the
// generator default.
func GlitchParams(spec *prefabs.SceneSpec, ease tween.Ease) glitch.Params {
	p := glitch.DefaultParams()
	g := spec.Glitch
	p.Spread = g.Spread
	p.OutMin, p.OutMax = g.OutMin, g.OutMax
	p.BackMin, p.BackMax = g.BackMin, g.BackMax
	p.RestMin, p.RestMax = g.RestMin, g.RestMax
	if ease != nil {
		p.Ease = ease
	}
	return p
}

// PointerRotation is the camera-group rotation that faces the pointer.
// The result is not clamped.
func (s *State) PointerRotation() (x, y float64) {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return 0, 0
	}
	p := s.Spec.Parallax
	y = (s.Pointer.X/s.Viewport.Width - 0.5) * p.RotateY
	x = (s.Pointer.Y/s.Viewport.Height - 0.5) * p.RotateX
	return x, y
}

// SetViewport records a resize and passes it to the glitch generator.
func (s *State) SetViewport(width, height float64) {
	s.Viewport = Viewport{Width: width, Height: height}
	if s.Glitcher != nil {
		s.Glitcher.SetViewport(width, height)
	}
}
