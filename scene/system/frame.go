package system

import (
	"math"

	"github.com/milk9111/redact/common"
	"github.com/milk9111/redact/scene"
)

// FrameSystem is the per-frame update: glitch suppression, offset
// smoothing, and, once the question is in, uniforms plus transforms.
type FrameSystem struct{}

func NewFrameSystem() *FrameSystem {
	return &FrameSystem{}
}

func (fs *FrameSystem) Update(s *scene.State) {
	if s == nil {
		return
	}
	spec := s.Spec
	t := s.Elapsed.Seconds()

	// The generator is always queried so its cycle table keeps pace with
	// the clock even while suppressed.
	g := s.Glitcher.Offset(s.Elapsed)
	if s.Pointer.Moving || s.Redacted {
		g = common.Vec2{}
	}
	s.Glitch = g

	// A fixed fraction per tick, so the response depends on the tick rate.
	s.Offset = s.Offset.Lerp(s.Pointer.Pos().Add(g), spec.Parallax.Lerp)

	if !s.QuestionIn {
		return
	}

	px := spec.Parallax
	d := s.Pointer.Pos().Sub(s.Offset)
	s.Uniforms.Offset = common.Vec2{
		X: d.X * px.GainX,
		Y: -d.Y * px.GainY * px.Aspect,
	}
	s.Uniforms.Time = t

	s.PlaneGroup.Position.Y = math.Sin(t) * spec.Plane.Bob
	s.PlaneGroup.Rotation.X = math.Sin(t) * spec.Plane.Tilt
	s.PlaneGroup.Rotation.Y = math.Cos(t) * spec.Plane.Tilt

	if !s.Redacted {
		s.CameraGroup.Rotation.X, s.CameraGroup.Rotation.Y = s.PointerRotation()
	}
}
