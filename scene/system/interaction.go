package system

import (
	"github.com/milk9111/redact/scene"
	"github.com/milk9111/redact/tween"
)

// InteractionSystem plays the intro on its first tick and turns clicks into
// redact/un-redact transitions.
type InteractionSystem struct {
	started bool
}

func NewInteractionSystem() *InteractionSystem {
	return &InteractionSystem{}
}

func (is *InteractionSystem) Update(s *scene.State) {
	if s == nil {
		return
	}
	if !is.started {
		is.started = true
		Intro(s)
	}
	if s.Input.Clicked {
		Click(s)
	}
}

// Intro forces the redacted look, drops the card in, swings the camera
// toward the pointer, then brings the question in and un-redacts it.
func Intro(s *scene.State) {
	spec := s.Spec
	s.Redacted = true
	s.QuestionIn = false
	blendTo(s, 1)

	s.Timeline.FromTo(&s.PlaneGroup.Position.Y, spec.Plane.DropHeight, 0, tween.Options{
		Duration: spec.Plane.DropDuration,
	})

	s.Timeline.Call(spec.Intro.CameraAt, func() {
		x, y := s.PointerRotation()
		opts := tween.Options{Duration: spec.Intro.CameraDuration}
		s.Timeline.To(&s.CameraGroup.Rotation.X, x, opts)
		s.Timeline.To(&s.CameraGroup.Rotation.Y, y, opts)
	})

	s.Timeline.Call(spec.Intro.QuestionInAt, func() {
		s.QuestionIn = true
		unredact(s, false)
	})
}

// Click toggles between the redacted and revealed card.
func Click(s *scene.State) {
	if s.Redacted {
		Unredact(s)
		return
	}
	Redact(s)
}

// Redact hides the card and levels the camera. The flag is set at once so
// the frame loop stops following the pointer on this tick.
func Redact(s *scene.State) {
	spec := s.Spec
	if s.PendingUnredact != nil {
		s.PendingUnredact.Kill()
		s.PendingUnredact = nil
	}
	blendTo(s, 1)
	opts := tween.Options{Duration: spec.Redact.ResetDuration}
	s.Timeline.To(&s.CameraGroup.Rotation.X, 0, opts)
	s.Timeline.To(&s.CameraGroup.Rotation.Y, 0, opts)
	s.Redacted = true
}

// Unredact reveals the card, swings the camera to the pointer and clears
// the flag once the settle delay passes.
func Unredact(s *scene.State) {
	unredact(s, true)
}

func unredact(s *scene.State, followPointer bool) {
	spec := s.Spec
	blendTo(s, 0)
	if followPointer {
		x, y := s.PointerRotation()
		opts := tween.Options{Duration: spec.Redact.CameraDuration}
		s.Timeline.To(&s.CameraGroup.Rotation.Y, y, opts)
		s.Timeline.To(&s.CameraGroup.Rotation.X, x, opts)
	}
	if s.PendingUnredact != nil {
		s.PendingUnredact.Kill()
	}
	s.PendingUnredact = s.Timeline.Call(spec.Redact.Settle, func() {
		s.Redacted = false
		s.PendingUnredact = nil
	})
}

func blendTo(s *scene.State, v float64) {
	s.Timeline.To(&s.Uniforms.Redact, v, tween.Options{
		Duration: s.Spec.Redact.Duration,
		Ease:     s.RedactEase,
	})
}
