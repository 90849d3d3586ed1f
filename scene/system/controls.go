package system

import (
	"math"

	"github.com/milk9111/redact/common"
	"github.com/milk9111/redact/scene"
)

// ControlsSystem drives the orbit camera when it is enabled. It is off by
// default and the renderer ignores the orbit state until it is turned on.
type ControlsSystem struct {
	dragging     bool
	lastX, lastY float64
}

func NewControlsSystem() *ControlsSystem {
	return &ControlsSystem{}
}

func (cs *ControlsSystem) Update(s *scene.State) {
	if s == nil {
		return
	}
	o := &s.Orbit
	if !o.Enabled {
		cs.dragging = false
		return
	}
	c := s.Spec.Controls
	in := s.Input

	if in.Held {
		if cs.dragging && s.Viewport.Height > 0 {
			dx := in.CursorX - cs.lastX
			dy := in.CursorY - cs.lastY
			o.VelTheta -= 2 * math.Pi * dx / s.Viewport.Height * c.RotateSpeed
			o.VelPhi -= 2 * math.Pi * dy / s.Viewport.Height * c.RotateSpeed
		}
		cs.dragging = true
		cs.lastX, cs.lastY = in.CursorX, in.CursorY
	} else {
		cs.dragging = false
	}

	if in.WheelY != 0 {
		o.Radius *= math.Pow(0.95, in.WheelY)
	}

	if c.Damping {
		o.Theta += o.VelTheta * c.DampingFactor
		o.Phi += o.VelPhi * c.DampingFactor
		o.VelTheta *= 1 - c.DampingFactor
		o.VelPhi *= 1 - c.DampingFactor
	} else {
		o.Theta += o.VelTheta
		o.Phi += o.VelPhi
		o.VelTheta, o.VelPhi = 0, 0
	}

	o.Phi = common.Clamp(o.Phi, 1e-6, c.MaxPolarAngle)
	o.Radius = common.Clamp(o.Radius, c.MinDistance, c.MaxDistance)
}

// ToggleControls flips orbit controls and resets their motion.
func ToggleControls(s *scene.State) {
	s.Orbit.Enabled = !s.Orbit.Enabled
	s.Orbit.VelTheta, s.Orbit.VelPhi = 0, 0
}
