package system

import "github.com/milk9111/redact/scene"

// PointerSystem records cursor moves and clears the moving flag once the
// cursor has rested for the configured idle time.
type PointerSystem struct{}

func NewPointerSystem() *PointerSystem {
	return &PointerSystem{}
}

func (ps *PointerSystem) Update(s *scene.State) {
	if s == nil {
		return
	}
	in := s.Input
	if in.CursorX != s.Pointer.X || in.CursorY != s.Pointer.Y {
		MovePointer(s, in.CursorX, in.CursorY)
		return
	}
	p := &s.Pointer
	if p.HasDeadline && s.Elapsed >= p.IdleAt {
		p.Moving = false
		p.HasDeadline = false
	}
}

// MovePointer handles one pointer-move event. Any pending idle deadline is
// replaced.
func MovePointer(s *scene.State, x, y float64) {
	p := &s.Pointer
	p.X, p.Y = x, y
	p.Moving = true
	p.IdleAt = s.Elapsed + s.Spec.Pointer.Idle
	p.HasDeadline = true
}
