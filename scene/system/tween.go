package system

import "github.com/milk9111/redact/scene"

// TweenSystem advances the shared timeline to the scene clock. It runs
// first so delayed calls land before the frame reads state.
type TweenSystem struct{}

func NewTweenSystem() *TweenSystem {
	return &TweenSystem{}
}

func (ts *TweenSystem) Update(s *scene.State) {
	if s == nil || s.Timeline == nil {
		return
	}
	s.Timeline.Update(s.Elapsed)
}
