package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/redact/scene"
)

// Input polls ebiten once per tick and converts the cursor from backbuffer
// pixels back into viewport pixels.
type Input struct {
	PixelRatio float64
	// Blocked reports whether a backbuffer position belongs to an overlay
	// that consumes clicks.
	Blocked func(x, y int) bool
}

func NewInput() *Input {
	return &Input{PixelRatio: 1}
}

func (i *Input) Update() scene.Input {
	pr := i.PixelRatio
	if pr <= 0 {
		pr = 1
	}

	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	in := scene.Input{
		CursorX: float64(mx) / pr,
		CursorY: float64(my) / pr,
		Held:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  wy,
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Clicked = i.Blocked == nil || !i.Blocked(mx, my)
	}
	if in.Held && i.Blocked != nil && i.Blocked(mx, my) {
		in.Held = false
	}
	return in
}
