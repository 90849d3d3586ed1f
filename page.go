package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/redact/prefabs"
	"github.com/milk9111/redact/scene"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const titleScale = 4

// Page draws the scrolling document on top of the fixed canvas: one heading
// per section and the cursor follower.
type Page struct {
	spec *prefabs.SceneSpec
	face ebtext.Face
}

func NewPage(spec *prefabs.SceneSpec) *Page {
	return &Page{
		spec: spec,
		face: ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

func (p *Page) SetSpec(spec *prefabs.SceneSpec) {
	p.spec = spec
}

// SectionTop is a section's top edge in viewport pixels for a scroll
// offset. Every section is one viewport tall.
func SectionTop(index int, viewportHeight, scrollY float64) float64 {
	return float64(index)*viewportHeight - scrollY
}

func (p *Page) Draw(screen *ebiten.Image, s *scene.State, pixelRatio float64) {
	vh := s.Viewport.Height
	for i, sec := range p.spec.Scroll.Sections {
		if sec.Title == "" {
			continue
		}
		top := SectionTop(i, vh, s.ScrollY)
		if top+vh < 0 || top > vh {
			continue
		}
		op := &ebtext.DrawOptions{}
		op.GeoM.Scale(titleScale*pixelRatio, titleScale*pixelRatio)
		op.GeoM.Translate(48*pixelRatio, (top+48)*pixelRatio)
		op.ColorScale.ScaleWithColor(colornames.Dimgray)
		ebtext.Draw(screen, sec.Title, p.face, op)
	}

	r := p.spec.Cursor.Radius
	if r <= 0 {
		return
	}
	var clr color.Color = colornames.Black
	if p.spec.Cursor.Color.Color != nil {
		clr = p.spec.Cursor.Color.Color
	}
	vector.FillCircle(screen,
		float32(s.Pointer.X*pixelRatio), float32(s.Pointer.Y*pixelRatio),
		float32(r*pixelRatio), clr, true)
}
