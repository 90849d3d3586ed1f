package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/redact/scene"
	"github.com/milk9111/redact/scene/system"
	"golang.org/x/image/font/basicfont"
)

// DebugUI is a small panel in the top-right corner with the live scene
// flags and buttons that drive the same transitions as clicks.
type DebugUI struct {
	UI *ebitenui.UI

	panel     *widget.Container
	status    *widget.Text
	redactBtn *widget.Button
	orbitBtn  *widget.Button
}

func NewDebugUI(g *Game) *DebugUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	d := &DebugUI{}

	d.status = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(rowData),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(rowData),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	d.redactBtn = button("Redact", func() {
		system.Click(g.state)
	})
	d.orbitBtn = button("Orbit: Off", func() {
		system.ToggleControls(g.state)
	})
	reloadBtn := button("Reload", func() {
		g.reloadScene()
		g.reloadShader()
	})

	d.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	d.panel.AddChild(d.status)
	d.panel.AddChild(d.redactBtn)
	d.panel.AddChild(d.orbitBtn)
	d.panel.AddChild(reloadBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(d.panel)

	d.UI = &ebitenui.UI{Container: root}
	return d
}

// Refresh copies the scene flags into the panel labels.
func (d *DebugUI) Refresh(s *scene.State) {
	if d == nil || s == nil {
		return
	}
	d.status.Label = StatusText(s)

	label := "Redact"
	if s.Redacted {
		label = "Un-redact"
	}
	if text := d.redactBtn.Text(); text != nil {
		text.Label = label
	}

	label = "Orbit: Off"
	if s.Orbit.Enabled {
		label = "Orbit: On"
	}
	if text := d.orbitBtn.Text(); text != nil {
		text.Label = label
	}
}

// Contains reports whether a screen position is over the panel.
func (d *DebugUI) Contains(x, y int) bool {
	if d == nil || d.panel == nil {
		return false
	}
	return image.Pt(x, y).In(d.panel.GetWidget().Rect)
}

func StatusText(s *scene.State) string {
	return fmt.Sprintf("t %.2fs\nredacted %v\nquestion in %v\nblend %.2f\nscroll %.0f\nseed %d",
		s.Elapsed.Seconds(), s.Redacted, s.QuestionIn, s.Uniforms.Redact, s.ScrollY, s.Glitcher.Seed())
}
