// Command redactview shows the redact shader on a flat image without the
// 3D scene. Mouse X scrubs the redaction, mouse Y the sampling offset.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/redact/assets"
	"github.com/milk9111/redact/common"
	"github.com/milk9111/redact/render"
	"github.com/milk9111/redact/scene"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

type Game struct {
	img    *ebiten.Image
	off    *ebiten.Image
	shader *ebiten.Shader
	path   string

	ticks    int
	uniforms scene.Uniforms
}

func NewGame(imagePath, shaderPath string) (*Game, error) {
	img := assets.MustLoadImage(imagePath)
	sh, err := assets.LoadShader(shaderPath)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &Game{
		img:    img,
		off:    ebiten.NewImage(b.Dx(), b.Dy()),
		shader: sh,
		path:   shaderPath,
	}, nil
}

func (g *Game) Update() error {
	g.ticks++
	mx, my := ebiten.CursorPosition()
	g.uniforms.Redact = common.Clamp(float64(mx)/screenWidth, 0, 1)
	g.uniforms.Offset = common.Vec2{Y: (float64(my)/screenHeight - 0.5) * 0.05}
	g.uniforms.Time = float64(g.ticks) / 60

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		sh, err := assets.LoadShader(g.path)
		if err != nil {
			log.Printf("redactview: %v", err)
		} else {
			g.shader.Deallocate()
			g.shader = sh
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	sw, sh := g.img.Bounds().Dx(), g.img.Bounds().Dy()
	g.off.Clear()
	g.off.DrawRectShader(sw, sh, g.shader, &ebiten.DrawRectShaderOptions{
		Images:   [4]*ebiten.Image{g.img},
		Uniforms: render.UniformMap(g.uniforms),
	})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screenWidth-sw)/2, float64(screenHeight-sh)/2)
	screen.DrawImage(g.off, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("redact %.2f  offset %.3f  (R reloads shader)",
		g.uniforms.Redact, g.uniforms.Offset.Y))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	imagePath := flag.String("image", "question.png", "image in assets/")
	shaderPath := flag.String("shader", "shaders/redact.kage", "Kage shader in assets/")
	flag.Parse()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("redact shader preview")

	g, err := NewGame(*imagePath, *shaderPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
