package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/redact/common"
	"github.com/milk9111/redact/prefabs"
	"github.com/milk9111/redact/scene"
)

// Renderer owns the offscreen canvas the plane is drawn into. The canvas is
// fixed to the viewport and only shifted by the page's canvas offset.
type Renderer struct {
	Viewport Viewport
	Camera   *Camera
	Plane    *Plane
	Material *Material
	Clear    color.NRGBA

	canvas  *ebiten.Image
	verts   []ebiten.Vertex
	indices []uint16
}

func NewRenderer(spec *prefabs.SceneSpec, tex *ebiten.Image, shaderSrc []byte) (*Renderer, error) {
	b := tex.Bounds()
	plane, err := PlaneFromImage(b.Dx(), b.Dy(), spec.Plane.PixelsPerUnit, spec.Plane.PixelsPerSegment)
	if err != nil {
		return nil, err
	}
	mat, err := NewMaterial(tex, shaderSrc)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		Camera:   NewCamera(spec.Camera, float64(common.BaseWidth)/common.BaseHeight),
		Plane:    plane,
		Material: mat,
	}
	r.ApplySpec(spec)
	return r, nil
}

// ApplySpec picks up camera and color changes from a reloaded scene.
func (r *Renderer) ApplySpec(spec *prefabs.SceneSpec) {
	r.Camera.FOV = spec.Camera.FOV
	r.Camera.Near = spec.Camera.Near
	r.Camera.Far = spec.Camera.Far
	r.Camera.UpdateProjectionMatrix()
	r.Clear = ClearColor(spec.Background.Color, spec.Light.Color.Color, spec.Light.Intensity)
}

// ClearColor tints the background by an ambient light of the given
// intensity.
func ClearColor(bg, light color.Color, intensity float64) color.NRGBA {
	t := common.Clamp(intensity, 0, 1)
	if bg == nil {
		bg = color.Black
	}
	if light == nil {
		light, t = color.Black, 0
	}
	b := color.NRGBAModel.Convert(bg).(color.NRGBA)
	l := color.NRGBAModel.Convert(light).(color.NRGBA)
	mix := func(a, c uint8) uint8 {
		return uint8(common.Lerp(float64(a), float64(c), t) + 0.5)
	}
	return color.NRGBA{R: mix(b.R, l.R), G: mix(b.G, l.G), B: mix(b.B, l.B), A: b.A}
}

// Resize updates the viewport, camera aspect and canvas. Invalid sizes are
// rejected and leave the renderer unchanged.
func (r *Renderer) Resize(width, height, deviceScale float64) error {
	changed, err := r.Viewport.Resize(width, height, deviceScale)
	if err != nil {
		return err
	}
	if !changed && r.canvas != nil {
		return nil
	}
	r.Camera.SetAspect(r.Viewport.Aspect())
	w, h := r.Viewport.BufferSize()
	if r.canvas != nil {
		r.canvas.Deallocate()
	}
	r.canvas = ebiten.NewImage(w, h)
	return nil
}

// MVP is the full transform applied to the plane's vertices.
func (r *Renderer) MVP(s *scene.State) mgl64.Mat4 {
	return r.Camera.Projection().Mul4(ViewMatrix(s)).Mul4(TransformMatrix(s.PlaneGroup))
}

func (r *Renderer) Draw(screen *ebiten.Image, s *scene.State) {
	if r.canvas == nil {
		return
	}
	r.canvas.Fill(r.Clear)

	bw, bh := r.Viewport.BufferSize()
	tb := r.Material.Texture.Bounds()
	r.verts, r.indices = r.Plane.Project(r.MVP(s), float64(bw), float64(bh),
		float64(tb.Dx()), float64(tb.Dy()), r.verts[:0], r.indices[:0])
	if len(r.indices) > 0 {
		op := &ebiten.DrawTrianglesShaderOptions{
			Uniforms: UniformMap(s.Uniforms),
			Images:   [4]*ebiten.Image{r.Material.Texture},
		}
		r.canvas.DrawTrianglesShader(r.verts, r.indices, r.Material.Shader, op)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, (s.CanvasTop-s.ScrollY)*r.Viewport.PixelRatio)
	screen.DrawImage(r.canvas, op)
}
