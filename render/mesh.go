package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Indices are 16 bit, so a plane may not exceed this many vertices.
const maxVertices = math.MaxUint16

var ErrEmptyImage = errors.New("render: image has no area")

type Vertex struct {
	X, Y, Z float64
	// U and V are texture coordinates in [0, 1] with V growing downward.
	U, V float64
}

// Plane is a segmented rectangle centered on the origin in the XY plane.
type Plane struct {
	Width, Height float64
	SegX, SegY    int
	Vertices      []Vertex
	Indices       []uint16
}

// NewPlane lays vertices out row by row from the top-left corner, two
// triangles per segment.
func NewPlane(width, height float64, segX, segY int) *Plane {
	segX = max(segX, 1)
	segY = max(segY, 1)
	p := &Plane{Width: width, Height: height, SegX: segX, SegY: segY}

	cols := segX + 1
	segW := width / float64(segX)
	segH := height / float64(segY)
	for iy := 0; iy <= segY; iy++ {
		y := height/2 - float64(iy)*segH
		for ix := 0; ix <= segX; ix++ {
			p.Vertices = append(p.Vertices, Vertex{
				X: float64(ix)*segW - width/2,
				Y: y,
				U: float64(ix) / float64(segX),
				V: float64(iy) / float64(segY),
			})
		}
	}
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint16(ix + cols*iy)
			b := uint16(ix + cols*(iy+1))
			c := uint16(ix + 1 + cols*(iy+1))
			d := uint16(ix + 1 + cols*iy)
			p.Indices = append(p.Indices, a, b, d, b, c, d)
		}
	}
	return p
}

// PlaneFromImage sizes a plane from an image's natural size: one world unit
// per pxPerUnit pixels and one segment per pxPerSeg pixels.
func PlaneFromImage(imgW, imgH int, pxPerUnit, pxPerSeg float64) (*Plane, error) {
	if imgW <= 0 || imgH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, imgW, imgH)
	}
	if pxPerUnit <= 0 || pxPerSeg <= 0 {
		return nil, fmt.Errorf("render: plane scale %v/%v must be positive", pxPerUnit, pxPerSeg)
	}
	segX, segY := capSegments(
		max(1, int(float64(imgW)/pxPerSeg)),
		max(1, int(float64(imgH)/pxPerSeg)),
	)
	return NewPlane(float64(imgW)/pxPerUnit, float64(imgH)/pxPerUnit, segX, segY), nil
}

func capSegments(segX, segY int) (int, int) {
	n := (segX + 1) * (segY + 1)
	if n <= maxVertices {
		return segX, segY
	}
	f := math.Sqrt(float64(maxVertices) / float64(n))
	segX = max(1, int(float64(segX)*f))
	segY = max(1, int(float64(segY)*f))
	for (segX+1)*(segY+1) > maxVertices {
		if segX >= segY {
			segX--
		} else {
			segY--
		}
	}
	return segX, segY
}

// Project transforms the plane by mvp into a bufW x bufH target and appends
// the result to verts and indices. Triangles with a vertex behind the
// camera are dropped.
func (p *Plane) Project(mvp mgl64.Mat4, bufW, bufH, texW, texH float64, verts []ebiten.Vertex, indices []uint16) ([]ebiten.Vertex, []uint16) {
	base := len(verts)
	behind := make([]bool, len(p.Vertices))
	for i, v := range p.Vertices {
		clip := mvp.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
		w := clip.W()
		if w <= 0 {
			behind[i] = true
			w = 1
		}
		nx, ny := clip.X()/w, clip.Y()/w
		verts = append(verts, ebiten.Vertex{
			DstX:   float32((nx + 1) / 2 * bufW),
			DstY:   float32((1 - ny) / 2 * bufH),
			SrcX:   float32(v.U * texW),
			SrcY:   float32(v.V * texH),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	for i := 0; i+2 < len(p.Indices); i += 3 {
		a, b, c := p.Indices[i], p.Indices[i+1], p.Indices[i+2]
		if behind[a] || behind[b] || behind[c] {
			continue
		}
		indices = append(indices, uint16(base)+a, uint16(base)+b, uint16(base)+c)
	}
	return verts, indices
}
