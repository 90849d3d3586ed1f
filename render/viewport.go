package render

import (
	"errors"
	"fmt"
	"math"
)

// MaxPixelRatio caps the device scale factor used for the backbuffer.
const MaxPixelRatio = 2

var ErrInvalidViewport = errors.New("render: invalid viewport")

// Viewport is the window size in device-independent pixels plus the pixel
// ratio the backbuffer is rendered at.
type Viewport struct {
	Width, Height float64
	PixelRatio    float64
}

// PixelRatio clamps a device scale factor to (0, MaxPixelRatio].
func PixelRatio(deviceScale float64) float64 {
	if deviceScale <= 0 || math.IsNaN(deviceScale) {
		return 1
	}
	return math.Min(deviceScale, MaxPixelRatio)
}

// Resize records a new window size. It reports whether anything changed so
// callers only rebuild buffers when needed.
func (v *Viewport) Resize(width, height, deviceScale float64) (bool, error) {
	if width <= 0 || height <= 0 || math.IsNaN(width) || math.IsNaN(height) {
		return false, fmt.Errorf("%w: %vx%v", ErrInvalidViewport, width, height)
	}
	pr := PixelRatio(deviceScale)
	if v.Width == width && v.Height == height && v.PixelRatio == pr {
		return false, nil
	}
	v.Width, v.Height, v.PixelRatio = width, height, pr
	return true, nil
}

func (v Viewport) Aspect() float64 {
	if v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// BufferSize is the backbuffer size in physical pixels.
func (v Viewport) BufferSize() (int, int) {
	pr := v.PixelRatio
	if pr <= 0 {
		pr = 1
	}
	return int(math.Ceil(v.Width * pr)), int(math.Ceil(v.Height * pr))
}
