package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Lerp blends from a toward b by t. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Lerp moves each component of v toward to by t.
func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(v.X, to.X, t), Y: Lerp(v.Y, to.Y, t)}
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

type Vec3 struct {
	X, Y, Z float64
}
