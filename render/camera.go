package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/redact/prefabs"
	"github.com/milk9111/redact/scene"
)

// Camera is a perspective camera. FOV is vertical, in degrees.
type Camera struct {
	FOV    float64
	Near   float64
	Far    float64
	Aspect float64

	projection mgl64.Mat4
}

func NewCamera(spec prefabs.CameraSpec, aspect float64) *Camera {
	c := &Camera{FOV: spec.FOV, Near: spec.Near, Far: spec.Far}
	c.SetAspect(aspect)
	return c
}

func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) {
		aspect = 1
	}
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

// UpdateProjectionMatrix must be called after changing FOV, Near, Far or
// Aspect directly.
func (c *Camera) UpdateProjectionMatrix() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *Camera) Projection() mgl64.Mat4 {
	return c.projection
}

// TransformMatrix builds translate * rotX * rotY * rotZ, the XYZ Euler
// order used for every transform in the scene.
func TransformMatrix(t scene.Transform) mgl64.Mat4 {
	p, r := t.Position, t.Rotation
	m := mgl64.Translate3D(p.X, p.Y, p.Z)
	m = m.Mul4(mgl64.HomogRotate3DX(r.X))
	m = m.Mul4(mgl64.HomogRotate3DY(r.Y))
	return m.Mul4(mgl64.HomogRotate3DZ(r.Z))
}

// ViewMatrix returns the world-to-camera matrix. The camera sits inside the
// camera group; with orbit controls enabled it orbits the origin instead.
func ViewMatrix(s *scene.State) mgl64.Mat4 {
	if s.Orbit.Enabled {
		return mgl64.LookAtV(OrbitEye(s.Orbit), mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	}
	world := TransformMatrix(s.CameraGroup).Mul4(TransformMatrix(s.Camera))
	return world.Inv()
}

// OrbitEye converts the spherical orbit state into a world position.
func OrbitEye(o scene.Orbit) mgl64.Vec3 {
	sinPhi := math.Sin(o.Phi)
	return mgl64.Vec3{
		o.Radius * sinPhi * math.Sin(o.Theta),
		o.Radius * math.Cos(o.Phi),
		o.Radius * sinPhi * math.Cos(o.Theta),
	}
}
