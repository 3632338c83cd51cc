package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
)

// Camera holds the view and projection transforms, each carrying forward
// and inverse matrices explicitly. Primary rays are built by unprojecting
// through the inverses, so no matrix is ever inverted per pixel.
type Camera struct {
	View core.Transform
	Proj core.Transform
}

// NewCamera builds a camera from explicit view and projection matrices
func NewCamera(view, proj mgl64.Mat4) *Camera {
	return &Camera{
		View: core.NewTransform(view),
		Proj: core.NewTransform(proj),
	}
}

// LookAt builds a camera from an eye position, target and vertical field of
// view (radians). The projection's Y axis is flipped so pixel rows grow
// downward, matching image memory order.
func LookAt(eye, center, up core.Vec3, fovY, aspect, near, far float64) *Camera {
	view := mgl64.LookAtV(
		mgl64.Vec3{eye.X, eye.Y, eye.Z},
		mgl64.Vec3{center.X, center.Y, center.Z},
		mgl64.Vec3{up.X, up.Y, up.Z},
	)
	proj := mgl64.Perspective(fovY, aspect, near, far)
	proj[5] *= -1
	return NewCamera(view, proj)
}

// GenerateRay builds the primary ray through pixel (px, py), jittered within
// the pixel footprint by jitter (each component in [0,1)).
func (c *Camera) GenerateRay(px, py, width, height int, jitter core.Vec2) core.Ray {
	u := (float64(px) + jitter.X) / float64(width)
	v := (float64(py) + jitter.Y) / float64(height)
	ndcX := 2.0*u - 1.0
	ndcY := 2.0*v - 1.0

	origin := c.View.ApplyInverse(core.NewVec3(0, 0, 0), 1)
	target := c.Proj.ApplyInverse(core.NewVec3(ndcX, ndcY, 1), 1)
	direction := c.View.ApplyInverse(target.Normalize(), 0).Normalize()

	return core.NewRay(origin, direction)
}
