package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform carries a matrix together with its precomputed inverse.
// The inverse is computed once at construction so per-pixel unprojection
// never inverts a matrix, and degenerate projections fail loudly at setup
// time rather than producing garbage mid-frame.
type Transform struct {
	Forward mgl64.Mat4
	Inverse mgl64.Mat4
}

// NewTransform builds a transform pair from a forward matrix
func NewTransform(m mgl64.Mat4) Transform {
	return Transform{Forward: m, Inverse: m.Inv()}
}

// Apply transforms v as a homogeneous vector with the given w
// (w=1 for points, w=0 for directions), truncating the result to xyz
func (t Transform) Apply(v Vec3, w float64) Vec3 {
	return mulMat4(t.Forward, v, w)
}

// ApplyInverse transforms v by the precomputed inverse matrix
func (t Transform) ApplyInverse(v Vec3, w float64) Vec3 {
	return mulMat4(t.Inverse, v, w)
}

// ApplyNormal transforms a normal by the inverse-transpose of the forward
// matrix, which keeps normals perpendicular under non-uniform scale.
// The result is not normalized.
func (t Transform) ApplyNormal(n Vec3) Vec3 {
	return mulMat4(t.Inverse.Transpose(), n, 0)
}

func mulMat4(m mgl64.Mat4, v Vec3, w float64) Vec3 {
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, w})
	return Vec3{X: r[0], Y: r[1], Z: r[2]}
}
