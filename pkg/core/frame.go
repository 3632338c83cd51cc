package core

import (
	"math"
)

// Quat is a rotation quaternion (X, Y, Z vector part, W scalar part).
// The BSDF uses it to map a shading normal onto the local +Z axis without
// building an explicit tangent/bitangent basis.
type Quat struct {
	X, Y, Z, W float64
}

// RotationToZAxis returns the quaternion rotating unit vector n onto (0,0,1)
func RotationToZAxis(n Vec3) Quat {
	// n opposite to +Z: the shortest arc is degenerate, rotate about X instead
	if n.Z < -0.99999 {
		return Quat{X: 1, Y: 0, Z: 0, W: 0}
	}
	q := Quat{X: n.Y, Y: -n.X, Z: 0, W: 1.0 + n.Z}
	return q.normalize()
}

// Inverse returns the reverse rotation
func (q Quat) Inverse() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to a vector
func (q Quat) Rotate(v Vec3) Vec3 {
	axis := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	return v.Add(axis.Cross(axis.Cross(v).Add(v.Multiply(q.W))).Multiply(2.0))
}

func (q Quat) normalize() Quat {
	length := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length == 0 {
		return Quat{W: 1}
	}
	return Quat{X: q.X / length, Y: q.Y / length, Z: q.Z / length, W: q.W / length}
}
