package geometry

import (
	"math"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
	"github.com/softtracer/go-pbr-pathtracer/pkg/scene"
)

// Resolve reconstructs the world-space position, normal and uv for a hit on
// triangle tri of an instance, given the 2-component barycentric hit
// attribute (w0 = 1-u-v, w1 = u, w2 = v). The normal goes through the
// inverse-transpose of the object-to-world matrix so it stays perpendicular
// under non-uniform scale.
func Resolve(s *scene.Scene, inst scene.Instance, tri int, bary core.Vec2) (position, normal core.Vec3, uv core.Vec2) {
	prim := s.Primitives[inst.Primitive]
	verts := s.Triangle(prim, tri)

	w0 := 1.0 - bary.X - bary.Y
	w1 := bary.X
	w2 := bary.Y

	localPos := verts[0].Position.Multiply(w0).
		Add(verts[1].Position.Multiply(w1)).
		Add(verts[2].Position.Multiply(w2))
	localNormal := verts[0].Normal.Multiply(w0).
		Add(verts[1].Normal.Multiply(w1)).
		Add(verts[2].Normal.Multiply(w2)).
		Normalize()

	uv = core.NewVec2(
		w0*verts[0].UV.X+w1*verts[1].UV.X+w2*verts[2].UV.X,
		w0*verts[0].UV.Y+w1*verts[1].UV.Y+w2*verts[2].UV.Y,
	)

	position = inst.ObjectToWorld.Apply(localPos, 1)
	normal = inst.ObjectToWorld.ApplyNormal(localNormal).Normalize()
	return position, normal, uv
}

// TangentFrame builds an orthonormal tangent and bitangent around a unit
// normal. The branch picks whichever of the X and Y components is larger so
// the cross products never degenerate when the normal aligns with an axis.
func TangentFrame(n core.Vec3) (tangent, bitangent core.Vec3) {
	if math.Abs(n.X) > math.Abs(n.Y) {
		invLen := 1.0 / math.Sqrt(n.X*n.X+n.Z*n.Z)
		tangent = core.NewVec3(n.Z, 0, -n.X).Multiply(invLen)
	} else {
		invLen := 1.0 / math.Sqrt(n.Y*n.Y+n.Z*n.Z)
		tangent = core.NewVec3(0, -n.Z, n.Y).Multiply(invLen)
	}
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}
