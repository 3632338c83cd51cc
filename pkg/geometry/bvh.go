package geometry

import (
	"sort"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
	"github.com/softtracer/go-pbr-pathtracer/pkg/scene"
)

// BVH is the reference CPU intersection oracle: a median-split bounding
// volume hierarchy over every instanced triangle in the scene. It satisfies
// the core.Intersector contract (closest hit, opaque geometry).
type BVH struct {
	scene *scene.Scene
	root  *bvhNode
}

// triangleRef points back into the scene buffers; world-space corners are
// precomputed once at build time since buffers are frozen for the frame.
type triangleRef struct {
	instance   int
	tri        int
	v0, v1, v2 core.Vec3
	bounds     core.AABB
}

type bvhNode struct {
	bounds core.AABB
	left   *bvhNode
	right  *bvhNode
	tris   []triangleRef // non-nil only for leaves
}

// Leaf threshold: small groups are cheaper to scan linearly than to split
const leafThreshold = 8

// NewBVH flattens all instances into world-space triangle references and
// builds the hierarchy
func NewBVH(s *scene.Scene) *BVH {
	var refs []triangleRef
	for instIdx, inst := range s.Instances {
		prim := s.Primitives[inst.Primitive]
		for tri := 0; tri < prim.TriangleCount(); tri++ {
			verts := s.Triangle(prim, tri)
			v0 := inst.ObjectToWorld.Apply(verts[0].Position, 1)
			v1 := inst.ObjectToWorld.Apply(verts[1].Position, 1)
			v2 := inst.ObjectToWorld.Apply(verts[2].Position, 1)
			refs = append(refs, triangleRef{
				instance: instIdx,
				tri:      tri,
				v0:       v0,
				v1:       v1,
				v2:       v2,
				bounds:   core.NewAABBFromPoints(v0, v1, v2),
			})
		}
	}

	bvh := &BVH{scene: s}
	if len(refs) > 0 {
		bvh.root = buildNode(refs)
	}
	return bvh
}

func buildNode(refs []triangleRef) *bvhNode {
	bounds := refs[0].bounds
	for _, r := range refs[1:] {
		bounds = bounds.Union(r.bounds)
	}

	if len(refs) <= leafThreshold {
		return &bvhNode{bounds: bounds, tris: refs}
	}

	// Median split along the longest axis; much faster to build than SAH
	// and good enough for the scene sizes this renderer targets
	axis := bounds.LongestAxis()
	sort.Slice(refs, func(i, j int) bool {
		ci := refs[i].bounds.Center()
		cj := refs[j].bounds.Center()
		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})

	mid := len(refs) / 2
	return &bvhNode{
		bounds: bounds,
		left:   buildNode(refs[:mid]),
		right:  buildNode(refs[mid:]),
	}
}

// candidate is the closest intersection found so far during traversal
type candidate struct {
	t        float64
	instance int
	tri      int
	bary     core.Vec2
	found    bool
}

// Trace returns the closest hit along the ray in (tMin, tMax), fully
// resolved to world-space attributes
func (b *BVH) Trace(ray core.Ray, tMin, tMax float64) (core.HitInfo, bool) {
	if b.root == nil {
		return core.HitInfo{}, false
	}

	var best candidate
	best.t = tMax
	b.traverse(b.root, ray, tMin, &best)
	if !best.found {
		return core.HitInfo{}, false
	}

	inst := b.scene.Instances[best.instance]
	position, normal, uv := Resolve(b.scene, inst, best.tri, best.bary)
	return core.HitInfo{
		Position:   position,
		Normal:     normal,
		UV:         uv,
		MaterialID: b.scene.Primitives[inst.Primitive].MaterialID,
	}, true
}

func (b *BVH) traverse(node *bvhNode, ray core.Ray, tMin float64, best *candidate) {
	if !node.bounds.Hit(ray, tMin, best.t) {
		return
	}

	if node.tris != nil {
		for _, ref := range node.tris {
			if t, u, v, ok := intersectTriangle(ray, ref, tMin, best.t); ok {
				best.t = t
				best.instance = ref.instance
				best.tri = ref.tri
				best.bary = core.NewVec2(u, v)
				best.found = true
			}
		}
		return
	}

	b.traverse(node.left, ray, tMin, best)
	b.traverse(node.right, ray, tMin, best)
}

// intersectTriangle runs the Möller-Trumbore test against a world-space
// triangle, returning the barycentric hit attribute alongside t
func intersectTriangle(ray core.Ray, ref triangleRef, tMin, tMax float64) (t, u, v float64, ok bool) {
	const epsilon = 1e-8

	edge1 := ref.v1.Subtract(ref.v0)
	edge2 := ref.v2.Subtract(ref.v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray parallel to the triangle plane
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(ref.v0)
	u = f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return 0, 0, 0, false
	}

	return t, u, v, true
}
