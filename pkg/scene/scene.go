package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
)

// Vertex is one corner of a mesh triangle. Vertices are owned by the scene
// and referenced by index, never copied per hit.
type Vertex struct {
	Position core.Vec3
	Normal   core.Vec3
	UV       core.Vec2
}

// Material describes a metallic-roughness surface, shared by many
// primitives. A texture id of -1 means "no texture", not "black".
type Material struct {
	BaseColor                core.Vec3
	ColorTexture             int
	Emittance                core.Vec3
	EmittanceTexture         int
	Metallic                 float64 // 0 = dielectric, 1 = metal
	Roughness                float64 // 0 = perfect mirror, 1 = fully rough
	MetallicRoughnessTexture int     // G scales roughness, B scales metallic
}

// NewMaterial creates an untextured material with the given base color
func NewMaterial(baseColor core.Vec3) Material {
	return Material{
		BaseColor:                baseColor,
		ColorTexture:             -1,
		EmittanceTexture:         -1,
		MetallicRoughnessTexture: -1,
	}
}

// PrimitiveInfo locates one triangle mesh inside the shared buffers
type PrimitiveInfo struct {
	IndexOffset  int // First index of this mesh in the shared index buffer
	VertexOffset int // Added to each index to address the shared vertex buffer
	IndexCount   int // Always a multiple of 3
	MaterialID   int
}

// TriangleCount returns the number of triangles in the primitive
func (p PrimitiveInfo) TriangleCount() int {
	return p.IndexCount / 3
}

// Instance places a primitive in the world with its own transform
type Instance struct {
	Primitive     int
	ObjectToWorld core.Transform
}

// Scene owns the shared geometry and material buffers. All buffers are
// populated before rendering begins and are read-only for the duration of
// a frame, so workers share them without locking.
type Scene struct {
	Vertices   []Vertex
	Indices    []uint32
	Primitives []PrimitiveInfo
	Materials  []Material
	Instances  []Instance
	Camera     *Camera
}

// AddMaterial appends a material and returns its id
func (s *Scene) AddMaterial(m Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddMesh appends a triangle mesh to the shared buffers and returns the
// primitive index. Indices are local to the given vertex slice.
func (s *Scene) AddMesh(vertices []Vertex, indices []uint32, materialID int) int {
	prim := PrimitiveInfo{
		IndexOffset:  len(s.Indices),
		VertexOffset: len(s.Vertices),
		IndexCount:   len(indices),
		MaterialID:   materialID,
	}
	s.Vertices = append(s.Vertices, vertices...)
	s.Indices = append(s.Indices, indices...)
	s.Primitives = append(s.Primitives, prim)
	return len(s.Primitives) - 1
}

// AddInstance places a primitive with the given object-to-world matrix
func (s *Scene) AddInstance(primitive int, objectToWorld mgl64.Mat4) {
	s.Instances = append(s.Instances, Instance{
		Primitive:     primitive,
		ObjectToWorld: core.NewTransform(objectToWorld),
	})
}

// Triangle returns the three vertices of triangle tri within primitive p
func (s *Scene) Triangle(p PrimitiveInfo, tri int) [3]Vertex {
	base := p.IndexOffset + 3*tri
	return [3]Vertex{
		s.Vertices[int(s.Indices[base])+p.VertexOffset],
		s.Vertices[int(s.Indices[base+1])+p.VertexOffset],
		s.Vertices[int(s.Indices[base+2])+p.VertexOffset],
	}
}
