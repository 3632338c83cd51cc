package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
)

// Quad builds two triangles spanning corners a,b,c,d (in winding order)
// with a constant normal and unit UVs.
func Quad(a, b, c, d, normal core.Vec3) ([]Vertex, []uint32) {
	vertices := []Vertex{
		{Position: a, Normal: normal, UV: core.NewVec2(0, 0)},
		{Position: b, Normal: normal, UV: core.NewVec2(1, 0)},
		{Position: c, Normal: normal, UV: core.NewVec2(1, 1)},
		{Position: d, Normal: normal, UV: core.NewVec2(0, 1)},
	}
	return vertices, []uint32{0, 1, 2, 0, 2, 3}
}

// UnitCube builds an axis-aligned cube spanning (0,0,0)..(1,1,1) with
// outward normals, meant to be placed via instance transforms.
func UnitCube() ([]Vertex, []uint32) {
	var vertices []Vertex
	var indices []uint32

	faces := []struct {
		a, b, c, d core.Vec3
		normal     core.Vec3
	}{
		{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 1), core.NewVec3(0, 0, 1), core.NewVec3(0, -1, 0)},
		{core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 1), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, -1)},
		{core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 1), core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 1), core.NewVec3(0, 0, 1)},
		{core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 1), core.NewVec3(0, 1, 0), core.NewVec3(-1, 0, 0)},
		{core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 1), core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 0), core.NewVec3(1, 0, 0)},
	}

	for _, f := range faces {
		base := uint32(len(vertices))
		vs, is := Quad(f.a, f.b, f.c, f.d, f.normal)
		vertices = append(vertices, vs...)
		for _, i := range is {
			indices = append(indices, base+i)
		}
	}

	return vertices, indices
}

// NewCornellScene builds a Cornell-box style scene: colored diffuse walls,
// an emissive ceiling panel, one mirror box and one rough metal box. It
// exercises every material parameter the renderer supports.
func NewCornellScene() *Scene {
	s := &Scene{}

	white := s.AddMaterial(NewMaterial(core.NewVec3(0.73, 0.73, 0.73)))
	red := s.AddMaterial(NewMaterial(core.NewVec3(0.65, 0.05, 0.05)))
	green := s.AddMaterial(NewMaterial(core.NewVec3(0.12, 0.45, 0.15)))

	light := NewMaterial(core.NewVec3(0.78, 0.78, 0.78))
	light.Emittance = core.NewVec3(15, 15, 15)
	lightID := s.AddMaterial(light)

	mirror := NewMaterial(core.NewVec3(0.9, 0.9, 0.9))
	mirror.Metallic = 1
	mirror.Roughness = 0
	mirrorID := s.AddMaterial(mirror)

	gold := NewMaterial(core.NewVec3(1.0, 0.71, 0.29))
	gold.Metallic = 1
	gold.Roughness = 0.35
	goldID := s.AddMaterial(gold)

	addQuad := func(a, b, c, d, normal core.Vec3, materialID int) {
		vs, is := Quad(a, b, c, d, normal)
		prim := s.AddMesh(vs, is, materialID)
		s.AddInstance(prim, mgl64.Ident4())
	}

	// Box interior, 0..555 on each axis, normals facing inward
	addQuad(core.NewVec3(0, 0, 0), core.NewVec3(555, 0, 0), core.NewVec3(555, 0, 555), core.NewVec3(0, 0, 555), core.NewVec3(0, 1, 0), white)
	addQuad(core.NewVec3(0, 555, 0), core.NewVec3(555, 555, 0), core.NewVec3(555, 555, 555), core.NewVec3(0, 555, 555), core.NewVec3(0, -1, 0), white)
	addQuad(core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 555), core.NewVec3(555, 555, 555), core.NewVec3(0, 555, 555), core.NewVec3(0, 0, -1), white)
	addQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 555), core.NewVec3(0, 555, 555), core.NewVec3(0, 555, 0), core.NewVec3(1, 0, 0), red)
	addQuad(core.NewVec3(555, 0, 0), core.NewVec3(555, 0, 555), core.NewVec3(555, 555, 555), core.NewVec3(555, 555, 0), core.NewVec3(-1, 0, 0), green)

	// Ceiling light, slightly below the ceiling to avoid coplanar hits
	addQuad(core.NewVec3(213, 554, 227), core.NewVec3(343, 554, 227), core.NewVec3(343, 554, 332), core.NewVec3(213, 554, 332), core.NewVec3(0, -1, 0), lightID)

	// The two boxes are a single unit cube primitive placed twice with
	// non-uniform scales, exercising instance transforms and the
	// inverse-transpose normal path.
	cubeVs, cubeIs := UnitCube()
	tallCube := s.AddMesh(cubeVs, cubeIs, mirrorID)
	shortCube := s.AddMesh(cubeVs, cubeIs, goldID)

	s.AddInstance(tallCube, mgl64.Translate3D(265, 0, 295).Mul4(mgl64.Scale3D(165, 330, 165)))
	s.AddInstance(shortCube, mgl64.Translate3D(130, 0, 65).Mul4(mgl64.Scale3D(165, 165, 165)))

	s.Camera = LookAt(
		core.NewVec3(278, 278, -800),
		core.NewVec3(278, 278, 0),
		core.NewVec3(0, 1, 0),
		40.0*math.Pi/180.0,
		1.0,
		0.1, 2000,
	)

	return s
}
