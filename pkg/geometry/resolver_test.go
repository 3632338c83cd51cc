package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
	"github.com/softtracer/go-pbr-pathtracer/pkg/scene"
)

// triangleScene builds a scene holding a single triangle with distinct
// per-vertex attributes, instanced with the given transform
func triangleScene(verts [3]scene.Vertex, objectToWorld mgl64.Mat4) *scene.Scene {
	s := &scene.Scene{}
	mat := s.AddMaterial(scene.NewMaterial(core.NewVec3(1, 1, 1)))
	prim := s.AddMesh(verts[:], []uint32{0, 1, 2}, mat)
	s.AddInstance(prim, objectToWorld)
	return s
}

func TestResolve_BarycentricInterpolation(t *testing.T) {
	verts := [3]scene.Vertex{
		{Position: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), UV: core.NewVec2(0, 0)},
		{Position: core.NewVec3(1, 0, 0), Normal: core.NewVec3(0, 0, 1), UV: core.NewVec2(1, 0)},
		{Position: core.NewVec3(0, 1, 0), Normal: core.NewVec3(0, 0, 1), UV: core.NewVec2(0, 1)},
	}
	s := triangleScene(verts, mgl64.Ident4())

	tests := []struct {
		name    string
		bary    core.Vec2
		wantPos core.Vec3
		wantUV  core.Vec2
	}{
		{"First vertex", core.NewVec2(0, 0), core.NewVec3(0, 0, 0), core.NewVec2(0, 0)},
		{"Second vertex", core.NewVec2(1, 0), core.NewVec3(1, 0, 0), core.NewVec2(1, 0)},
		{"Third vertex", core.NewVec2(0, 1), core.NewVec3(0, 1, 0), core.NewVec2(0, 1)},
		{"Centroid", core.NewVec2(1.0/3, 1.0/3), core.NewVec3(1.0/3, 1.0/3, 0), core.NewVec2(1.0/3, 1.0/3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, normal, uv := Resolve(s, s.Instances[0], 0, tt.bary)

			const tolerance = 1e-12
			if pos.Subtract(tt.wantPos).Length() > tolerance {
				t.Errorf("Position: expected %v, got %v", tt.wantPos, pos)
			}
			if normal.Subtract(core.NewVec3(0, 0, 1)).Length() > tolerance {
				t.Errorf("Normal: expected +Z, got %v", normal)
			}
			if math.Abs(uv.X-tt.wantUV.X) > tolerance || math.Abs(uv.Y-tt.wantUV.Y) > tolerance {
				t.Errorf("UV: expected %v, got %v", tt.wantUV, uv)
			}
		})
	}
}

func TestResolve_NormalUnderNonUniformScale(t *testing.T) {
	// A 45 degree surface scaled 2x along X: the stretched surface is
	// shallower, so the correct normal comes from the inverse-transpose,
	// not from transforming the normal like a direction
	n := core.NewVec3(1, 1, 0).Normalize()
	verts := [3]scene.Vertex{
		{Position: core.NewVec3(0, 0, 0), Normal: n},
		{Position: core.NewVec3(1, -1, 0), Normal: n},
		{Position: core.NewVec3(0, 0, 1), Normal: n},
	}
	s := triangleScene(verts, mgl64.Scale3D(2, 1, 1))

	_, normal, _ := Resolve(s, s.Instances[0], 0, core.NewVec2(0.25, 0.25))

	expected := core.NewVec3(0.5, 1, 0).Normalize()
	if normal.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, normal)
	}
	if math.Abs(normal.Length()-1.0) > 1e-12 {
		t.Errorf("Resolved normal must be unit length, got %v", normal.Length())
	}
}

func TestResolve_InstanceTranslation(t *testing.T) {
	verts := [3]scene.Vertex{
		{Position: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)},
		{Position: core.NewVec3(1, 0, 0), Normal: core.NewVec3(0, 1, 0)},
		{Position: core.NewVec3(0, 0, 1), Normal: core.NewVec3(0, 1, 0)},
	}
	s := triangleScene(verts, mgl64.Translate3D(10, 20, 30))

	pos, normal, _ := Resolve(s, s.Instances[0], 0, core.NewVec2(0, 0))
	if pos.Subtract(core.NewVec3(10, 20, 30)).Length() > 1e-9 {
		t.Errorf("Position should be translated, got %v", pos)
	}
	if normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Normal should ignore translation, got %v", normal)
	}
}

func TestTangentFrame_Orthonormal(t *testing.T) {
	normals := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(1, 2, 3).Normalize(),
		core.NewVec3(-0.5, 0.1, -0.8).Normalize(),
	}

	const tolerance = 1e-9
	for _, n := range normals {
		tangent, bitangent := TangentFrame(n)

		if math.Abs(tangent.Length()-1) > tolerance || math.Abs(bitangent.Length()-1) > tolerance {
			t.Errorf("Frame around %v not unit length", n)
		}
		if math.Abs(tangent.Dot(n)) > tolerance ||
			math.Abs(bitangent.Dot(n)) > tolerance ||
			math.Abs(tangent.Dot(bitangent)) > tolerance {
			t.Errorf("Frame around %v not orthogonal", n)
		}
	}
}
