package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransform_PointsAndDirections(t *testing.T) {
	tr := NewTransform(mgl64.Translate3D(10, 20, 30))

	point := tr.Apply(NewVec3(1, 2, 3), 1)
	if point.Subtract(NewVec3(11, 22, 33)).Length() > 1e-12 {
		t.Errorf("Point transform: got %v", point)
	}

	// Directions (w=0) must ignore translation
	dir := tr.Apply(NewVec3(1, 2, 3), 0)
	if dir.Subtract(NewVec3(1, 2, 3)).Length() > 1e-12 {
		t.Errorf("Direction transform should ignore translation, got %v", dir)
	}
}

func TestTransform_InverseRoundTrip(t *testing.T) {
	m := mgl64.Translate3D(5, -3, 2).Mul4(mgl64.Scale3D(2, 4, 0.5))
	tr := NewTransform(m)

	v := NewVec3(1.5, -2.5, 3.5)
	back := tr.ApplyInverse(tr.Apply(v, 1), 1)
	if back.Subtract(v).Length() > 1e-9 {
		t.Errorf("Round trip of %v gave %v", v, back)
	}
}

func TestTransform_ApplyNormal(t *testing.T) {
	// Under non-uniform scale, forward-transforming a normal breaks
	// perpendicularity; the inverse-transpose keeps it
	tr := NewTransform(mgl64.Scale3D(2, 1, 1))

	n := NewVec3(1, 1, 0).Normalize()
	got := tr.ApplyNormal(n).Normalize()
	expected := NewVec3(0.5, 1, 0).Normalize()

	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// A surface tangent transformed forward must stay perpendicular
	tangent := tr.Apply(NewVec3(1, -1, 0), 0)
	if dot := tangent.Dot(tr.ApplyNormal(n)); dot > 1e-9 || dot < -1e-9 {
		t.Errorf("Transformed normal not perpendicular to transformed tangent: dot = %v", dot)
	}
}
