package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	minP := points[0]
	maxP := points[0]

	for _, point := range points[1:] {
		minP.X = math.Min(minP.X, point.X)
		minP.Y = math.Min(minP.Y, point.Y)
		minP.Z = math.Min(minP.Z, point.Z)

		maxP.X = math.Max(maxP.X, point.X)
		maxP.Y = math.Max(maxP.Y, point.Y)
		maxP.Z = math.Max(maxP.Z, point.Z)
	}

	return AABB{Min: minP, Max: maxP}
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		var minVal, maxVal, origin, direction float64

		switch axis {
		case 0:
			minVal, maxVal = aabb.Min.X, aabb.Max.X
			origin, direction = ray.Origin.X, ray.Direction.X
		case 1:
			minVal, maxVal = aabb.Min.Y, aabb.Max.Y
			origin, direction = ray.Origin.Y, ray.Direction.Y
		case 2:
			minVal, maxVal = aabb.Min.Z, aabb.Max.Z
			origin, direction = ray.Origin.Z, ray.Direction.Z
		}

		// Ray parallel to this slab: inside or nothing
		if math.Abs(direction) < 1e-8 {
			if origin < minVal || origin > maxVal {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (minVal - origin) * invDirection
		t2 := (maxVal - origin) * invDirection

		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, other.Min.X),
			Y: math.Min(aabb.Min.Y, other.Min.Y),
			Z: math.Min(aabb.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, other.Max.X),
			Y: math.Max(aabb.Max.Y, other.Max.Y),
			Z: math.Max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Max.Subtract(aabb.Min)
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}
