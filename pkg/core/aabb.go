package core

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// AABB is an axis-aligned bounding box. The zero value is the degenerate
// box at the origin, not the empty box; use EmptyAABB for the empty box
// (infinite Min, negative-infinite Max), the identity element for Union.
type AABB struct {
	Min vecmath.Vec3
	Max vecmath.Vec3
}

// EmptyAABB returns the additive identity box: Union(EmptyAABB(), b) == b.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: vecmath.NewVec3(inf, inf, inf),
		Max: vecmath.NewVec3(-inf, -inf, -inf),
	}
}

func NewAABB(min, max vecmath.Vec3) AABB { return AABB{Min: min, Max: max} }

// NewAABBFromPoints returns the tightest AABB enclosing the given points.
func NewAABBFromPoints(points ...vecmath.Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Union(AABB{Min: p, Max: p})
	}
	return box
}

// Hit performs the slab test on [tMin, tMax], swapping the near/far plane
// per axis when the ray direction's reciprocal is negative. Division by a
// zero direction component is tolerated: IEEE-754 produces signed
// infinities that still resolve the slab correctly.
func (b AABB) Hit(ray vecmath.Ray, tMin, tMax float64) bool {
	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / dir[axis]
		t0 := (lo[axis] - origin[axis]) * invD
		t1 := (hi[axis] - origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}
	return true
}

// Union returns the smallest AABB containing both a and b. Commutative and
// associative; EmptyAABB() is the identity.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: vecmath.Min(b.Min, o.Min), Max: vecmath.Max(b.Max, o.Max)}
}

// UnionPoint returns the smallest AABB containing b and p.
func (b AABB) UnionPoint(p vecmath.Vec3) AABB {
	return AABB{Min: vecmath.Min(b.Min, p), Max: vecmath.Max(b.Max, p)}
}

func (b AABB) Center() vecmath.Vec3 { return b.Min.Add(b.Max).Multiply(0.5) }
func (b AABB) Size() vecmath.Vec3   { return b.Max.Subtract(b.Min) }

func (b AABB) SurfaceArea() float64 {
	s := b.Size()
	if s.X < 0 || s.Y < 0 || s.Z < 0 {
		return 0
	}
	return 2.0 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
func (b AABB) LongestAxis() int {
	s := b.Size()
	if s.X > s.Y && s.X > s.Z {
		return 0
	}
	if s.Y > s.Z {
		return 1
	}
	return 2
}

// AxisMin and AxisMax return the box's Min and Max component along the
// given axis (0/1/2 -> X/Y/Z), used by the BVH builder's bucketing.
func (b AABB) AxisMin(axis int) float64 {
	switch axis {
	case 0:
		return b.Min.X
	case 1:
		return b.Min.Y
	default:
		return b.Min.Z
	}
}

func (b AABB) AxisMax(axis int) float64 {
	switch axis {
	case 0:
		return b.Max.X
	case 1:
		return b.Max.Y
	default:
		return b.Max.Z
	}
}
