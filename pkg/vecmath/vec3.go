// Package vecmath provides the raw numeric primitives the rest of the
// tracer is built on: 3-D and 2-D vectors and rays. It has
// no knowledge of scenes, materials, or shapes.
package vecmath

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component vector, used for points, directions, and colors.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a 2-component vector, used for texture coordinates.
type Vec2 struct {
	X, Y float64
}

func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }
func NewVec2(x, y float64) Vec2    { return Vec2{X: x, Y: y} }

func (v Vec3) String() string {
	return fmt.Sprintf("{%.3g, %.3g, %.3g}", v.X, v.Y, v.Z)
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Subtract(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Multiply(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vec3) MultiplyVec(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}
func (v Vec3) Negate() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Length() float64        { return math.Sqrt(v.LengthSquared()) }
func (v Vec3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vec3) Dot(o Vec3) float64    { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) AbsDot(o Vec3) float64 { return math.Abs(v.Dot(o)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns a unit vector in the same direction, or the zero vector
// if v has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Multiply(1.0 / l)
}

// Reflect reflects v about a unit normal n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{
		X: math.Max(lo, math.Min(hi, v.X)),
		Y: math.Max(lo, math.Min(hi, v.Y)),
		Z: math.Max(lo, math.Min(hi, v.Z)),
	}
}

// Luminance is the perceptual luminance of an RGB color (Rec. 709 weights).
func (v Vec3) Luminance() float64 {
	return 0.2126*v.X + 0.7152*v.Y + 0.0722*v.Z
}

func (v Vec3) IsZero() bool   { return v.X == 0 && v.Y == 0 && v.Z == 0 }
func (v Vec3) IsFinite() bool { return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) }

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Min/Max return the component-wise minimum/maximum of two vectors.
func Min(a, b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}
func Max(a, b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

func (v Vec2) Add(o Vec2) Vec2          { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Multiply(s float64) Vec2  { return Vec2{v.X * s, v.Y * s} }

// Ray is a parametric ray: point at parameter t is Origin + t*Direction.
// Direction is not required to be normalized by callers of NewRay, but
// every scene-facing ray constructed by this module is.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

func NewRay(origin, direction Vec3) Ray { return Ray{Origin: origin, Direction: direction} }

// NewRayTo builds a normalized ray from origin toward target.
func NewRayTo(origin, target Vec3) Ray {
	return NewRay(origin, target.Subtract(origin).Normalize())
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Direction.Multiply(t)) }
