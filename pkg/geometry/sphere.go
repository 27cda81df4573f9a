package geometry

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/material"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Sphere is a sphere primitive (spec §3, §4.2).
type Sphere struct {
	Center   vecmath.Vec3
	Radius   float64
	Material material.Material
	areaRef  material.AreaLightRef
}

func NewSphere(center vecmath.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

func (s *Sphere) SetAreaLight(ref material.AreaLightRef) { s.areaRef = ref }

// Hit implements the quadratic intersection test (spec §4.2): try the
// near root first, fall back to the far root (marking backface) if the
// near root lies outside (tMin, tMax).
func (s *Sphere) Hit(ray vecmath.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-b - sqrtD) / (2 * a)
	if root <= tMin || root >= tMax || root <= 0 {
		root = (-b + sqrtD) / (2 * a)
		if root <= tMin || root >= tMax || root <= 0 {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	hit := &material.SurfaceInteraction{
		T:                  root,
		Point:              point,
		Material:           s.Material,
		UV:                 sphereUV(outwardNormal),
		PrimitiveAreaLight: s.areaRef,
	}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}

// sphereUV computes texture coordinates from the geometric normal per
// spec §4.2: u = (pi + atan2(-nz, nx)) / (2*pi), v = acos(ny)/pi.
func sphereUV(n vecmath.Vec3) vecmath.Vec2 {
	u := (math.Pi + math.Atan2(-n.Z, n.X)) / (2 * math.Pi)
	v := math.Acos(math.Max(-1, math.Min(1, n.Y))) / math.Pi
	return vecmath.NewVec2(u, v)
}

func (s *Sphere) BoundingBox() core.AABB {
	r := vecmath.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// SampleSurface draws a uniform point on the sphere (spec §4.2):
// theta = acos(1-2u1), phi = 2*pi*u2; jacobian is the surface area.
func (s *Sphere) SampleSurface(rng *core.RNG) (vecmath.Vec3, vecmath.Vec3, float64) {
	u1, u2 := rng.Vec2()
	theta := math.Acos(1 - 2*u1)
	phi := 2 * math.Pi * u2
	local := vecmath.NewVec3(
		math.Sin(theta)*math.Cos(phi),
		math.Sin(theta)*math.Sin(phi),
		math.Cos(theta),
	)
	point := s.Center.Add(local.Multiply(s.Radius))
	area := 4 * math.Pi * s.Radius * s.Radius
	return point, local, area
}

// PDFSurface returns the solid-angle density of the point hit by ray, as
// seen from ray.Origin (spec §4.2), doubled per the spec's documented
// factor-of-2 convention (each ray could have been sampled from front or
// back of the sphere).
func (s *Sphere) PDFSurface(ray vecmath.Ray) float64 {
	hit, ok := s.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		return 0
	}
	cosTheta := math.Abs(ray.Direction.Normalize().Dot(hit.Normal))
	if cosTheta <= 0 {
		return 0
	}
	area := 4 * math.Pi * s.Radius * s.Radius
	distSq := hit.T * hit.T * ray.Direction.LengthSquared()
	return 2 * distSq / (cosTheta * area)
}
