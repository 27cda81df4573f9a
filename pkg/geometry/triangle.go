package geometry

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/material"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Triangle is a single triangle with optional per-vertex UVs and normals
// (spec §3, §4.2). When no per-vertex normals are supplied, the flat
// geometric normal is used for all three vertices.
type Triangle struct {
	V0, V1, V2    vecmath.Vec3
	UV0, UV1, UV2 vecmath.Vec2
	N0, N1, N2    vecmath.Vec3
	Material      material.Material

	faceNormal vecmath.Vec3
	bbox       core.AABB
	areaRef    material.AreaLightRef
}

// NewTriangle creates a flat-shaded triangle (shading normal == face
// normal), with barycentric UVs.
func NewTriangle(v0, v1, v2 vecmath.Vec3, mat material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.faceNormal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.N0, t.N1, t.N2 = t.faceNormal, t.faceNormal, t.faceNormal
	t.UV0, t.UV1, t.UV2 = vecmath.NewVec2(0, 0), vecmath.NewVec2(1, 0), vecmath.NewVec2(0, 1)
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// NewTriangleSmooth creates a triangle with per-vertex normals and UVs,
// for triangle meshes (spec §3).
func NewTriangleSmooth(v0, v1, v2 vecmath.Vec3, n0, n1, n2 vecmath.Vec3, uv0, uv1, uv2 vecmath.Vec2, mat material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, N0: n0, N1: n1, N2: n2, UV0: uv0, UV1: uv1, UV2: uv2, Material: mat}
	t.faceNormal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

func (t *Triangle) SetAreaLight(ref material.AreaLightRef) { t.areaRef = ref }

// Hit implements the Möller–Trumbore intersection test (spec §4.2),
// interpolating the shading normal and UVs from the barycentric
// coordinates.
func (t *Triangle) Hit(ray vecmath.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if tParam <= tMin || tParam >= tMax {
		return nil, false
	}

	w := 1 - u - v
	normal := t.N0.Multiply(w).Add(t.N1.Multiply(u)).Add(t.N2.Multiply(v)).Normalize()
	uv := t.UV0.Multiply(w).Add(t.UV1.Multiply(u)).Add(t.UV2.Multiply(v))

	hit := &material.SurfaceInteraction{
		T:                  tParam,
		Point:              ray.At(tParam),
		Material:           t.Material,
		UV:                 uv,
		PrimitiveAreaLight: t.areaRef,
		IsTriangle:         true,
		Barycentric:        vecmath.NewVec3(w, u, v),
	}
	// Spec §4.2: backface = (interpolated_normal . ray_dir) > 0; normal
	// flipped when backface.
	hit.Backface = normal.Dot(ray.Direction) > 0
	if hit.Backface {
		hit.Normal = normal.Negate()
	} else {
		hit.Normal = normal
	}
	return hit, true
}

func (t *Triangle) BoundingBox() core.AABB { return t.bbox }

// Area returns the triangle's surface area.
func (t *Triangle) Area() float64 {
	return t.V1.Subtract(t.V0).Cross(t.V2.Subtract(t.V0)).Length() * 0.5
}

// SampleSurface draws a uniform point on the triangle (spec §4.2):
// b1 = 1-sqrt(u1), b2 = sqrt(u1)*u2.
func (t *Triangle) SampleSurface(rng *core.RNG) (vecmath.Vec3, vecmath.Vec3, float64) {
	u1, u2 := rng.Vec2()
	su1 := math.Sqrt(u1)
	b1 := 1 - su1
	b2 := su1 * u2
	b0 := 1 - b1 - b2
	point := t.V0.Multiply(b0).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(b2))
	normal := t.N0.Multiply(b0).Add(t.N1.Multiply(b1)).Add(t.N2.Multiply(b2)).Normalize()
	return point, normal, t.Area()
}

// PDFSurface returns the solid-angle density of the point hit by ray, as
// seen from ray.Origin (spec §4.2).
func (t *Triangle) PDFSurface(ray vecmath.Ray) float64 {
	hit, ok := t.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		return 0
	}
	cosTheta := math.Abs(ray.Direction.Normalize().Dot(hit.Normal))
	if cosTheta <= 0 {
		return 0
	}
	distSq := hit.T * hit.T * ray.Direction.LengthSquared()
	return distSq / (cosTheta * t.Area())
}
