package geometry

import (
	"math"
	"testing"

	"github.com/lumenforge/gopathtracer/pkg/material"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

func TestTriangleHitCorners(t *testing.T) {
	v0 := vecmath.NewVec3(0, 0, 0)
	v1 := vecmath.NewVec3(1, 0, 0)
	v2 := vecmath.NewVec3(0, 1, 0)
	tri := NewTriangle(v0, v1, v2, nil)

	ray := vecmath.NewRay(vecmath.NewVec3(0, 0, -5), vecmath.NewVec3(0, 0, 1))
	hit, ok := tri.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("expected ray through v0 to hit")
	}
	if hit.Barycentric.Subtract(vecmath.NewVec3(1, 0, 0)).Length() > 1e-6 {
		t.Errorf("barycentric at v0 = %v, want (1,0,0)", hit.Barycentric)
	}
}

func TestTriangleHitMiss(t *testing.T) {
	tri := NewTriangle(vecmath.NewVec3(0, 0, 0), vecmath.NewVec3(1, 0, 0), vecmath.NewVec3(0, 1, 0), nil)
	ray := vecmath.NewRay(vecmath.NewVec3(5, 5, -5), vecmath.NewVec3(0, 0, 1))
	if _, ok := tri.Hit(ray, 1e-4, math.Inf(1)); ok {
		t.Error("expected ray outside triangle to miss")
	}
}

func TestTriangleAreaRightTriangle(t *testing.T) {
	tri := NewTriangle(vecmath.NewVec3(0, 0, 0), vecmath.NewVec3(2, 0, 0), vecmath.NewVec3(0, 3, 0), nil)
	if got := tri.Area(); math.Abs(got-3) > 1e-9 {
		t.Errorf("Area = %v, want 3", got)
	}
}

func TestTriangleSmoothInterpolatesNormals(t *testing.T) {
	v0, v1, v2 := vecmath.NewVec3(0, 0, 0), vecmath.NewVec3(1, 0, 0), vecmath.NewVec3(0, 1, 0)
	n0 := vecmath.NewVec3(0, 0, 1)
	n1 := vecmath.NewVec3(0.3, 0, 1).Normalize()
	n2 := vecmath.NewVec3(-0.3, 0, 1).Normalize()
	uv0, uv1, uv2 := vecmath.NewVec2(0, 0), vecmath.NewVec2(1, 0), vecmath.NewVec2(0, 1)
	tri := NewTriangleSmooth(v0, v1, v2, n0, n1, n2, uv0, uv1, uv2, nil)

	// Approach from the side the vertex normals face, so the hit is a
	// front face and the interpolated normal is reported unflipped.
	ray := vecmath.NewRay(vecmath.NewVec3(0, 0, 5), vecmath.NewVec3(0, 0, -1))
	hit, ok := tri.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("expected hit at v0")
	}
	if hit.Normal.Subtract(n0).Length() > 1e-3 {
		t.Errorf("normal at v0 = %v, want close to %v", hit.Normal, n0)
	}
}

func TestTriangleBoundingBoxContainsVertices(t *testing.T) {
	v0, v1, v2 := vecmath.NewVec3(-1, 2, 0), vecmath.NewVec3(3, -2, 1), vecmath.NewVec3(0, 0, -4)
	tri := NewTriangle(v0, v1, v2, nil)
	box := tri.BoundingBox()
	for _, v := range []vecmath.Vec3{v0, v1, v2} {
		if v.X < box.Min.X || v.X > box.Max.X || v.Y < box.Min.Y || v.Y > box.Max.Y || v.Z < box.Min.Z || v.Z > box.Max.Z {
			t.Errorf("vertex %v not contained in bounding box %+v", v, box)
		}
	}
}

func TestTriangleMeshExpandsFaces(t *testing.T) {
	verts := []vecmath.Vec3{
		vecmath.NewVec3(0, 0, 0),
		vecmath.NewVec3(1, 0, 0),
		vecmath.NewVec3(1, 1, 0),
		vecmath.NewVec3(0, 1, 0),
	}
	mat := material.NewLambertian(material.NewFlatColor(vecmath.NewVec3(1, 1, 1)))
	mesh := NewTriangleMesh(verts, nil, nil, [][3]int{{0, 1, 2}, {0, 2, 3}}, mat)
	tris := mesh.Triangles()
	if len(tris) != 2 {
		t.Fatalf("Triangles() returned %d shapes, want 2", len(tris))
	}
}
