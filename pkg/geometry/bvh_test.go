package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lumenforge/gopathtracer/pkg/material"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

func makeRandomSpheres(n int, seed int64) []Shape {
	r := rand.New(rand.NewSource(seed))
	mat := material.NewLambertian(material.NewFlatColor(vecmath.NewVec3(0.5, 0.5, 0.5)))
	shapes := make([]Shape, n)
	for i := 0; i < n; i++ {
		center := vecmath.NewVec3(r.Float64()*20-10, r.Float64()*20-10, r.Float64()*20-10)
		shapes[i] = NewSphere(center, 0.3+r.Float64()*0.5, mat)
	}
	return shapes
}

func TestBVHBoundsContainAllShapes(t *testing.T) {
	shapes := makeRandomSpheres(50, 1)
	bvh := NewBVH(shapes)
	root := bvh.BoundingBox()
	for _, s := range shapes {
		b := s.BoundingBox()
		if b.Min.X < root.Min.X-1e-9 || b.Min.Y < root.Min.Y-1e-9 || b.Min.Z < root.Min.Z-1e-9 {
			t.Fatalf("shape bounds %+v not contained in root %+v", b, root)
		}
		if b.Max.X > root.Max.X+1e-9 || b.Max.Y > root.Max.Y+1e-9 || b.Max.Z > root.Max.Z+1e-9 {
			t.Fatalf("shape bounds %+v not contained in root %+v", b, root)
		}
	}
}

func TestBVHHitMatchesBruteForce(t *testing.T) {
	shapes := makeRandomSpheres(100, 2)
	bvh := NewBVH(shapes)
	r := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		origin := vecmath.NewVec3(r.Float64()*30-15, r.Float64()*30-15, 20)
		dir := vecmath.NewVec3(r.Float64()*2-1, r.Float64()*2-1, -1).Normalize()
		ray := vecmath.NewRay(origin, dir)

		bvhHit, bvhOK := bvh.Hit(ray, 1e-4, math.Inf(1))

		var bruteHit *material.SurfaceInteraction
		bruteOK := false
		closest := math.Inf(1)
		for _, s := range shapes {
			if h, ok := s.Hit(ray, 1e-4, closest); ok {
				bruteOK = true
				closest = h.T
				bruteHit = h
			}
		}

		if bvhOK != bruteOK {
			t.Fatalf("ray %d: BVH hit=%v, brute force hit=%v", i, bvhOK, bruteOK)
		}
		if bvhOK && math.Abs(bvhHit.T-bruteHit.T) > 1e-6 {
			t.Fatalf("ray %d: BVH T=%v, brute force T=%v", i, bvhHit.T, bruteHit.T)
		}
	}
}

func TestBVHEmptyAlwaysMisses(t *testing.T) {
	bvh := NewBVH(nil)
	ray := vecmath.NewRay(vecmath.Vec3{}, vecmath.NewVec3(0, 0, -1))
	if _, ok := bvh.Hit(ray, 0, math.Inf(1)); ok {
		t.Error("empty BVH should never report a hit")
	}
}

func TestBVHCorrectUnderTranslation(t *testing.T) {
	shapes := makeRandomSpheres(30, 4)
	offset := vecmath.NewVec3(100, 50, -30)
	translated := make([]Shape, len(shapes))
	for i, s := range shapes {
		sph := s.(*Sphere)
		translated[i] = NewSphere(sph.Center.Add(offset), sph.Radius, sph.Material)
	}

	bvh := NewBVH(shapes)
	bvhT := NewBVH(translated)

	r := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		origin := vecmath.NewVec3(r.Float64()*20-10, r.Float64()*20-10, 20)
		dir := vecmath.NewVec3(r.Float64()*2-1, r.Float64()*2-1, -1).Normalize()
		ray := vecmath.NewRay(origin, dir)
		rayT := vecmath.NewRay(origin.Add(offset), dir)

		hit, ok := bvh.Hit(ray, 1e-4, math.Inf(1))
		hitT, okT := bvhT.Hit(rayT, 1e-4, math.Inf(1))

		if ok != okT {
			t.Fatalf("ray %d: original hit=%v, translated hit=%v", i, ok, okT)
		}
		if ok && math.Abs(hit.T-hitT.T) > 1e-6 {
			t.Fatalf("ray %d: T mismatch under translation: %v vs %v", i, hit.T, hitT.T)
		}
	}
}
