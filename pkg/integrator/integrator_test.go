package integrator

import (
	"math"
	"testing"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/scene"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

func singleSphereScene(t *testing.T) *scene.Scene {
	t.Helper()
	desc := scene.Description{
		Materials: []scene.MaterialDescription{
			{Type: scene.MaterialDiffuse, Reflectance: scene.FlatReflectance(vecmath.NewVec3(0.8, 0.3, 0.3))},
		},
		Shapes: []scene.ShapeDescription{
			{Type: scene.ShapeSphere, MaterialID: 0, Center: vecmath.NewVec3(0, 0, -1), Radius: 0.5},
		},
	}
	sc, err := scene.Build(desc, nil, nil)
	if err != nil {
		t.Fatalf("scene.Build failed: %v", err)
	}
	return sc
}

func TestNormalModeCenterPixel(t *testing.T) {
	sc := singleSphereScene(t)
	integ := New(Config{Mode: Normal, MaxDepth: 1})
	ray := vecmath.NewRay(vecmath.Vec3{}, vecmath.NewVec3(0, 0, -1))
	rng := core.NewRNG(1, 1)

	got := integ.Radiance(ray, sc, rng, 1)
	// Hitting the sphere dead center along -Z: outward normal is (0,0,1),
	// mapped to color space as (n+1)/2 = (0.5, 0.5, 1).
	want := vecmath.NewVec3(0.5, 0.5, 1)
	if got.Subtract(want).Length() > 1e-6 {
		t.Errorf("NORMAL mode center pixel = %v, want %v", got, want)
	}
}

func TestMissReturnsBackground(t *testing.T) {
	sc := singleSphereScene(t)
	integ := New(Config{Mode: Normal, MaxDepth: 1, Background: vecmath.NewVec3(0.1, 0.2, 0.3)})
	ray := vecmath.NewRay(vecmath.NewVec3(100, 100, 100), vecmath.NewVec3(1, 0, 0))
	rng := core.NewRNG(1, 1)

	got := integ.Radiance(ray, sc, rng, 1)
	want := vecmath.NewVec3(0.1, 0.2, 0.3)
	if got.Subtract(want).Length() > 1e-9 {
		t.Errorf("miss radiance = %v, want background %v", got, want)
	}
}

func TestDepthZeroReturnsBlack(t *testing.T) {
	sc := singleSphereScene(t)
	integ := New(Config{Mode: MatteReflect, MaxDepth: 4})
	ray := vecmath.NewRay(vecmath.Vec3{}, vecmath.NewVec3(0, 0, -1))
	rng := core.NewRNG(1, 1)
	if got := integ.Radiance(ray, sc, rng, 0); got != (vecmath.Vec3{}) {
		t.Errorf("depth 0 radiance = %v, want zero", got)
	}
}

func TestPathTraceDeterministicAcrossRuns(t *testing.T) {
	sc := singleSphereScene(t)
	integ := New(Config{Mode: MatteReflect, MaxDepth: 6, Background: vecmath.NewVec3(0.5, 0.7, 1.0)})
	ray := vecmath.NewRay(vecmath.NewVec3(0, 0, 2), vecmath.NewVec3(0.1, 0, -1).Normalize())

	run := func() vecmath.Vec3 {
		rng := core.NewRNG(1, 7)
		sum := vecmath.Vec3{}
		for i := 0; i < 32; i++ {
			sum = sum.Add(integ.Radiance(ray, sc, rng, 6))
		}
		return sum
	}

	a := run()
	b := run()
	if a.Subtract(b).Length() > 1e-12 {
		t.Errorf("same RNG stream produced different results: %v vs %v", a, b)
	}
}

func TestPathTraceEnergyConservationNoNaNOrNegative(t *testing.T) {
	sc := singleSphereScene(t)
	integ := New(Config{Mode: MatteReflect, MaxDepth: 8, Background: vecmath.NewVec3(0.5, 0.7, 1.0)})
	rng := core.NewRNG(3, 3)

	for i := 0; i < 500; i++ {
		u1, u2 := rng.Vec2()
		dir := vecmath.NewVec3(u1*2-1, u2*2-1, -1).Normalize()
		ray := vecmath.NewRay(vecmath.NewVec3(0, 0, 2), dir)
		got := integ.Radiance(ray, sc, rng, 8)
		if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsNaN(got.Z) {
			t.Fatalf("radiance is NaN: %v", got)
		}
		if got.X < 0 || got.Y < 0 || got.Z < 0 {
			t.Fatalf("radiance has negative component: %v", got)
		}
	}
}
