package material

import (
	"math"
	"testing"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

func flatHit(normal vecmath.Vec3) *SurfaceInteraction {
	return &SurfaceInteraction{
		Point:  vecmath.Vec3{},
		Normal: normal,
		UV:     vecmath.NewVec2(0.5, 0.5),
	}
}

func TestLambertianSampleEitherScattersOrSignalsNoScatter(t *testing.T) {
	l := NewLambertian(NewFlatColor(vecmath.NewVec3(0.5, 0.5, 0.5)))
	rng := core.NewRNG(1, 1)
	hit := flatHit(vecmath.NewVec3(0, 1, 0))
	rIn := vecmath.NewRay(vecmath.NewVec3(0, 1, 0), vecmath.NewVec3(0, -1, 0))

	for i := 0; i < 200; i++ {
		result, ok := l.Sample(rIn, hit, rng)
		if !ok {
			continue
		}
		if result.PDF <= 0 && !result.Specular {
			t.Fatalf("non-specular Lambertian sample has non-positive pdf: %v", result.PDF)
		}
		if result.Scattered.Direction.Dot(hit.Normal) < -1e-9 {
			t.Fatalf("sampled direction points into the surface: dot=%v", result.Scattered.Direction.Dot(hit.Normal))
		}
	}
}

func TestLambertianBRDFEnergyConservation(t *testing.T) {
	albedo := vecmath.NewVec3(0.8, 0.8, 0.8)
	l := NewLambertian(NewFlatColor(albedo))
	hit := flatHit(vecmath.NewVec3(0, 1, 0))
	rIn := vecmath.NewRay(vecmath.Vec3{}, vecmath.NewVec3(0, -1, 0))
	rng := core.NewRNG(5, 5)

	const samples = 20000
	sum := vecmath.Vec3{}
	for i := 0; i < samples; i++ {
		u1, u2 := rng.Vec2()
		dir := core.RandomCosineDirection(hit.Normal, u1, u2)
		pdf, _ := l.PDF(rIn, hit, dir)
		if pdf <= 0 {
			continue
		}
		cosTheta := dir.Dot(hit.Normal)
		brdf := l.BRDF(rIn, hit, dir)
		sum = sum.Add(brdf.Multiply(cosTheta / pdf))
	}
	mean := sum.Multiply(1.0 / samples)
	if math.Abs(mean.X-albedo.X) > 0.05 {
		t.Errorf("Lambertian reflectance estimate = %v, want close to albedo %v", mean, albedo)
	}
}

func TestMirrorIsDeltaAndReflects(t *testing.T) {
	m := NewMirror(NewFlatColor(vecmath.NewVec3(1, 1, 1)), 1.5)
	hit := flatHit(vecmath.NewVec3(0, 1, 0))
	rIn := vecmath.NewRay(vecmath.Vec3{}, vecmath.NewVec3(1, -1, 0).Normalize())
	rng := core.NewRNG(2, 2)

	result, ok := m.Sample(rIn, hit, rng)
	if !ok {
		t.Fatal("Mirror.Sample reported no scatter")
	}
	if !result.Specular || result.PDF != 0 {
		t.Errorf("Mirror sample should be specular with zero pdf, got Specular=%v PDF=%v", result.Specular, result.PDF)
	}
	want := vecmath.NewVec3(1, 1, 0).Normalize()
	if result.Scattered.Direction.Subtract(want).Length() > 1e-9 {
		t.Errorf("reflected direction = %v, want %v", result.Scattered.Direction, want)
	}
	if _, isDelta := m.PDF(rIn, hit, want); !isDelta {
		t.Error("Mirror.PDF should report isDelta=true")
	}
}

func TestPlasticSpecularBranchDoesNotDoubleCountFresnel(t *testing.T) {
	p := NewPlastic(NewFlatColor(vecmath.NewVec3(0.8, 0.2, 0.2)), 1.5)
	hit := flatHit(vecmath.NewVec3(0, 1, 0))
	rIn := vecmath.NewRay(vecmath.Vec3{}, vecmath.NewVec3(0, -1, 0))
	rng := core.NewRNG(3, 3)

	// At normal incidence the specular branch is picked with probability
	// F0 = 0.04, so draw enough samples to reach it.
	specular := 0
	for i := 0; i < 500; i++ {
		result, ok := p.Sample(rIn, hit, rng)
		if !ok {
			t.Fatal("Plastic.Sample reported no scatter")
		}
		if result.Specular {
			specular++
			if result.Attenuation != p.Albedo.ColorAt(hit.UV) {
				t.Errorf("specular branch attenuation = %v, want raw albedo %v (no extra fresnel factor)", result.Attenuation, p.Albedo.ColorAt(hit.UV))
			}
		}
	}
	if specular == 0 {
		t.Fatal("no specular-branch sample drawn")
	}
}

func TestBlinnPhongAndPhongPDFNonNegative(t *testing.T) {
	phong := NewPhong(NewFlatColor(vecmath.NewVec3(1, 1, 1)), 20)
	bp := NewBlinnPhong(NewFlatColor(vecmath.NewVec3(1, 1, 1)), 20)
	hit := flatHit(vecmath.NewVec3(0, 1, 0))
	rIn := vecmath.NewRay(vecmath.Vec3{}, vecmath.NewVec3(0.3, -1, 0).Normalize())
	rOut := vecmath.NewVec3(0.2, 1, 0.1).Normalize()

	if pdf, _ := phong.PDF(rIn, hit, rOut); pdf < 0 {
		t.Errorf("Phong PDF negative: %v", pdf)
	}
	if pdf, _ := bp.PDF(rIn, hit, rOut); pdf < 0 {
		t.Errorf("BlinnPhong PDF negative: %v", pdf)
	}
}
