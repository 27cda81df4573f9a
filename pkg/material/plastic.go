package material

import (
	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Plastic is a Russian-roulette mixture of a specular highlight and a
// Lambertian backing, chosen with probability equal to the average
// Schlick fresnel term at F0 = ((eta-1)/(eta+1))^2 (spec §4.4).
//
// Per spec.md's "Open questions" note, the specular branch does NOT
// re-multiply by fresnel: the selection probability already accounts for
// it, and multiplying again would double-count the fresnel weight and
// break energy conservation. This is the unbiased Russian-roulette form,
// not the "specular * fresnel" variant also seen in the source material.
type Plastic struct {
	Albedo  ColorSource
	Eta     float64
	lambert *Lambertian
}

func NewPlastic(albedo ColorSource, eta float64) *Plastic {
	return &Plastic{Albedo: albedo, Eta: eta, lambert: NewLambertian(albedo)}
}

func (p *Plastic) f0() float64 {
	r := (p.Eta - 1) / (p.Eta + 1)
	return r * r
}

// specularProbability is the scalar Schlick fresnel at the angle between
// the viewing direction and the normal.
func (p *Plastic) specularProbability(rIn vecmath.Ray, hit *SurfaceInteraction) float64 {
	cosTheta := rIn.Direction.Negate().Normalize().AbsDot(hit.Normal)
	return core.SchlickFresnelScalar(p.f0(), cosTheta)
}

func (p *Plastic) Sample(rIn vecmath.Ray, hit *SurfaceInteraction, rng *core.RNG) (ScatterResult, bool) {
	prob := p.specularProbability(rIn, hit)
	if rng.Float64() < prob {
		dir := rIn.Direction.Normalize().Reflect(hit.Normal)
		return ScatterResult{
			Scattered:   vecmath.NewRay(hit.Point, dir),
			Attenuation: p.Albedo.ColorAt(hit.UV),
			PDF:         0,
			Specular:    true,
		}, true
	}
	return p.lambert.Sample(rIn, hit, rng)
}

func (p *Plastic) PDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) (float64, bool) {
	prob := p.specularProbability(rIn, hit)
	lambertPdf, _ := p.lambert.PDF(rIn, hit, rOut)
	return (1 - prob) * lambertPdf, false
}

func (p *Plastic) BRDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) vecmath.Vec3 {
	prob := p.specularProbability(rIn, hit)
	return p.lambert.BRDF(rIn, hit, rOut).Multiply(1 - prob)
}
