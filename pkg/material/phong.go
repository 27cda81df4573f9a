package material

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Phong samples a cosine-to-the-exponent lobe around the mirror-reflection
// direction (spec §4.4): pdf = (n+1)*cos(alpha)^n / (2*pi), alpha the angle
// to the perfect reflection direction. The matching (modified-Phong) BRDF
// normalization is (n+2)/(2*pi).
type Phong struct {
	Albedo   ColorSource
	Exponent float64
}

func NewPhong(albedo ColorSource, exponent float64) *Phong {
	return &Phong{Albedo: albedo, Exponent: exponent}
}

func (p *Phong) reflectDir(rIn vecmath.Ray, hit *SurfaceInteraction) vecmath.Vec3 {
	return rIn.Direction.Normalize().Reflect(hit.Normal)
}

func (p *Phong) Sample(rIn vecmath.Ray, hit *SurfaceInteraction, rng *core.RNG) (ScatterResult, bool) {
	u1, u2 := rng.Vec2()
	dir := core.RandomPhongDirection(p.reflectDir(rIn, hit), p.Exponent, u1, u2)
	pdf, _ := p.PDF(rIn, hit, dir)
	if pdf <= 0 {
		return ScatterResult{}, false
	}
	return ScatterResult{
		Scattered:   vecmath.NewRay(hit.Point, dir),
		Attenuation: p.Albedo.ColorAt(hit.UV),
		PDF:         pdf,
	}, true
}

func (p *Phong) cosAlpha(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) float64 {
	return math.Max(0, p.reflectDir(rIn, hit).Dot(rOut.Normalize()))
}

func (p *Phong) PDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) (float64, bool) {
	cosAlpha := p.cosAlpha(rIn, hit, rOut)
	if cosAlpha <= 0 {
		return 0, false
	}
	pdf := (p.Exponent + 1) * math.Pow(cosAlpha, p.Exponent) / (2 * math.Pi)
	return pdf, false
}

func (p *Phong) BRDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) vecmath.Vec3 {
	cosAlpha := p.cosAlpha(rIn, hit, rOut)
	if cosAlpha <= 0 {
		return vecmath.Vec3{}
	}
	scale := (p.Exponent + 2) * math.Pow(cosAlpha, p.Exponent) / (2 * math.Pi)
	return p.Albedo.ColorAt(hit.UV).Multiply(scale)
}
