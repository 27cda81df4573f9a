package material

import (
	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Mirror is a perfect specular reflector: deterministic reflection about
// the normal, fresnel-weighted albedo, no explicit PDF (spec §4.4).
type Mirror struct {
	Albedo ColorSource
	Eta    float64 // index of refraction, used only for the Schlick F0 term
}

func NewMirror(albedo ColorSource, eta float64) *Mirror {
	return &Mirror{Albedo: albedo, Eta: eta}
}

func (m *Mirror) f0() float64 {
	if m.Eta <= 0 {
		return 1.0
	}
	r := (m.Eta - 1) / (m.Eta + 1)
	return r * r
}

func (m *Mirror) Sample(rIn vecmath.Ray, hit *SurfaceInteraction, rng *core.RNG) (ScatterResult, bool) {
	dir := rIn.Direction.Normalize().Reflect(hit.Normal)
	cosTheta := dir.AbsDot(hit.Normal)
	fresnel := core.SchlickFresnelScalar(m.f0(), cosTheta)
	attenuation := m.Albedo.ColorAt(hit.UV).Multiply(fresnel)
	return ScatterResult{
		Scattered:   vecmath.NewRay(hit.Point, dir),
		Attenuation: attenuation,
		PDF:         0,
		Specular:    true,
	}, true
}

func (m *Mirror) PDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) (float64, bool) {
	return 0, true
}

func (m *Mirror) BRDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) vecmath.Vec3 {
	return vecmath.Vec3{}
}
