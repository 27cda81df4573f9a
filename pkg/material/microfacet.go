package material

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Microfacet combines the Blinn-Phong half-vector sampler and NDF with a
// Schlick-Beckmann shadowing-masking term and a Schlick fresnel (spec
// §4.4):
//
//	F = Schlick(albedo, v, h)
//	D = (n+2)/(2*pi) * cos(theta_h)^n
//	G(w) = 1 if cos(theta_w) >= 1.6/a, else (3.535a + 2.181a^2)/(1 + 2.276a + 2.577a^2)
//	a(w) = sqrt(n/2 + 1) / tan(theta_w)
//	f_r = F*D*G(v)*G(l) / (4*|n.v|)
type Microfacet struct {
	Albedo   ColorSource
	Exponent float64
	Eta      float64
}

func NewMicrofacet(albedo ColorSource, exponent, eta float64) *Microfacet {
	return &Microfacet{Albedo: albedo, Exponent: exponent, Eta: eta}
}

func (m *Microfacet) Sample(rIn vecmath.Ray, hit *SurfaceInteraction, rng *core.RNG) (ScatterResult, bool) {
	u1, u2 := rng.Vec2()
	h := core.RandomPhongDirection(hit.Normal, m.Exponent, u1, u2)
	v := rIn.Direction.Negate().Normalize()
	dir := v.Negate().Reflect(h)

	pdf, _ := m.PDF(rIn, hit, dir)
	if pdf <= 0 {
		return ScatterResult{}, false
	}
	brdf := m.BRDF(rIn, hit, dir)
	return ScatterResult{
		Scattered:   vecmath.NewRay(hit.Point, dir),
		Attenuation: brdf.Multiply(dir.Normalize().AbsDot(hit.Normal) / pdf),
		PDF:         pdf,
	}, true
}

func (m *Microfacet) PDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) (float64, bool) {
	h := halfVector(rIn, rOut)
	cosThetaH := h.Dot(hit.Normal)
	voH := rIn.Direction.Negate().Normalize().Dot(h)
	if cosThetaH <= 0 || voH <= 0 {
		return 0, false
	}
	pdfH := ndfPDF(m.Exponent, cosThetaH)
	return pdfH / (4 * voH), false
}

// shadowMasking implements the Schlick-Beckmann approximation of the
// Smith geometric shadowing term for direction w.
func (m *Microfacet) shadowMasking(w, n vecmath.Vec3) float64 {
	cosTheta := w.Normalize().AbsDot(n)
	if cosTheta <= 0 {
		return 0
	}
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	if sinTheta <= 1e-9 {
		return 1.0
	}
	tanTheta := sinTheta / cosTheta
	a := math.Sqrt(m.Exponent/2+1) / tanTheta
	aCrit := a
	if cosTheta >= 1.6/aCrit {
		return 1.0
	}
	return (3.535*a + 2.181*a*a) / (1 + 2.276*a + 2.577*a*a)
}

func (m *Microfacet) f0() float64 {
	if m.Eta <= 0 {
		return 1.0
	}
	r := (m.Eta - 1) / (m.Eta + 1)
	return r * r
}

func (m *Microfacet) BRDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) vecmath.Vec3 {
	l := rOut.Normalize()
	if l.Dot(hit.Normal) <= 0 {
		return vecmath.Vec3{}
	}
	v := rIn.Direction.Negate().Normalize()
	h := halfVector(rIn, rOut)
	cosThetaH := h.Dot(hit.Normal)
	if cosThetaH <= 0 {
		return vecmath.Vec3{}
	}

	fresnel := core.SchlickFresnel(m.Albedo.ColorAt(hit.UV), v.Dot(h))
	d := ndf(m.Exponent, cosThetaH)
	gv := m.shadowMasking(v, hit.Normal)
	gl := m.shadowMasking(l, hit.Normal)

	nDotV := v.AbsDot(hit.Normal)
	if nDotV <= 0 {
		return vecmath.Vec3{}
	}
	scale := d * gv * gl / (4 * nDotV)
	return fresnel.Multiply(scale)
}
