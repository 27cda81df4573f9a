package material

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// BlinnPhong samples a cosine-to-the-exponent lobe around the half-vector
// rather than the reflection direction, and reflects the incoming ray
// about the sampled half-vector to get the scattered direction (spec
// §4.4). Its PDF carries the half-vector-to-outgoing-direction Jacobian
// 1/(4*(rOut.h)).
type BlinnPhong struct {
	Albedo   ColorSource
	Exponent float64
}

func NewBlinnPhong(albedo ColorSource, exponent float64) *BlinnPhong {
	return &BlinnPhong{Albedo: albedo, Exponent: exponent}
}

func ndf(exponent, cosThetaH float64) float64 {
	if cosThetaH <= 0 {
		return 0
	}
	return (exponent + 2) * math.Pow(cosThetaH, exponent) / (2 * math.Pi)
}

func ndfPDF(exponent, cosThetaH float64) float64 {
	if cosThetaH <= 0 {
		return 0
	}
	return (exponent + 1) * math.Pow(cosThetaH, exponent) / (2 * math.Pi)
}

func (b *BlinnPhong) Sample(rIn vecmath.Ray, hit *SurfaceInteraction, rng *core.RNG) (ScatterResult, bool) {
	v := rIn.Direction.Negate().Normalize()
	u1, u2 := rng.Vec2()
	h := core.RandomPhongDirection(hit.Normal, b.Exponent, u1, u2)
	dir := v.Negate().Reflect(h)

	pdf, _ := b.PDF(rIn, hit, dir)
	if pdf <= 0 {
		return ScatterResult{}, false
	}
	return ScatterResult{
		Scattered:   vecmath.NewRay(hit.Point, dir),
		Attenuation: b.Albedo.ColorAt(hit.UV),
		PDF:         pdf,
	}, true
}

// halfVector returns the normalized half-vector between the direction
// toward the viewer (-rIn.Direction) and the outgoing direction.
func halfVector(rIn vecmath.Ray, rOut vecmath.Vec3) vecmath.Vec3 {
	v := rIn.Direction.Negate().Normalize()
	return v.Add(rOut.Normalize()).Normalize()
}

func (b *BlinnPhong) PDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) (float64, bool) {
	h := halfVector(rIn, rOut)
	cosThetaH := h.Dot(hit.Normal)
	voH := rIn.Direction.Negate().Normalize().Dot(h)
	if cosThetaH <= 0 || voH <= 0 {
		return 0, false
	}
	pdfH := ndfPDF(b.Exponent, cosThetaH)
	return pdfH / (4 * voH), false
}

func (b *BlinnPhong) BRDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) vecmath.Vec3 {
	h := halfVector(rIn, rOut)
	cosThetaH := h.Dot(hit.Normal)
	if cosThetaH <= 0 || rOut.Normalize().Dot(hit.Normal) <= 0 {
		return vecmath.Vec3{}
	}
	return b.Albedo.ColorAt(hit.UV).Multiply(ndf(b.Exponent, cosThetaH))
}
