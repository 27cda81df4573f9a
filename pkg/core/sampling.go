package core

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// ONB is an orthonormal basis built around a single normal vector, used to
// transform locally-sampled directions (e.g. a cosine-weighted hemisphere
// sample) into world space.
type ONB struct {
	U, V, W vecmath.Vec3
}

// NewONB builds a basis whose W axis is n (assumed normalized).
func NewONB(n vecmath.Vec3) ONB {
	w := n
	var a vecmath.Vec3
	if math.Abs(w.X) > 0.9 {
		a = vecmath.NewVec3(0, 1, 0)
	} else {
		a = vecmath.NewVec3(1, 0, 0)
	}
	v := w.Cross(a).Normalize()
	u := w.Cross(v)
	return ONB{U: u, V: v, W: w}
}

// Local transforms a direction given in the basis's local coordinates
// (a,b,c along U,V,W) into world space.
func (o ONB) Local(a, b, c float64) vecmath.Vec3 {
	return o.U.Multiply(a).Add(o.V.Multiply(b)).Add(o.W.Multiply(c))
}

// RandomCosineDirection returns a cosine-weighted random direction in the
// hemisphere about n.
func RandomCosineDirection(n vecmath.Vec3, u1, u2 float64) vecmath.Vec3 {
	r := math.Sqrt(u1)
	phi := 2 * math.Pi * u2
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	z := math.Sqrt(math.Max(0, 1-u1))

	basis := NewONB(n)
	return basis.Local(x, y, z).Normalize()
}

// RandomPhongDirection returns a direction sampled from a cosine-to-the-exp
// lobe around the axis (either the mirror-reflection direction for Phong,
// or the half-vector for Blinn-Phong/Microfacet).
func RandomPhongDirection(axis vecmath.Vec3, exponent, u1, u2 float64) vecmath.Vec3 {
	cosTheta := math.Pow(u1, 1.0/(exponent+1.0))
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u2
	x := sinTheta * math.Cos(phi)
	y := sinTheta * math.Sin(phi)
	z := cosTheta

	basis := NewONB(axis)
	return basis.Local(x, y, z).Normalize()
}

// PowerHeuristic is unused by the path-tracing MIS formula in this core
// (which uses an equal-weight balance heuristic, spec §4.5), but is kept
// as a general MIS building block for tests and future integrators.
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	if fPdf == 0 {
		return 0
	}
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	return (f * f) / (f*f + g*g)
}

// BalanceHeuristic combines two sampling strategies' PDFs with equal
// weight, matching spec §4.5: pdf = 0.5*pdf_bsdf + 0.5*pdf_light.
func BalanceHeuristic(fPdf, gPdf float64) float64 {
	return 0.5*fPdf + 0.5*gPdf
}

// SchlickFresnel approximates the Fresnel reflectance: F0 + (1-F0)*(1-cos)^5.
func SchlickFresnel(f0 vecmath.Vec3, cosTheta float64) vecmath.Vec3 {
	c := math.Max(0, math.Min(1, 1-cosTheta))
	c5 := c * c * c * c * c
	return f0.Add(vecmath.NewVec3(1, 1, 1).Subtract(f0).Multiply(c5))
}

// SchlickFresnelScalar is the scalar form used for F0 = ((eta-1)/(eta+1))^2.
func SchlickFresnelScalar(f0, cosTheta float64) float64 {
	c := math.Max(0, math.Min(1, 1-cosTheta))
	return f0 + (1-f0)*c*c*c*c*c
}
