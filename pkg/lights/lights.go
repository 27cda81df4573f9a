// Package lights implements the two light kinds named in spec.md §3/§6:
// PointLight (position, intensity, sampled directly for the LAMBERT
// render mode) and AreaLight (radiance plus an ordered set of emitting
// primitives, sampled for MIS in the path-tracing integrator).
package lights

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/geometry"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// PointLight is a delta-position light: position plus intensity, sampled
// directly (no surface to importance-sample), used by the LAMBERT render
// mode (spec §6).
type PointLight struct {
	Position  vecmath.Vec3
	Intensity vecmath.Vec3
}

func NewPointLight(position, intensity vecmath.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Sample returns the direction from point toward the light, the distance
// to it, and the incident radiance at point (inverse-square falloff).
func (p *PointLight) Sample(point vecmath.Vec3) (dir vecmath.Vec3, dist float64, radiance vecmath.Vec3) {
	toLight := p.Position.Subtract(point)
	dist = toLight.Length()
	if dist == 0 {
		return vecmath.Vec3{}, 0, vecmath.Vec3{}
	}
	dir = toLight.Multiply(1.0 / dist)
	radiance = p.Intensity.Multiply(1.0 / (dist * dist))
	return dir, dist, radiance
}

// AreaLight is a diffuse area light: a radiance value shared by an
// ordered set of emitting primitives (spec §3's "AreaLight: radiance
// plus an ordered set of primitive refs that emit it").
type AreaLight struct {
	Radiance   vecmath.Vec3
	Primitives []geometry.Shape
}

func NewAreaLight(radiance vecmath.Vec3, primitives []geometry.Shape) *AreaLight {
	return &AreaLight{Radiance: radiance, Primitives: primitives}
}

// SampleUniformPrimitive uniformly picks one of the light's primitives
// and samples a point on its surface, returning the point, its outward
// normal, the chosen primitive's surface area (as reported by its
// SampleSurface), and the chosen primitive.
func (l *AreaLight) SampleUniformPrimitive(rng *core.RNG) (point, normal vecmath.Vec3, area float64, prim geometry.Shape) {
	idx := rng.IntN(len(l.Primitives))
	prim = l.Primitives[idx]
	point, normal, area = prim.SampleSurface(rng)
	return point, normal, area, prim
}

// PDF returns the solid-angle density of sampling the direction a ray
// toward this light would have to travel to land where it lands, given
// that a primitive is first picked uniformly at random among this
// light's primitives (spec §4.5 "uniformly pick one area light,
// uniformly pick one of its primitives"). It sums the per-primitive
// PDFSurface values (each primitive's own density already accounts for
// a ray actually hitting it) scaled by the uniform pick probability.
func (l *AreaLight) PDF(ray vecmath.Ray) float64 {
	if len(l.Primitives) == 0 {
		return 0
	}
	sum := 0.0
	for _, prim := range l.Primitives {
		sum += prim.PDFSurface(ray)
	}
	return sum / float64(len(l.Primitives))
}

// Sampler draws a full light sample for MIS: uniformly pick one area
// light, then uniformly pick one of its primitives and sample its
// surface (spec §4.5).
type Sampler struct {
	Lights []*AreaLight
}

func NewSampler(lights []*AreaLight) *Sampler { return &Sampler{Lights: lights} }

// Empty reports whether there are no area lights to sample, in which
// case the integrator always falls back to pure BSDF sampling (spec
// §4.5: "With probability 1/2 (or always, when there are zero area
// lights) sample the BSDF").
func (s *Sampler) Empty() bool { return len(s.Lights) == 0 }

// Sample uniformly picks one light and one of its primitives, and
// returns a ray from point toward the sampled surface point plus the
// combined PDF (spec's uniform-light-then-uniform-primitive scheme).
func (s *Sampler) Sample(point vecmath.Vec3, rng *core.RNG) (ray vecmath.Ray, pdf float64, ok bool) {
	if s.Empty() {
		return vecmath.Ray{}, 0, false
	}
	light := s.Lights[rng.IntN(len(s.Lights))]
	if len(light.Primitives) == 0 {
		return vecmath.Ray{}, 0, false
	}
	surfacePoint, _, _, _ := light.SampleUniformPrimitive(rng)
	dir := surfacePoint.Subtract(point)
	dist := dir.Length()
	if dist < 1e-8 {
		return vecmath.Ray{}, 0, false
	}
	dir = dir.Multiply(1.0 / dist)
	ray = vecmath.NewRay(point, dir)
	return ray, s.PDF(ray), true
}

// PDF returns the combined light-sampling density for a direction
// already chosen, summed over every light (spec §4.5's `pdf_light`):
// each light is picked with probability 1/len(Lights).
func (s *Sampler) PDF(ray vecmath.Ray) float64 {
	if s.Empty() {
		return 0
	}
	sum := 0.0
	for _, light := range s.Lights {
		sum += light.PDF(ray)
	}
	return sum / float64(len(s.Lights))
}

// BalanceMIS combines BSDF-sampling and light-sampling densities with
// equal weights (spec §4.5: `pdf = 0.5*pdf_bsdf + 0.5*pdf_light`). When
// there are no area lights, pdf_light is simply 0 and this reduces to
// pdf_bsdf, matching the spec's explicit fallback.
func (s *Sampler) BalanceMIS(pdfBSDF, pdfLight float64) float64 {
	if s.Empty() {
		return pdfBSDF
	}
	return core.BalanceHeuristic(pdfBSDF, pdfLight)
}

// ShadowRay builds an epsilon-offset ray from point toward target,
// suitable for a shadow-ray visibility test (LAMBERT mode, spec §6);
// returns the ray and the distance to target (exclusive upper bound for
// the occlusion test).
func ShadowRay(point, target vecmath.Vec3) (vecmath.Ray, float64) {
	const epsilon = 1e-4
	toTarget := target.Subtract(point)
	dist := toTarget.Length()
	if dist < 1e-12 {
		return vecmath.NewRay(point, vecmath.Vec3{}), 0
	}
	dir := toTarget.Multiply(1.0 / dist)
	origin := point.Add(dir.Multiply(epsilon))
	return vecmath.NewRay(origin, dir), math.Max(0, dist-epsilon)
}
