// Package integrator implements the render-mode dispatch and the
// recursive MIS path tracer from spec.md §4.5/§6.
package integrator

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/material"
	"github.com/lumenforge/gopathtracer/pkg/scene"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Mode selects the render mode (spec §6).
type Mode int

const (
	Normal Mode = iota
	Object
	Flat
	Lambert
	MatteReflect
	Barycentric
	AABBMode
)

// Integrator evaluates the radiance arriving along a ray.
type Integrator interface {
	Radiance(ray vecmath.Ray, sc *scene.Scene, rng *core.RNG, depth int) vecmath.Vec3
}

// Config holds the render-mode-independent parameters shared by every
// mode (spec §6's renderer configuration). A BackgroundColor on the
// parsed scene description overrides Config.Background once resolved
// into the Scene (spec §6); Config.Background is only used when the
// scene itself carries no override.
type Config struct {
	Mode       Mode
	MaxDepth   int
	Background vecmath.Vec3
}

// PathTracer dispatches on Config.Mode and, in MatteReflect, runs the
// recursive MIS path tracer (spec §4.5).
type PathTracer struct {
	Config Config
}

func New(cfg Config) *PathTracer { return &PathTracer{Config: cfg} }

func (p *PathTracer) background(sc *scene.Scene) vecmath.Vec3 {
	if sc.HasBackground {
		return sc.Background
	}
	return p.Config.Background
}

// Radiance implements spec §4.5's `radiance(ray, scene, bvh, rng, depth)`.
func (p *PathTracer) Radiance(ray vecmath.Ray, sc *scene.Scene, rng *core.RNG, depth int) vecmath.Vec3 {
	if depth <= 0 {
		return vecmath.Vec3{}
	}

	hit, ok := sc.BVH.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		return p.background(sc)
	}

	switch p.Config.Mode {
	case Normal:
		n := hit.Normal
		return vecmath.NewVec3((n.X+1)/2, (n.Y+1)/2, (n.Z+1)/2)
	case Object:
		return vecmath.NewVec3(1, 0, 0)
	case Flat:
		return albedoOf(hit.Material, hit.UV)
	case Lambert:
		return p.lambertDirect(ray, hit, sc)
	case Barycentric:
		return barycentricColor(hit)
	case AABBMode:
		// BVH.Hit only ever reports a primitive hit after its containing
		// box was hit, so any hit here implies a box hit too.
		return vecmath.NewVec3(1, 1, 1)
	default:
		return p.pathTrace(ray, hit, sc, rng, depth)
	}
}

// albedoOf returns a material's flat color at uv, used by the FLAT and
// LAMBERT render modes and for non-triangle hits in BARYCENTRIC. Every
// variant's ColorSource field is reached via a concrete type switch
// since Go has no common accessor for same-named exported fields across
// otherwise-unrelated structs.
func albedoOf(mat material.Material, uv vecmath.Vec2) vecmath.Vec3 {
	switch m := mat.(type) {
	case *material.Lambertian:
		return m.Albedo.ColorAt(uv)
	case *material.Mirror:
		return m.Albedo.ColorAt(uv)
	case *material.Plastic:
		return m.Albedo.ColorAt(uv)
	case *material.Phong:
		return m.Albedo.ColorAt(uv)
	case *material.BlinnPhong:
		return m.Albedo.ColorAt(uv)
	case *material.Microfacet:
		return m.Albedo.ColorAt(uv)
	case *material.Emissive:
		return m.Radiance
	default:
		return vecmath.NewVec3(0.5, 0.5, 0.5)
	}
}

func barycentricColor(hit *material.SurfaceInteraction) vecmath.Vec3 {
	if hit.IsTriangle {
		return hit.Barycentric
	}
	return albedoOf(hit.Material, hit.UV)
}

// lambertDirect implements the LAMBERT render mode (spec §6): direct
// lighting from point lights with shadow rays, no indirect bounce.
func (p *PathTracer) lambertDirect(rIn vecmath.Ray, hit *material.SurfaceInteraction, sc *scene.Scene) vecmath.Vec3 {
	total := sc.EmittedRadiance(hit)
	albedo := albedoOf(hit.Material, hit.UV)
	for _, pl := range sc.PointLights {
		dir, _, radiance := pl.Sample(hit.Point)
		cosTheta := dir.Dot(hit.Normal)
		if cosTheta <= 0 {
			continue
		}
		if sc.Occluded(hit.Point, pl.Position) {
			continue
		}
		contrib := albedo.Multiply(cosTheta / math.Pi).MultiplyVec(radiance)
		total = total.Add(contrib)
	}
	return total
}

// pathTrace implements the MATTE_REFLECT mode: MIS between BSDF
// sampling and area-light sampling (spec §4.5):
//
//	with probability 1/2 (or always with no area lights, or when the
//	material is a delta distribution), sample the BSDF; otherwise sample
//	a point on a uniformly-chosen area light's uniformly-chosen primitive.
//	pdf = 0.5*pdf_bsdf + 0.5*pdf_light (or just pdf_bsdf with no lights).
//	Return L_e + f_r(r_in,hit,r_out)*radiance(scattered,...)*cosTheta/pdf,
//	or, for a delta material, L_e + attenuation*radiance(scattered,...).
func (p *PathTracer) pathTrace(rIn vecmath.Ray, hit *material.SurfaceInteraction, sc *scene.Scene, rng *core.RNG, depth int) vecmath.Vec3 {
	emitted := sc.EmittedRadiance(hit)
	sampler := sc.LightSampler

	_, isDelta := hit.Material.PDF(rIn, hit, hit.Normal)
	sampleBSDF := isDelta || sampler.Empty() || rng.Float64() < 0.5

	if sampleBSDF {
		result, ok := hit.Material.Sample(rIn, hit, rng)
		if !ok {
			return emitted
		}
		dir := result.Scattered.Direction
		incoming := p.Radiance(offsetRay(hit.Point, dir), sc, rng, depth-1)

		if result.Specular {
			return emitted.Add(result.Attenuation.MultiplyVec(incoming))
		}
		if result.PDF <= 0 {
			return emitted
		}
		pdf := result.PDF
		if !sampler.Empty() {
			pdf = sampler.BalanceMIS(result.PDF, sampler.PDF(result.Scattered))
		}
		if pdf <= 0 {
			return emitted
		}
		brdf := hit.Material.BRDF(rIn, hit, dir)
		cosTheta := dir.Normalize().AbsDot(hit.Normal)
		contrib := brdf.Multiply(cosTheta / pdf).MultiplyVec(incoming)
		return emitted.Add(contrib)
	}

	lightRay, _, ok := sampler.Sample(hit.Point, rng)
	if !ok {
		return emitted
	}
	dir := lightRay.Direction
	pdfBSDF, _ := hit.Material.PDF(rIn, hit, dir)
	pdf := sampler.BalanceMIS(pdfBSDF, sampler.PDF(lightRay))
	if pdf <= 0 {
		return emitted
	}
	incoming := p.Radiance(offsetRay(hit.Point, dir), sc, rng, depth-1)
	brdf := hit.Material.BRDF(rIn, hit, dir)
	cosTheta := dir.Normalize().AbsDot(hit.Normal)
	contrib := brdf.Multiply(cosTheta / pdf).MultiplyVec(incoming)
	return emitted.Add(contrib)
}

// offsetRay builds a ray starting 1e-4 along dir from point, to avoid
// immediate self-intersection (spec §4.4).
func offsetRay(point, dir vecmath.Vec3) vecmath.Ray {
	return vecmath.NewRay(point.Add(dir.Multiply(1e-4)), dir)
}
