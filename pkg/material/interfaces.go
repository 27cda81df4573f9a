// Package material implements the BSDF abstraction: evaluating, sampling,
// and shading surface scattering for the materials named in spec.md
// (Lambert, Mirror, Plastic, Phong, Blinn-Phong, Microfacet) plus emission
// and flat/textured albedo.
package material

import (
	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// SurfaceInteraction is the result of a successful ray-primitive
// intersection (spec.md's RayHit). Normal always faces the incoming ray;
// Backface records whether the geometric normal had to be flipped to do
// so. UV are texture coordinates.
type SurfaceInteraction struct {
	T        float64
	Point    vecmath.Vec3
	Normal   vecmath.Vec3
	UV       vecmath.Vec2
	Backface bool
	Material Material

	// IsTriangle and Barycentric are set only by Triangle.Hit, for the
	// BARYCENTRIC render mode (spec §6).
	IsTriangle  bool
	Barycentric vecmath.Vec3

	// PrimitiveAreaLight is set by the owning Scene when the hit primitive
	// is referenced by an AreaLight, giving O(1) "is this an emitter?"
	// lookup without a reverse map lookup per spec.md §3.
	PrimitiveAreaLight AreaLightRef
}

// AreaLightRef is an opaque back-reference a primitive carries to the
// AreaLight it belongs to, resolved by Scene.EmittedRadiance. A nil-valued
// ref (Valid() == false) means the primitive emits nothing.
type AreaLightRef struct {
	Index int
	set   bool
}

func NewAreaLightRef(index int) AreaLightRef { return AreaLightRef{Index: index, set: true} }
func (r AreaLightRef) Valid() bool           { return r.set }

// SetFaceNormal orients outwardNormal to face the incoming ray and records
// whether this was a backface hit.
func (si *SurfaceInteraction) SetFaceNormal(ray vecmath.Ray, outwardNormal vecmath.Vec3) {
	si.Backface = ray.Direction.Dot(outwardNormal) > 0
	if si.Backface {
		si.Normal = outwardNormal.Negate()
	} else {
		si.Normal = outwardNormal
	}
}

// ScatterResult is what Material.Sample returns for a successfully
// scattered ray.
type ScatterResult struct {
	Scattered   vecmath.Ray
	Attenuation vecmath.Vec3 // albedo at the hit UV, possibly fresnel-weighted
	PDF         float64      // 0 (and Specular true) for delta materials
	Specular    bool
}

// Material is the BSDF contract every material variant implements (spec
// §4.4): importance-sample a scattered ray, evaluate its PDF for a given
// direction, and evaluate the BRDF itself.
type Material interface {
	// Sample importance-samples a scattered direction at the hit point.
	// ok is false when no scattered ray is produced: Emissive never
	// scatters, and Phong, BlinnPhong and Microfacet report no scatter
	// when the sampled direction has zero density.
	Sample(rIn vecmath.Ray, hit *SurfaceInteraction, rng *core.RNG) (ScatterResult, bool)

	// PDF returns the solid-angle probability density of scattering
	// toward rOut from rIn at the hit point, and whether the material is
	// a delta distribution (in which case pdf is meaningless and light
	// sampling toward it must be skipped).
	PDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) (pdf float64, isDelta bool)

	// BRDF evaluates the (non-delta) reflectance term f_r(rIn, rOut).
	BRDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) vecmath.Vec3
}

// Emitter is implemented by materials that emit radiance (spec.md's
// AreaLight-backed primitives use this through their material).
type Emitter interface {
	Emit(rIn vecmath.Ray, hit *SurfaceInteraction) vecmath.Vec3
}

// ColorSource resolves a material's albedo at a UV coordinate, either a
// flat color or a bilinearly-sampled image texture (spec §4.2, §6).
type ColorSource interface {
	ColorAt(uv vecmath.Vec2) vecmath.Vec3
}

// FlatColor is the trivial ColorSource: the same color everywhere.
type FlatColor struct {
	Color vecmath.Vec3
}

func NewFlatColor(c vecmath.Vec3) FlatColor   { return FlatColor{Color: c} }
func (f FlatColor) ColorAt(vecmath.Vec2) vecmath.Vec3 { return f.Color }
