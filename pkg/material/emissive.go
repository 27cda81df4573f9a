package material

import (
	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Emissive is a one-sided diffuse emitter: it emits Radiance on its front
// face only and does not scatter (used as the material attached to
// AreaLight-referenced primitives).
type Emissive struct {
	Radiance vecmath.Vec3
}

func NewEmissive(radiance vecmath.Vec3) *Emissive { return &Emissive{Radiance: radiance} }

func (e *Emissive) Emit(rIn vecmath.Ray, hit *SurfaceInteraction) vecmath.Vec3 {
	if hit != nil && hit.Backface {
		return vecmath.Vec3{}
	}
	return e.Radiance
}

func (e *Emissive) Sample(rIn vecmath.Ray, hit *SurfaceInteraction, rng *core.RNG) (ScatterResult, bool) {
	return ScatterResult{}, false
}

func (e *Emissive) PDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) (float64, bool) {
	return 0, false
}

func (e *Emissive) BRDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) vecmath.Vec3 {
	return vecmath.Vec3{}
}
