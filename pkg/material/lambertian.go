package material

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Lambertian is a perfectly diffuse material: cosine-weighted hemisphere
// sampling with PDF cos(theta)/pi (spec §4.4).
type Lambertian struct {
	Albedo ColorSource
}

func NewLambertian(albedo ColorSource) *Lambertian { return &Lambertian{Albedo: albedo} }

func (l *Lambertian) Sample(rIn vecmath.Ray, hit *SurfaceInteraction, rng *core.RNG) (ScatterResult, bool) {
	u1, u2 := rng.Vec2()
	dir := core.RandomCosineDirection(hit.Normal, u1, u2)
	pdf, _ := l.PDF(rIn, hit, dir)
	return ScatterResult{
		Scattered:   vecmath.NewRay(hit.Point, dir),
		Attenuation: l.Albedo.ColorAt(hit.UV),
		PDF:         pdf,
	}, true
}

func (l *Lambertian) PDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) (float64, bool) {
	cosTheta := rOut.Normalize().Dot(hit.Normal)
	if cosTheta < 0 {
		return 0, false
	}
	return cosTheta / math.Pi, false
}

func (l *Lambertian) BRDF(rIn vecmath.Ray, hit *SurfaceInteraction, rOut vecmath.Vec3) vecmath.Vec3 {
	return l.Albedo.ColorAt(hit.UV).Multiply(1.0 / math.Pi)
}
