// Package geometry implements the Primitive contract from spec.md §3/§4.2:
// ray intersection, surface sampling (for area-light sampling), surface
// PDF, and bounds, for Sphere and Triangle, plus the SAH-built BVH that
// accelerates intersection across them.
package geometry

import (
	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/material"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Shape is a primitive that can be hit by a ray, bounded, and — when used
// as an area light's emitting geometry — sampled on its surface.
type Shape interface {
	// Hit tests for intersection within the open interval (tMin, tMax);
	// ok is false on miss.
	Hit(ray vecmath.Ray, tMin, tMax float64) (hit *material.SurfaceInteraction, ok bool)

	// BoundingBox returns the shape's axis-aligned bounds.
	BoundingBox() core.AABB

	// SampleSurface draws a uniform point on the shape's surface. It
	// returns the point, its outward surface normal (for a Triangle, the
	// normal interpolated from its vertex normals), and the surface area
	// (the sampling Jacobian), per spec §4.2.
	SampleSurface(rng *core.RNG) (point, normal vecmath.Vec3, area float64)

	// PDFSurface returns the solid-angle probability density of the
	// point this ray hits on the shape, as observed from ray.Origin
	// (spec §4.2): 0 if the ray misses the shape.
	PDFSurface(ray vecmath.Ray) float64
}

// EmittingShape is implemented by primitives that can carry an
// AreaLight back-reference (spec §3's "each referenced primitive also
// stores a back-reference").
type EmittingShape interface {
	Shape
	SetAreaLight(ref material.AreaLightRef)
}
