// Package camera builds the screen-space-to-world-space ray generator
// (spec.md §4.6): an orthonormal look-from/look-at basis cached once at
// construction and reused by every pixel sample.
package camera

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Config fully specifies a camera (spec §3's "Camera (resolved)").
type Config struct {
	LookFrom vecmath.Vec3
	LookAt   vecmath.Vec3
	Up       vecmath.Vec3
	VFOV     float64 // degrees
	Width    int
	Height   int
}

// Camera caches the camera-to-world basis and viewport extents derived
// from a Config so per-pixel ray generation is a handful of
// multiply-adds.
type Camera struct {
	origin vecmath.Vec3
	u, v, w vecmath.Vec3
	halfVPW, halfVPH float64
	width, height int
}

// New builds a Camera from a Config, computing the orthonormal basis
// `(u, v, w)` with `w = normalise(lookFrom-lookAt)`, `u = normalise(up x w)`,
// `v = w x u` (spec §4.6).
func New(cfg Config) *Camera {
	w := cfg.LookFrom.Subtract(cfg.LookAt).Normalize()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	aspect := float64(cfg.Width) / float64(cfg.Height)
	theta := cfg.VFOV * math.Pi / 180
	vpH := 2 * math.Tan(theta/2)
	vpW := aspect * vpH

	return &Camera{
		origin:  cfg.LookFrom,
		u:       u,
		v:       v,
		w:       w,
		halfVPW: vpW / 2,
		halfVPH: vpH / 2,
		width:   cfg.Width,
		height:  cfg.Height,
	}
}

// Width and Height return the configured image dimensions.
func (c *Camera) Width() int  { return c.width }
func (c *Camera) Height() int { return c.height }

// RayTo builds a world-space ray through screen coordinate (x, y), where
// x, y may carry sub-pixel jitter (spec §4.7). Pixel (0,0) is the
// top-left corner of the image.
func (c *Camera) RayTo(x, y float64) vecmath.Ray {
	ndcX := x/float64(c.width)*2 - 1
	ndcY := y/float64(c.height)*2 - 1

	px := ndcX * c.halfVPW
	py := ndcY * c.halfVPH

	dir := c.u.Multiply(px).Subtract(c.v.Multiply(py)).Subtract(c.w).Normalize()
	return vecmath.NewRay(c.origin, dir)
}
