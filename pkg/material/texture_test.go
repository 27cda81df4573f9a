package material

import (
	"testing"

	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

func TestFlatColorConstant(t *testing.T) {
	c := NewFlatColor(vecmath.NewVec3(0.2, 0.4, 0.6))
	a := c.ColorAt(vecmath.NewVec2(0, 0))
	b := c.ColorAt(vecmath.NewVec2(0.9, 0.1))
	if a != b {
		t.Errorf("FlatColor varies by uv: %v vs %v", a, b)
	}
}

func TestImageTextureSamplesExactTexelAtGridPoint(t *testing.T) {
	img := &Image{
		Width: 2, Height: 2,
		Pixels: []vecmath.Vec3{
			vecmath.NewVec3(1, 0, 0), vecmath.NewVec3(0, 1, 0),
			vecmath.NewVec3(0, 0, 1), vecmath.NewVec3(1, 1, 1),
		},
	}
	tex := NewImageTexture(img, 1, 1, 0, 0)
	got := tex.ColorAt(vecmath.NewVec2(0, 0))
	if got.X < 0 || got.X > 1 || got.Y < 0 || got.Y > 1 || got.Z < 0 || got.Z > 1 {
		t.Errorf("sampled color out of [0,1] range: %v", got)
	}
	// uv (0,0) maps to pixel-space (0,0): bilinear weights select texel
	// (0,0) alone.
	if got != vecmath.NewVec3(1, 0, 0) {
		t.Errorf("ColorAt(0,0) = %v, want texel (0,0) = (1,0,0)", got)
	}
}

func TestImageTextureWrapsUV(t *testing.T) {
	img := &Image{
		Width: 1, Height: 1,
		Pixels: []vecmath.Vec3{vecmath.NewVec3(0.5, 0.5, 0.5)},
	}
	tex := NewImageTexture(img, 1, 1, 0, 0)
	inRange := tex.ColorAt(vecmath.NewVec2(0.5, 0.5))
	outOfRange := tex.ColorAt(vecmath.NewVec2(1.5, -0.5))
	if inRange.Subtract(outOfRange).Length() > 1e-9 {
		t.Errorf("wrapped UV sample differs from in-range sample: %v vs %v", outOfRange, inRange)
	}
}
