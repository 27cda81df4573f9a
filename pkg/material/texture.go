package material

import (
	"math"

	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Image is already-decoded pixel data: width*height Vec3 colors in linear
// space, row-major. Decoding image files is an external collaborator
// (spec.md §1); this core only ever consumes an already-decoded Image.
type Image struct {
	Width, Height int
	Pixels        []vecmath.Vec3
}

func (img *Image) at(x, y int) vecmath.Vec3 {
	x = ((x % img.Width) + img.Width) % img.Width
	y = ((y % img.Height) + img.Height) % img.Height
	return img.Pixels[y*img.Width+x]
}

// ImageTexture bilinearly samples an Image with wrap addressing and a
// scale/offset applied to the UV before lookup (spec §6).
type ImageTexture struct {
	Image                          *Image
	UScale, VScale, UOffset, VOffset float64
}

// NewImageTexture builds a texture with the given scale/offset, stored as
// given; a zero scale is not replaced by 1 here.
func NewImageTexture(img *Image, uScale, vScale, uOffset, vOffset float64) *ImageTexture {
	return &ImageTexture{Image: img, UScale: uScale, VScale: vScale, UOffset: uOffset, VOffset: vOffset}
}

func wrap01(v float64) float64 {
	v = math.Mod(v, 1.0)
	if v < 0 {
		v += 1.0
	}
	return v
}

// ColorAt implements ColorSource: wrap the scaled/offset UV into [0,1),
// map into pixel space, and bilinearly interpolate the four surrounding
// texels.
func (t *ImageTexture) ColorAt(uv vecmath.Vec2) vecmath.Vec3 {
	u := wrap01(t.UScale*uv.X + t.UOffset)
	v := wrap01(t.VScale*uv.Y + t.VOffset)

	rx := u * float64(t.Image.Width)
	ry := v * float64(t.Image.Height)

	x0 := int(math.Floor(rx))
	y0 := int(math.Floor(ry))
	fx := rx - float64(x0)
	fy := ry - float64(y0)
	x1 := x0 + 1
	y1 := y0 + 1

	c00 := t.Image.at(x0, y0)
	c10 := t.Image.at(x1, y0)
	c01 := t.Image.at(x0, y1)
	c11 := t.Image.at(x1, y1)

	top := c00.Multiply(1 - fx).Add(c10.Multiply(fx))
	bottom := c01.Multiply(1 - fx).Add(c11.Multiply(fx))
	return top.Multiply(1 - fy).Add(bottom.Multiply(fy))
}
