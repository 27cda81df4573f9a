package renderer

import "github.com/lumenforge/gopathtracer/pkg/vecmath"

// Framebuffer is a linear-space RGB image (spec §6: "Linear-space RGB
// framebuffer; external codec encodes as EXR/PNG").
type Framebuffer struct {
	Width, Height int
	Pixels        []vecmath.Vec3
}

// NewFramebuffer allocates a zeroed framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pixels: make([]vecmath.Vec3, width*height)}
}

// Set writes a pixel's color (row-major indexing).
func (f *Framebuffer) Set(x, y int, c vecmath.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// At reads a pixel's color.
func (f *Framebuffer) At(x, y int) vecmath.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// RenderStats summarizes a completed render (spec §5's per-tile
// progress reporting, grounded in the teacher's RenderStats).
type RenderStats struct {
	TotalPixels  int
	TotalSamples int
	TilesDone    int
	TotalTiles   int
}
