// Package scene converts a parsed-scene description (spec.md §6's
// "Parsed-scene contract", produced elsewhere and consumed here) into
// an immutable, BVH-accelerated Scene ready to render.
package scene

import (
	"fmt"

	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// ShapeType tags a shape description's kind.
type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapeMesh
)

// MaterialType tags a material description's kind.
type MaterialType int

const (
	MaterialDiffuse MaterialType = iota
	MaterialMirror
	MaterialPlastic
	MaterialPhong
	MaterialBlinnPhong
	MaterialMicrofacet
	// MaterialEmissive is a non-scattering emitter, for shapes that emit
	// without also needing an AreaLight back-reference (e.g. a light
	// source that is never itself sampled by the light sampler, only hit
	// directly by camera or scattered rays).
	MaterialEmissive
)

// ReflectanceDescription is either a flat color or an image-texture
// reference (spec §6).
type ReflectanceDescription struct {
	IsTexture bool
	Color     vecmath.Vec3
	Filename  string
	UScale    float64
	VScale    float64
	UOffset   float64
	VOffset   float64
}

// FlatReflectance builds a constant-color reflectance description.
func FlatReflectance(c vecmath.Vec3) ReflectanceDescription {
	return ReflectanceDescription{Color: c}
}

// TextureReflectance builds an image-texture reflectance description,
// defaulting scale to 1 and offset to 0 when unset.
func TextureReflectance(filename string, uscale, vscale, uoffset, voffset float64) ReflectanceDescription {
	if uscale == 0 {
		uscale = 1
	}
	if vscale == 0 {
		vscale = 1
	}
	return ReflectanceDescription{IsTexture: true, Filename: filename, UScale: uscale, VScale: vscale, UOffset: uoffset, VOffset: voffset}
}

// MaterialDescription describes one material entry (spec §6).
type MaterialDescription struct {
	Type        MaterialType
	Reflectance ReflectanceDescription
	Eta         float64      // index of refraction; used by Mirror and Plastic
	Exponent    float64      // Phong/Blinn-Phong/Microfacet specular exponent
	Radiance    vecmath.Vec3 // used by MaterialEmissive
}

// ShapeDescription describes one primitive entry (spec §6): a type tag,
// the index of its material, and an optional area-light id.
type ShapeDescription struct {
	Type       ShapeType
	MaterialID int

	// HasAreaLight and AreaLightID are carried from the parsed scene but
	// are not read by Build: area-light back-references are wired only
	// from AreaLightDescription.ShapeIndices.
	HasAreaLight bool
	AreaLightID  int

	// Sphere fields.
	Center vecmath.Vec3
	Radius float64

	// Mesh fields: shared vertex/normal/uv buffers and index triples.
	Vertices []vecmath.Vec3
	Normals  []vecmath.Vec3
	UVs      []vecmath.Vec2
	Indices  [][3]int
}

// PointLightDescription describes one point light (spec §6).
type PointLightDescription struct {
	Position  vecmath.Vec3
	Intensity vecmath.Vec3
}

// AreaLightDescription describes one area light (spec §3/§6): a
// radiance value and the indices, into Description.Shapes, of the
// primitives that emit it.
type AreaLightDescription struct {
	Radiance   vecmath.Vec3
	ShapeIndices []int
}

// CameraDescription describes the resolved camera (spec §3).
type CameraDescription struct {
	LookFrom vecmath.Vec3
	LookAt   vecmath.Vec3
	Up       vecmath.Vec3
	VFOV     float64
}

// Description is the full parsed-scene contract (spec §6): shapes,
// materials, lights, and camera, plus optional renderer overrides.
type Description struct {
	Camera      CameraDescription
	Shapes      []ShapeDescription
	Materials   []MaterialDescription
	PointLights []PointLightDescription
	AreaLights  []AreaLightDescription

	// SamplesPerPixel and BackgroundColor, when non-zero/non-nil-ish,
	// override the renderer's configured defaults (spec §6).
	SamplesPerPixel int
	BackgroundColor *vecmath.Vec3
}

// ValidationError reports an out-of-range material id, a spec §7
// program-invariant violation that is fatal before rendering starts.
type ValidationError struct {
	ShapeIndex int
	MaterialID int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scene: shape %d references invalid material id %d", e.ShapeIndex, e.MaterialID)
}
