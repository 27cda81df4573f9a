package scene

import (
	"fmt"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/geometry"
	"github.com/lumenforge/gopathtracer/pkg/lights"
	"github.com/lumenforge/gopathtracer/pkg/material"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// Scene owns everything the integrator needs to trace a ray: the
// accelerated geometry, the light sampler, point lights for the
// LAMBERT mode, and a background color (spec §3).
//
// Once Build returns, a Scene is immutable and safe to share read-only
// across render workers (spec §5, §9's "Scene-owned texture cache").
type Scene struct {
	BVH         *geometry.BVH
	PointLights []*lights.PointLight
	AreaLights  []*lights.AreaLight
	LightSampler *lights.Sampler
	Background  vecmath.Vec3
	// HasBackground reports whether the parsed scene supplied an
	// explicit background_color (spec §6); when false, the renderer's
	// configured default applies instead.
	HasBackground bool

	SamplesPerPixel int
}

// TextureLoader resolves a texture path to an already-decoded Image.
// Image decoding is an external concern (spec §1); Build accepts a
// loader so the core never performs file I/O itself. A nil loader, or
// one returning an error, degrades a textured material to a flat
// mid-gray color per spec §7 ("surfaced at scene construction; the texture is
// treated as flat color at runtime").
type TextureLoader func(path string) (*material.Image, error)

// Build converts a parsed Description into an immutable Scene: it
// constructs primitives and materials, wires area-light back-references,
// builds the BVH, and resolves textures through loader (spec §4.5's
// data-flow: "Parsed scene -> Scene ... -> BVH build").
//
// It returns a *ValidationError, fatal before rendering starts, if any
// shape names an out-of-range material id (spec §7).
func Build(desc Description, loader TextureLoader, logger core.Logger) (*Scene, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	materials, err := buildMaterials(desc.Materials, loader, logger)
	if err != nil {
		return nil, err
	}

	shapesByDescIndex := make([][]geometry.Shape, len(desc.Shapes))
	for i, sd := range desc.Shapes {
		if sd.MaterialID < 0 || sd.MaterialID >= len(materials) {
			return nil, &ValidationError{ShapeIndex: i, MaterialID: sd.MaterialID}
		}
		mat := materials[sd.MaterialID]
		switch sd.Type {
		case ShapeSphere:
			shapesByDescIndex[i] = []geometry.Shape{geometry.NewSphere(sd.Center, sd.Radius, mat)}
		case ShapeMesh:
			mesh := geometry.NewTriangleMesh(sd.Vertices, sd.Normals, sd.UVs, sd.Indices, mat)
			shapesByDescIndex[i] = mesh.Triangles()
		default:
			return nil, fmt.Errorf("scene: shape %d has unknown type %d", i, sd.Type)
		}
	}

	areaLights := make([]*lights.AreaLight, 0, len(desc.AreaLights))
	for _, ald := range desc.AreaLights {
		var primitives []geometry.Shape
		for _, shapeIdx := range ald.ShapeIndices {
			for _, prim := range shapesByDescIndex[shapeIdx] {
				if _, ok := prim.(geometry.EmittingShape); ok {
					primitives = append(primitives, prim)
				}
			}
		}
		ref := material.NewAreaLightRef(len(areaLights))
		for _, prim := range primitives {
			prim.(geometry.EmittingShape).SetAreaLight(ref)
		}
		areaLights = append(areaLights, lights.NewAreaLight(ald.Radiance, primitives))
	}

	var allShapes []geometry.Shape
	for _, shapes := range shapesByDescIndex {
		allShapes = append(allShapes, shapes...)
	}
	bvh := geometry.NewBVH(allShapes)

	pointLights := make([]*lights.PointLight, 0, len(desc.PointLights))
	for _, pld := range desc.PointLights {
		pointLights = append(pointLights, lights.NewPointLight(pld.Position, pld.Intensity))
	}

	bg := vecmath.Vec3{}
	if desc.BackgroundColor != nil {
		bg = *desc.BackgroundColor
	}
	spp := desc.SamplesPerPixel
	if spp <= 0 {
		spp = 1
	}

	return &Scene{
		BVH:             bvh,
		PointLights:     pointLights,
		AreaLights:      areaLights,
		LightSampler:    lights.NewSampler(areaLights),
		Background:      bg,
		HasBackground:   desc.BackgroundColor != nil,
		SamplesPerPixel: spp,
	}, nil
}

func buildMaterials(descs []MaterialDescription, loader TextureLoader, logger core.Logger) ([]material.Material, error) {
	out := make([]material.Material, len(descs))
	for i, md := range descs {
		albedo, err := buildColorSource(md.Reflectance, loader, logger)
		if err != nil {
			return nil, err
		}
		switch md.Type {
		case MaterialDiffuse:
			out[i] = material.NewLambertian(albedo)
		case MaterialMirror:
			out[i] = material.NewMirror(albedo, md.Eta)
		case MaterialPlastic:
			out[i] = material.NewPlastic(albedo, md.Eta)
		case MaterialPhong:
			out[i] = material.NewPhong(albedo, md.Exponent)
		case MaterialBlinnPhong:
			out[i] = material.NewBlinnPhong(albedo, md.Exponent)
		case MaterialMicrofacet:
			out[i] = material.NewMicrofacet(albedo, md.Exponent, md.Eta)
		case MaterialEmissive:
			out[i] = material.NewEmissive(md.Radiance)
		default:
			return nil, fmt.Errorf("scene: material %d has unknown type %d", i, md.Type)
		}
	}
	return out, nil
}

// buildColorSource resolves a reflectance description into a
// ColorSource. A texture whose path fails to load degrades to a flat
// mid-gray and is logged, not silently dropped (spec §7: "Missing
// texture path: surfaced at scene construction; the texture is treated
// as flat color at runtime").
func buildColorSource(rd ReflectanceDescription, loader TextureLoader, logger core.Logger) (material.ColorSource, error) {
	if !rd.IsTexture {
		return material.NewFlatColor(rd.Color), nil
	}
	if loader == nil {
		logger.Printf("scene: no texture loader configured, using flat color for %q", rd.Filename)
		return material.NewFlatColor(vecmath.NewVec3(0.5, 0.5, 0.5)), nil
	}
	img, err := loader(rd.Filename)
	if err != nil || img == nil {
		logger.Printf("scene: texture %q failed to load (%v), using flat color", rd.Filename, err)
		return material.NewFlatColor(vecmath.NewVec3(0.5, 0.5, 0.5)), nil
	}
	return material.NewImageTexture(img, rd.UScale, rd.VScale, rd.UOffset, rd.VOffset), nil
}

// EmittedRadiance returns the radiance emitted toward the viewer by hit,
// zero for backfaces and non-emitters (spec §4.4's shading protocol:
// "L_e is the primitive's emitted radiance if the hit is a front-facing
// emitter, zero for backfaces and non-emitters"). Radiance is resolved
// through the primitive's AreaLight back-reference (spec §3) when set;
// otherwise a non-scattering Emissive material (MaterialEmissive) is
// consulted directly, for emitters never sampled by the light sampler.
func (s *Scene) EmittedRadiance(hit *material.SurfaceInteraction) vecmath.Vec3 {
	if hit.Backface {
		return vecmath.Vec3{}
	}
	if hit.PrimitiveAreaLight.Valid() {
		idx := hit.PrimitiveAreaLight.Index
		if idx >= 0 && idx < len(s.AreaLights) {
			return s.AreaLights[idx].Radiance
		}
		return vecmath.Vec3{}
	}
	if emitter, ok := hit.Material.(material.Emitter); ok {
		return emitter.Emit(vecmath.Ray{}, hit)
	}
	return vecmath.Vec3{}
}

// shadowRayEpsilon offsets shadow-ray origins to avoid self-intersection
// (spec §4.4's "offset along the scattered direction by 1e-4").
const shadowRayEpsilon = 1e-4

// Occluded fires a shadow ray from point toward target and reports
// whether anything blocks the segment strictly before reaching it (spec
// §6's LAMBERT mode).
func (s *Scene) Occluded(point, target vecmath.Vec3) bool {
	ray, maxDist := lights.ShadowRay(point, target)
	if maxDist <= 0 {
		return false
	}
	_, hit := s.BVH.Hit(ray, shadowRayEpsilon, maxDist)
	return hit
}
