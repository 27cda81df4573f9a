package main

import (
	"github.com/lumenforge/gopathtracer/pkg/scene"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// defaultScene builds the demo scene used by the CLI when no scene file
// is given: a ground sphere, four spheres with different material
// variants, and a single rectangular-ish area light made of two
// triangles overhead (spec §8's testable scenarios use single-sphere and
// single-triangle scenes; this demo composes both primitive kinds with
// diffuse, mirror, plastic, microfacet and emissive materials; Phong and
// Blinn-Phong do not appear in it).
func defaultScene(width, height int) scene.Description {
	materials := []scene.MaterialDescription{
		{Type: scene.MaterialDiffuse, Reflectance: scene.FlatReflectance(vecmath.NewVec3(0.5, 0.5, 0.5))},                    // 0: ground
		{Type: scene.MaterialDiffuse, Reflectance: scene.FlatReflectance(vecmath.NewVec3(0.1, 0.2, 0.5))},                    // 1: center
		{Type: scene.MaterialMirror, Reflectance: scene.FlatReflectance(vecmath.NewVec3(0.9, 0.9, 0.9)), Eta: 1.5},           // 2: left
		{Type: scene.MaterialPlastic, Reflectance: scene.FlatReflectance(vecmath.NewVec3(0.7, 0.1, 0.1)), Eta: 1.4},         // 3: right
		{Type: scene.MaterialMicrofacet, Reflectance: scene.FlatReflectance(vecmath.NewVec3(0.8, 0.6, 0.2)), Eta: 1.6, Exponent: 40}, // 4: front
		{Type: scene.MaterialEmissive, Radiance: vecmath.NewVec3(15, 14, 13)},                                               // 5: area light
	}

	shapes := []scene.ShapeDescription{
		{Type: scene.ShapeSphere, MaterialID: 0, Center: vecmath.NewVec3(0, -1000, 0), Radius: 1000},
		{Type: scene.ShapeSphere, MaterialID: 1, Center: vecmath.NewVec3(0, 0.5, -1), Radius: 0.5},
		{Type: scene.ShapeSphere, MaterialID: 2, Center: vecmath.NewVec3(-1, 0.5, -1), Radius: 0.5},
		{Type: scene.ShapeSphere, MaterialID: 3, Center: vecmath.NewVec3(1, 0.5, -1), Radius: 0.5},
		{Type: scene.ShapeSphere, MaterialID: 4, Center: vecmath.NewVec3(0, 0.4, -0.1), Radius: 0.3},
		// Overhead area light: two triangles forming a quad.
		{
			Type:       scene.ShapeMesh,
			MaterialID: 5,
			Vertices: []vecmath.Vec3{
				vecmath.NewVec3(-2, 4, -3),
				vecmath.NewVec3(2, 4, -3),
				vecmath.NewVec3(2, 4, 1),
				vecmath.NewVec3(-2, 4, 1),
			},
			Indices: [][3]int{{0, 1, 2}, {0, 2, 3}},
		},
	}

	return scene.Description{
		Camera: scene.CameraDescription{
			LookFrom: vecmath.NewVec3(0, 0.75, 2.5),
			LookAt:   vecmath.NewVec3(0, 0.5, -1),
			Up:       vecmath.NewVec3(0, 1, 0),
			VFOV:     40,
		},
		Shapes:    shapes,
		Materials: materials,
		AreaLights: []scene.AreaLightDescription{
			{Radiance: vecmath.NewVec3(15, 14, 13), ShapeIndices: []int{5}},
		},
		SamplesPerPixel: 16,
	}
}
