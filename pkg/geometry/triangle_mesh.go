package geometry

import (
	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/material"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// TriangleMesh is an indexed, shared-vertex-buffer mesh (a feature
// present in original_source but dropped from the distilled spec's
// Triangle primitive). It describes a mesh by shared buffers, and
// Triangles expands it into one Triangle per face, a flat slice of
// Shapes that composes with the rest of the Primitive contract and the
// BVH without any special-casing.
type TriangleMesh struct {
	Vertices []vecmath.Vec3
	Normals  []vecmath.Vec3
	UVs      []vecmath.Vec2
	Indices  [][3]int
	Material material.Material
}

// NewTriangleMesh builds a mesh from shared vertex/normal/uv buffers and
// a list of per-face vertex-index triples. Normals and UVs may be nil,
// in which case flat per-face normals and default UVs are substituted.
func NewTriangleMesh(vertices, normals []vecmath.Vec3, uvs []vecmath.Vec2, indices [][3]int, mat material.Material) *TriangleMesh {
	return &TriangleMesh{Vertices: vertices, Normals: normals, UVs: uvs, Indices: indices, Material: mat}
}

// Triangles expands the mesh into individual Triangle shapes, each
// sharing the mesh's material, suitable for insertion into a BVH.
func (m *TriangleMesh) Triangles() []Shape {
	out := make([]Shape, 0, len(m.Indices))
	for _, tri := range m.Indices {
		i0, i1, i2 := tri[0], tri[1], tri[2]
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		if m.Normals == nil && m.UVs == nil {
			out = append(out, NewTriangle(v0, v1, v2, m.Material))
			continue
		}

		n0, n1, n2 := faceNormal(v0, v1, v2), faceNormal(v0, v1, v2), faceNormal(v0, v1, v2)
		if m.Normals != nil {
			n0, n1, n2 = m.Normals[i0], m.Normals[i1], m.Normals[i2]
		}
		uv0, uv1, uv2 := vecmath.NewVec2(0, 0), vecmath.NewVec2(1, 0), vecmath.NewVec2(0, 1)
		if m.UVs != nil {
			uv0, uv1, uv2 = m.UVs[i0], m.UVs[i1], m.UVs[i2]
		}
		out = append(out, NewTriangleSmooth(v0, v1, v2, n0, n1, n2, uv0, uv1, uv2, m.Material))
	}
	return out
}

func faceNormal(v0, v1, v2 vecmath.Vec3) vecmath.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// BoundingBox returns the bounds of the whole mesh, useful before the
// mesh is expanded into individual triangles.
func (m *TriangleMesh) BoundingBox() core.AABB {
	box := core.EmptyAABB()
	for _, v := range m.Vertices {
		box = box.UnionPoint(v)
	}
	return box
}
