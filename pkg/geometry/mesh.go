// Package geometry holds the triangle mesh container that backs every
// renderable surface in heropath — per spec §2, the only supported
// geometric primitive is the triangle mesh plus the analytic light shapes
// built on top of it in pkg/lights.
package geometry

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
)

// Mesh is an indexed triangle mesh in Local space, generalized from the
// teacher's one-Shape-per-triangle TriangleMesh (pkg/geometry/
// triangle_mesh.go) into a shared vertex-attribute layout: every attribute
// array is indexed by Indices, so shared vertices are stored once.
type Mesh struct {
	Positions []hm.Point3[hm.Local]
	Normals   []hm.Normal3[hm.Local] // per-vertex; nil if the mesh has no shading normals
	Tangents  []hm.Vector3[hm.Local] // per-vertex; reconstructed by ComputeTangents if UVs are present
	UVs       []hm.Point2            // per-vertex; nil if the mesh has no UVs
	Indices   []int32                // triangle triples into the arrays above
}

func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

func (m *Mesh) triVerts(tri int) (i0, i1, i2 int32) {
	base := tri * 3
	return m.Indices[base], m.Indices[base+1], m.Indices[base+2]
}

// VertexPositions returns the three corner positions of triangle tri.
func (m *Mesh) VertexPositions(tri int) (p0, p1, p2 hm.Point3[hm.Local]) {
	i0, i1, i2 := m.triVerts(tri)
	return m.Positions[i0], m.Positions[i1], m.Positions[i2]
}

// VertexNormals returns the three shading normals, or ok=false if the mesh
// carries no per-vertex normals (the caller should fall back to the flat
// geometric normal).
func (m *Mesh) VertexNormals(tri int) (n0, n1, n2 hm.Normal3[hm.Local], ok bool) {
	if m.Normals == nil {
		return n0, n1, n2, false
	}
	i0, i1, i2 := m.triVerts(tri)
	return m.Normals[i0], m.Normals[i1], m.Normals[i2], true
}

// VertexUVs returns the three texture coordinates, or ok=false if the mesh
// has none (the caller should fall back to barycentric coordinates or a
// constant UV).
func (m *Mesh) VertexUVs(tri int) (uv0, uv1, uv2 hm.Point2, ok bool) {
	if m.UVs == nil {
		return uv0, uv1, uv2, false
	}
	i0, i1, i2 := m.triVerts(tri)
	return m.UVs[i0], m.UVs[i1], m.UVs[i2], true
}

// VertexTangents returns the three shading tangents, or ok=false if the
// mesh has no reconstructed tangent basis.
func (m *Mesh) VertexTangents(tri int) (t0, t1, t2 hm.Vector3[hm.Local], ok bool) {
	if m.Tangents == nil {
		return t0, t1, t2, false
	}
	i0, i1, i2 := m.triVerts(tri)
	return m.Tangents[i0], m.Tangents[i1], m.Tangents[i2], true
}

// GeometricNormal returns the flat (non-interpolated) normal of the
// triangle, computed from the edge cross product. Used both as the
// fallback shading normal and as the reference direction shading normals
// are face-forwarded against.
func (m *Mesh) GeometricNormal(tri int) hm.Normal3[hm.Local] {
	p0, p1, p2 := m.VertexPositions(tri)
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	n := e1.Cross(e2)
	return hm.NewNormal3[hm.Local](n.X, n.Y, n.Z)
}

// Area returns the triangle's area in Local space (half the cross-product
// magnitude). Emissive meshes do not use this: lights.EmissiveTriangleMesh
// computes its own Render-space triangle areas for area sampling.
func (m *Mesh) Area(tri int) float64 {
	p0, p1, p2 := m.VertexPositions(tri)
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	return 0.5 * e1.Cross(e2).Length()
}

// Bounds returns the Local-space bounds of the whole mesh.
func (m *Mesh) Bounds() hm.Bounds[hm.Local] {
	b := hm.EmptyBounds[hm.Local]()
	for _, p := range m.Positions {
		b = b.UnionPoint(p)
	}
	return b
}

// ComputeTangents derives a per-vertex tangent basis from the UV
// parameterization (Lengyel's method), averaging contributions from every
// triangle sharing a vertex. Triangles with a degenerate UV mapping (zero
// or near-zero parametric area) fall back to an arbitrary vector
// orthogonal to the triangle's geometric normal, since there's no UV gradient to derive
// a tangent from. No-op if the mesh has no UVs.
func (m *Mesh) ComputeTangents() {
	if m.UVs == nil {
		return
	}
	tangents := make([]hm.Vector3[hm.Local], len(m.Positions))
	counts := make([]int, len(m.Positions))

	for tri := 0; tri < m.TriangleCount(); tri++ {
		i0, i1, i2 := m.triVerts(tri)
		p0, p1, p2 := m.VertexPositions(tri)
		uv0, uv1, uv2 := m.UVs[i0], m.UVs[i1], m.UVs[i2]

		e1 := p1.Sub(p0)
		e2 := p2.Sub(p0)
		du1, dv1 := uv1.X-uv0.X, uv1.Y-uv0.Y
		du2, dv2 := uv2.X-uv0.X, uv2.Y-uv0.Y

		det := du1*dv2 - du2*dv1
		var tangent hm.Vector3[hm.Local]
		if gomath.Abs(det) < 1e-12 {
			tangent = arbitraryTangent(m.GeometricNormal(tri))
		} else {
			r := 1 / det
			tangent = e1.Scale(dv2 * r).Sub(e2.Scale(dv1 * r))
		}

		for _, idx := range [3]int32{i0, i1, i2} {
			tangents[idx] = tangents[idx].Add(tangent)
			counts[idx]++
		}
	}

	for i := range tangents {
		if counts[i] == 0 {
			continue
		}
		tangents[i] = tangents[i].Normalized()
	}
	m.Tangents = tangents
}

// arbitraryTangent returns some unit vector orthogonal to n, via the
// standard branch-on-largest-axis construction (avoids the degenerate
// cross product when n is near-parallel to a naive reference axis).
func arbitraryTangent(n hm.Normal3[hm.Local]) hm.Vector3[hm.Local] {
	v := n.AsVector()
	var ref hm.Vector3[hm.Local]
	if gomath.Abs(v.X) < gomath.Abs(v.Y) && gomath.Abs(v.X) < gomath.Abs(v.Z) {
		ref = hm.NewVector3[hm.Local](1, 0, 0)
	} else if gomath.Abs(v.Y) < gomath.Abs(v.Z) {
		ref = hm.NewVector3[hm.Local](0, 1, 0)
	} else {
		ref = hm.NewVector3[hm.Local](0, 0, 1)
	}
	return v.Cross(ref).Normalized()
}
