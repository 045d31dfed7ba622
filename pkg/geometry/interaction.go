package geometry

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
)

// Interaction is everything a BVH hit on a Mesh resolves to, entirely in
// Local space; pkg/primitive transforms this into Render space and folds
// it into a material.ShadingContext. Grounded on spec §4.3's hit
// post-processing: interpolate shading normal and uv barycentrically,
// then orthogonalize the tangent against the interpolated normal.
type Interaction struct {
	P    hm.Point3[hm.Local]
	Ns   hm.Normal3[hm.Local] // face-forwarded against Ng
	Ng   hm.Normal3[hm.Local]
	UV   hm.Point2
	Dpdu hm.Vector3[hm.Local]
}

// Interpolate resolves a MeshHit (barycentric weights + triangle index)
// into per-point shading data, per spec §4.3.
func (m *Mesh) Interpolate(hit MeshHit) Interaction {
	p0, p1, p2 := m.VertexPositions(hit.Tri)
	p := barycentricPoint(p0, p1, p2, hit.B0, hit.B1, hit.B2)

	ng := m.GeometricNormal(hit.Tri)

	ns := ng
	if n0, n1, n2, ok := m.VertexNormals(hit.Tri); ok {
		ns = barycentricNormal(n0, n1, n2, hit.B0, hit.B1, hit.B2).FaceForward(ng.AsVector())
	}

	uv := hm.Point2{X: hit.B1, Y: hit.B2}
	if uv0, uv1, uv2, ok := m.VertexUVs(hit.Tri); ok {
		uv = hm.Point2{
			X: uv0.X*hit.B0 + uv1.X*hit.B1 + uv2.X*hit.B2,
			Y: uv0.Y*hit.B0 + uv1.Y*hit.B1 + uv2.Y*hit.B2,
		}
	}

	var dpdu hm.Vector3[hm.Local]
	if t0, t1, t2, ok := m.VertexTangents(hit.Tri); ok {
		raw := t0.Scale(hit.B0).Add(t1.Scale(hit.B1)).Add(t2.Scale(hit.B2))
		dpdu = orthogonalizeTangent(raw, ns)
	} else {
		dpdu = arbitraryTangent(ns)
	}

	return Interaction{P: p, Ns: ns, Ng: ng, UV: uv, Dpdu: dpdu}
}

func barycentricPoint(p0, p1, p2 hm.Point3[hm.Local], b0, b1, b2 float64) hm.Point3[hm.Local] {
	return hm.Point3[hm.Local]{
		X: p0.X*b0 + p1.X*b1 + p2.X*b2,
		Y: p0.Y*b0 + p1.Y*b1 + p2.Y*b2,
		Z: p0.Z*b0 + p1.Z*b1 + p2.Z*b2,
	}
}

func barycentricNormal(n0, n1, n2 hm.Normal3[hm.Local], b0, b1, b2 float64) hm.Normal3[hm.Local] {
	v := n0.AsVector().Scale(b0).Add(n1.AsVector().Scale(b1)).Add(n2.AsVector().Scale(b2))
	return hm.NewNormal3[hm.Local](v.X, v.Y, v.Z)
}

// orthogonalizeTangent implements spec §4.3's t' = normalize(t - (n.t)n);
// falls back to an arbitrary tangent when t is degenerate (near-parallel
// to n, or a zero vector from three coincident vertex tangents).
func orthogonalizeTangent(t hm.Vector3[hm.Local], n hm.Normal3[hm.Local]) hm.Vector3[hm.Local] {
	proj := n.Dot(t)
	ortho := t.Sub(n.AsVector().Scale(proj))
	if ortho.LengthSquared() < 1e-12 {
		return arbitraryTangent(n)
	}
	return ortho.Normalized()
}
