package geometry

import (
	"github.com/lmarchetti/heropath/pkg/core"
	hm "github.com/lmarchetti/heropath/pkg/math"
)

// TriangleRef is a core.Item[Local] wrapping one triangle of a Mesh, the
// leaf unit of the per-mesh BVH (spec §4.2's mesh-local level).
type TriangleRef struct {
	Mesh *Mesh
	Tri  int
}

func (t TriangleRef) Bounds() hm.Bounds[hm.Local] {
	p0, p1, p2 := t.Mesh.VertexPositions(t.Tri)
	return hm.BoundsFromPoints(p0, p1, p2)
}

func (t TriangleRef) Centroid() hm.Point3[hm.Local] {
	p0, p1, p2 := t.Mesh.VertexPositions(t.Tri)
	return p0.Lerp(p1, 1.0/3.0).Lerp(p2, 1.0/3.0)
}

// MeshHit carries everything a material/primitive needs after a successful
// triangle hit: the parametric distance, barycentric coordinates, and which
// triangle of which mesh was struck.
type MeshHit struct {
	T          float64
	B0, B1, B2 float64
	Tri        int
}

// BVH wraps a per-mesh core.BVH[Local, TriangleRef], built once when the
// mesh is loaded and shared by every primitive instance of that mesh.
type BVH struct {
	mesh *Mesh
	tree *core.BVH[hm.Local, TriangleRef]
}

func BuildBVH(mesh *Mesh) *BVH {
	refs := make([]TriangleRef, mesh.TriangleCount())
	for i := range refs {
		refs[i] = TriangleRef{Mesh: mesh, Tri: i}
	}
	return &BVH{mesh: mesh, tree: core.Build[hm.Local, TriangleRef](refs)}
}

func (b *BVH) Intersect(r hm.RayT[hm.Local], tMax float64) (MeshHit, bool) {
	return core.Hit[hm.Local, TriangleRef, MeshHit](b.tree, r, tMax, intersectTriangleRef)
}

func (b *BVH) IntersectP(r hm.RayT[hm.Local], tMax float64) bool {
	return core.HitP[hm.Local, TriangleRef](b.tree, r, tMax, func(t TriangleRef, r hm.RayT[hm.Local], tMax float64) bool {
		_, ok := intersectTriangleRefP(t, r, tMax)
		return ok
	})
}

func (b *BVH) Stats() core.Stats { return core.CollectStats[hm.Local, TriangleRef](b.tree) }

func intersectTriangleRef(t TriangleRef, r hm.RayT[hm.Local], tMax float64) (MeshHit, float64, bool) {
	p0, p1, p2 := t.Mesh.VertexPositions(t.Tri)
	hit, ok := hm.IntersectTriangle(r, p0, p1, p2, tMax)
	if !ok {
		return MeshHit{}, 0, false
	}
	return MeshHit{T: hit.T, B0: hit.B0, B1: hit.B1, B2: hit.B2, Tri: t.Tri}, hit.T, true
}

func intersectTriangleRefP(t TriangleRef, r hm.RayT[hm.Local], tMax float64) (MeshHit, bool) {
	hit, _, ok := intersectTriangleRef(t, r, tMax)
	return hit, ok
}
