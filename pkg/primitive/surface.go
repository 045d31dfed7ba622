// Package primitive wraps a geometry.Mesh (plus its mesh-local BVH) with a
// material and a Local->World transform, and caches the Local->Render
// transform once per render per spec §4.4: "a primitive carries a
// Local->World transform and, after Scene.build, a cached Local->Render;
// ray queries transform the ray into local space, delegate to geometry,
// transform the returned interaction back into render space." Grounded on
// the teacher's pkg/geometry/shape.go Shape/HitRecord contract, generalized
// from a single implicit shape to a transformed mesh-BVH instance.
package primitive

import (
	"github.com/lmarchetti/heropath/pkg/geometry"
	"github.com/lmarchetti/heropath/pkg/material"
	hm "github.com/lmarchetti/heropath/pkg/math"
)

// Hit is what a Surface intersection resolves to, already folded into
// Render space and shaped to feed a material.ShadingContext.
type Hit struct {
	T  float64
	P  hm.Point3[hm.Render]
	Ns hm.Normal3[hm.Render]
	Ng hm.Normal3[hm.Render]
	UV hm.Point2
	Dpdu hm.Vector3[hm.Render]
}

// ShadingContext builds the material.ShadingContext for this hit.
func (h Hit) ShadingContext() material.ShadingContext {
	return material.ShadingContext{UV: h.UV, Ns: h.Ns, Ng: h.Ng, Dpdu: h.Dpdu}
}

// Surface is one instance of a mesh in the scene: the shared mesh-local BVH
// (possibly reused by several instances), a material, and the transform
// from the mesh's Local space into World space. CacheTransform resolves the
// Local->Render transform once per render, per SPEC_FULL.md §5.2's build
// ordering: "the single World->Render transform supplied at build time
// (from the camera) must be the same for all primitives in one render."
type Surface struct {
	Mesh     *geometry.Mesh
	BVH      *geometry.BVH
	Material material.Material

	LocalToWorld hm.Transform[hm.Local, hm.World]

	localToRender hm.Transform[hm.Local, hm.Render]
	renderToLocal hm.Transform[hm.Render, hm.Local]
	cached        bool
}

// CacheTransform composes LocalToWorld with the scene's single
// World->Render transform and caches both directions. Must run once during
// Scene.Build, before Bounds/Centroid/Intersect/IntersectP are called.
func (s *Surface) CacheTransform(worldToRender hm.Transform[hm.World, hm.Render]) {
	s.localToRender = hm.Compose[hm.Local, hm.World, hm.Render](worldToRender, s.LocalToWorld)
	s.renderToLocal = hm.Inverse[hm.Local, hm.Render](s.localToRender)
	s.cached = true
}

// LocalToRender exposes the cached transform, e.g. for pkg/lights to place
// an EmissiveTriangleMesh's triangles in Render space at scene-build time.
func (s *Surface) LocalToRender() hm.Transform[hm.Local, hm.Render] {
	return s.localToRender
}

// Bounds and Centroid satisfy core.Item[hm.Render] for the scene-level BVH.
func (s *Surface) Bounds() hm.Bounds[hm.Render] {
	return s.localToRender.ApplyBounds(s.Mesh.Bounds())
}

func (s *Surface) Centroid() hm.Point3[hm.Render] {
	return s.Bounds().Center()
}

// Intersect transforms r into Local space, delegates to the mesh BVH,
// interpolates the hit, and transforms the result back into Render space.
func (s *Surface) Intersect(r hm.RayT[hm.Render], tMax float64) (Hit, bool) {
	localRay := s.renderToLocal.ApplyRay(r)
	meshHit, ok := s.BVH.Intersect(localRay, tMax)
	if !ok {
		return Hit{}, false
	}
	interaction := s.Mesh.Interpolate(meshHit)
	return Hit{
		T:    meshHit.T,
		P:    s.localToRender.ApplyPoint(interaction.P),
		Ns:   s.localToRender.ApplyNormal(interaction.Ns),
		Ng:   s.localToRender.ApplyNormal(interaction.Ng),
		UV:   interaction.UV,
		Dpdu: s.localToRender.ApplyVector(interaction.Dpdu),
	}, true
}

// IntersectP is the shadow-ray-only variant: existence, not shading data.
func (s *Surface) IntersectP(r hm.RayT[hm.Render], tMax float64) bool {
	localRay := s.renderToLocal.ApplyRay(r)
	return s.BVH.IntersectP(localRay, tMax)
}
