// Package scene aggregates primitives and lights into the one renderable
// unit the integrator walks, and owns the build sequencing SPEC_FULL.md
// §5.2 spells out: mesh-local BVHs exist already (built at load time);
// Build() caches every primitive's Local->Render transform, builds the
// scene-level BVH over primitives, computes the finite bounding sphere,
// preprocesses every light against it, and leaves the light sampler's
// per-wavelength tables to be built lazily on demand. Grounded on the
// teacher's pkg/scene/scene.go Scene.Preprocess, generalized from its
// single shape-level BVH + uniform-default light sampler to the two-level
// mesh/primitive BVH and power-weighted lightsampler.Factory.
package scene

import (
	"github.com/lmarchetti/heropath/pkg/camera"
	"github.com/lmarchetti/heropath/pkg/core"
	"github.com/lmarchetti/heropath/pkg/lights"
	"github.com/lmarchetti/heropath/pkg/lightsampler"
	"github.com/lmarchetti/heropath/pkg/material"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/primitive"
)

// hugeExtent bounds-filters no primitive: every Surface wraps a finite
// triangle mesh, so FiniteWorldBounds never needs to skip one. Kept as an
// explicit constant (rather than math.Inf) so a future unbounded-proxy
// primitive has an obvious knob to shrink.
const hugeExtent = 1e30

// SamplingConfig mirrors the teacher's rendering-configuration struct;
// spec §6 names the same knobs.
type SamplingConfig struct {
	Width                     int
	Height                    int
	SamplesPerPixel           int
	MaxDepth                  int
	RussianRouletteMinBounces int
	AdaptiveMinSamples        float64
	AdaptiveThreshold         float64
}

// Scene is everything the integrator needs: the primitive BVH for eye/
// shadow rays, the light list plus its sampler factory, and the camera.
type Scene struct {
	Camera         *camera.Camera
	Primitives     []*primitive.Surface
	Lights         []lights.Light
	SamplingConfig SamplingConfig

	BVH          *core.BVH[hm.Render, *primitive.Surface]
	LightFactory *lightsampler.Factory

	sceneCenter hm.Point3[hm.Render]
	sceneRadius float64

	// areaLightIndex maps an emissive Surface to its EmissiveTriangleMesh's
	// position in Lights, so the integrator's MIS weighting can recover
	// p_light for a vertex a BSDF ray happened to land on (spec §4.8's
	// on_bsdf_hit "p_light_at_hit_point" term).
	areaLightIndex map[*primitive.Surface]int
}

// Build runs the exact sequence SPEC_FULL.md §5.2 requires, using the
// Camera's own World->Render transform as the one every primitive caches
// against. Every emissive-material primitive is additionally wrapped as an
// EmissiveTriangleMesh and appended to Lights, so NEE and MIS can sample
// mesh-light geometry the same way they sample any other light.
func (s *Scene) Build() {
	worldToRender := s.Camera.WorldToRender()
	for _, p := range s.Primitives {
		p.CacheTransform(worldToRender)
	}

	s.areaLightIndex = make(map[*primitive.Surface]int)
	for _, p := range s.Primitives {
		em, ok := p.Material.(material.Emissive)
		if !ok {
			continue
		}
		scale := em.Scale
		if scale == 0 {
			scale = 1
		}
		areaLight := lights.NewEmissiveTriangleMesh(p.Mesh, p.LocalToRender(), em.Radiance, scale, em.TwoSided)
		s.areaLightIndex[p] = len(s.Lights)
		s.Lights = append(s.Lights, areaLight)
	}

	s.BVH = core.Build[hm.Render, *primitive.Surface](s.Primitives)

	bounds := make([]hm.Bounds[hm.Render], len(s.Primitives))
	for i, p := range s.Primitives {
		bounds[i] = p.Bounds()
	}
	s.sceneCenter, s.sceneRadius = core.FiniteWorldBounds[hm.Render](bounds, hugeExtent)

	s.LightFactory = lightsampler.NewFactory(s.Lights, s.sceneCenter, s.sceneRadius)
}

// AreaLightFor reports the Light (and its stable index into Lights) that
// corresponds to surf, if surf's material is emissive. Used by the
// integrator to compute p_light when a BSDF-sampled ray happens to land on
// an emissive surface.
func (s *Scene) AreaLightFor(surf *primitive.Surface) (lights.Light, int, bool) {
	idx, ok := s.areaLightIndex[surf]
	if !ok {
		return nil, -1, false
	}
	return s.Lights[idx], idx, true
}

// SceneBounds returns the finite bounding sphere computed by Build, which
// infinite and directional lights need to convert their directional
// sampling into a scene-scale area PDF (spec §4.5).
func (s *Scene) SceneBounds() (hm.Point3[hm.Render], float64) {
	return s.sceneCenter, s.sceneRadius
}

// Intersect finds the closest primitive hit along r, or ok=false.
func (s *Scene) Intersect(r hm.RayT[hm.Render], tMax float64) (primitive.Hit, *primitive.Surface, bool) {
	type result struct {
		hit primitive.Hit
		srf *primitive.Surface
	}
	res, ok := core.Hit[hm.Render, *primitive.Surface, result](s.BVH, r, tMax, func(p *primitive.Surface, r hm.RayT[hm.Render], tMax float64) (result, float64, bool) {
		hit, ok := p.Intersect(r, tMax)
		if !ok {
			return result{}, 0, false
		}
		return result{hit: hit, srf: p}, hit.T, true
	})
	if !ok {
		return primitive.Hit{}, nil, false
	}
	return res.hit, res.srf, true
}

// IntersectP is the shadow-ray-only existence test.
func (s *Scene) IntersectP(r hm.RayT[hm.Render], tMax float64) bool {
	return core.HitP[hm.Render, *primitive.Surface](s.BVH, r, tMax, func(p *primitive.Surface, r hm.RayT[hm.Render], tMax float64) bool {
		return p.IntersectP(r, tMax)
	})
}
