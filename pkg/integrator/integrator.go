// Package integrator walks camera rays through the scene and accumulates
// spectral radiance, per spec §4.8. The per-sample skeleton (sample
// wavelengths, generate the camera ray, intersect, bounce) is shared by all
// three light-transport strategies; only the two hooks a Strategy
// implements — DoNEE at a non-specular vertex and OnBSDFHit once a
// scattered ray has been traced — differ between Pure PT, NEE and MIS.
// Grounded on the teacher's PathTracingIntegrator
// (pkg/integrator/path_tracing.go): the same depth loop, Russian Roulette,
// and light/BSDF MIS combination, generalized from its RGB-Vec3-and-
// core.Ray contract to per-hero-wavelength Sampled throughput and the
// Render-space/shading-tangent-frame types the rest of the package uses.
package integrator

import (
	gomath "math"

	"github.com/lmarchetti/heropath/pkg/material"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/primitive"
	"github.com/lmarchetti/heropath/pkg/sampler"
	"github.com/lmarchetti/heropath/pkg/scene"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// rayEpsilon is the forward nudge applied to every scattering ray's origin
// and the sign-matched geometric-normal offset, to avoid self-intersection
// at the surface it just left (spec §4.8).
const rayEpsilon = 1e-5

// vertex is the shading-point state a Strategy's hooks operate on: the
// render-space hit, its surface's material, and the orthonormal shading
// frame built from the interpolated normal and UV tangent.
type vertex struct {
	Hit     primitive.Hit
	Surface *primitive.Surface
	Frame   material.Frame
}

func newVertex(hit primitive.Hit, srf *primitive.Surface) vertex {
	return vertex{
		Hit:     hit,
		Surface: srf,
		Frame:   material.NewFrame(hit.Ns, hit.Dpdu),
	}
}

func (v vertex) Material() material.Material { return v.Surface.Material }

// Strategy is the pluggable half of the bounce loop spec §4.8 names. Pure
// PT, NEE and MIS each implement this with different semantics; the shared
// loop in Render never branches on which one is active.
type Strategy interface {
	// DoNEE samples one light via ctx's light factory and adds its
	// contribution (already divided by the light-selection and solid-angle
	// PDFs, and weighted for MIS where applicable) into *contribution,
	// scaled by throughput. Called once per non-specular bounce, before the
	// BSDF is sampled for the next direction.
	DoNEE(ctx *Context, v vertex, bsdf material.BSDF, woLocal hm.Vector3[hm.ShadingNormalTangent], contribution *spectrum.Sampled, throughput spectrum.Sampled)

	// OnBSDFHit is called once a BSDF sample has produced a next direction
	// and that direction has been traced: hitVertex is the vertex reached
	// (nil if the ray escaped the scene). specular reports whether the
	// lobe sampled at from (this same iteration, the one that produced
	// this ray) was a specular lobe, for strategies that only count
	// emission following a specular bounce (NEE would otherwise
	// double-count emission already sampled directly via the shadow ray at
	// from). It adds the emissive or infinite-light contribution into
	// *contribution, scaled by throughput.
	OnBSDFHit(ctx *Context, from vertex, bs material.Sample, specular bool, hitVertex *vertex, escapedDir hm.Vector3[hm.Render], contribution *spectrum.Sampled, throughput spectrum.Sampled)
}

// Context bundles the per-sample state a Strategy's hooks need.
type Context struct {
	Scene   *scene.Scene
	Lambda  *spectrum.Wavelengths
	Sampler sampler.Sampler
}

// Render runs one (pixel, sample index) path per spec §4.8's pseudocode and
// returns the hero wavelengths it committed to plus the path's
// contribution at those wavelengths, ready to be handed to a
// DenselySampledSpectrum accumulator via AddSample. maxDepth is the
// integrator's bounce cap (scene.SamplingConfig.MaxDepth); rrMinBounces
// gates when Russian Roulette starts firing
// (scene.SamplingConfig.RussianRouletteMinBounces).
func Render(strategy Strategy, sc *scene.Scene, smp sampler.Sampler, px, py, sampleIndex, maxDepth, rrMinBounces int) (spectrum.Wavelengths, spectrum.Sampled) {
	smp.StartPixelSample(px, py, sampleIndex)
	lambda := spectrum.SampleUniform(smp.Get1D())

	throughput := spectrum.One()
	contribution := spectrum.Zero()

	screen := smp.Get2DPixel()
	ray := sc.Camera.GenerateRay(screen.X, screen.Y, smp.Get2D())

	ctx := &Context{Scene: sc, Lambda: &lambda, Sampler: smp}

	hit, srf, ok := sc.Intersect(ray, gomath.Inf(1))
	if !ok {
		return lambda, contribution
	}
	v := newVertex(hit, srf)

	if v.Material().IsEmissive() {
		if em, isEmitter := v.Material().(material.Emitter); isEmitter {
			wo := v.Frame.ToLocal(ray.Dir.Neg().Normalized())
			contribution = contribution.Add(throughput.Mul(em.Emit(wo, lambda)))
		}
	}

	for depth := 1; depth <= maxDepth; depth++ {
		bsdf := v.Material().ComputeBSDF(v.Hit.ShadingContext(), lambda)
		if bsdf == nil {
			break
		}

		woRender := ray.Dir.Neg().Normalized()
		woLocal := v.Frame.ToLocal(woRender)

		if !bsdf.Flags().IsSpecular() {
			strategy.DoNEE(ctx, v, bsdf, woLocal, &contribution, throughput)
		}

		bs, sampled := bsdf.Sample(woLocal, smp.Get1D(), smp.Get2D(), &lambda)
		if !sampled {
			break
		}

		wiRender := v.Frame.ToRender(bs.Wi)
		if !geometricConsistent(v.Hit.Ng, woRender, wiRender) {
			break
		}

		specular := bs.IsSpecular()

		nextRay := offsetRay(v.Hit.P, v.Hit.Ng, wiRender)
		nextHit, nextSrf, nextOK := sc.Intersect(nextRay, gomath.Inf(1))

		if !nextOK {
			strategy.OnBSDFHit(ctx, v, bs, specular, nil, wiRender, &contribution, throughput)
			break
		}

		nextV := newVertex(nextHit, nextSrf)
		strategy.OnBSDFHit(ctx, v, bs, specular, &nextV, hm.Vector3[hm.Render]{}, &contribution, throughput)

		throughput = throughput.Mul(bs.F).Scale(1 / bs.PDF)

		if depth >= rrMinBounces {
			p := throughput.MaxComponent()
			if p < 1 {
				if smp.Get1D() >= p {
					break
				}
				if p > 0 {
					throughput = throughput.Scale(1 / p)
				}
			}
		}

		ray = nextRay
		v = nextV
	}

	return lambda, contribution
}

// geometricConsistent implements spec §4.6's "opaque BSDFs reject samples
// where sign(n_geom.wi) != sign(n_geom.wo)" rule, preventing light leaking
// through shading-normal artifacts at a silhouette edge.
func geometricConsistent(ng hm.Normal3[hm.Render], wo, wi hm.Vector3[hm.Render]) bool {
	return sign(ng.Dot(wo)) == sign(ng.Dot(wi))
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// offsetRay nudges the next ray's origin along wi by rayEpsilon and along
// the geometric normal (signed to match wi's side), per spec §4.8's
// self-intersection-avoidance rule.
func offsetRay(p hm.Point3[hm.Render], ng hm.Normal3[hm.Render], wi hm.Vector3[hm.Render]) hm.RayT[hm.Render] {
	n := ng.AsVector()
	if ng.Dot(wi) < 0 {
		n = n.Neg()
	}
	origin := p.Offset(n, rayEpsilon).Offset(wi, rayEpsilon)
	return hm.NewRayT(origin, wi)
}
