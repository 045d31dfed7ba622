package integrator

import (
	"github.com/lmarchetti/heropath/pkg/lights"
	"github.com/lmarchetti/heropath/pkg/material"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// NEE is next-event-estimation path tracing with no MIS weighting (spec
// §4.8, "NEE"): every non-specular vertex samples one light directly, and
// BSDF-sampled rays only pick up emission that NEE could not have reached —
// the vertex immediately following a specular bounce. Grounded on the
// teacher's CalculateDirectLighting (pkg/integrator/path_tracing.go),
// stripped of its power-heuristic weighting.
type NEE struct{}

// DoNEE samples one light and adds its unweighted contribution.
func (NEE) DoNEE(ctx *Context, v vertex, bsdf material.BSDF, woLocal hm.Vector3[hm.ShadingNormalTangent], contribution *spectrum.Sampled, throughput spectrum.Sampled) {
	c, _, _, _, ok := sampleOneLight(ctx, v, bsdf, woLocal, throughput)
	if !ok {
		return
	}
	*contribution = contribution.Add(c)
}

// OnBSDFHit only counts emission reached via a specular bounce: a
// non-specular bounce's emissive hit was already counted by DoNEE at the
// vertex the bounce left from.
func (NEE) OnBSDFHit(ctx *Context, from vertex, bs material.Sample, specular bool, hitVertex *vertex, escapedDir hm.Vector3[hm.Render], contribution *spectrum.Sampled, throughput spectrum.Sampled) {
	if !specular {
		return
	}
	next := throughput.Mul(bs.F).Scale(1 / bs.PDF)

	if hitVertex == nil {
		for _, l := range ctx.Scene.Lights {
			if inf, ok := l.(lights.InfiniteLight); ok {
				*contribution = contribution.Add(next.Mul(inf.Le(escapedDir, *ctx.Lambda)))
			}
		}
		return
	}

	if !hitVertex.Material().IsEmissive() {
		return
	}
	em, ok := hitVertex.Material().(material.Emitter)
	if !ok {
		return
	}
	wiRender := from.Frame.ToRender(bs.Wi)
	wo := hitVertex.Frame.ToLocal(wiRender.Neg())
	*contribution = contribution.Add(next.Mul(em.Emit(wo, *ctx.Lambda)))
}
