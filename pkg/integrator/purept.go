package integrator

import (
	"github.com/lmarchetti/heropath/pkg/lights"
	"github.com/lmarchetti/heropath/pkg/material"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// PurePT is the unidirectional path tracer with no next-event estimation
// (spec §4.8, "Pure PT"): every bounce relies solely on BSDF sampling to
// find light, accumulating emissive and infinite-light radiance regardless
// of the lobe that led to it. Grounded on the teacher's
// PathTracingIntegrator.rayColorRecursive before its MIS/direct-lighting
// additions (pkg/integrator/path_tracing.go), stripped back to its plain
// recursive-sampling core.
type PurePT struct{}

// DoNEE does nothing: Pure PT never samples lights directly.
func (PurePT) DoNEE(*Context, vertex, material.BSDF, hm.Vector3[hm.ShadingNormalTangent], *spectrum.Sampled, spectrum.Sampled) {
}

// OnBSDFHit scales a copy of throughput by this bounce's f/pdf and adds
// whatever emissive or infinite-light radiance the traced ray found,
// unconditionally (Render updates the path throughput itself).
func (PurePT) OnBSDFHit(ctx *Context, from vertex, bs material.Sample, _ bool, hitVertex *vertex, escapedDir hm.Vector3[hm.Render], contribution *spectrum.Sampled, throughput spectrum.Sampled) {
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
