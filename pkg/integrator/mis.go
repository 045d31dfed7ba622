package integrator

import (
	"github.com/lmarchetti/heropath/pkg/lights"
	"github.com/lmarchetti/heropath/pkg/material"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// MIS is multiple-importance-sampled path tracing (spec §4.8, "MIS"): both
// NEE and BSDF sampling can find the same light, so each is weighted by the
// balance heuristic using the other strategy's PDF at the same point.
// Delta lights (point, spot, directional) can never be hit by a BSDF ray,
// so their light-sampling weight is always 1. Grounded on the teacher's
// CalculateDirectLighting/CalculateIndirectLighting power-heuristic
// combination (pkg/integrator/path_tracing.go), generalized from
// core.PowerHeuristic(1,·,1,·) to the balance heuristic spec §4.8 names
// explicitly.
type MIS struct{}

// DoNEE samples one light and weights its contribution by
// pdfLight/(pdfLight+pdfBSDF), where pdfBSDF is this same BSDF's density of
// sampling the light's direction. Delta lights, which the BSDF could never
// have sampled, skip the heuristic and get weight 1.
func (MIS) DoNEE(ctx *Context, v vertex, bsdf material.BSDF, woLocal hm.Vector3[hm.ShadingNormalTangent], contribution *spectrum.Sampled, throughput spectrum.Sampled) {
	c, pdfLight, pdfBSDF, isDelta, ok := sampleOneLight(ctx, v, bsdf, woLocal, throughput)
	if !ok {
		return
	}
	weight := 1.0
	if !isDelta {
		weight = balanceHeuristic(pdfLight, pdfBSDF)
	}
	*contribution = contribution.Add(c.Scale(weight))
}

// OnBSDFHit weights emission found via BSDF sampling by
// pdfBSDF/(pdfBSDF+pdfLight), where pdfLight is the light sampler's own
// density of having reached this same vertex via NEE.
func (MIS) OnBSDFHit(ctx *Context, from vertex, bs material.Sample, _ bool, hitVertex *vertex, escapedDir hm.Vector3[hm.Render], contribution *spectrum.Sampled, throughput spectrum.Sampled) {
	next := throughput.Mul(bs.F).Scale(1 / bs.PDF)

	if hitVertex == nil {
		le, pdfLight := infiniteLightContribution(ctx, from, escapedDir)
		if le.IsBlack() {
			return
		}
		weight := 1.0
		if pdfLight > 0 {
			weight = balanceHeuristic(bs.PDF, pdfLight)
		}
		*contribution = contribution.Add(next.Mul(le).Scale(weight))
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
	radiance := em.Emit(wo, *ctx.Lambda)
	if radiance.IsBlack() {
		return
	}

	weight := 1.0
	if areaLight, idx, found := ctx.Scene.AreaLightFor(hitVertex.Surface); found {
		ls := ctx.Scene.LightFactory.Create(*ctx.Lambda)
		pSelect := ls.Probability(idx)
		pdfArea := areaLight.PDF(from.Hit.P, from.Hit.Ng, wiRender)
		pdfLight := pSelect * pdfArea
		if pdfLight > 0 {
			weight = balanceHeuristic(bs.PDF, pdfLight)
		}
	}
	*contribution = contribution.Add(next.Mul(radiance).Scale(weight))
}

// infiniteLightContribution sums Le over every infinite light (an escaped
// ray is visible to all of them at once) and returns the combined PDF the
// light sampler would have assigned to reaching this same direction via
// NEE, so a single balance-heuristic weight can be applied to the sum.
func infiniteLightContribution(ctx *Context, from vertex, dir hm.Vector3[hm.Render]) (spectrum.Sampled, float64) {
	ls := ctx.Scene.LightFactory.Create(*ctx.Lambda)
	le := spectrum.Zero()
	var pdfLight float64
	for idx, l := range ctx.Scene.Lights {
		inf, ok := l.(lights.InfiniteLight)
		if !ok {
			continue
		}
		le = le.Add(inf.Le(dir, *ctx.Lambda))
		pdfLight += ls.Probability(idx) * inf.PDF(from.Hit.P, from.Hit.Ng, dir)
	}
	return le, pdfLight
}
