package integrator

import (
	"github.com/lmarchetti/heropath/pkg/material"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// sampleOneLight implements spec §4.7's light-sampling step shared by NEE
// and MIS: pick one light proportional to its per-wavelength power, sample
// a direction toward it, evaluate the BSDF and a shadow ray, and return the
// unweighted contribution (throughput already folded in) along with the
// light's own PDF (probability * solid-angle density) and whether it is a
// delta light, so the caller can apply whatever MIS weight (or none) its
// strategy calls for.
func sampleOneLight(ctx *Context, v vertex, bsdf material.BSDF, woLocal hm.Vector3[hm.ShadingNormalTangent], throughput spectrum.Sampled) (contribution spectrum.Sampled, pdfLight float64, pdfBSDF float64, isDelta bool, ok bool) {
	ls := ctx.Scene.LightFactory.Create(*ctx.Lambda)
	light, _, pSelect, selected := ls.SampleLight(ctx.Sampler.Get1D())
	if !selected {
		return spectrum.Zero(), 0, 0, false, false
	}

	sample, sampledOK := light.Sample(v.Hit.P, v.Hit.Ng, ctx.Sampler.Get2D(), *ctx.Lambda)
	if !sampledOK || sample.PDF <= 0 {
		return spectrum.Zero(), 0, 0, false, false
	}

	wiLocal := v.Frame.ToLocal(sample.Wi)
	f := bsdf.Eval(woLocal, wiLocal, *ctx.Lambda)
	if f.IsBlack() {
		return spectrum.Zero(), 0, 0, false, false
	}

	if !geometricConsistent(v.Hit.Ng, v.Frame.ToRender(woLocal), sample.Wi) {
		return spectrum.Zero(), 0, 0, false, false
	}

	shadowTMax := sample.Distance - 2*rayEpsilon
	if shadowTMax <= 0 {
		return spectrum.Zero(), 0, 0, false, false
	}
	shadowRay := offsetRay(v.Hit.P, v.Hit.Ng, sample.Wi)
	if ctx.Scene.IntersectP(shadowRay, shadowTMax) {
		return spectrum.Zero(), 0, 0, false, false
	}

	cosTheta := material.AbsCosTheta(wiLocal)
	pdfLight = sample.PDF * pSelect

	contribution = throughput.Mul(f).Mul(sample.L).Scale(cosTheta / pdfLight)
	pdfBSDF = bsdf.PDF(woLocal, wiLocal, *ctx.Lambda)
	return contribution, pdfLight, pdfBSDF, light.IsDelta(), true
}

// balanceHeuristic is the two-strategy MIS weight spec §4.8 names.
func balanceHeuristic(pdfA, pdfB float64) float64 {
	if pdfA+pdfB <= 0 {
		return 0
	}
	return pdfA / (pdfA + pdfB)
}
