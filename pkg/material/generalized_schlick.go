package material

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// GeneralizedSchlick is a rough reflective BSDF using the Adobe "F82-tint"
// generalized Schlick Fresnel curve (r0/r90/tint/exponent) instead of the
// exact dielectric or conductor Fresnel equations, for materials whose
// authored reflectance doesn't correspond to a physical IOR — grounded on
// the same GGX machinery as Conductor but with GeneralizedSchlickReflectance
// standing in for spectralSchlick.
type GeneralizedSchlick struct {
	R0, R90  spectrum.Sampled
	Tint     spectrum.Sampled
	Exponent float64
	Dist     TrowbridgeReitz
}

func (g GeneralizedSchlick) Flags() LobeFlags {
	if g.Dist.EffectivelySmooth() {
		return Reflection | Specular
	}
	return Reflection | Glossy
}

func (g GeneralizedSchlick) Eval(wo, wi hm.Vector3[hm.ShadingNormalTangent], _ spectrum.Wavelengths) spectrum.Sampled {
	if g.Dist.EffectivelySmooth() || !hm.SameHemisphere(wo, wi) {
		return spectrum.Zero()
	}
	cosO, cosI := AbsCosTheta(wo), AbsCosTheta(wi)
	if cosO == 0 || cosI == 0 {
		return spectrum.Zero()
	}
	wm, ok := hm.HalfVector(wo, wi)
	if !ok {
		return spectrum.Zero()
	}
	f := GeneralizedSchlickReflectance(absf(wo.Dot(wm)), g.R0, g.R90, g.Tint, g.Exponent)
	ggx := g.Dist.D(wm) * g.Dist.G(wo, wi) / (4 * cosO * cosI)
	return f.Scale(ggx)
}

func (g GeneralizedSchlick) PDF(wo, wi hm.Vector3[hm.ShadingNormalTangent], _ spectrum.Wavelengths) float64 {
	if g.Dist.EffectivelySmooth() || !hm.SameHemisphere(wo, wi) {
		return 0
	}
	wm, ok := hm.HalfVector(wo, wi)
	if !ok {
		return 0
	}
	if wm.Z < 0 {
		wm = wm.Neg()
	}
	return g.Dist.PDF(wo, wm) / (4 * absf(wo.Dot(wm)))
}

func (g GeneralizedSchlick) Sample(wo hm.Vector3[hm.ShadingNormalTangent], _ float64, u hm.Point2, _ *spectrum.Wavelengths) (Sample, bool) {
	if g.Dist.EffectivelySmooth() {
		wi := hm.NewVector3[hm.ShadingNormalTangent](-wo.X, -wo.Y, wo.Z)
		cosI := AbsCosTheta(wi)
		if cosI == 0 {
			return Sample{}, false
		}
		f := GeneralizedSchlickReflectance(AbsCosTheta(wo), g.R0, g.R90, g.Tint, g.Exponent).Scale(1 / cosI)
		return Sample{Wi: wi, F: f, PDF: 1, Flags: Reflection | Specular, Eta: 1}, true
	}

	wm := g.Dist.SampleWm(wo, u)
	wi := hm.Reflect(wo, wm)
	if !hm.SameHemisphere(wo, wi) {
		return Sample{}, false
	}
	pdf := g.Dist.PDF(wo, wm) / (4 * absf(wo.Dot(wm)))
	if pdf <= 0 {
		return Sample{}, false
	}
	f := g.Eval(wo, wi, spectrum.Wavelengths{}).Scale(AbsCosTheta(wi))
	return Sample{Wi: wi, F: f, PDF: pdf, Flags: Reflection | Glossy, Eta: 1}, true
}
