package material

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Conductor is a rough metallic BSDF: GGX/Trowbridge-Reitz distribution
// with Smith masking-shadowing, Fresnel evaluated per hero wavelength
// against the conductor's complex IOR (carried here as a precomputed
// spectral normal-incidence reflectance, since the renderer only needs
// reflectance rather than the full eta/k pair). Generalized from the
// teacher's Metal (pkg/material/metal.go, a perfect-mirror-plus-fuzz model
// with no microfacet distribution at all).
type Conductor struct {
	Reflectance spectrum.Sampled // F0, the complex-Fresnel reflectance at normal incidence
	Dist        TrowbridgeReitz
}

func (c Conductor) Flags() LobeFlags {
	if c.Dist.EffectivelySmooth() {
		return Reflection | Specular
	}
	return Reflection | Glossy
}

func (c Conductor) Eval(wo, wi hm.Vector3[hm.ShadingNormalTangent], lambda spectrum.Wavelengths) spectrum.Sampled {
	if c.Dist.EffectivelySmooth() || !hm.SameHemisphere(wo, wi) {
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
	f := spectralSchlick(c.Reflectance, absf(wo.Dot(wm)))
	ggx := c.Dist.D(wm) * c.Dist.G(wo, wi) / (4 * cosO * cosI)
	return f.Scale(ggx)
}

func (c Conductor) PDF(wo, wi hm.Vector3[hm.ShadingNormalTangent], _ spectrum.Wavelengths) float64 {
	if c.Dist.EffectivelySmooth() || !hm.SameHemisphere(wo, wi) {
		return 0
	}
	wm, ok := hm.HalfVector(wo, wi)
	if !ok {
		return 0
	}
	if wm.Z < 0 {
		wm = wm.Neg()
	}
	return c.Dist.PDF(wo, wm) / (4 * absf(wo.Dot(wm)))
}

func (c Conductor) Sample(wo hm.Vector3[hm.ShadingNormalTangent], _ float64, u hm.Point2, _ *spectrum.Wavelengths) (Sample, bool) {
	if c.Dist.EffectivelySmooth() {
		wi := hm.NewVector3[hm.ShadingNormalTangent](-wo.X, -wo.Y, wo.Z)
		cosI := AbsCosTheta(wi)
		if cosI == 0 {
			return Sample{}, false
		}
		f := spectralSchlick(c.Reflectance, AbsCosTheta(wo)).Scale(1 / cosI)
		return Sample{Wi: wi, F: f, PDF: 1, Flags: Reflection | Specular, Eta: 1}, true
	}

	wm := c.Dist.SampleWm(wo, u)
	wi := hm.Reflect(wo, hm.NewNormal3[hm.ShadingNormalTangent](wm.X, wm.Y, wm.Z).AsVector())
	if !hm.SameHemisphere(wo, wi) {
		return Sample{}, false
	}
	pdf := c.Dist.PDF(wo, wm) / (4 * absf(wo.Dot(wm)))
	if pdf <= 0 {
		return Sample{}, false
	}
	f := c.Eval(wo, wi, spectrum.Wavelengths{}).Scale(AbsCosTheta(wi))
	return Sample{Wi: wi, F: f, PDF: pdf, Flags: Reflection | Glossy, Eta: 1}, true
}

// spectralSchlick applies FresnelSchlick to every hero-wavelength lane of a
// spectral normal-incidence reflectance.
func spectralSchlick(r0 spectrum.Sampled, cosTheta float64) spectrum.Sampled {
	var out spectrum.Sampled
	for i := range out {
		out[i] = FresnelSchlick(cosTheta, r0[i])
	}
	return out
}
