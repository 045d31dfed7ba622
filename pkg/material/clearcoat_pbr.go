package material

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// ClearcoatPBR wraps a PBR substrate with a second generalized-Schlick
// layer of independent IOR, roughness and tint, attenuating the
// substrate's contribution by Beer-Lambert absorption through the coat
// (applied once on the way in, once on the way out). Inter-layer
// reflections are not modeled, matching the distilled layering model.
type ClearcoatPBR struct {
	Substrate PBR
	IOR       float64
	Dist      TrowbridgeReitz
	Tint      spectrum.Sampled // transmittance through 1mm of coat
	Thickness float64          // in the unit where 0.001 is 1mm (sigma's reference depth)
}

func (c ClearcoatPBR) coatR0() float64 {
	x := (c.IOR - 1) / (c.IOR + 1)
	return x * x
}

// sigma is the Beer-Lambert absorption coefficient implied by Tint,
// defined so that exp(-sigma*0.001) == Tint at the reference 1mm depth.
func (c ClearcoatPBR) sigma() spectrum.Sampled {
	var out spectrum.Sampled
	for i, t := range c.Tint {
		t = clamp(t, 1e-6, 1)
		out[i] = -gomath.Log(t) / 0.001
	}
	return out
}

func (c ClearcoatPBR) attenuation(cosTheta float64) spectrum.Sampled {
	cosTheta = gomath.Max(cosTheta, 1e-4)
	depth := c.Thickness / cosTheta
	sig := c.sigma()
	var out spectrum.Sampled
	for i, s := range sig {
		out[i] = gomath.Exp(-s * depth)
	}
	return out
}

func (c ClearcoatPBR) Flags() LobeFlags {
	flags := c.Substrate.Flags() | Reflection
	if c.Dist.EffectivelySmooth() {
		flags |= Specular
	} else {
		flags |= Glossy
	}
	return flags
}

func (c ClearcoatPBR) coatTerm(wo, wi hm.Vector3[hm.ShadingNormalTangent]) (spectrum.Sampled, bool) {
	if c.Dist.EffectivelySmooth() || !hm.SameHemisphere(wo, wi) {
		return spectrum.Zero(), false
	}
	cosO, cosI := AbsCosTheta(wo), AbsCosTheta(wi)
	if cosO == 0 || cosI == 0 {
		return spectrum.Zero(), false
	}
	wm, ok := hm.HalfVector(wo, wi)
	if !ok {
		return spectrum.Zero(), false
	}
	f := FresnelSchlick(absf(wo.Dot(wm)), c.coatR0())
	ggx := c.Dist.D(wm) * c.Dist.G(wo, wi) / (4 * cosO * cosI)
	return spectrum.Constant(f * ggx), true
}

func (c ClearcoatPBR) Eval(wo, wi hm.Vector3[hm.ShadingNormalTangent], lambda spectrum.Wavelengths) spectrum.Sampled {
	coat, _ := c.coatTerm(wo, wi)
	substrate := c.Substrate.Eval(wo, wi, lambda)
	atten := c.attenuation(AbsCosTheta(wo)).Mul(c.attenuation(AbsCosTheta(wi)))
	return coat.Add(substrate.Mul(atten))
}

func (c ClearcoatPBR) PDF(wo, wi hm.Vector3[hm.ShadingNormalTangent], lambda spectrum.Wavelengths) float64 {
	fbarCC := FresnelSchlick(AbsCosTheta(wo), c.coatR0())
	var coatPDF float64
	if !c.Dist.EffectivelySmooth() && hm.SameHemisphere(wo, wi) {
		if wm, ok := hm.HalfVector(wo, wi); ok {
			if wm.Z < 0 {
				wm = wm.Neg()
			}
			coatPDF = c.Dist.PDF(wo, wm) / (4 * absf(wo.Dot(wm)))
		}
	}
	substratePDF := c.Substrate.PDF(wo, wi, lambda)
	return fbarCC*coatPDF + (1-fbarCC)*substratePDF
}

func (c ClearcoatPBR) Sample(wo hm.Vector3[hm.ShadingNormalTangent], uc float64, u hm.Point2, lambda *spectrum.Wavelengths) (Sample, bool) {
	fbarCC := FresnelSchlick(AbsCosTheta(wo), c.coatR0())

	if uc < fbarCC {
		if c.Dist.EffectivelySmooth() {
			wi := hm.NewVector3[hm.ShadingNormalTangent](-wo.X, -wo.Y, wo.Z)
			cosI := AbsCosTheta(wi)
			if cosI == 0 {
				return Sample{}, false
			}
			f := FresnelSchlick(AbsCosTheta(wo), c.coatR0()) / cosI
			return Sample{Wi: wi, F: spectrum.Constant(f), PDF: fbarCC, Flags: Reflection | Specular, Eta: 1}, true
		}
		wm := c.Dist.SampleWm(wo, u)
		wi := hm.Reflect(wo, wm)
		if !hm.SameHemisphere(wo, wi) {
			return Sample{}, false
		}
		coat, _ := c.coatTerm(wo, wi)
		pdf := c.PDF(wo, wi, spectrum.Wavelengths{})
		if pdf <= 0 {
			return Sample{}, false
		}
		f := coat.Scale(AbsCosTheta(wi))
		return Sample{Wi: wi, F: f, PDF: pdf, Flags: Reflection | Glossy, Eta: 1}, true
	}

	s, ok := c.Substrate.Sample(wo, (uc-fbarCC)/(1-fbarCC), u, lambda)
	if !ok {
		return Sample{}, false
	}
	atten := c.attenuation(AbsCosTheta(wo)).Mul(c.attenuation(AbsCosTheta(s.Wi)))
	s.F = s.F.Mul(atten)
	s.PDF = c.PDF(wo, s.Wi, spectrum.Wavelengths{})
	return s, true
}
