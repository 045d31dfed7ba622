package material

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// PBR is the metallic-roughness layered material: a generalized-Schlick
// specular lobe over a Lambert diffuse base, combined by explicit
// compile-time composition rather than the teacher's trait-downcasting
// Layered type (pkg/material/layered.go), per the resolved design note on
// material composition.
//
// Metallic blends two fully-evaluated BRDFs rather than blending
// parameters: at Metallic=0 the material is a dielectric with specular F0
// from IOR plus a BaseColor diffuse lobe; at Metallic=1 it is a pure
// conductor with F0=BaseColor and no diffuse term. Intermediate values
// linearly blend the two evaluations.
type PBR struct {
	BaseColor spectrum.Sampled
	Metallic  float64
	IOR       float64
	Dist      TrowbridgeReitz
}

func (p PBR) Flags() LobeFlags {
	flags := Reflection
	if p.Dist.EffectivelySmooth() {
		flags |= Specular
	} else {
		flags |= Glossy
	}
	if p.Metallic < 1 {
		flags |= Diffuse
	}
	return flags
}

// dielectricR0 is the normal-incidence reflectance implied by IOR, per the
// standard ((ior-1)/(ior+1))^2 Schlick identity.
func (p PBR) dielectricR0() float64 {
	x := (p.IOR - 1) / (p.IOR + 1)
	return x * x
}

func (p PBR) specularR0(metal bool) spectrum.Sampled {
	if metal {
		return p.BaseColor
	}
	return spectrum.Constant(p.dielectricR0())
}

// averageFresnel approximates the hemispherical average of the Schlick
// curve given normal-incidence reflectance r0; used as the Russian-roulette
// weight between the specular and diffuse lobes.
func averageFresnel(r0 spectrum.Sampled) spectrum.Sampled {
	var out spectrum.Sampled
	for i, v := range r0 {
		out[i] = v + (1-v)/21
	}
	return out
}

func (p PBR) evalBranch(wo, wi hm.Vector3[hm.ShadingNormalTangent], metal bool) spectrum.Sampled {
	r0 := p.specularR0(metal)
	var specular spectrum.Sampled
	if !p.Dist.EffectivelySmooth() && hm.SameHemisphere(wo, wi) {
		cosO, cosI := AbsCosTheta(wo), AbsCosTheta(wi)
		if wm, ok := hm.HalfVector(wo, wi); ok && cosO > 0 && cosI > 0 {
			ggx := p.Dist.D(wm) * p.Dist.G(wo, wi) / (4 * cosO * cosI)
			fCos := spectralSchlick(r0, absf(wo.Dot(wm)))
			specular = fCos.Scale(ggx)
		}
	}
	if metal {
		return specular
	}
	fbar := averageFresnel(r0).Average()
	diffuse := Lambert{Reflectance: p.BaseColor}.Eval(wo, wi, spectrum.Wavelengths{}).Scale(1 - fbar)
	return specular.Add(diffuse)
}

func (p PBR) Eval(wo, wi hm.Vector3[hm.ShadingNormalTangent], lambda spectrum.Wavelengths) spectrum.Sampled {
	dielectric := p.evalBranch(wo, wi, false)
	if p.Metallic <= 0 {
		return dielectric
	}
	metal := p.evalBranch(wo, wi, true)
	if p.Metallic >= 1 {
		return metal
	}
	return dielectric.Scale(1 - p.Metallic).Add(metal.Scale(p.Metallic))
}

func (p PBR) pdfBranch(wo, wi hm.Vector3[hm.ShadingNormalTangent], metal bool) float64 {
	if p.Dist.EffectivelySmooth() || !hm.SameHemisphere(wo, wi) {
		return 0
	}
	wm, ok := hm.HalfVector(wo, wi)
	if !ok {
		return 0
	}
	if wm.Z < 0 {
		wm = wm.Neg()
	}
	specPDF := p.Dist.PDF(wo, wm) / (4 * absf(wo.Dot(wm)))
	if metal {
		return specPDF
	}
	fbar := averageFresnel(p.specularR0(false)).Average()
	diffusePDF := hm.CosineHemispherePDF(AbsCosTheta(wi))
	return fbar*specPDF + (1-fbar)*diffusePDF
}

func (p PBR) PDF(wo, wi hm.Vector3[hm.ShadingNormalTangent], _ spectrum.Wavelengths) float64 {
	dielectric := p.pdfBranch(wo, wi, false)
	if p.Metallic <= 0 {
		return dielectric
	}
	metal := p.pdfBranch(wo, wi, true)
	if p.Metallic >= 1 {
		return metal
	}
	return (1-p.Metallic)*dielectric + p.Metallic*metal
}

func (p PBR) Sample(wo hm.Vector3[hm.ShadingNormalTangent], uc float64, u hm.Point2, lambda *spectrum.Wavelengths) (Sample, bool) {
	metal := p.Metallic >= 1
	remainder := uc
	if p.Metallic > 0 && p.Metallic < 1 {
		metal = uc < p.Metallic
		if metal {
			remainder = uc / p.Metallic
		} else {
			remainder = (uc - p.Metallic) / (1 - p.Metallic)
		}
	}

	r0 := p.specularR0(metal)
	fbar := 1.0
	if !metal {
		fbar = averageFresnel(r0).Average()
	}

	if metal || remainder < fbar {
		if p.Dist.EffectivelySmooth() {
			wi := hm.NewVector3[hm.ShadingNormalTangent](-wo.X, -wo.Y, wo.Z)
			cosI := AbsCosTheta(wi)
			if cosI == 0 {
				return Sample{}, false
			}
			f := spectralSchlick(r0, AbsCosTheta(wo)).Scale(1 / cosI)
			return Sample{Wi: wi, F: f, PDF: 1, Flags: Reflection | Specular, Eta: 1}, true
		}
		wm := p.Dist.SampleWm(wo, u)
		wi := hm.Reflect(wo, wm)
		if !hm.SameHemisphere(wo, wi) {
			return Sample{}, false
		}
		f := p.evalBranch(wo, wi, metal).Scale(AbsCosTheta(wi))
		pdf := p.pdfBranch(wo, wi, metal)
		if pdf <= 0 {
			return Sample{}, false
		}
		if !metal {
			pdf = fbar*pdf + (1-fbar)*hm.CosineHemispherePDF(AbsCosTheta(wi))
		}
		return Sample{Wi: wi, F: f, PDF: pdf, Flags: Reflection | Glossy, Eta: 1}, true
	}

	l := Lambert{Reflectance: p.BaseColor}
	s, ok := l.Sample(wo, remainder, u, lambda)
	if !ok {
		return Sample{}, false
	}
	specPDF := p.pdfBranch(wo, s.Wi, false)
	s.PDF = fbar*specPDF + (1-fbar)*s.PDF
	s.F = p.evalBranch(wo, s.Wi, false).Scale(AbsCosTheta(s.Wi))
	return s, true
}
