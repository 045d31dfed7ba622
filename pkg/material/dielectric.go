package material

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Dielectric is a rough refractive BSDF (glass, water), generalized from
// the teacher's Dielectric (a delta-only Schlick-reflectance model with no
// microfacet distribution) to add GGX roughness and a thin-surface mode
// that models a dielectric shell with no optical path inside it (e.g. a
// glass pane rather than a solid lens): the transmitted ray passes
// straight through undeviated, and the reflectance used for the
// reflect/transmit split is the cumulative reflectance of the shell
// (internal bounces summed as a geometric series) rather than a single
// interface's, per spec §4.6.
//
// Eta is a scalar (not per-wavelength), so the BSDF models no chromatic
// dispersion. Every transmission sample calls Wavelengths.Terminate, so a
// path keeps only its hero lane after refracting; reflection samples leave
// the secondary lanes alive.
type Dielectric struct {
	Eta         float64
	Dist        TrowbridgeReitz
	ThinSurface bool
}

func (d Dielectric) Flags() LobeFlags {
	flags := Reflection | Transmission
	if d.Dist.EffectivelySmooth() {
		return flags | Specular
	}
	return flags | Glossy
}

func (d Dielectric) Eval(wo, wi hm.Vector3[hm.ShadingNormalTangent], _ spectrum.Wavelengths) spectrum.Sampled {
	if d.Eta == 1 || d.Dist.EffectivelySmooth() {
		return spectrum.Zero()
	}

	cosO, cosI := CosTheta(wo), CosTheta(wi)
	reflect := cosI*cosO > 0
	etap := relativeEta(d.Eta, cosO, reflect)

	wm := wi.Scale(etap).Add(wo)
	if cosI == 0 || cosO == 0 || wm.LengthSquared() == 0 {
		return spectrum.Zero()
	}
	wmN := wm.Normalized()
	if wmN.Z < 0 {
		wmN = wmN.Neg()
	}
	if wmN.Dot(wi)*cosI < 0 || wmN.Dot(wo)*cosO < 0 {
		return spectrum.Zero()
	}

	f := d.fresnelWeight(wo.Dot(wmN))
	if reflect {
		v := d.Dist.D(wmN) * d.Dist.G(wo, wi) * f / absf(4*cosI*cosO)
		return spectrum.Constant(v)
	}

	denom := wm.LengthSquared() * absf(cosI) * absf(cosO)
	v := d.Dist.D(wmN) * (1 - f) * d.Dist.G(wo, wi) *
		absf(wi.Dot(wmN)*wo.Dot(wmN)) / denom / (etap * etap)
	return spectrum.Constant(v)
}

func (d Dielectric) PDF(wo, wi hm.Vector3[hm.ShadingNormalTangent], _ spectrum.Wavelengths) float64 {
	if d.Eta == 1 || d.Dist.EffectivelySmooth() {
		return 0
	}
	cosO, cosI := CosTheta(wo), CosTheta(wi)
	reflect := cosI*cosO > 0
	etap := relativeEta(d.Eta, cosO, reflect)

	wm := wi.Scale(etap).Add(wo)
	if cosI == 0 || cosO == 0 || wm.LengthSquared() == 0 {
		return 0
	}
	wmN := wm.Normalized()
	if wmN.Z < 0 {
		wmN = wmN.Neg()
	}

	f := d.fresnelWeight(wo.Dot(wmN))
	pr, pt := f, 1-f
	if reflect {
		return d.Dist.PDF(wo, wmN) / (4 * absf(wo.Dot(wmN))) * pr / (pr + pt)
	}
	dwmDwi := absf(wi.Dot(wmN)) / wm.LengthSquared()
	return d.Dist.PDF(wo, wmN) * dwmDwi * pt / (pr + pt)
}

// fresnelWeight is the single-interface Fresnel reflectance, or — in
// thin-surface mode — the cumulative reflectance of the shell accounting
// for the internal-reflection geometric series (R' = R + T²R/(1-R²)),
// per spec §4.6.
func (d Dielectric) fresnelWeight(cosTheta float64) float64 {
	f := FresnelDielectric(cosTheta, d.Eta)
	if !d.ThinSurface {
		return f
	}
	t := 1 - f
	denom := 1 - f*f
	if denom <= 1e-9 {
		return 1
	}
	return f + t*t*f/denom
}

func relativeEta(eta, cosO float64, reflect bool) float64 {
	if reflect {
		return 1
	}
	if cosO > 0 {
		return eta
	}
	return 1 / eta
}

// Sample draws either a reflected or refracted direction, choosing between
// them by Russian roulette weighted by the Fresnel term, per spec §4.6. In
// thin-surface mode the transmitted ray passes straight through (no bend),
// modeling a zero-thickness shell rather than a solid volume.
func (d Dielectric) Sample(wo hm.Vector3[hm.ShadingNormalTangent], uc float64, u hm.Point2, lambda *spectrum.Wavelengths) (Sample, bool) {
	if d.Eta == 1 || d.Dist.EffectivelySmooth() {
		return d.sampleSmooth(wo, uc, lambda)
	}

	wm := d.Dist.SampleWm(wo, u)
	f := d.fresnelWeight(wo.Dot(wm))
	pr, pt := f, 1-f
	if pr+pt == 0 {
		return Sample{}, false
	}

	if uc < pr/(pr+pt) {
		wi := hm.Reflect(wo, wm)
		if !hm.SameHemisphere(wo, wi) {
			return Sample{}, false
		}
		pdf := d.Dist.PDF(wo, wm) / (4 * absf(wo.Dot(wm))) * pr / (pr + pt)
		fr := d.Dist.D(wm) * d.Dist.G(wo, wi) * f / absf(4*CosTheta(wo))
		return Sample{Wi: wi, F: spectrum.Constant(fr), PDF: pdf, Flags: Reflection | Glossy, Eta: 1}, true
	}

	wi, etap, ok := hm.Refract(wo, hm.NewNormal3[hm.ShadingNormalTangent](wm.X, wm.Y, wm.Z), d.Eta)
	if !ok {
		return Sample{}, false
	}
	if d.ThinSurface {
		wi = wo.Neg()
		etap = 1
	}
	denom := wi.Add(wo.Scale(etap)).LengthSquared()
	if denom == 0 {
		return Sample{}, false
	}
	dwmDwi := absf(wi.Dot(wm)) / denom
	pdf := d.Dist.PDF(wo, wm) * dwmDwi * pt / (pr + pt)
	ft := d.Dist.D(wm) * (1 - f) * d.Dist.G(wo, wi) *
		absf(wi.Dot(wm)*wo.Dot(wm)) / (denom * absf(CosTheta(wo))) / (etap * etap)

	lambda.Terminate()
	return Sample{Wi: wi, F: spectrum.Constant(ft), PDF: pdf, Flags: Transmission | Glossy, Eta: etap}, true
}

func (d Dielectric) sampleSmooth(wo hm.Vector3[hm.ShadingNormalTangent], uc float64, lambda *spectrum.Wavelengths) (Sample, bool) {
	f := d.fresnelWeight(CosTheta(wo))
	pr, pt := f, 1-f
	if uc < pr/(pr+pt) {
		wi := hm.NewVector3[hm.ShadingNormalTangent](-wo.X, -wo.Y, wo.Z)
		v := f / absf(CosTheta(wi))
		return Sample{Wi: wi, F: spectrum.Constant(v), PDF: pr / (pr + pt), Flags: Reflection | Specular, Eta: 1}, true
	}

	n := hm.NewNormal3[hm.ShadingNormalTangent](0, 0, 1).FaceForward(wo)
	wi, etap, ok := hm.Refract(wo, n, d.Eta)
	if !ok {
		return Sample{}, false
	}
	if d.ThinSurface {
		wi = wo.Neg()
		etap = 1
	}
	v := (1 - f) / absf(CosTheta(wi)) / (etap * etap)
	lambda.Terminate()
	return Sample{Wi: wi, F: spectrum.Constant(v), PDF: pt / (pr + pt), Flags: Transmission | Specular, Eta: etap}, true
}
