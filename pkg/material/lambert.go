package material

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Lambert is a normalized Lambertian (perfectly diffuse) BSDF, generalized
// from the teacher's Lambertian (pkg/material/lambertian.go) into the
// spectral, shading-frame contract: reflectance is now a per-wavelength
// Sampled instead of an RGB Vec3, and directions are already in the
// tangent frame instead of being measured against a separately-passed
// normal.
type Lambert struct {
	Reflectance spectrum.Sampled
}

func (l Lambert) Flags() LobeFlags { return Reflection | Diffuse }

func (l Lambert) Eval(wo, wi hm.Vector3[hm.ShadingNormalTangent], _ spectrum.Wavelengths) spectrum.Sampled {
	if !hm.SameHemisphere(wo, wi) {
		return spectrum.Zero()
	}
	return l.Reflectance.Scale(1 / gomath.Pi)
}

func (l Lambert) PDF(wo, wi hm.Vector3[hm.ShadingNormalTangent], _ spectrum.Wavelengths) float64 {
	if !hm.SameHemisphere(wo, wi) {
		return 0
	}
	return hm.CosineHemispherePDF(AbsCosTheta(wi))
}

func (l Lambert) Sample(wo hm.Vector3[hm.ShadingNormalTangent], _ float64, u hm.Point2, _ *spectrum.Wavelengths) (Sample, bool) {
	wi := hm.SampleCosineHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := hm.CosineHemispherePDF(AbsCosTheta(wi))
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{
		Wi:    wi,
		F:     l.Reflectance.Scale(AbsCosTheta(wi) / gomath.Pi),
		PDF:   pdf,
		Flags: l.Flags(),
		Eta:   1,
	}, true
}
