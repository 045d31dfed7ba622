package material

import (
	gomath "math"

	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// FresnelDielectric evaluates the unpolarized Fresnel reflectance for a
// dielectric interface, cosThetaI measured from the surface normal on the
// incident side. eta is the relative IOR (transmitted/incident).
func FresnelDielectric(cosThetaI, eta float64) float64 {
	cosThetaI = clamp(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		eta = 1 / eta
		cosThetaI = -cosThetaI
	}

	sin2ThetaI := 1 - cosThetaI*cosThetaI
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := gomath.Sqrt(1 - sin2ThetaT)

	rParallel := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	rPerp := (cosThetaI - eta*cosThetaT) / (cosThetaI + eta*cosThetaT)
	return (rParallel*rParallel + rPerp*rPerp) / 2
}

// FresnelSchlick is the cheap polynomial approximation to
// FresnelDielectric, parameterized by the normal-incidence reflectance r0.
func FresnelSchlick(cosTheta, r0 float64) float64 {
	m := clamp(1-cosTheta, 0, 1)
	m2 := m * m
	return r0 + (1-r0)*m2*m2*m
}

// GeneralizedSchlickReflectance implements the Adobe "F82-tint" generalized
// Schlick Fresnel model: r0 and r90 are the spectral reflectance at normal
// and grazing incidence, exponent controls the interpolation curve (5
// recovers classic Schlick), and tint dips the curve near the cosθ=1/7
// highlight peak characteristic of this model — a·cosθ·(1-cosθ)^6 is
// subtracted, with a solved so F(1/7) hits r0+(r90-r0)(6/7)^exponent(1-tint).
func GeneralizedSchlickReflectance(cosTheta float64, r0, r90, tint spectrum.Sampled, exponent float64) spectrum.Sampled {
	m := clamp(1-cosTheta, 0, 1)
	base := r0.Add(r90.Sub(r0).Scale(gomath.Pow(m, exponent)))

	const mMax = 6.0 / 7.0 // 1 - cosThetaMax, cosThetaMax = 1/7
	aScale := 7 * gomath.Pow(mMax, exponent-6)

	var out spectrum.Sampled
	for i := range out {
		a := aScale * tint[i] * (r90[i] - r0[i])
		out[i] = base[i] - a*cosTheta*gomath.Pow(m, 6)
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
