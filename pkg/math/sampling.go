package math

import gomath "math"

// SampleUniformDiskConcentric maps a uniform [0,1)^2 sample to a uniform
// sample on the unit disk using Shirley's concentric mapping, which keeps
// adjacent QMC samples adjacent on the disk.
func SampleUniformDiskConcentric(u Point2) Point2 {
	ox := 2*u.X - 1
	oy := 2*u.Y - 1
	if ox == 0 && oy == 0 {
		return Point2{0, 0}
	}
	var theta, r float64
	if gomath.Abs(ox) > gomath.Abs(oy) {
		r = ox
		theta = (gomath.Pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = (gomath.Pi / 2) - (gomath.Pi/4)*(ox/oy)
	}
	return Point2{r * gomath.Cos(theta), r * gomath.Sin(theta)}
}

// SampleCosineHemisphere draws a direction in the local +Z hemisphere with
// PDF = cos(theta)/pi, per spec §4.6 (Normalized Lambert).
func SampleCosineHemisphere(u Point2) Vector3[ShadingNormalTangent] {
	d := SampleUniformDiskConcentric(u)
	z := gomath.Sqrt(gomath.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return Vector3[ShadingNormalTangent]{d.X, d.Y, z}
}

// CosineHemispherePDF returns the PDF of SampleCosineHemisphere for a
// direction with the given cosine against the local Z axis.
func CosineHemispherePDF(cosTheta float64) float64 {
	return gomath.Abs(cosTheta) / gomath.Pi
}

// SampleUniformTriangle implements the classical fold mapping a uniform
// [0,1)^2 sample into barycentric coordinates, per spec §4.5.
func SampleUniformTriangle(u Point2) (b0, b1 float64) {
	su, sv := u.X, u.Y
	if su < sv {
		su, sv = su/2, sv-su/2
	} else {
		sv, su = sv/2, su-sv/2
	}
	return 1 - su - sv, su
}

// Reflect reflects wo about n (both in the same local frame).
func Reflect[S Space](wo, n Vector3[S]) Vector3[S] {
	return n.Scale(2 * wo.Dot(n)).Sub(wo)
}

// Refract implements Snell's law in a local shading frame. eta is
// eta_transmitted/eta_incident for a wi on the side n points to; when wi is
// on the other side, n is flipped and eta inverted. The returned float is
// the relative eta actually used. Returns ok=false on total internal
// reflection, per spec §7 "sampling failures".
func Refract(wi Vector3[ShadingNormalTangent], n Normal3[ShadingNormalTangent], eta float64) (Vector3[ShadingNormalTangent], float64, bool) {
	cosThetaI := n.Dot(wi)
	if cosThetaI < 0 {
		eta = 1 / eta
		cosThetaI = -cosThetaI
		n = n.Neg()
	}
	sin2ThetaI := gomath.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return Vector3[ShadingNormalTangent]{}, 0, false
	}
	cosThetaT := gomath.Sqrt(1 - sin2ThetaT)
	wt := wi.Neg().Scale(1 / eta).Add(n.AsVector().Scale(cosThetaI/eta - cosThetaT))
	return wt, eta, true
}

// Clamp clamps x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// SmoothStep implements the smoothstep interpolation spec §4.5 uses for
// spot-light falloff: 0 below edge0, 1 above edge1, cubic Hermite between.
func SmoothStep(x, edge0, edge1 float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
