package spectrum

import gomath "math"

// LambdaMin and LambdaMax bound the visible range the renderer samples
// wavelengths from, per spec §3.
const (
	LambdaMin = 360.0
	LambdaMax = 830.0
	NBins     = 470 // one per nm over [360,830)
)

// CIEX, CIEY, CIEZ are the 1931 2-degree standard observer color matching
// functions, evaluated with Wyman et al.'s multi-lobe Gaussian analytic fit
// ("Simple Analytic Approximations to the CIE XYZ Color Matching
// Functions", JCGT 2013) rather than a tabulated lookup — this keeps the
// otherwise-enormous CIE table out of the source tree while staying within
// the fit's published ~1.1% RMS error band.
func CIEX(lambda float64) float64 {
	return 0.362*gaussLobe(lambda, 442.0, 0.0624, 0.0374) +
		1.056*gaussLobe(lambda, 599.8, 0.0264, 0.0323) -
		0.065*gaussLobe(lambda, 501.1, 0.0490, 0.0382)
}

func CIEY(lambda float64) float64 {
	return 0.821*gaussLobe(lambda, 568.8, 0.0213, 0.0247) +
		0.286*gaussLobe(lambda, 530.9, 0.0613, 0.0322)
}

func CIEZ(lambda float64) float64 {
	return 1.217*gaussLobe(lambda, 437.0, 0.0845, 0.0278) +
		0.681*gaussLobe(lambda, 459.0, 0.0385, 0.0725)
}

// gaussLobe is an asymmetric Gaussian: sigma1 below mu, sigma2 above.
func gaussLobe(lambda, mu, sigma1, sigma2 float64) float64 {
	var sigma float64
	if lambda < mu {
		sigma = sigma1
	} else {
		sigma = sigma2
	}
	t := (lambda - mu) * sigma
	return gomath.Exp(-0.5 * t * t)
}

// CIEYIntegral is int CIEY(lambda) dlambda over the visible range, used to
// normalize XYZ so a unit-reflectance, unit-illuminant spectrum integrates
// to Y=1.
var CIEYIntegral = integrateCIEY()

func integrateCIEY() float64 {
	const step = 1.0
	sum := 0.0
	for lambda := LambdaMin; lambda < LambdaMax; lambda += step {
		sum += CIEY(lambda) * step
	}
	return sum
}

// D65RelativeSPD approximates the CIE Standard Illuminant D65 by a
// Planckian-locus blackbody at D65's correlated color temperature
// (6504K), returned in Planck's-law units with no luminance scaling. This is
// an engineering simplification noted in DESIGN.md: true D65 is not a
// blackbody (it has a Fraunhofer dip structure a Planckian curve lacks),
// but the approximation is smooth, analytic, strictly positive, and close
// enough in chromaticity for the renderer's single-illuminant use.
func D65RelativeSPD(lambdaNM float64) float64 {
	const cct = 6504.0
	return planckianSPD(lambdaNM, cct)
}

// planckianSPD evaluates Planck's law (in arbitrary units, since only
// relative shape matters here) at the given wavelength (nm) and
// temperature (K).
func planckianSPD(lambdaNM, tempK float64) float64 {
	const h = 6.62607015e-34
	const c = 2.99792458e8
	const kB = 1.380649e-23
	lambdaM := lambdaNM * 1e-9
	num := 2 * h * c * c
	denom := gomath.Pow(lambdaM, 5) * (gomath.Exp((h*c)/(lambdaM*kB*tempK)) - 1)
	return num / denom
}
