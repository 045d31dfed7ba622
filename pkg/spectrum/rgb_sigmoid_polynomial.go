package spectrum

import gomath "math"

// RgbSigmoidPolynomial is the compact spectral reflectance representation
// used for RGB-authored materials: a degree-2 polynomial in a remapped
// wavelength coordinate, passed through a logistic sigmoid so its output
// stays in [0,1] for any coefficients (Jakob & Hanika 2019, "A Low
// Dimensional Function Space for Efficient Spectral Upsampling").
type RgbSigmoidPolynomial struct {
	C0, C1, C2 float64
}

// Evaluate returns the reflectance at lambdaNM. The polynomial is defined
// over the same [0,1]-normalized wavelength coordinate used when the table
// was fit (table_build.go), not raw nanometers, so large lambda values
// don't blow up the polynomial.
func (p RgbSigmoidPolynomial) Evaluate(lambdaNM float64) float64 {
	t := normalizeLambda(lambdaNM)
	x := (p.C0*t+p.C1)*t + p.C2
	return sigmoid(x)
}

func normalizeLambda(lambdaNM float64) float64 {
	return (lambdaNM - LambdaMin) / (LambdaMax - LambdaMin)
}

func (p RgbSigmoidPolynomial) Value(lambdaNM float64) float64 {
	return p.Evaluate(lambdaNM)
}

func sigmoid(x float64) float64 {
	if gomath.IsInf(x, 1) {
		return 1
	}
	if gomath.IsInf(x, -1) {
		return 0
	}
	return 0.5 + x/(2*gomath.Sqrt(1+x*x))
}
