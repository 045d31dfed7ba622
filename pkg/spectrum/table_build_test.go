package spectrum

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBToSpectrumRoundTripsAchromatic(t *testing.T) {
	for _, v := range []float64{0.0, 0.25, 0.5, 0.75, 1.0} {
		poly := RGBToSpectrum([3]float64{v, v, v})
		for lambda := LambdaMin; lambda < LambdaMax; lambda += 25 {
			r := poly.Evaluate(lambda)
			assert.GreaterOrEqualf(t, r, 0.0, "reflectance below 0 at gray=%v lambda=%v", v, lambda)
			assert.LessOrEqualf(t, r, 1.0, "reflectance above 1 at gray=%v lambda=%v", v, lambda)
		}
	}
}

func TestRGBToSpectrumMonotoneInBrightness(t *testing.T) {
	dark := RGBToSpectrum([3]float64{0.2, 0.2, 0.2})
	bright := RGBToSpectrum([3]float64{0.8, 0.8, 0.8})
	assert.Greater(t, bright.Evaluate(550), dark.Evaluate(550))
}

func TestSigmoidTableRoundTripsThroughIO(t *testing.T) {
	built := globalTable()

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, built))

	read, err := ReadTable(&buf)
	require.NoError(t, err)

	// Compare whole rows structurally rather than cherry-picked scalars, so
	// an IO round-trip that silently reorders or truncates a row fails here
	// too, not just a spot-checked index.
	if diff := cmp.Diff(built.ZNodes, read.ZNodes, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("ZNodes mismatch after round-trip (-built +read):\n%s", diff)
	}
	builtRow := built.Coeffs[0][1][1]
	readRow := read.Coeffs[0][1][1]
	if diff := cmp.Diff(builtRow, readRow, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
		t.Errorf("Coeffs[0][1][1] row mismatch after round-trip (-built +read):\n%s", diff)
	}
}

func TestFitSigmoidPolynomialConverges(t *testing.T) {
	coeffs := fitSigmoidPolynomial([3]float64{0.7, 0.1, 0.1}, [3]float64{})
	poly := RgbSigmoidPolynomial{C0: coeffs[0], C1: coeffs[1], C2: coeffs[2]}

	redReflectance := poly.Evaluate(650)
	blueReflectance := poly.Evaluate(450)
	assert.Greater(t, redReflectance, blueReflectance,
		"fit for a red-dominant target should reflect more at 650nm than 450nm")
}
