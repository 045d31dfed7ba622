package color

import gomath "math"

// EOTF maps encoded (display) values to linear light, and its inverse (the
// OETF) maps linear light back to encoded values.
type EOTF interface {
	Name() string
	ToLinear(encoded float64) float64
	FromLinear(linear float64) float64
}

// SRGBEOTF is the piecewise sRGB transfer function (IEC 61966-2-1).
type SRGBEOTF struct{}

func (SRGBEOTF) Name() string { return "sRGB" }

func (SRGBEOTF) ToLinear(e float64) float64 {
	if e <= 0.04045 {
		return e / 12.92
	}
	return gomath.Pow((e+0.055)/1.055, 2.4)
}

func (SRGBEOTF) FromLinear(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*gomath.Pow(l, 1/2.4) - 0.055
}

// GammaEOTF is a pure power-law transfer function, e.g. gamma 2.2.
type GammaEOTF struct{ Gamma float64 }

func (g GammaEOTF) Name() string { return "gamma" }

func (g GammaEOTF) ToLinear(e float64) float64 {
	if e <= 0 {
		return 0
	}
	return gomath.Pow(e, g.Gamma)
}

func (g GammaEOTF) FromLinear(l float64) float64 {
	if l <= 0 {
		return 0
	}
	return gomath.Pow(l, 1/g.Gamma)
}

// ApplyToRGB runs FromLinear over all three channels, the last step before
// quantizing to 8-bit output (spec §4.8 Finalization).
func ApplyToRGB(e EOTF, c RGB) RGB {
	return RGB{e.FromLinear(c.R), e.FromLinear(c.G), e.FromLinear(c.B)}
}
