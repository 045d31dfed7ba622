// Package color implements linear-RGB <-> XYZ <-> Lab conversion, transfer
// functions (EOTFs) and the primaries/white-point data for the gamuts the
// renderer supports. This reconciles design note (3) in SPEC_FULL.md: the
// original source carried three copies of a Gamut type, one canonical
// Gamut lives here.
package color

// Gamut names a set of RGB primaries plus a white point. XYZMat/XYZMatInv
// convert between this gamut's linear RGB and CIE XYZ.
type Gamut struct {
	Name       string
	XYZMat     [3][3]float64 // linear RGB -> XYZ
	XYZMatInv  [3][3]float64 // XYZ -> linear RGB
	WhitePoint XYZ
}

// SRGB is the sRGB/BT.709 gamut under the D65 white point.
var SRGB = Gamut{
	Name: "sRGB",
	XYZMat: [3][3]float64{
		{0.4124564, 0.3575761, 0.1804375},
		{0.2126729, 0.7151522, 0.0721750},
		{0.0193339, 0.1191920, 0.9503041},
	},
	XYZMatInv: [3][3]float64{
		{3.2404542, -1.5371385, -0.4985314},
		{-0.9692660, 1.8760108, 0.0415560},
		{0.0556434, -0.2040259, 1.0572252},
	},
	WhitePoint: XYZ{X: 0.95047, Y: 1.0, Z: 1.08883},
}

// DCIP3 is the Display P3 gamut under the D65 white point.
var DCIP3 = Gamut{
	Name: "DCI-P3",
	XYZMat: [3][3]float64{
		{0.4865709, 0.2656677, 0.1982173},
		{0.2289746, 0.6917385, 0.0792869},
		{0.0000000, 0.0451134, 1.0439444},
	},
	XYZMatInv: [3][3]float64{
		{2.4934969, -0.9313836, -0.4027108},
		{-0.8294890, 1.7626641, 0.0236247},
		{0.0358458, -0.0761724, 0.9568845},
	},
	WhitePoint: XYZ{X: 0.95047, Y: 1.0, Z: 1.08883},
}

// RGB is a linear RGB triple in some Gamut (the gamut is tracked by the
// caller, mirroring the original source's per-gamut newtype split).
type RGB struct{ R, G, B float64 }

func (g Gamut) ToXYZ(c RGB) XYZ {
	m := g.XYZMat
	return XYZ{
		X: m[0][0]*c.R + m[0][1]*c.G + m[0][2]*c.B,
		Y: m[1][0]*c.R + m[1][1]*c.G + m[1][2]*c.B,
		Z: m[2][0]*c.R + m[2][1]*c.G + m[2][2]*c.B,
	}
}

func (g Gamut) FromXYZ(c XYZ) RGB {
	m := g.XYZMatInv
	return RGB{
		R: m[0][0]*c.X + m[0][1]*c.Y + m[0][2]*c.Z,
		G: m[1][0]*c.X + m[1][1]*c.Y + m[1][2]*c.Z,
		B: m[2][0]*c.X + m[2][1]*c.Y + m[2][2]*c.Z,
	}
}

func (c RGB) Clamp01() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
