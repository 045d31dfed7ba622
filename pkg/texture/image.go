package texture

import (
	hcolor "github.com/lmarchetti/heropath/pkg/color"
	"github.com/lmarchetti/heropath/pkg/loaders"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// bilinear samples data at (u, v) in [0,1)^2 using four neighboring texels,
// generalizing the teacher's nearest-neighbor ImageTexture.Evaluate to a
// bilinear filter per spec §6.
func bilinear(data *loaders.ImageData, u, v float64) hcolor.RGB {
	fx := u*float64(data.Width) - 0.5
	fy := v*float64(data.Height) - 0.5

	x0, y0 := floorInt(fx), floorInt(fy)
	x1, y1 := x0+1, y0+1
	tx, ty := fx-float64(x0), fy-float64(y0)

	c00 := data.At(x0, y0)
	c10 := data.At(x1, y0)
	c01 := data.At(x0, y1)
	c11 := data.At(x1, y1)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	lerpRGB := func(a, b hcolor.RGB, t float64) hcolor.RGB {
		return hcolor.RGB{R: lerp(a.R, b.R, t), G: lerp(a.G, b.G, t), B: lerp(a.B, b.B, t)}
	}

	top := lerpRGB(c00, c10, tx)
	bottom := lerpRGB(c01, c11, tx)
	return lerpRGB(top, bottom, ty)
}

func floorInt(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}

// ImageFloatTexture reads a single channel of an image as a linear scalar
// parameter (roughness, metallic, ior, thickness): no EOTF decode, per
// SPEC_FULL.md §4.1's "data textures are stored linear" rule.
type ImageFloatTexture struct {
	Data    *loaders.ImageData
	Channel int // 0=R, 1=G, 2=B
}

func (t ImageFloatTexture) Float(uv hm.Point2) float64 {
	u, v := wrapUV(uv)
	c := bilinear(t.Data, u, v)
	switch t.Channel {
	case 1:
		return c.G
	case 2:
		return c.B
	default:
		return c.R
	}
}

// ImageSpectrumTexture reads an image as an sRGB-encoded base-color
// texture, linearized on sample and promoted to a spectrum via the
// RGB->spectrum table (pkg/spectrum's Gauss-Newton-fit table), per
// SPEC_FULL.md §4.1. The table is baked for the sRGB gamut (pkg/spectrum's
// table_build.go), so EOTF is the only decode step needed here.
type ImageSpectrumTexture struct {
	Data *loaders.ImageData
	EOTF hcolor.EOTF
}

func (t ImageSpectrumTexture) Spectrum(uv hm.Point2, lambda spectrum.Wavelengths) spectrum.Sampled {
	u, v := wrapUV(uv)
	encoded := bilinear(t.Data, u, v)
	linear := [3]float64{
		t.EOTF.ToLinear(encoded.R),
		t.EOTF.ToLinear(encoded.G),
		t.EOTF.ToLinear(encoded.B),
	}
	s := spectrum.RGBToSpectrum(linear)
	return spectrum.Sample(s, lambda)
}

// ImageNormalTexture decodes a tangent-space normal map: each channel,
// Z included, is stored in [0,1] representing [-1,1] (decoded as 2c-1),
// and the result is normalized.
type ImageNormalTexture struct {
	Data *loaders.ImageData
}

func (t ImageNormalTexture) Normal(uv hm.Point2) hm.Vector3[hm.VertexNormalTangent] {
	u, v := wrapUV(uv)
	c := bilinear(t.Data, u, v)
	n := hm.Vector3[hm.VertexNormalTangent]{
		X: c.R*2 - 1,
		Y: c.G*2 - 1,
		Z: c.B*2 - 1,
	}
	return n.Normalized()
}
