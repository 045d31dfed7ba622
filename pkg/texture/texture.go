// Package texture provides UV-sampled material parameter sources (spec
// §4.1's supplemented "texture-driven material parameters" feature): a
// constant value or an image lookup, both bilinear-ready, feeding base
// color, roughness, metallic, ior, tint, thickness and normal-map
// parameters instead of bare scalars. Grounded on the teacher's
// ImageTexture (pkg/material/image_texture.go), generalized from
// nearest-neighbor to bilinear sampling and split into three typed
// interfaces (Float/Spectrum/Normal) per SPEC_FULL.md §4.1.
package texture

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// FloatTexture provides a scalar parameter (roughness, metallic, ior,
// thickness) sampled at a UV coordinate.
type FloatTexture interface {
	Float(uv hm.Point2) float64
}

// SpectrumTexture provides a spectral parameter (base color, tint)
// sampled at a UV coordinate and evaluated at the path's wavelengths.
type SpectrumTexture interface {
	Spectrum(uv hm.Point2, lambda spectrum.Wavelengths) spectrum.Sampled
}

// NormalTexture provides a per-vertex-normal-tangent-space perturbation
// (a decoded normal map) sampled at a UV coordinate.
type NormalTexture interface {
	Normal(uv hm.Point2) hm.Vector3[hm.VertexNormalTangent]
}

// ConstantFloat is a FloatTexture with no spatial variation.
type ConstantFloat float64

func (c ConstantFloat) Float(hm.Point2) float64 { return float64(c) }

// ConstantSpectrum is a SpectrumTexture with no spatial variation.
type ConstantSpectrum struct{ Spectrum_ spectrum.Spectrum }

func (c ConstantSpectrum) Spectrum(_ hm.Point2, lambda spectrum.Wavelengths) spectrum.Sampled {
	return spectrum.Sample(c.Spectrum_, lambda)
}

// FlatNormal is a NormalTexture that never perturbs the vertex normal,
// i.e. +Z in tangent space.
type FlatNormal struct{}

func (FlatNormal) Normal(hm.Point2) hm.Vector3[hm.VertexNormalTangent] {
	return hm.Vector3[hm.VertexNormalTangent]{Z: 1}
}

// wrapUV maps u into [0,1) by fractional wrap and flips v so v=0 is the
// image's bottom row, per spec §6: "u = fract(u); v = 1 - fract(v)".
func wrapUV(uv hm.Point2) (u, v float64) {
	u = uv.X - float64(int(uv.X))
	if u < 0 {
		u += 1
	}
	v = uv.Y - float64(int(uv.Y))
	if v < 0 {
		v += 1
	}
	return u, 1 - v
}
