package material

import (
	"github.com/lmarchetti/heropath/pkg/spectrum"
	"github.com/lmarchetti/heropath/pkg/texture"
)

// roughnessToAlpha maps a perceptual [0,1] roughness texture sample to the
// GGX alpha parameter, grounded on original_source's
// material/impls/*.rs roughness_to_alpha (alpha = roughness^2) shared by
// every PBR-family material there.
func roughnessToAlpha(roughness float64) float64 {
	return roughness * roughness
}

// ConductorTextured is the texture-driven counterpart of Conductor: every
// scene-loaded metal surface resolves its reflectance and roughness from
// per-UV providers instead of a baked-in spectrum.Sampled and a fixed
// alpha, per SPEC_FULL.md §4.1.
type ConductorTextured struct {
	Reflectance texture.SpectrumTexture
	Roughness   texture.FloatTexture
}

func (c ConductorTextured) IsEmissive() bool { return false }

func (c ConductorTextured) ComputeBSDF(ctx ShadingContext, lambda spectrum.Wavelengths) BSDF {
	alpha := roughnessToAlpha(c.Roughness.Float(ctx.UV))
	return Conductor{
		Reflectance: c.Reflectance.Spectrum(ctx.UV, lambda),
		Dist:        TrowbridgeReitz{AlphaX: alpha, AlphaY: alpha},
	}
}

var _ Material = ConductorTextured{}

// DielectricTextured is the texture-driven counterpart of Dielectric. Eta
// stays a scalar (see Dielectric's doc comment on dispersion), but
// roughness is UV-sampled.
type DielectricTextured struct {
	Eta         float64
	Roughness   texture.FloatTexture
	ThinSurface bool
}

func (d DielectricTextured) IsEmissive() bool { return false }

func (d DielectricTextured) ComputeBSDF(ctx ShadingContext, _ spectrum.Wavelengths) BSDF {
	alpha := roughnessToAlpha(d.Roughness.Float(ctx.UV))
	return Dielectric{
		Eta:         d.Eta,
		Dist:        TrowbridgeReitz{AlphaX: alpha, AlphaY: alpha},
		ThinSurface: d.ThinSurface,
	}
}

var _ Material = DielectricTextured{}

// PBRTextured is the texture-driven counterpart of PBR: base color and
// metallic are UV-sampled providers, matching how
// original_source/scene/src/material/impls/simple_pbr_material.rs resolves
// every one of its parameters through a Texture before building the BSDF.
type PBRTextured struct {
	BaseColor texture.SpectrumTexture
	Metallic  texture.FloatTexture
	IOR       float64
	Roughness texture.FloatTexture
}

func (p PBRTextured) IsEmissive() bool { return false }

func (p PBRTextured) ComputeBSDF(ctx ShadingContext, lambda spectrum.Wavelengths) BSDF {
	alpha := roughnessToAlpha(p.Roughness.Float(ctx.UV))
	return PBR{
		BaseColor: p.BaseColor.Spectrum(ctx.UV, lambda),
		Metallic:  p.Metallic.Float(ctx.UV),
		IOR:       p.IOR,
		Dist:      TrowbridgeReitz{AlphaX: alpha, AlphaY: alpha},
	}
}

var _ Material = PBRTextured{}

// ClearcoatPBRTextured layers a UV-sampled coat (IOR, roughness, tint,
// thickness) over a PBRTextured substrate, mirroring
// simple_pbr_clearcoat_material.rs's parameter resolution.
type ClearcoatPBRTextured struct {
	Substrate PBRTextured
	IOR       float64
	Roughness texture.FloatTexture
	Tint      texture.SpectrumTexture
	Thickness texture.FloatTexture
}

func (c ClearcoatPBRTextured) IsEmissive() bool { return false }

func (c ClearcoatPBRTextured) ComputeBSDF(ctx ShadingContext, lambda spectrum.Wavelengths) BSDF {
	substrate, ok := c.Substrate.ComputeBSDF(ctx, lambda).(PBR)
	if !ok {
		return nil
	}
	alpha := roughnessToAlpha(c.Roughness.Float(ctx.UV))
	return ClearcoatPBR{
		Substrate: substrate,
		IOR:       c.IOR,
		Dist:      TrowbridgeReitz{AlphaX: alpha, AlphaY: alpha},
		Tint:      c.Tint.Spectrum(ctx.UV, lambda),
		Thickness: c.Thickness.Float(ctx.UV),
	}
}

var _ Material = ClearcoatPBRTextured{}
