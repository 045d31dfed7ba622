package material

import (
	"testing"

	"github.com/stretchr/testify/assert"

	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
	"github.com/lmarchetti/heropath/pkg/texture"
)

func TestConductorTexturedResolvesAlphaFromRoughness(t *testing.T) {
	c := ConductorTextured{
		Reflectance: texture.ConstantSpectrum{Spectrum_: spectrum.ConstantSpectrum(0.9)},
		Roughness:   texture.ConstantFloat(0.5),
	}
	lambda := spectrum.SampleUniform(0.5)
	bsdf := c.ComputeBSDF(ShadingContext{UV: hm.Point2{X: 0.5, Y: 0.5}}, lambda)
	conductor, ok := bsdf.(Conductor)
	assert.True(t, ok)
	assert.InDelta(t, 0.25, conductor.Dist.AlphaX, 1e-9)
	assert.False(t, c.IsEmissive())
}

func TestDielectricTexturedBuildsGlossyDielectric(t *testing.T) {
	d := DielectricTextured{Eta: 1.5, Roughness: texture.ConstantFloat(0.2)}
	bsdf := d.ComputeBSDF(ShadingContext{}, spectrum.Wavelengths{})
	dielectric, ok := bsdf.(Dielectric)
	assert.True(t, ok)
	assert.InDelta(t, 1.5, dielectric.Eta, 1e-9)
	assert.InDelta(t, 0.04, dielectric.Dist.AlphaX, 1e-9)
}

func TestPBRTexturedBlendsMetallicFromTexture(t *testing.T) {
	p := PBRTextured{
		BaseColor: texture.ConstantSpectrum{Spectrum_: spectrum.ConstantSpectrum(0.8)},
		Metallic:  texture.ConstantFloat(1),
		IOR:       1.5,
		Roughness: texture.ConstantFloat(0.3),
	}
	lambda := spectrum.SampleUniform(0.25)
	bsdf := p.ComputeBSDF(ShadingContext{}, lambda)
	pbr, ok := bsdf.(PBR)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, pbr.Metallic, 1e-9)
}

func TestClearcoatPBRTexturedLayersOverSubstrate(t *testing.T) {
	c := ClearcoatPBRTextured{
		Substrate: PBRTextured{
			BaseColor: texture.ConstantSpectrum{Spectrum_: spectrum.ConstantSpectrum(0.9)},
			Metallic:  texture.ConstantFloat(0),
			IOR:       1.5,
			Roughness: texture.ConstantFloat(0.3),
		},
		IOR:       1.4,
		Roughness: texture.ConstantFloat(0.1),
		Tint:      texture.ConstantSpectrum{Spectrum_: spectrum.ConstantSpectrum(0.95)},
		Thickness: texture.ConstantFloat(0.5),
	}
	lambda := spectrum.SampleUniform(0.75)
	bsdf := c.ComputeBSDF(ShadingContext{}, lambda)
	clearcoat, ok := bsdf.(ClearcoatPBR)
	assert.True(t, ok)
	assert.InDelta(t, 1.4, clearcoat.IOR, 1e-9)
	assert.InDelta(t, 0.5, clearcoat.Thickness, 1e-9)
}
