package material

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
	"github.com/lmarchetti/heropath/pkg/texture"
)

// DiffuseTextured is a Lambertian material whose reflectance is a
// texture.SpectrumTexture rather than a bare spectrum.Sampled, so it
// re-samples at each path's actual hero wavelengths (Diffuse's fixed
// spectrum.Sampled field is a scaffolding shortcut only correct when
// every path happens to share the same wavelengths; see its own doc
// comment). This is the material scene-loaders (pkg/loaders) build for
// any "matte"/constant-color surface read from an OBJ or PBRT-dialect
// scene file, per SPEC_FULL.md §4.1's texture-driven parameter model.
type DiffuseTextured struct {
	Reflectance texture.SpectrumTexture
}

func (d DiffuseTextured) IsEmissive() bool { return false }

func (d DiffuseTextured) ComputeBSDF(ctx ShadingContext, lambda spectrum.Wavelengths) BSDF {
	return Lambert{Reflectance: d.Reflectance.Spectrum(ctx.UV, lambda)}
}

var _ Material = DiffuseTextured{}

// EmissiveTextured emits a texture-sourced radiance rather than a fixed
// spectrum.Spectrum. Emit receives no UV, so it evaluates the texture at
// UV (0,0): the emitted radiance does not vary across the surface.
type EmissiveTextured struct {
	Radiance texture.SpectrumTexture
	Scale    float64
	TwoSided bool
}

func (e EmissiveTextured) IsEmissive() bool { return true }

func (e EmissiveTextured) ComputeBSDF(ShadingContext, spectrum.Wavelengths) BSDF { return nil }

func (e EmissiveTextured) Emit(w hm.Vector3[hm.ShadingNormalTangent], lambda spectrum.Wavelengths) spectrum.Sampled {
	if w.Z <= 0 && !e.TwoSided {
		return spectrum.Zero()
	}
	scale := e.Scale
	if scale == 0 {
		scale = 1
	}
	return e.Radiance.Spectrum(hm.Point2{}, lambda).Scale(scale)
}

var _ Material = EmissiveTextured{}
var _ Emitter = EmissiveTextured{}
