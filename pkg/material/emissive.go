package material

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Emissive is a light-emitting material: it has no BSDF (it absorbs every
// incoming ray) and instead radiates a spectral distribution uniformly
// over the hemisphere above the shading normal. Generalized from the
// teacher's Emissive (an RGB Vec3 emission constant) to emit a spectrum
// evaluated per hero wavelength.
type Emissive struct {
	Radiance spectrum.Spectrum
	Scale    float64
	TwoSided bool
}

func (e Emissive) IsEmissive() bool { return true }

func (e Emissive) ComputeBSDF(ShadingContext, spectrum.Wavelengths) BSDF { return nil }

// Emit returns the radiance for the given outgoing direction (shading
// tangent frame) and wavelengths; zero on the back face unless TwoSided.
func (e Emissive) Emit(w hm.Vector3[hm.ShadingNormalTangent], lambda spectrum.Wavelengths) spectrum.Sampled {
	if w.Z <= 0 && !e.TwoSided {
		return spectrum.Zero()
	}
	scale := e.Scale
	if scale == 0 {
		scale = 1
	}
	return spectrum.Sample(e.Radiance, lambda).Scale(scale)
}
