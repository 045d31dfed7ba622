package material

import (
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Diffuse is the simplest Material: a constant Lambertian BSDF with no
// texture lookup, used wherever a surface needs a BSDF but no spatially
// varying parameters (e.g. scaffolding scenes, unit tests). Its
// Reflectance is a fixed spectrum.Sampled, used as-is whatever wavelengths
// a path carries. Textured variants (DiffuseTextured and the other
// *Textured materials in this package) wrap a texture.FloatTexture/
// SpectrumTexture instead.
type Diffuse struct {
	Reflectance spectrum.Sampled
}

func (d Diffuse) IsEmissive() bool { return false }

func (d Diffuse) ComputeBSDF(_ ShadingContext, _ spectrum.Wavelengths) BSDF {
	return Lambert{Reflectance: d.Reflectance}
}

var _ Material = Diffuse{}
