// Package material holds the spectral BSDFs: Lambert, rough conductor,
// rough dielectric, generalized Schlick, and the PBR/clearcoat layered
// composites built from them, per spec §4.6. All directions are expressed
// in the shading tangent frame (Z aligned to the shading normal), as the
// teacher's own HitRecord-relative Scatter/EvaluateBRDF/PDF contract
// (pkg/material/interfaces.go) already did in world space — here the frame
// is made explicit via hm.ShadingNormalTangent instead of passing a normal
// alongside every call.
package material

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// LobeFlags classifies what a BSDF's lobes can do, letting the integrator
// and light sampler skip work a material's shape rules out (e.g. never
// attempt next-event estimation against a purely specular BSDF).
type LobeFlags uint8

const (
	Reflection LobeFlags = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular

	AllLobes = Reflection | Transmission | Diffuse | Glossy | Specular
)

func (f LobeFlags) Has(o LobeFlags) bool { return f&o != 0 }
func (f LobeFlags) IsSpecular() bool     { return f&Specular != 0 }
func (f LobeFlags) IsDiffuse() bool      { return f&Diffuse != 0 }

// Sample is the result of importance-sampling a BSDF for an incoming
// direction.
type Sample struct {
	Wi    hm.Vector3[hm.ShadingNormalTangent]
	F     spectrum.Sampled
	PDF   float64
	Flags LobeFlags
	// Eta is the relative index of refraction for this lobe: 1 for
	// reflection, the transmission ratio for a refracted ray.
	Eta float64
}

func (s Sample) IsSpecular() bool { return s.Flags.IsSpecular() }
func (s Sample) IsTransmission() bool { return s.Flags.Has(Transmission) }

// BSDF is a shading-point-local scattering distribution. wo always points
// away from the surface, toward where the ray came from (pbrt convention);
// wi is the direction the BSDF samples or is asked to evaluate toward.
type BSDF interface {
	Flags() LobeFlags
	// Eval returns f(wo,wi) for the given hero wavelengths. Undefined (and
	// conventionally zero) for specular-only lobes, since a delta
	// distribution has no finite value.
	Eval(wo, wi hm.Vector3[hm.ShadingNormalTangent], lambda spectrum.Wavelengths) spectrum.Sampled
	// PDF returns the solid-angle density of sampling wi given wo.
	PDF(wo, wi hm.Vector3[hm.ShadingNormalTangent], lambda spectrum.Wavelengths) float64
	// Sample draws a wi from wo. lambda may be mutated (terminating
	// secondary wavelengths) by a transmission lobe, as Dielectric does.
	Sample(wo hm.Vector3[hm.ShadingNormalTangent], uc float64, u hm.Point2, lambda *spectrum.Wavelengths) (Sample, bool)
}

// ShadingContext is everything a Material needs to build a BSDF at one
// point: the texture-lookup coordinate and the orthonormal shading frame
// built from the (possibly interpolated) normal and reconstructed tangent.
type ShadingContext struct {
	UV       hm.Point2
	Ns       hm.Normal3[hm.Render]
	Ng       hm.Normal3[hm.Render] // geometric normal, for self-intersection side tests
	Dpdu     hm.Vector3[hm.Render]
}

// Material builds a BSDF for a shading point. Texture-driven parameters
// (roughness maps, normal maps, etc.) are resolved here, once per hit,
// rather than baked into the BSDF's construction.
type Material interface {
	ComputeBSDF(ctx ShadingContext, lambda spectrum.Wavelengths) BSDF
	// IsEmissive reports whether this material also emits light; emissive
	// primitives look up their radiance through the Emitter interface
	// rather than this one.
	IsEmissive() bool
}

// Emitter is implemented by materials that emit radiance, evaluated in the
// same shading frame as the BSDF (Z along the shading normal): w points
// away from the surface toward the viewer.
type Emitter interface {
	Emit(w hm.Vector3[hm.ShadingNormalTangent], lambda spectrum.Wavelengths) spectrum.Sampled
}
