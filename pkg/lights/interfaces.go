// Package lights implements the five light kinds of spec §4.5: point,
// spot, directional, emissive triangle mesh, and infinite. Every light
// exposes phi(λ) (spectral power, used as the light sampler's selection
// weight) and a Preprocess hook called once the scene's finite bounds are
// known, per the teacher's Light interface (pkg/lights/interfaces.go)
// generalized from RGB Vec3 throughput to per-hero-wavelength Sampled.
package lights

import (
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Sample is the result of importance-sampling a light toward a shading
// point: Wi points from the shading point toward the light.
type Sample struct {
	Wi       hm.Vector3[hm.Render]
	Distance float64
	L        spectrum.Sampled
	PDF      float64
}

// Light is sampled for next-event estimation against a shading point and
// carries enough spectral information to be selected by the light sampler
// proportional to power.
type Light interface {
	// Phi is the light's total emitted spectral power, used as the
	// light-sampler's selection weight (spec §4.7).
	Phi(lambda spectrum.Wavelengths) spectrum.Sampled

	// Sample draws a direction from p (with geometric normal n, used by
	// some lights to avoid sampling the lower hemisphere) toward the
	// light. Returns ok=false if the light contributes nothing from p.
	Sample(p hm.Point3[hm.Render], n hm.Normal3[hm.Render], u hm.Point2, lambda spectrum.Wavelengths) (Sample, bool)

	// PDF returns the solid-angle density of Sample drawing direction wi
	// from p; must be consistent with Sample's own reported PDF.
	PDF(p hm.Point3[hm.Render], n hm.Normal3[hm.Render], wi hm.Vector3[hm.Render]) float64

	// IsDelta reports whether this light has zero extent (point, spot,
	// directional): such lights can never be hit by BSDF sampling, so the
	// integrator skips MIS weighting against them.
	IsDelta() bool

	// Preprocess is called once, after the scene's primitive BVH and
	// finite bounds are known (spec §5.2); lights that need the scene
	// radius (directional) capture it here.
	Preprocess(center hm.Point3[hm.Render], radius float64)
}

// InfiniteLight is implemented by environment-style lights that can be
// hit by an escaping ray in addition to being sampled directly.
type InfiniteLight interface {
	Light
	// Le evaluates the light's radiance along a ray that left the scene
	// without hitting geometry.
	Le(dir hm.Vector3[hm.Render], lambda spectrum.Wavelengths) spectrum.Sampled
}
