package lights

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Directional is a delta light at infinity: every shading point sees the
// same incident direction. Its power depends on the scene's bounding
// sphere, so Preprocess must run after the scene's finite bounds are
// known (spec §5.2) before Phi is meaningful. Generalized from the
// teacher's directional-light power derivation to a spectral irradiance.
type Directional struct {
	Direction hm.Vector3[hm.Render] // unit, points FROM the light TOWARD the scene
	Radiance  spectrum.Spectrum     // E, irradiance perpendicular to Direction
	Scale     float64

	sceneRadius float64
}

func (d *Directional) Phi(lambda spectrum.Wavelengths) spectrum.Sampled {
	e := spectrum.Sample(d.Radiance, lambda).Scale(d.Scale)
	r := d.sceneRadius
	return e.Scale(gomath.Pi * r * r)
}

func (d *Directional) Sample(_ hm.Point3[hm.Render], _ hm.Normal3[hm.Render], _ hm.Point2, lambda spectrum.Wavelengths) (Sample, bool) {
	e := spectrum.Sample(d.Radiance, lambda).Scale(d.Scale)
	return Sample{
		Wi:       d.Direction.Neg(),
		Distance: gomath.Inf(1),
		L:        e,
		PDF:      1,
	}, true
}

func (d *Directional) PDF(hm.Point3[hm.Render], hm.Normal3[hm.Render], hm.Vector3[hm.Render]) float64 {
	return 0
}

func (d *Directional) IsDelta() bool { return true }

func (d *Directional) Preprocess(_ hm.Point3[hm.Render], radius float64) {
	d.sceneRadius = radius
}
