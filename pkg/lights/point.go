package lights

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Point is an isotropic point emitter: phi = 4π·I·spectrum(λ), per spec
// §4.5. Generalized from the teacher's point-light half of
// pkg/lights/point_spot_light.go (an RGB intensity constant) to a
// spectral intensity sampled per hero wavelength.
type Point struct {
	Position  hm.Point3[hm.Render]
	Intensity spectrum.Spectrum // radiant intensity spectrum, I
	Scale     float64           // I multiplier
}

func (p Point) Phi(lambda spectrum.Wavelengths) spectrum.Sampled {
	i := spectrum.Sample(p.Intensity, lambda).Scale(p.Scale)
	return i.Scale(4 * gomath.Pi)
}

func (p Point) Sample(pt hm.Point3[hm.Render], _ hm.Normal3[hm.Render], _ hm.Point2, lambda spectrum.Wavelengths) (Sample, bool) {
	d := p.Position.Sub(pt)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return Sample{}, false
	}
	dist := gomath.Sqrt(dist2)
	i := spectrum.Sample(p.Intensity, lambda).Scale(p.Scale)
	return Sample{
		Wi:       d.Scale(1 / dist),
		Distance: dist,
		L:        i.Scale(1 / dist2),
		PDF:      1,
	}, true
}

func (p Point) PDF(hm.Point3[hm.Render], hm.Normal3[hm.Render], hm.Vector3[hm.Render]) float64 {
	return 0
}

func (p Point) IsDelta() bool { return true }

func (p Point) Preprocess(hm.Point3[hm.Render], float64) {}
