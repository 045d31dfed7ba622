package lights

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Spot is a point emitter with smoothstep falloff between the inner and
// outer cone half-angles, per spec §4.5:
// phi = 2π·I·spectrum(λ)·((1−cosθi) + (cosθi−cosθo)/2).
// Generalized from the teacher's disc-spot-light falloff shaping
// (pkg/lights/disc_spot_light.go) to a zero-extent point emitter with a
// spectral intensity.
type Spot struct {
	Position   hm.Point3[hm.Render]
	Direction  hm.Vector3[hm.Render] // unit, points where the cone opens toward
	Intensity  spectrum.Spectrum
	Scale      float64
	CosThetaI  float64 // cos of the inner (full-intensity) half-angle
	CosThetaO  float64 // cos of the outer (zero-intensity) half-angle
}

func (s Spot) Phi(lambda spectrum.Wavelengths) spectrum.Sampled {
	i := spectrum.Sample(s.Intensity, lambda).Scale(s.Scale)
	coneIntegral := (1 - s.CosThetaI) + (s.CosThetaI-s.CosThetaO)/2
	return i.Scale(2 * gomath.Pi * coneIntegral)
}

func (s Spot) falloff(wLight hm.Vector3[hm.Render]) float64 {
	cosTheta := wLight.Dot(s.Direction)
	return hm.SmoothStep(cosTheta, s.CosThetaO, s.CosThetaI)
}

func (s Spot) Sample(pt hm.Point3[hm.Render], _ hm.Normal3[hm.Render], _ hm.Point2, lambda spectrum.Wavelengths) (Sample, bool) {
	d := s.Position.Sub(pt)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return Sample{}, false
	}
	dist := gomath.Sqrt(dist2)
	wi := d.Scale(1 / dist)
	falloff := s.falloff(wi.Neg())
	if falloff <= 0 {
		return Sample{}, false
	}
	i := spectrum.Sample(s.Intensity, lambda).Scale(s.Scale * falloff)
	return Sample{
		Wi:       wi,
		Distance: dist,
		L:        i.Scale(1 / dist2),
		PDF:      1,
	}, true
}

func (s Spot) PDF(hm.Point3[hm.Render], hm.Normal3[hm.Render], hm.Vector3[hm.Render]) float64 {
	return 0
}

func (s Spot) IsDelta() bool { return true }

func (s Spot) Preprocess(hm.Point3[hm.Render], float64) {}
