// Package lightsampler builds the discrete, power-weighted distribution
// spec §4.7 samples a light from: a two-stage factory/sampler split so the
// expensive preprocessing (scene-bounds-dependent) happens once, while the
// per-hero-wavelength-bundle weight table is rebuilt cheaply for every
// shading event. Grounded on the teacher's WeightedLightSampler
// (pkg/core/weighted_light_sampler.go, fixed caller-supplied weights)
// generalized to spec's build-time `w_i = average(phi(λ))` weighting, and
// on original_source/scene/src/light_sampler.rs's LightSamplerFactory/
// LightSampler split (factory preprocesses once; create(lambda) rebuilds
// the table per hero-wavelength bundle).
package lightsampler

import (
	"sort"

	"github.com/lmarchetti/heropath/pkg/lights"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Factory holds the scene's light list after every light's Preprocess has
// run once against the finite scene bounds (spec §5.2); Create builds the
// actual sampling table for a specific hero-wavelength bundle.
type Factory struct {
	allLights   []lights.Light
	infiniteIdx []int // indices into allLights that also satisfy InfiniteLight
}

// NewFactory calls Preprocess on every light, then records which ones are
// also InfiniteLight for Sampler.SampleInfiniteLight's joint handling.
func NewFactory(allLights []lights.Light, center hm.Point3[hm.Render], radius float64) *Factory {
	f := &Factory{allLights: allLights}
	for i, l := range allLights {
		l.Preprocess(center, radius)
		if _, ok := l.(lights.InfiniteLight); ok {
			f.infiniteIdx = append(f.infiniteIdx, i)
		}
	}
	return f
}

// Sampler is the per-hero-wavelength-bundle selection table: w_i =
// average(phi(λ)), cdf[i] = (Σ_{k<=i} w_k)/Σw, per spec §4.7.
type Sampler struct {
	lightsList []lights.Light
	weights    []float64
	cdf        []float64
	total      float64

	infiniteIdx   []int
	infiniteCDF   []float64
	infiniteTotal float64
}

// Create builds the weight table for lambda. Lights with zero power (an
// unlit spot cone, a black-radiance placeholder) get weight zero and are
// still selectable in the degenerate all-zero case via a uniform fallback,
// matching the teacher's WeightedLightSampler zero-weight fallback.
func (f *Factory) Create(lambda spectrum.Wavelengths) *Sampler {
	n := len(f.allLights)
	s := &Sampler{lightsList: f.allLights, weights: make([]float64, n), cdf: make([]float64, n)}

	for i, l := range f.allLights {
		w := average(l.Phi(lambda))
		s.weights[i] = w
		s.total += w
	}
	if s.total <= 0 && n > 0 {
		uniform := 1.0
		for i := range s.weights {
			s.weights[i] = uniform
		}
		s.total = float64(n)
	}
	var cum float64
	for i, w := range s.weights {
		cum += w
		if s.total > 0 {
			s.cdf[i] = cum / s.total
		}
	}

	s.infiniteIdx = f.infiniteIdx
	s.infiniteCDF = make([]float64, len(f.infiniteIdx))
	var infCum float64
	for k, idx := range f.infiniteIdx {
		infCum += s.weights[idx]
		s.infiniteCDF[k] = infCum
		s.infiniteTotal = infCum
	}
	if s.infiniteTotal > 0 {
		for k := range s.infiniteCDF {
			s.infiniteCDF[k] /= s.infiniteTotal
		}
	}

	return s
}

func average(s spectrum.Sampled) float64 {
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// SampleLight returns the first i with u < cdf[i], along with the light and
// its selection probability w_i/Σw, per spec §4.7 step 3.
func (s *Sampler) SampleLight(u float64) (light lights.Light, index int, probability float64, ok bool) {
	if len(s.lightsList) == 0 || s.total <= 0 {
		return nil, -1, 0, false
	}
	i := sort.Search(len(s.cdf), func(i int) bool { return s.cdf[i] > u })
	if i >= len(s.cdf) {
		i = len(s.cdf) - 1
	}
	return s.lightsList[i], i, s.Probability(i), true
}

// Probability returns w_i/Σw for the light at index, per spec §4.7 step 4.
func (s *Sampler) Probability(index int) float64 {
	if index < 0 || index >= len(s.weights) || s.total <= 0 {
		return 0
	}
	return s.weights[index] / s.total
}

// SampleInfiniteLight samples only among the infinite lights, so the
// integrator can weight an escaped ray's environment contribution without
// re-running the full table — per spec §4.7's "sample_infinite_light(u)"
// hook for joint finite/infinite handling.
func (s *Sampler) SampleInfiniteLight(u float64) (light lights.InfiniteLight, index int, probability float64, ok bool) {
	if len(s.infiniteIdx) == 0 || s.infiniteTotal <= 0 {
		return nil, -1, 0, false
	}
	k := sort.Search(len(s.infiniteCDF), func(k int) bool { return s.infiniteCDF[k] > u })
	if k >= len(s.infiniteCDF) {
		k = len(s.infiniteCDF) - 1
	}
	idx := s.infiniteIdx[k]
	prob := s.weights[idx] / s.infiniteTotal
	return s.lightsList[idx].(lights.InfiniteLight), idx, prob, true
}

// InfiniteLightCount reports how many of the sampler's lights are infinite.
func (s *Sampler) InfiniteLightCount() int { return len(s.infiniteIdx) }
