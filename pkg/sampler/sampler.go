// Package sampler implements spec §4.9's QMC sampler contract: a
// deterministic per-(pixel, sample index) stream of get_1d()/get_2d()/
// get_2d_pixel() draws, reseeded by start_pixel_sample and advancing a
// dimension counter across calls within one pixel sample. The teacher has
// no equivalent (it draws straight from math/rand inline in the renderer);
// grounded entirely on original_source/renderer/src/sampler/
// z_sobol_sampler.rs.
package sampler

import hm "github.com/lmarchetti/heropath/pkg/math"

// Sampler is the contract every rendering strategy draws randomness from.
// "Any sampler satisfying this contract is acceptable" (spec §4.9).
type Sampler interface {
	StartPixelSample(px, py int, sampleIndex int)
	Get1D() float64
	Get2D() hm.Point2
	Get2DPixel() hm.Point2
}

// Factory builds Sampler instances. pkg/renderer builds one per worker and
// reuses it; StartPixelSample resets all of a sampler's state for each
// (pixel, sample index), so every pixel sample draws as from a fresh one.
type Factory interface {
	NewSampler() Sampler
}
