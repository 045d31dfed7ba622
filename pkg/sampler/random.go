package sampler

import (
	"math/rand"

	hm "github.com/lmarchetti/heropath/pkg/math"
)

// Random is the non-QMC fallback sampler ("--sampler random"): an
// independent PRNG stream reseeded per pixel sample so two renders with the
// same seed are still reproducible, matching the contract's determinism
// requirement without any stratification guarantee.
type Random struct {
	baseSeed uint64
	rng      *rand.Rand
}

// RandomFactory builds a Random holding Seed; each StartPixelSample then
// reseeds it from (px, py, sampleIndex, seed) so the stream is
// reproducible without cross-pixel correlation.
type RandomFactory struct {
	Seed int64
}

func (f RandomFactory) NewSampler() Sampler { return &Random{baseSeed: uint64(f.Seed)} }

func (r *Random) StartPixelSample(px, py int, sampleIndex int) {
	seed := mixBits(uint64(px)<<32 | uint64(uint32(py))).
		wrapAdd(uint64(sampleIndex)*0x9E3779B97F4A7C15 + r.baseSeed)
	r.rng = rand.New(rand.NewSource(int64(seed)))
}

func (r *Random) Get1D() float64 { return r.rng.Float64() }

func (r *Random) Get2D() hm.Point2 {
	return hm.Point2{X: r.rng.Float64(), Y: r.rng.Float64()}
}

func (r *Random) Get2DPixel() hm.Point2 { return r.Get2D() }

type hashedSeed uint64

func mixBits(v uint64) hashedSeed {
	v ^= v >> 31
	v *= 0x7fb5d329728ea185
	v ^= v >> 27
	v *= 0x81dadef4bc2dd44d
	v ^= v >> 33
	return hashedSeed(v)
}

func (h hashedSeed) wrapAdd(v uint64) hashedSeed { return h + hashedSeed(v) }
