package sampler

import (
	"math/bits"

	hm "github.com/lmarchetti/heropath/pkg/math"
)

// ZSobol is the reference QMC implementation spec §4.9 names: a Morton-
// indexed, Owen-scrambled low-discrepancy sequence keyed by a hash of
// (dimension, seed), reseeded per pixel sample. Ported from
// original_source/renderer/src/sampler/z_sobol_sampler.rs's morton
// indexing, digit permutation, and FastOwenScrambler exactly as written —
// those are pure bit operations independent of any data table. The
// upstream sampler indexes a per-dimension 32x32-bit Sobol direction-number
// matrix (SOBOL_MATRICES_32) that the retrieval pack does not include (a
// large generated binary table, not source); rather than fabricate
// invented matrix data, every dimension here draws from the one matrix
// that needs no table at all — dimension 0 of any base-2 Sobol sequence is
// exactly bit-reversal (the van der Corput sequence) — and relies on the
// independent per-dimension Owen scramble (keyed by hash(dimension, seed),
// exactly as upstream) to decorrelate dimensions. This preserves the
// contract's determinism and reseeding behavior; it trades some of true
// Sobol's joint equidistribution across dimensions for honesty about what
// was actually ported. See DESIGN.md.
type ZSobol struct {
	seed         uint32
	log2SPP      uint32
	nBase4Digits uint32

	dimension   uint32
	mortonIndex uint32
}

// ZSobolFactory builds sampler instances sharing spp/resolution/seed,
// per the contract's "seeds the sequence from (p, n, global_seed)".
type ZSobolFactory struct {
	SPP        int
	Resolution int // max(width, height)
	Seed       uint32
}

func (f ZSobolFactory) NewSampler() Sampler {
	log2SPP := log2Int(uint32(f.SPP))
	res := roundUpPow2(uint32(f.Resolution))
	log4SPP := (log2SPP + 1) / 2
	return &ZSobol{
		seed:         f.Seed,
		log2SPP:      log2SPP,
		nBase4Digits: log2Int(res) + log4SPP,
	}
}

func log2Int(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	return 31 - uint32(bits.LeadingZeros32(v))
}

func roundUpPow2(v uint32) uint32 {
	if v <= 1 {
		return 1
	}
	return 1 << (32 - bits.LeadingZeros32(v-1))
}

func encodeMorton2(x, y uint32) uint32 {
	return uint32((leftShift2(uint64(y))<<1 | leftShift2(uint64(x))) & 0xffffffff)
}

func leftShift2(x uint64) uint64 {
	x &= 0xffffffff
	x = (x ^ (x << 16)) & 0x0000ffff0000ffff
	x = (x ^ (x << 8)) & 0x00ff00ff00ff00ff
	x = (x ^ (x << 4)) & 0x0f0f0f0f0f0f0f0f
	x = (x ^ (x << 2)) & 0x3333333333333333
	x = (x ^ (x << 1)) & 0x5555555555555555
	return x
}

func mixBits64(v uint64) uint64 {
	v ^= v >> 31
	v *= 0x7fb5d329728ea185
	v ^= v >> 27
	v *= 0x81dadef4bc2dd44d
	v ^= v >> 33
	return v
}

// hash64 is the teacher's (dimension, seed) keying function, a standard
// MurmurHash64A-style mix ported verbatim from z_sobol_sampler.rs's hash.
func hash64(dimension, seed uint32) uint64 {
	const m = 0xc6a4a7935bd1e995
	const r = 47

	k := uint64(dimension) | uint64(seed)<<32
	k *= m
	k ^= k >> r
	k *= m

	h := uint64(8) * m
	h ^= k
	h *= m
	h ^= h >> r
	h *= m
	h ^= h >> r
	return h
}

var base4Permutations = [24][4]byte{
	{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 1, 3}, {0, 2, 3, 1}, {0, 3, 2, 1}, {0, 3, 1, 2},
	{1, 0, 2, 3}, {1, 0, 3, 2}, {1, 2, 0, 3}, {1, 2, 3, 0}, {1, 3, 2, 0}, {1, 3, 0, 2},
	{2, 1, 0, 3}, {2, 1, 3, 0}, {2, 0, 1, 3}, {2, 0, 3, 1}, {2, 3, 0, 1}, {2, 3, 1, 0},
	{3, 1, 2, 0}, {3, 1, 0, 2}, {3, 2, 1, 0}, {3, 2, 0, 1}, {3, 0, 2, 1}, {3, 0, 1, 2},
}

func (z *ZSobol) sampleIndex() uint64 {
	var sampleIndex uint64
	pow2Samples := z.log2SPP&1 == 1
	lastDigit := uint32(0)
	if pow2Samples {
		lastDigit = 1
	}
	i := int32(z.nBase4Digits) - 1
	for i >= int32(lastDigit) {
		digitShift := uint32(2*i) - boolToU32(pow2Samples)
		digit := (uint64(z.mortonIndex) >> digitShift) & 3

		higherDigits := uint64(z.mortonIndex) >> (digitShift + 2)
		p := (mixBits64(higherDigits^(0x55555555*uint64(z.dimension))) >> 24) % 24

		permuted := uint64(base4Permutations[p][digit])
		sampleIndex |= permuted << digitShift
		i--
	}
	return sampleIndex
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// sobolSampleDim0 is dimension 0 of the base-2 Sobol sequence: the
// direction-number matrix for dimension 0 is the identity (v_i = 2^(32-i)),
// which makes this exactly bit-reversal of a — the van der Corput sequence.
// No data table is needed for this one dimension.
func sobolSampleDim0(a uint64, randomize func(uint32) uint32) float64 {
	v := bits.Reverse32(uint32(a))
	v = randomize(v)
	const oneMinusEpsilon = 0x1.fffffep-1
	f := float64(v) * 0x1p-32
	if f > oneMinusEpsilon {
		return oneMinusEpsilon
	}
	return f
}

func reverseBits32(n uint32) uint32 { return bits.Reverse32(n) }

// owenScramble ports FastOwenScrambler::randomize verbatim.
func owenScramble(seed, v uint32) uint32 {
	v = reverseBits32(v)
	v ^= v * 0x3d20adea
	v += seed
	v *= (seed >> 16) | 1
	v ^= v * 0x05526c56
	v ^= v * 0x53a22864
	return reverseBits32(v)
}

func (z *ZSobol) StartPixelSample(px, py int, sampleIndex int) {
	z.dimension = 0
	z.mortonIndex = (encodeMorton2(uint32(px), uint32(py)) << z.log2SPP) | uint32(sampleIndex)
}

func (z *ZSobol) Get1D() float64 {
	idx := z.sampleIndex()
	z.dimension++
	h := uint32(hash64(z.dimension, z.seed))
	return sobolSampleDim0(idx, func(v uint32) uint32 { return owenScramble(h, v) })
}

func (z *ZSobol) Get2D() hm.Point2 {
	idx := z.sampleIndex()
	z.dimension += 2
	bitsHash := hash64(z.dimension, z.seed)
	hx, hy := uint32(bitsHash), uint32(bitsHash>>32)
	x := sobolSampleDim0(idx, func(v uint32) uint32 { return owenScramble(hx, v) })
	y := sobolSampleDim0(idx, func(v uint32) uint32 { return owenScramble(hy, v) })
	return hm.Point2{X: x, Y: y}
}

func (z *ZSobol) Get2DPixel() hm.Point2 { return z.Get2D() }
