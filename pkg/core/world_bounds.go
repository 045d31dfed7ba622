package core

import hm "github.com/lmarchetti/heropath/pkg/math"

// FiniteWorldBounds computes a bounding sphere (center, radius) over only
// the finite entries of bounds, skipping anything whose extent exceeds
// hugeExtent (an infinite light's placeholder bounds, typically). Directional
// and infinite lights use this sphere's radius to size their Phi (spec
// §4.5), and including placeholder bounds in the computation would make
// the sphere degenerate.
func FiniteWorldBounds[S hm.Space](bounds []hm.Bounds[S], hugeExtent float64) (hm.Point3[S], float64) {
	acc := hm.EmptyBounds[S]()
	found := false
	for _, b := range bounds {
		d := b.Diagonal()
		if d.X > hugeExtent || d.Y > hugeExtent || d.Z > hugeExtent {
			continue
		}
		if !found {
			acc = b
			found = true
		} else {
			acc = acc.Union(b)
		}
	}
	if !found {
		var zero hm.Point3[S]
		return zero, 0
	}
	center := acc.Center()
	radius := acc.Max.Sub(center).Length()
	return center, radius
}
