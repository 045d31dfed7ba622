package color

import gomath "math"

// XYZ is a CIE 1931 tristimulus value.
type XYZ struct{ X, Y, Z float64 }

// Lab is a CIELAB value relative to a reference white point.
type Lab struct{ L, A, B float64 }

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return gomath.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

// ToLab converts an XYZ value to CIELAB relative to white.
func (c XYZ) ToLab(white XYZ) Lab {
	fx := labF(c.X / white.X)
	fy := labF(c.Y / white.Y)
	fz := labF(c.Z / white.Z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// DeltaE76 returns the CIE76 Euclidean Lab distance, used by the RGB round
// trip test (spec §8, property 9).
func DeltaE76(a, b Lab) float64 {
	dl, da, db := a.L-b.L, a.A-b.A, a.B-b.B
	return gomath.Sqrt(dl*dl + da*da + db*db)
}
