package math

// RayT is a coordinate-tagged ray. Origin and direction always share a
// space; the direction may become non-unit after a non-rigid transform.
type RayT[S Space] struct {
	Origin Point3[S]
	Dir    Vector3[S]
}

func NewRayT[S Space](o Point3[S], d Vector3[S]) RayT[S] { return RayT[S]{Origin: o, Dir: d} }

func (r RayT[S]) At(t float64) Point3[S] { return r.Origin.Offset(r.Dir, t) }

// Bounds is an axis-aligned bounding box in coordinate space S. Invariant:
// Min <= Max componentwise.
type Bounds[S Space] struct {
	Min, Max Point3[S]
}

func EmptyBounds[S Space]() Bounds[S] {
	const inf = 1e308
	return Bounds[S]{
		Min: Point3[S]{inf, inf, inf},
		Max: Point3[S]{-inf, -inf, -inf},
	}
}

func BoundsFromPoints[S Space](pts ...Point3[S]) Bounds[S] {
	b := EmptyBounds[S]()
	for _, p := range pts {
		b = b.UnionPoint(p)
	}
	return b
}

func (b Bounds[S]) UnionPoint(p Point3[S]) Bounds[S] {
	return Bounds[S]{
		Min: Point3[S]{min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z)},
		Max: Point3[S]{max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z)},
	}
}

func (b Bounds[S]) Union(o Bounds[S]) Bounds[S] {
	return Bounds[S]{
		Min: Point3[S]{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y), min(b.Min.Z, o.Min.Z)},
		Max: Point3[S]{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y), max(b.Max.Z, o.Max.Z)},
	}
}

func (b Bounds[S]) Center() Point3[S] {
	return Point3[S]{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2, (b.Min.Z + b.Max.Z) / 2}
}

func (b Bounds[S]) Diagonal() Vector3[S] { return b.Max.Sub(b.Min) }

func (b Bounds[S]) SurfaceArea() float64 {
	d := b.Diagonal()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

func (b Bounds[S]) MaxExtent() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// Offset maps a point inside b to [0,1]^3 relative coordinates, used by the
// SAH binning step.
func (b Bounds[S]) Offset(p Point3[S]) Vector3[S] {
	o := p.Sub(b.Min)
	d := b.Diagonal()
	if d.X > 0 {
		o.X /= d.X
	}
	if d.Y > 0 {
		o.Y /= d.Y
	}
	if d.Z > 0 {
		o.Z /= d.Z
	}
	return o
}

// IntersectP is the slab test with a precomputed inverse direction, per
// spec §4.1. It orders each axis's two slab distances itself, so a negative
// invDir component needs no separate flag from the caller.
func (b Bounds[S]) IntersectP(r RayT[S], invDir Vector3[S], tMax float64) bool {
	tMin := 0.0
	for axis := 0; axis < 3; axis++ {
		var bmin, bmax, orig, inv float64
		switch axis {
		case 0:
			bmin, bmax, orig, inv = b.Min.X, b.Max.X, r.Origin.X, invDir.X
		case 1:
			bmin, bmax, orig, inv = b.Min.Y, b.Max.Y, r.Origin.Y, invDir.Y
		default:
			bmin, bmax, orig, inv = b.Min.Z, b.Max.Z, r.Origin.Z, invDir.Z
		}
		t0 := (bmin - orig) * inv
		t1 := (bmax - orig) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
