package math

import gomath "math"

// Point3 is a position in coordinate space S.
type Point3[S Space] struct {
	X, Y, Z float64
}

// Vector3 is a displacement in coordinate space S. Unlike Normal3 it is not
// kept unit length.
type Vector3[S Space] struct {
	X, Y, Z float64
}

// Normal3 is a surface normal in coordinate space S. Invariant: always unit
// length after construction or transformation.
type Normal3[S Space] struct {
	X, Y, Z float64
}

// Point2 and Vector2 are plain untagged 2D values (uv coordinates, film
// samples) that never cross a coordinate-space boundary.
type Point2 struct{ X, Y float64 }
type Vector2 struct{ X, Y float64 }

func NewPoint3[S Space](x, y, z float64) Point3[S]   { return Point3[S]{x, y, z} }
func NewVector3[S Space](x, y, z float64) Vector3[S]  { return Vector3[S]{x, y, z} }

// NewNormal3 constructs a unit normal from raw components.
func NewNormal3[S Space](x, y, z float64) Normal3[S] {
	return Normal3[S]{x, y, z}.Normalized()
}

func (a Vector3[S]) Add(b Vector3[S]) Vector3[S] { return Vector3[S]{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vector3[S]) Sub(b Vector3[S]) Vector3[S] { return Vector3[S]{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vector3[S]) Scale(t float64) Vector3[S]  { return Vector3[S]{a.X * t, a.Y * t, a.Z * t} }
func (a Vector3[S]) Neg() Vector3[S]             { return Vector3[S]{-a.X, -a.Y, -a.Z} }

func (a Vector3[S]) Dot(b Vector3[S]) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vector3[S]) Cross(b Vector3[S]) Vector3[S] {
	return Vector3[S]{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vector3[S]) LengthSquared() float64 { return a.Dot(a) }
func (a Vector3[S]) Length() float64        { return gomath.Sqrt(a.LengthSquared()) }

// Normalized returns a/a.Length(); the zero vector maps to itself rather
// than producing NaN, per the "numerical degeneracies silently yield zero"
// error policy.
func (a Vector3[S]) Normalized() Vector3[S] {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

func (a Vector3[S]) Abs() Vector3[S] {
	return Vector3[S]{gomath.Abs(a.X), gomath.Abs(a.Y), gomath.Abs(a.Z)}
}

func (a Vector3[S]) Component(axis int) float64 {
	switch axis {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// MaxComponentAxis returns 0/1/2 for the axis of largest magnitude.
func (a Vector3[S]) MaxComponentAxis() int {
	abs := a.Abs()
	if abs.X > abs.Y && abs.X > abs.Z {
		return 0
	}
	if abs.Y > abs.Z {
		return 1
	}
	return 2
}

func (n Normal3[S]) Normalized() Normal3[S] {
	v := Vector3[S]{n.X, n.Y, n.Z}.Normalized()
	return Normal3[S]{v.X, v.Y, v.Z}
}

func (n Normal3[S]) AsVector() Vector3[S] { return Vector3[S]{n.X, n.Y, n.Z} }
func (n Normal3[S]) Dot(v Vector3[S]) float64 {
	return n.X*v.X + n.Y*v.Y + n.Z*v.Z
}
func (n Normal3[S]) Neg() Normal3[S] { return Normal3[S]{-n.X, -n.Y, -n.Z} }

// FaceForward flips n to lie in the same hemisphere as v.
func (n Normal3[S]) FaceForward(v Vector3[S]) Normal3[S] {
	if n.Dot(v) < 0 {
		return n.Neg()
	}
	return n
}

func (p Point3[S]) Add(v Vector3[S]) Point3[S] { return Point3[S]{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }
func (p Point3[S]) Sub(q Point3[S]) Vector3[S] { return Vector3[S]{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }
func (p Point3[S]) Offset(v Vector3[S], t float64) Point3[S] {
	return Point3[S]{p.X + v.X*t, p.Y + v.Y*t, p.Z + v.Z*t}
}

func (p Point3[S]) DistanceSquared(q Point3[S]) float64 { return p.Sub(q).LengthSquared() }
func (p Point3[S]) Distance(q Point3[S]) float64        { return p.Sub(q).Length() }

func (p Point3[S]) Component(axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func (p Point3[S]) Lerp(q Point3[S], t float64) Point3[S] {
	return Point3[S]{
		p.X + (q.X-p.X)*t,
		p.Y + (q.Y-p.Y)*t,
		p.Z + (q.Z-p.Z)*t,
	}
}

// Permute reorders components by the given axis indices, used by the Woop
// watertight triangle intersection's axis-swap step.
func (a Vector3[S]) Permute(kx, ky, kz int) Vector3[S] {
	return Vector3[S]{a.Component(kx), a.Component(ky), a.Component(kz)}
}
func (p Point3[S]) Permute(kx, ky, kz int) Point3[S] {
	v := Vector3[S]{p.X, p.Y, p.Z}.Permute(kx, ky, kz)
	return Point3[S]{v.X, v.Y, v.Z}
}

// SameHemisphere reports whether two vectors in a local shading frame (Z is
// the normal) lie on the same side of the surface.
func SameHemisphere(a, b Vector3[ShadingNormalTangent]) bool {
	return a.Z*b.Z > 0
}

// HalfVector returns the normalized sum of wo and wi, or ok=false if it is
// degenerate (zero length) — e.g. wo == -wi.
func HalfVector(wo, wi Vector3[ShadingNormalTangent]) (Vector3[ShadingNormalTangent], bool) {
	h := wo.Add(wi)
	if h.LengthSquared() == 0 {
		return Vector3[ShadingNormalTangent]{}, false
	}
	return h.Normalized(), true
}
