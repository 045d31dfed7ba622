package math

import gomath "math"

// Transform maps coordinate space From to coordinate space To via a 4x4
// affine matrix; M and MInv are kept side by side so normals can be
// transformed by the inverse-transpose without re-inverting per call.
type Transform[From, To Space] struct {
	M, MInv [4][4]float64
}

// Identity returns the transform that maps a space onto itself.
func Identity[S Space]() Transform[S, S] {
	var t Transform[S, S]
	for i := 0; i < 4; i++ {
		t.M[i][i] = 1
		t.MInv[i][i] = 1
	}
	return t
}

func Translate[From, To Space](delta Vector3[From]) Transform[From, To] {
	t := Identity[From]()
	m := mat4Identity()
	m[0][3], m[1][3], m[2][3] = delta.X, delta.Y, delta.Z
	mi := mat4Identity()
	mi[0][3], mi[1][3], mi[2][3] = -delta.X, -delta.Y, -delta.Z
	_ = t
	return Transform[From, To]{M: m, MInv: mi}
}

func Scale[From, To Space](sx, sy, sz float64) Transform[From, To] {
	m := mat4Identity()
	m[0][0], m[1][1], m[2][2] = sx, sy, sz
	mi := mat4Identity()
	mi[0][0], mi[1][1], mi[2][2] = 1/sx, 1/sy, 1/sz
	return Transform[From, To]{M: m, MInv: mi}
}

func mat4Identity() [4][4]float64 {
	var m [4][4]float64
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

func mat4Mul(a, b [4][4]float64) [4][4]float64 {
	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += a[i][k] * b[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

func mat4Transpose(a [4][4]float64) [4][4]float64 {
	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = a[j][i]
		}
	}
	return out
}

// FromMatrix builds a Transform from an explicit matrix and its (caller
// supplied, typically precomputed) inverse. Used by camera/loader code
// that already knows both.
func FromMatrix[From, To Space](m, mInv [4][4]float64) Transform[From, To] {
	return Transform[From, To]{M: m, MInv: mInv}
}

// Compose returns the transform equivalent to applying `ab` then `bc`:
// Transform<A,C> = Transform<B,C> * Transform<A,B>. This is a free function,
// not a method, because Go methods cannot introduce new type parameters.
func Compose[A, B, C Space](bc Transform[B, C], ab Transform[A, B]) Transform[A, C] {
	return Transform[A, C]{
		M:    mat4Mul(bc.M, ab.M),
		MInv: mat4Mul(ab.MInv, bc.MInv),
	}
}

// Inverse swaps the roles of M and MInv, turning Transform<A,B> into
// Transform<B,A>.
func Inverse[From, To Space](t Transform[From, To]) Transform[To, From] {
	return Transform[To, From]{M: t.MInv, MInv: t.M}
}

func (t Transform[From, To]) ApplyPoint(p Point3[From]) Point3[To] {
	m := t.M
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 1 && w != 0 {
		inv := 1 / w
		x, y, z = x*inv, y*inv, z*inv
	}
	return Point3[To]{x, y, z}
}

func (t Transform[From, To]) ApplyVector(v Vector3[From]) Vector3[To] {
	m := t.M
	return Vector3[To]{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// ApplyNormal uses the inverse-transpose so normals remain correct under
// non-uniform scale, per spec §3.
func (t Transform[From, To]) ApplyNormal(n Normal3[From]) Normal3[To] {
	mit := mat4Transpose(t.MInv)
	return Normal3[To]{
		mit[0][0]*n.X + mit[0][1]*n.Y + mit[0][2]*n.Z,
		mit[1][0]*n.X + mit[1][1]*n.Y + mit[1][2]*n.Z,
		mit[2][0]*n.X + mit[2][1]*n.Y + mit[2][2]*n.Z,
	}.Normalized()
}

func (t Transform[From, To]) ApplyRay(r RayT[From]) RayT[To] {
	return RayT[To]{Origin: t.ApplyPoint(r.Origin), Dir: t.ApplyVector(r.Dir)}
}

// ApplyBounds takes the componentwise min/max over all eight transformed
// corners, per spec §4.1.
func (t Transform[From, To]) ApplyBounds(b Bounds[From]) Bounds[To] {
	corners := [8]Point3[From]{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
	out := EmptyBounds[To]()
	for _, c := range corners {
		out = out.UnionPoint(t.ApplyPoint(c))
	}
	return out
}

// Determinant3 returns the determinant of the upper-left 3x3 block, used to
// detect singular transforms (a programmer error per spec §7).
func (t Transform[From, To]) Determinant3() float64 {
	m := t.M
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// HasUniformScale reports whether the linear part of t is a pure rotation
// times a single uniform scale factor (no shear, no non-uniform scale).
// Nothing in the module calls it; EmissiveTriangleMesh computes its areas
// in Render space and needs no such check.
func (t Transform[From, To]) HasUniformScale() bool {
	c0 := Vector3[From]{t.M[0][0], t.M[1][0], t.M[2][0]}.Length()
	c1 := Vector3[From]{t.M[0][1], t.M[1][1], t.M[2][1]}.Length()
	c2 := Vector3[From]{t.M[0][2], t.M[1][2], t.M[2][2]}.Length()
	const eps = 1e-6
	return gomath.Abs(c0-c1) < eps && gomath.Abs(c1-c2) < eps
}
