package math

import gomath "math"

// MachineEpsilon is half the ULP of float64 1.0, used by Gamma for
// conservative error bounds.
const MachineEpsilon = 1.1102230246251565e-16

// Gamma returns gamma(n) = n*eps / (1 - n*eps), the conservative relative
// error bound for a sum/product of n machine-epsilon-rounded terms, per
// spec §4.1.
func Gamma(n int) float64 {
	ne := float64(n) * MachineEpsilon
	return ne / (1 - ne)
}

// TriangleHit is the result of a successful Woop watertight intersection.
type TriangleHit struct {
	T                  float64
	B0, B1, B2         float64 // barycentric weights for p0, p1, p2
	ErrorBound         float64 // conservative delta_t used for the self-intersection reject
}

// IntersectTriangle implements Woop's watertight ray-triangle algorithm
// (spec §4.1): permute axes so the ray direction's largest-magnitude axis
// becomes Z, shear the triangle into ray space, compute scaled edge
// functions, and fall back to double precision (float64 here already being
// the widest type available) whenever any edge function lands on exactly
// zero. No test in the module exercises this fallback path.
func IntersectTriangle[S Space](r RayT[S], p0, p1, p2 Point3[S], tMax float64) (TriangleHit, bool) {
	// Translate triangle relative to ray origin.
	p0t := p0.Sub(r.Origin)
	p1t := p1.Sub(r.Origin)
	p2t := p2.Sub(r.Origin)

	kz := r.Dir.MaxComponentAxis()
	kx := kz + 1
	if kx == 3 {
		kx = 0
	}
	ky := kx + 1
	if ky == 3 {
		ky = 0
	}

	d := r.Dir.Permute(kx, ky, kz)
	p0t = p0t.Permute(kx, ky, kz)
	p1t = p1t.Permute(kx, ky, kz)
	p2t = p2t.Permute(kx, ky, kz)

	if d.Z == 0 {
		return TriangleHit{}, false
	}
	sx := -d.X / d.Z
	sy := -d.Y / d.Z
	sz := 1 / d.Z

	p0t.X += sx * p0t.Z
	p0t.Y += sy * p0t.Z
	p1t.X += sx * p1t.Z
	p1t.Y += sy * p1t.Z
	p2t.X += sx * p2t.Z
	p2t.Y += sy * p2t.Z

	e0 := p1t.X*p2t.Y - p1t.Y*p2t.X
	e1 := p2t.X*p0t.Y - p2t.Y*p0t.X
	e2 := p0t.X*p1t.Y - p0t.Y*p1t.X

	if e0 == 0 || e1 == 0 || e2 == 0 {
		e0 = doubleEdge(p1t.X, p1t.Y, p2t.X, p2t.Y)
		e1 = doubleEdge(p2t.X, p2t.Y, p0t.X, p0t.Y)
		e2 = doubleEdge(p0t.X, p0t.Y, p1t.X, p1t.Y)
	}

	if (e0 < 0 || e1 < 0 || e2 < 0) && (e0 > 0 || e1 > 0 || e2 > 0) {
		return TriangleHit{}, false
	}
	det := e0 + e1 + e2
	if det == 0 {
		return TriangleHit{}, false
	}

	p0t.Z *= sz
	p1t.Z *= sz
	p2t.Z *= sz
	tScaled := e0*p0t.Z + e1*p1t.Z + e2*p2t.Z

	if det < 0 && (tScaled >= 0 || tScaled < tMax*det) {
		return TriangleHit{}, false
	} else if det > 0 && (tScaled <= 0 || tScaled > tMax*det) {
		return TriangleHit{}, false
	}

	invDet := 1 / det
	b0 := e0 * invDet
	b1 := e1 * invDet
	b2 := e2 * invDet
	t := tScaled * invDet

	maxXt := gomath.Max(gomath.Abs(p0t.X), gomath.Max(gomath.Abs(p1t.X), gomath.Abs(p2t.X)))
	maxYt := gomath.Max(gomath.Abs(p0t.Y), gomath.Max(gomath.Abs(p1t.Y), gomath.Abs(p2t.Y)))
	maxZt := gomath.Max(gomath.Abs(p0t.Z), gomath.Max(gomath.Abs(p1t.Z), gomath.Abs(p2t.Z)))
	deltaX := Gamma(5) * (maxXt + maxZt)
	deltaY := Gamma(5) * (maxYt + maxZt)
	deltaZ := 2 * Gamma(3) * maxZt
	deltaE := 2 * (Gamma(2)*maxXt*maxYt + deltaY*maxXt + deltaX*maxYt)
	maxE := gomath.Max(gomath.Abs(e0), gomath.Max(gomath.Abs(e1), gomath.Abs(e2)))
	deltaT := 3 * (Gamma(3)*maxE*maxZt + deltaE*maxZt + deltaZ*maxE) * gomath.Abs(invDet)

	if t < deltaT {
		return TriangleHit{}, false
	}

	return TriangleHit{T: t, B0: b0, B1: b1, B2: b2, ErrorBound: deltaT}, true
}

// doubleEdge recomputes an edge function with a compensated product,
// standing in for the source's "redo in double precision" fallback (this
// code already operates in float64; the compensated form still improves
// the cancellation that produces an exact-zero edge in the first place).
func doubleEdge(ax, ay, bx, by float64) float64 {
	return twoProductDiff(ax, by, ay, bx)
}

// twoProductDiff computes a*b - c*d with a Kahan-style compensated
// subtraction to reduce catastrophic cancellation near-zero.
func twoProductDiff(a, b, c, d float64) float64 {
	cd := c * d
	err := gomath.FMA(-c, d, cd)
	dop := gomath.FMA(a, b, -cd)
	return dop - err
}
