package material

import hm "github.com/lmarchetti/heropath/pkg/math"

// Frame is the orthonormal shading basis at a point: T (tangent), B
// (bitangent), N (shading normal). It converts between Render space and
// the ShadingNormalTangent space every BSDF operates in.
type Frame struct {
	T, B hm.Vector3[hm.Render]
	N    hm.Normal3[hm.Render]
}

// NewFrame builds an orthonormal frame from a shading normal and an
// approximate tangent (e.g. from UV derivatives), Gram-Schmidt
// orthogonalizing the tangent against the normal.
func NewFrame(n hm.Normal3[hm.Render], approxTangent hm.Vector3[hm.Render]) Frame {
	nv := n.AsVector()
	t := approxTangent.Sub(nv.Scale(nv.Dot(approxTangent))).Normalized()
	if t.LengthSquared() == 0 {
		t = arbitraryPerp(nv)
	}
	b := nv.Cross(t)
	return Frame{T: t, B: b, N: n}
}

func arbitraryPerp(n hm.Vector3[hm.Render]) hm.Vector3[hm.Render] {
	if absf(n.X) < absf(n.Y) && absf(n.X) < absf(n.Z) {
		return hm.NewVector3[hm.Render](1, 0, 0).Cross(n).Normalized()
	}
	return hm.NewVector3[hm.Render](0, 1, 0).Cross(n).Normalized()
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ToLocal projects a Render-space vector into the shading tangent frame.
func (f Frame) ToLocal(v hm.Vector3[hm.Render]) hm.Vector3[hm.ShadingNormalTangent] {
	return hm.NewVector3[hm.ShadingNormalTangent](v.Dot(f.T), v.Dot(f.B), v.Dot(f.N.AsVector()))
}

// ToRender lifts a shading-frame vector back into Render space.
func (f Frame) ToRender(v hm.Vector3[hm.ShadingNormalTangent]) hm.Vector3[hm.Render] {
	return f.T.Scale(v.X).Add(f.B.Scale(v.Y)).Add(f.N.AsVector().Scale(v.Z))
}

// CosTheta and friends operate on a shading-frame vector, where by
// construction Z is the cosine of the angle to the normal.
func CosTheta(w hm.Vector3[hm.ShadingNormalTangent]) float64  { return w.Z }
func AbsCosTheta(w hm.Vector3[hm.ShadingNormalTangent]) float64 {
	return absf(w.Z)
}

func Cos2Theta(w hm.Vector3[hm.ShadingNormalTangent]) float64 { return w.Z * w.Z }

func Sin2Theta(w hm.Vector3[hm.ShadingNormalTangent]) float64 {
	s := 1 - Cos2Theta(w)
	if s < 0 {
		return 0
	}
	return s
}
