package lights

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Uniform is a constant-radiance environment light, visible in every
// direction an escaping ray can point. Spec §4.5 scopes infinite lights to
// an interface ("implementations are out of scope here"); this concrete
// kind is supplemented from the teacher's UniformInfiniteLight
// (pkg/lights/uniform_infinite_light.go), generalized from an RGB emission
// constant to a spectrum and from cosine-hemisphere-against-the-surface-
// normal sampling to the same shape using hm.SampleCosineHemisphere.
type Uniform struct {
	Radiance    spectrum.Spectrum
	Scale       float64
	worldRadius float64
}

func (u *Uniform) Phi(lambda spectrum.Wavelengths) spectrum.Sampled {
	l := spectrum.Sample(u.Radiance, lambda).Scale(u.Scale)
	r := u.worldRadius
	return l.Scale(4 * gomath.Pi * gomath.Pi * r * r)
}

func (u *Uniform) Sample(_ hm.Point3[hm.Render], n hm.Normal3[hm.Render], sample hm.Point2, lambda spectrum.Wavelengths) (Sample, bool) {
	localDir := hm.SampleCosineHemisphere(sample)
	cosTheta := localDir.Z
	if cosTheta <= 0 {
		return Sample{}, false
	}
	t, b := orthonormalBasis(n)
	up := n.AsVector()
	wi := t.Scale(localDir.X).Add(b.Scale(localDir.Y)).Add(up.Scale(localDir.Z))
	l := spectrum.Sample(u.Radiance, lambda).Scale(u.Scale)
	return Sample{
		Wi:       wi,
		Distance: gomath.Inf(1),
		L:        l,
		PDF:      hm.CosineHemispherePDF(cosTheta),
	}, true
}

func (u *Uniform) PDF(_ hm.Point3[hm.Render], n hm.Normal3[hm.Render], wi hm.Vector3[hm.Render]) float64 {
	cosTheta := n.Dot(wi)
	if cosTheta <= 0 {
		return 0
	}
	return hm.CosineHemispherePDF(cosTheta)
}

func (u *Uniform) Le(_ hm.Vector3[hm.Render], lambda spectrum.Wavelengths) spectrum.Sampled {
	return spectrum.Sample(u.Radiance, lambda).Scale(u.Scale)
}

func (u *Uniform) IsDelta() bool { return false }

func (u *Uniform) Preprocess(_ hm.Point3[hm.Render], radius float64) {
	u.worldRadius = radius
}

// orthonormalBasis builds a tangent/bitangent pair perpendicular to n using
// the same branch-on-largest-axis construction as geometry.Mesh's degenerate
// tangent fallback, avoiding a near-parallel reference-axis cross product.
func orthonormalBasis(n hm.Normal3[hm.Render]) (t, b hm.Vector3[hm.Render]) {
	v := n.AsVector()
	var ref hm.Vector3[hm.Render]
	switch {
	case gomath.Abs(v.X) < gomath.Abs(v.Y) && gomath.Abs(v.X) < gomath.Abs(v.Z):
		ref = hm.NewVector3[hm.Render](1, 0, 0)
	case gomath.Abs(v.Y) < gomath.Abs(v.Z):
		ref = hm.NewVector3[hm.Render](0, 1, 0)
	default:
		ref = hm.NewVector3[hm.Render](0, 0, 1)
	}
	t = v.Cross(ref).Normalized()
	b = v.Cross(t)
	return t, b
}
