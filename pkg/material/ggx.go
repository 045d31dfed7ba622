package material

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
)

// TrowbridgeReitz is the GGX microfacet distribution with Smith masking,
// sampled via Heitz's visible-normal-distribution method (2018), so only
// microfacet normals visible from wo are drawn (a reflected direction can
// still fall below the surface, which callers reject).
type TrowbridgeReitz struct {
	AlphaX, AlphaY float64
}

func (d TrowbridgeReitz) EffectivelySmooth() bool {
	return gomath.Max(d.AlphaX, d.AlphaY) < 1e-3
}

// D evaluates the normal distribution function at the half vector wm
// (shading frame, Z along the macro-surface normal).
func (d TrowbridgeReitz) D(wm hm.Vector3[hm.ShadingNormalTangent]) float64 {
	tan2 := Sin2Theta(wm) / Cos2Theta(wm)
	if gomath.IsInf(tan2, 0) {
		return 0
	}
	cos4 := Cos2Theta(wm) * Cos2Theta(wm)
	alpha2 := d.AlphaX * d.AlphaY
	denom := gomath.Pi * alpha2 * cos4 * (1 + tan2/alpha2) * (1 + tan2/alpha2)
	if denom <= 0 {
		return 0
	}
	return 1 / denom
}

func (d TrowbridgeReitz) lambda(w hm.Vector3[hm.ShadingNormalTangent]) float64 {
	tan2 := Sin2Theta(w) / Cos2Theta(w)
	if gomath.IsInf(tan2, 0) || gomath.IsNaN(tan2) {
		return 0
	}
	alpha2 := d.AlphaX * d.AlphaY
	return (gomath.Sqrt(1+alpha2*tan2) - 1) / 2
}

// G1 is the monostatic Smith masking function.
func (d TrowbridgeReitz) G1(w hm.Vector3[hm.ShadingNormalTangent]) float64 {
	return 1 / (1 + d.lambda(w))
}

// G is the Smith height-correlated joint masking-shadowing term.
func (d TrowbridgeReitz) G(wo, wi hm.Vector3[hm.ShadingNormalTangent]) float64 {
	return 1 / (1 + d.lambda(wo) + d.lambda(wi))
}

// PDF returns the density of sampling wm via SampleWm, converted to a
// solid-angle-over-wo density in the caller.
func (d TrowbridgeReitz) PDF(wo, wm hm.Vector3[hm.ShadingNormalTangent]) float64 {
	return d.G1(wo) / AbsCosTheta(wo) * d.D(wm) * absf(wo.Dot(wm))
}

// SampleWm draws a visible microfacet normal given the outgoing direction,
// using Heitz's 2018 transform-to-hemisphere-and-back construction.
func (d TrowbridgeReitz) SampleWm(wo hm.Vector3[hm.ShadingNormalTangent], u hm.Point2) hm.Vector3[hm.ShadingNormalTangent] {
	wh := hm.NewVector3[hm.ShadingNormalTangent](d.AlphaX*wo.X, d.AlphaY*wo.Y, wo.Z).Normalized()
	if wh.Z < 0 {
		wh = wh.Neg()
	}

	t1 := hm.NewVector3[hm.ShadingNormalTangent](0, 0, 1)
	if wh.Z < 0.999 {
		t1 = hm.NewVector3[hm.ShadingNormalTangent](0, 0, 1).Cross(wh).Normalized()
	} else {
		t1 = hm.NewVector3[hm.ShadingNormalTangent](1, 0, 0)
	}
	t2 := wh.Cross(t1)

	disk := hm.SampleUniformDiskConcentric(u)
	h := gomath.Sqrt(1 - disk.X*disk.X)
	py := lerpf(h, disk.Y, (1+wh.Z)/2)
	pz := gomath.Sqrt(gomath.Max(0, 1-disk.X*disk.X-py*py))

	nh := t1.Scale(disk.X).Add(t2.Scale(py)).Add(wh.Scale(pz))
	result := hm.NewVector3[hm.ShadingNormalTangent](
		d.AlphaX*nh.X,
		d.AlphaY*nh.Y,
		gomath.Max(1e-6, nh.Z),
	)
	return result.Normalized()
}

func lerpf(t, a, b float64) float64 { return a + t*(b-a) }
