package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

func up() hm.Vector3[hm.ShadingNormalTangent] {
	return hm.NewVector3[hm.ShadingNormalTangent](0, 0, 1)
}

func tilted(x, z float64) hm.Vector3[hm.ShadingNormalTangent] {
	return hm.NewVector3[hm.ShadingNormalTangent](x, 0, z).Normalized()
}

func TestLambertSampleMatchesEval(t *testing.T) {
	l := Lambert{Reflectance: spectrum.Constant(0.5)}
	wo := tilted(0.3, 0.9)
	s, ok := l.Sample(wo, 0.5, hm.Point2{X: 0.25, Y: 0.75}, nil)
	require.True(t, ok)
	assert.True(t, s.Wi.Z > 0, "sampled direction should stay on the same side as wo")

	f := l.Eval(wo, s.Wi, spectrum.Wavelengths{})
	assert.InDelta(t, s.F[0], f[0]*AbsCosTheta(s.Wi), 1e-9)

	pdf := l.PDF(wo, s.Wi, spectrum.Wavelengths{})
	assert.InDelta(t, s.PDF, pdf, 1e-9)
	assert.True(t, pdf > 0)
}

func TestLambertZeroAcrossHemispheres(t *testing.T) {
	l := Lambert{Reflectance: spectrum.Constant(0.8)}
	wo := up()
	wi := hm.NewVector3[hm.ShadingNormalTangent](0, 0, -1)
	f := l.Eval(wo, wi, spectrum.Wavelengths{})
	assert.True(t, f.IsBlack())
}

func TestConductorSmoothIsMirror(t *testing.T) {
	c := Conductor{Reflectance: spectrum.Constant(0.9), Dist: TrowbridgeReitz{}}
	require.True(t, c.Dist.EffectivelySmooth())
	assert.True(t, c.Flags().IsSpecular())

	wo := tilted(0.4, 0.8)
	s, ok := c.Sample(wo, 0, hm.Point2{}, nil)
	require.True(t, ok)
	assert.InDelta(t, -wo.X, s.Wi.X, 1e-9)
	assert.InDelta(t, wo.Z, s.Wi.Z, 1e-9)
}

func TestConductorRoughSampleConsistentWithEval(t *testing.T) {
	c := Conductor{Reflectance: spectrum.Constant(0.7), Dist: TrowbridgeReitz{AlphaX: 0.3, AlphaY: 0.3}}
	wo := tilted(0.2, 0.9)
	s, ok := c.Sample(wo, 0.4, hm.Point2{X: 0.3, Y: 0.6}, nil)
	require.True(t, ok)

	f := c.Eval(wo, s.Wi, spectrum.Wavelengths{})
	assert.InDelta(t, s.F[0], f[0]*AbsCosTheta(s.Wi), 1e-9)
	pdf := c.PDF(wo, s.Wi, spectrum.Wavelengths{})
	assert.InDelta(t, s.PDF, pdf, 1e-9)
}

func TestGeneralizedSchlickReflectanceMatchesClassicSchlickWhenUntinted(t *testing.T) {
	r0 := spectrum.Constant(0.04)
	r90 := spectrum.One()
	tint := spectrum.Zero()
	for _, cosTheta := range []float64{1, 0.7, 0.3, 0.05} {
		got := GeneralizedSchlickReflectance(cosTheta, r0, r90, tint, 5)
		want := FresnelSchlick(cosTheta, r0[0])
		assert.InDelta(t, want, got[0], 1e-9)
	}
}

func TestGeneralizedSchlickSampleConsistentWithEval(t *testing.T) {
	g := GeneralizedSchlick{
		R0:       spectrum.Constant(0.05),
		R90:      spectrum.One(),
		Tint:     spectrum.Constant(0.3),
		Exponent: 5,
		Dist:     TrowbridgeReitz{AlphaX: 0.25, AlphaY: 0.25},
	}
	wo := tilted(0.2, 0.9)
	s, ok := g.Sample(wo, 0, hm.Point2{X: 0.4, Y: 0.1}, nil)
	require.True(t, ok)

	f := g.Eval(wo, s.Wi, spectrum.Wavelengths{})
	assert.InDelta(t, s.F[0], f[0]*AbsCosTheta(s.Wi), 1e-9)
}

func TestDielectricSmoothSplitsReflectTransmit(t *testing.T) {
	d := Dielectric{Eta: 1.5, Dist: TrowbridgeReitz{}}
	wo := up()

	lam := spectrum.Wavelengths{}
	reflectSample, ok := d.Sample(wo, 0.01, hm.Point2{}, &lam)
	require.True(t, ok)
	assert.True(t, reflectSample.Flags.Has(Reflection))
	assert.False(t, lam.SecondaryTerminated())

	lam2 := spectrum.Wavelengths{}
	transmitSample, ok := d.Sample(wo, 0.99, hm.Point2{}, &lam2)
	require.True(t, ok)
	assert.True(t, transmitSample.Flags.Has(Transmission))
	assert.True(t, lam2.SecondaryTerminated(), "refraction should terminate secondary wavelength lanes")
}

func TestDielectricThinSurfacePassesStraightThrough(t *testing.T) {
	d := Dielectric{Eta: 1.5, Dist: TrowbridgeReitz{}, ThinSurface: true}
	wo := tilted(0.3, 0.9)
	lam := spectrum.Wavelengths{}
	s, ok := d.Sample(wo, 0.99, hm.Point2{}, &lam)
	require.True(t, ok)
	assert.InDelta(t, -wo.X, s.Wi.X, 1e-9)
	assert.InDelta(t, -wo.Z, s.Wi.Z, 1e-9)
	assert.InDelta(t, 1, s.Eta, 1e-9)
}

func TestPBRMetallicBlendsBranches(t *testing.T) {
	dielectric := PBR{BaseColor: spectrum.Constant(0.8), Metallic: 0, IOR: 1.5, Dist: TrowbridgeReitz{AlphaX: 0.2, AlphaY: 0.2}}
	metal := PBR{BaseColor: spectrum.Constant(0.8), Metallic: 1, IOR: 1.5, Dist: TrowbridgeReitz{AlphaX: 0.2, AlphaY: 0.2}}
	mixed := PBR{BaseColor: spectrum.Constant(0.8), Metallic: 0.5, IOR: 1.5, Dist: TrowbridgeReitz{AlphaX: 0.2, AlphaY: 0.2}}

	wo := tilted(0.1, 0.9)
	wi := tilted(-0.1, 0.9)

	fd := dielectric.Eval(wo, wi, spectrum.Wavelengths{})
	fm := metal.Eval(wo, wi, spectrum.Wavelengths{})
	fmix := mixed.Eval(wo, wi, spectrum.Wavelengths{})

	expected := fd.Scale(0.5).Add(fm.Scale(0.5))
	assert.InDelta(t, expected[0], fmix[0], 1e-9)
}

func TestClearcoatAttenuatesSubstrate(t *testing.T) {
	substrate := PBR{BaseColor: spectrum.Constant(0.9), Metallic: 0, IOR: 1.5, Dist: TrowbridgeReitz{AlphaX: 0.3, AlphaY: 0.3}}
	clear := ClearcoatPBR{
		Substrate: substrate,
		IOR:       1.4,
		Dist:      TrowbridgeReitz{AlphaX: 0.05, AlphaY: 0.05},
		Tint:      spectrum.Constant(0.95),
		Thickness: 0.001,
	}

	wo := tilted(0.05, 0.95)
	wi := tilted(-0.05, 0.95)

	plain := substrate.Eval(wo, wi, spectrum.Wavelengths{})
	coated := clear.Eval(wo, wi, spectrum.Wavelengths{})
	// the coat adds its own specular lobe but attenuates the substrate, so
	// the two totals should differ but stay finite and non-negative.
	assert.False(t, coated.HasNaN())
	assert.False(t, plain.HasNaN())
	for i := range coated {
		assert.True(t, coated[i] >= 0)
	}
}

func TestEmissiveEmitsOnlyFrontFace(t *testing.T) {
	e := Emissive{Radiance: spectrum.ConstantSpectrum(2)}
	lam := spectrum.Wavelengths{Lambda: [spectrum.N]float64{500, 550, 600, 650}, PDF: [spectrum.N]float64{1, 1, 1, 1}}

	front := e.Emit(up(), lam)
	assert.InDelta(t, 2, front[0], 1e-9)

	back := e.Emit(hm.NewVector3[hm.ShadingNormalTangent](0, 0, -1), lam)
	assert.True(t, back.IsBlack())
	assert.True(t, e.IsEmissive())
}
