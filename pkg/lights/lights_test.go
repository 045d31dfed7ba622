package lights

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/heropath/pkg/geometry"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

func testWavelengths() spectrum.Wavelengths {
	return spectrum.Wavelengths{
		Lambda: [spectrum.N]float64{500, 550, 600, 650},
		PDF:    [spectrum.N]float64{1, 1, 1, 1},
	}
}

func TestPointSampleInverseSquareFalloff(t *testing.T) {
	p := Point{Position: hm.NewPoint3[hm.Render](0, 2, 0), Intensity: spectrum.Constant(4), Scale: 1}
	s, ok := p.Sample(hm.NewPoint3[hm.Render](0, 0, 0), hm.Normal3[hm.Render]{}, hm.Point2{}, testWavelengths())
	require.True(t, ok)
	assert.InDelta(t, 2, s.Distance, 1e-9)
	assert.InDelta(t, 1, s.L[0], 1e-9) // 4 / 2^2
	assert.True(t, p.IsDelta())

	phi := p.Phi(testWavelengths())
	assert.InDelta(t, 4*gomath.Pi*4, phi[0], 1e-9)
}

func TestSpotFalloffZeroOutsideCone(t *testing.T) {
	s := Spot{
		Position:  hm.NewPoint3[hm.Render](0, 5, 0),
		Direction: hm.NewVector3[hm.Render](0, -1, 0),
		Intensity: spectrum.Constant(10),
		Scale:     1,
		CosThetaI: gomath.Cos(10 * gomath.Pi / 180),
		CosThetaO: gomath.Cos(20 * gomath.Pi / 180),
	}

	below := hm.NewPoint3[hm.Render](0, 0, 0)
	sample, ok := s.Sample(below, hm.Normal3[hm.Render]{}, hm.Point2{}, testWavelengths())
	require.True(t, ok)
	assert.True(t, sample.L[0] > 0)

	wide := hm.NewPoint3[hm.Render](100, 0, 0)
	_, ok = s.Sample(wide, hm.Normal3[hm.Render]{}, hm.Point2{}, testWavelengths())
	assert.False(t, ok, "far outside the cone the spot should contribute nothing")
}

func TestDirectionalUsesSceneRadius(t *testing.T) {
	d := &Directional{Direction: hm.NewVector3[hm.Render](0, -1, 0), Radiance: spectrum.Constant(3), Scale: 1}
	d.Preprocess(hm.Point3[hm.Render]{}, 10)

	s, ok := d.Sample(hm.Point3[hm.Render]{}, hm.Normal3[hm.Render]{}, hm.Point2{}, testWavelengths())
	require.True(t, ok)
	assert.True(t, gomath.IsInf(s.Distance, 1))
	assert.InDelta(t, 0, s.Wi.X, 1e-9)
	assert.InDelta(t, 1, s.Wi.Y, 1e-9)

	phi := d.Phi(testWavelengths())
	assert.InDelta(t, gomath.Pi*100*3, phi[0], 1e-9)
}

func identityMatrix() [4][4]float64 {
	var m [4][4]float64
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

func identityLocalToRender() hm.Transform[hm.Local, hm.Render] {
	return hm.FromMatrix[hm.Local, hm.Render](identityMatrix(), identityMatrix())
}

func singleTriangleMesh() *geometry.Mesh {
	return &geometry.Mesh{
		Positions: []hm.Point3[hm.Local]{
			hm.NewPoint3[hm.Local](0, 0, 0),
			hm.NewPoint3[hm.Local](1, 0, 0),
			hm.NewPoint3[hm.Local](0, 1, 0),
		},
		Indices: []int32{0, 1, 2},
	}
}

func TestEmissiveTriangleMeshSampleConsistentWithPDF(t *testing.T) {
	mesh := singleTriangleMesh()
	toRender := identityLocalToRender()
	light := NewEmissiveTriangleMesh(mesh, toRender, spectrum.Constant(5), 1, false)

	require.InDelta(t, 0.5, light.totalArea, 1e-9)

	p := hm.NewPoint3[hm.Render](0.1, 0.1, 5)
	s, ok := light.Sample(p, hm.Normal3[hm.Render]{}, hm.Point2{X: 0.3, Y: 0.4}, testWavelengths())
	require.True(t, ok)
	assert.True(t, s.PDF > 0)

	pdfAgain := light.PDF(p, hm.Normal3[hm.Render]{}, s.Wi)
	assert.InDelta(t, s.PDF, pdfAgain, 1e-6)
}

func TestEmissiveTriangleMeshBackFaceCulledWhenNotTwoSided(t *testing.T) {
	mesh := singleTriangleMesh()
	toRender := identityLocalToRender()
	light := NewEmissiveTriangleMesh(mesh, toRender, spectrum.Constant(5), 1, false)

	// the triangle's geometric normal is +Z; sampling from behind (-Z) should fail.
	behind := hm.NewPoint3[hm.Render](0.1, 0.1, -5)
	_, ok := light.Sample(behind, hm.Normal3[hm.Render]{}, hm.Point2{X: 0.3, Y: 0.4}, testWavelengths())
	assert.False(t, ok)
}

func TestUniformInfiniteLightCosineWeighted(t *testing.T) {
	u := &Uniform{Radiance: spectrum.Constant(2), Scale: 1}
	u.Preprocess(hm.Point3[hm.Render]{}, 50)

	n := hm.NewNormal3[hm.Render](0, 1, 0)
	s, ok := u.Sample(hm.Point3[hm.Render]{}, n, hm.Point2{X: 0.2, Y: 0.7}, testWavelengths())
	require.True(t, ok)
	assert.True(t, gomath.IsInf(s.Distance, 1))
	assert.True(t, s.Wi.Dot(n.AsVector()) > 0)

	le := u.Le(s.Wi, testWavelengths())
	assert.InDelta(t, 2, le[0], 1e-9)
}
