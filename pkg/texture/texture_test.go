package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	hcolor "github.com/lmarchetti/heropath/pkg/color"
	"github.com/lmarchetti/heropath/pkg/loaders"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

func TestConstantFloatIsUVInvariant(t *testing.T) {
	c := ConstantFloat(0.42)
	assert.Equal(t, 0.42, c.Float(hm.Point2{X: 0, Y: 0}))
	assert.Equal(t, 0.42, c.Float(hm.Point2{X: 13.7, Y: -2.3}))
}

func TestFlatNormalPointsAlongZ(t *testing.T) {
	n := FlatNormal{}.Normal(hm.Point2{X: 0.5, Y: 0.5})
	assert.Equal(t, hm.Vector3[hm.VertexNormalTangent]{Z: 1}, n)
}

func TestWrapUVWrapsAndFlipsV(t *testing.T) {
	u, v := wrapUV(hm.Point2{X: 1.25, Y: 0.25})
	assert.InDelta(t, 0.25, u, 1e-9)
	assert.InDelta(t, 0.75, v, 1e-9)
}

func checkerboard() *loaders.ImageData {
	return &loaders.ImageData{
		Width:  2,
		Height: 2,
		Pixels: []hcolor.RGB{
			{R: 1, G: 1, B: 1}, {R: 0, G: 0, B: 0},
			{R: 0, G: 0, B: 0}, {R: 1, G: 1, B: 1},
		},
	}
}

func TestImageFloatTextureSamplesChannel(t *testing.T) {
	tex := ImageFloatTexture{Data: checkerboard(), Channel: 0}
	v := tex.Float(hm.Point2{X: 0.01, Y: 0.99})
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)
}

func TestImageSpectrumTextureProducesNonNegativeSpectrum(t *testing.T) {
	tex := ImageSpectrumTexture{Data: checkerboard(), EOTF: hcolor.SRGBEOTF{}}
	lambda := spectrum.SampleUniform(0.4)
	s := tex.Spectrum(hm.Point2{X: 0.25, Y: 0.25}, lambda)
	for _, v := range s {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestImageNormalTextureIsUnitLength(t *testing.T) {
	tex := ImageNormalTexture{Data: checkerboard()}
	n := tex.Normal(hm.Point2{X: 0.75, Y: 0.25})
	lenSq := n.X*n.X + n.Y*n.Y + n.Z*n.Z
	assert.InDelta(t, 1.0, lenSq, 1e-6)
}
