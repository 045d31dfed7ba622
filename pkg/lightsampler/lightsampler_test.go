package lightsampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/heropath/pkg/lights"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

func wavelengths() spectrum.Wavelengths {
	return spectrum.Wavelengths{
		Lambda: [spectrum.N]float64{500, 550, 600, 650},
		PDF:    [spectrum.N]float64{1, 1, 1, 1},
	}
}

func TestSampleLightWeightedByPower(t *testing.T) {
	dim := lights.Point{Position: hm.NewPoint3[hm.Render](0, 0, 0), Intensity: spectrum.Constant(1), Scale: 1}
	bright := lights.Point{Position: hm.NewPoint3[hm.Render](0, 0, 0), Intensity: spectrum.Constant(9), Scale: 1}

	factory := NewFactory([]lights.Light{dim, bright}, hm.Point3[hm.Render]{}, 10)
	sampler := factory.Create(wavelengths())

	// bright contributes 9x the power of dim, so its selection probability
	// should land near 0.9.
	assert.InDelta(t, 0.1, sampler.Probability(0), 1e-9)
	assert.InDelta(t, 0.9, sampler.Probability(1), 1e-9)

	_, idx, prob, ok := sampler.SampleLight(0.05)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 0.1, prob, 1e-9)

	_, idx, prob, ok = sampler.SampleLight(0.5)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 0.9, prob, 1e-9)
}

func TestSampleLightUniformFallbackWhenAllDark(t *testing.T) {
	dark := lights.Point{Position: hm.NewPoint3[hm.Render](0, 0, 0), Intensity: spectrum.Zero(), Scale: 1}
	factory := NewFactory([]lights.Light{dark, dark}, hm.Point3[hm.Render]{}, 10)
	sampler := factory.Create(wavelengths())

	_, idx, prob, ok := sampler.SampleLight(0.9)
	require.True(t, ok)
	assert.True(t, idx == 0 || idx == 1)
	assert.InDelta(t, 0.5, prob, 1e-9)
}

func TestSampleInfiniteLightOnlyAmongInfiniteLights(t *testing.T) {
	point := lights.Point{Position: hm.NewPoint3[hm.Render](0, 0, 0), Intensity: spectrum.Constant(100), Scale: 1}
	env := &lights.Uniform{Radiance: spectrum.Constant(1), Scale: 1}

	factory := NewFactory([]lights.Light{point, env}, hm.Point3[hm.Render]{}, 10)
	assert.Equal(t, 1, len(factory.infiniteIdx))

	sampler := factory.Create(wavelengths())
	require.Equal(t, 1, sampler.InfiniteLightCount())

	l, idx, prob, ok := sampler.SampleInfiniteLight(0.5)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 1, prob, 1e-9)
	assert.NotNil(t, l)
}
