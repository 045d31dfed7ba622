package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSceneResolvesBuiltinIndices(t *testing.T) {
	for i := 0; i <= 3; i++ {
		sc, err := createScene(Config{SceneIndex: i, Width: 64, Height: 48, SPP: 2, MaxDepth: 4})
		require.NoError(t, err, "scene %d", i)
		require.NotNil(t, sc.Camera, "scene %d", i)
		assert.Equal(t, 64, sc.SamplingConfig.Width)
		assert.Equal(t, 48, sc.SamplingConfig.Height)
	}
}

func TestCreateSceneRejectsUnknownIndex(t *testing.T) {
	_, err := createScene(Config{SceneIndex: 99, Width: 64, Height: 48, SPP: 2, MaxDepth: 4})
	assert.Error(t, err)
}

func TestStrategyForDispatchesByName(t *testing.T) {
	for _, name := range []string{"pt", "nee", "mis", "unknown"} {
		assert.NotNil(t, strategyFor(name), name)
	}
}

func TestSamplerFactoryForDispatchesByName(t *testing.T) {
	randomFactory := samplerFactoryFor("random", 16, 64, 48)
	require.NotNil(t, randomFactory)
	sobolFactory := samplerFactoryFor("sobol", 16, 64, 48)
	require.NotNil(t, sobolFactory)

	s := sobolFactory.NewSampler()
	s.StartPixelSample(0, 0, 0)
	v := s.Get1D()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestRenderNormalsProducesAnImage(t *testing.T) {
	sc, err := createScene(Config{SceneIndex: 1, Width: 16, Height: 12, SPP: 1, MaxDepth: 1})
	require.NoError(t, err)

	img := renderNormals(sc, 16, 12)
	require.NotNil(t, img)

	var nonBlack bool
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r > 0 || g > 0 || b > 0 {
				nonBlack = true
			}
		}
	}
	assert.True(t, nonBlack, "expected at least one pixel to hit geometry")
}
