package integrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/heropath/pkg/camera"
	"github.com/lmarchetti/heropath/pkg/geometry"
	"github.com/lmarchetti/heropath/pkg/lights"
	"github.com/lmarchetti/heropath/pkg/material"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/primitive"
	"github.com/lmarchetti/heropath/pkg/sampler"
	"github.com/lmarchetti/heropath/pkg/scene"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

func identityMatrix() [4][4]float64 {
	var m [4][4]float64
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

func quadMesh() *geometry.Mesh {
	return &geometry.Mesh{
		Positions: []hm.Point3[hm.Local]{
			hm.NewPoint3[hm.Local](-10, -10, 0),
			hm.NewPoint3[hm.Local](10, -10, 0),
			hm.NewPoint3[hm.Local](10, 10, 0),
			hm.NewPoint3[hm.Local](-10, 10, 0),
		},
		Indices: []int32{0, 1, 2, 0, 2, 3},
	}
}

// litQuadScene builds a diffuse quad facing the camera, lit by a point
// light off to one side, the same fixture shape as pkg/scene's own tests.
func litQuadScene(t *testing.T) *scene.Scene {
	t.Helper()
	mesh := quadMesh()
	surface := &primitive.Surface{
		Mesh:         mesh,
		BVH:          geometry.BuildBVH(mesh),
		Material:     material.Diffuse{Reflectance: spectrum.Sampled{0.8, 0.8, 0.8, 0.8}},
		LocalToWorld: hm.FromMatrix[hm.Local, hm.World](identityMatrix(), identityMatrix()),
	}

	cam := camera.New(camera.Config{
		LookFrom:    hm.NewPoint3[hm.World](0, 0, 5),
		LookAt:      hm.NewPoint3[hm.World](0, 0, 0),
		Up:          hm.NewVector3[hm.World](0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
	})

	s := &scene.Scene{
		Camera:     cam,
		Primitives: []*primitive.Surface{surface},
		Lights:     []lights.Light{lights.Point{Position: hm.NewPoint3[hm.Render](0, 5, 5), Intensity: spectrum.Constant(20), Scale: 1}},
	}
	s.Build()
	return s
}

// emptyScene has a camera but nothing to hit, so every primary ray misses.
func emptyScene(t *testing.T) *scene.Scene {
	t.Helper()
	cam := camera.New(camera.Config{
		LookFrom:    hm.NewPoint3[hm.World](0, 0, 5),
		LookAt:      hm.NewPoint3[hm.World](0, 0, 0),
		Up:          hm.NewVector3[hm.World](0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
	})
	s := &scene.Scene{Camera: cam}
	s.Build()
	return s
}

func TestRenderMissReturnsZeroContributionNoInfiniteLightTerm(t *testing.T) {
	s := emptyScene(t)
	smp := sampler.RandomFactory{Seed: 1}.NewSampler()

	for _, strategy := range []Strategy{PurePT{}, NEE{}, MIS{}} {
		_, contribution := Render(strategy, s, smp, 4, 4, 0, 8, 3)
		assert.True(t, contribution.IsBlack(), "expected zero contribution on primary miss")
	}
}

func TestRenderLitSceneProducesPositiveContribution(t *testing.T) {
	s := litQuadScene(t)

	for _, strategy := range []Strategy{PurePT{}, NEE{}, MIS{}} {
		smp := sampler.RandomFactory{Seed: 7}.NewSampler()
		var total spectrum.Sampled
		const spp = 64
		for i := 0; i < spp; i++ {
			lambda, contribution := Render(strategy, s, smp, 8, 8, i, 8, 3)
			require.False(t, contribution.HasNaN())
			total = total.Add(contribution.Scale(1 / lambda.PDF[0] / float64(spectrum.N)))
		}
		assert.True(t, total.MaxComponent() > 0, "expected positive radiance reaching the camera")
	}
}

func TestRenderDeterministicForSameSeed(t *testing.T) {
	s := litQuadScene(t)

	run := func() spectrum.Sampled {
		smp := sampler.RandomFactory{Seed: 42}.NewSampler()
		_, c := Render(MIS{}, s, smp, 8, 8, 0, 8, 3)
		return c
	}

	a := run()
	b := run()
	assert.Equal(t, a, b)
}

func TestRenderNeverProducesNaN(t *testing.T) {
	s := litQuadScene(t)
	smp := sampler.ZSobolFactory{SPP: 32, Resolution: 16, Seed: 3}.NewSampler()

	for _, strategy := range []Strategy{PurePT{}, NEE{}, MIS{}} {
		for i := 0; i < 32; i++ {
			_, contribution := Render(strategy, s, smp, 8, 8, i, 8, 3)
			require.False(t, contribution.HasNaN(), "strategy produced NaN/Inf contribution")
		}
	}
}
