package renderer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/heropath/pkg/camera"
	hcolor "github.com/lmarchetti/heropath/pkg/color"
	"github.com/lmarchetti/heropath/pkg/film"
	"github.com/lmarchetti/heropath/pkg/geometry"
	"github.com/lmarchetti/heropath/pkg/integrator"
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

func litQuadScene(t *testing.T) *scene.Scene {
	t.Helper()
	mesh := &geometry.Mesh{
		Positions: []hm.Point3[hm.Local]{
			hm.NewPoint3[hm.Local](-10, -10, 0),
			hm.NewPoint3[hm.Local](10, -10, 0),
			hm.NewPoint3[hm.Local](10, 10, 0),
			hm.NewPoint3[hm.Local](-10, 10, 0),
		},
		Indices: []int32{0, 1, 2, 0, 2, 3},
	}
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

func TestRenderProducesNonBlackImage(t *testing.T) {
	s := litQuadScene(t)
	f := film.New(16, 16, 1, hcolor.SRGB, hcolor.SRGBEOTF{})

	stats, err := Render(context.Background(), s, f, Options{
		SamplesPerPixel: 8,
		MaxDepth:        8,
		RRMinBounces:    3,
		Strategy:        integrator.MIS{},
		SamplerFactory:  sampler.RandomFactory{Seed: 11},
		TileSize:        4,
		NumWorkers:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, 16*16, stats.TotalPixels)
	assert.Equal(t, 16*16*8, stats.TotalSamples)

	img := f.ToImage()
	foundNonBlack := false
	for y := 0; y < 16 && !foundNonBlack; y++ {
		for x := 0; x < 16; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r > 0 || g > 0 || b > 0 {
				foundNonBlack = true
				break
			}
		}
	}
	assert.True(t, foundNonBlack, "expected at least one lit pixel in the rendered frame")
}

func TestRenderRespectsContextCancellation(t *testing.T) {
	s := litQuadScene(t)
	f := film.New(64, 64, 1, hcolor.SRGB, hcolor.SRGBEOTF{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, s, f, Options{
		SamplesPerPixel: 4,
		MaxDepth:        8,
		RRMinBounces:    3,
		Strategy:        integrator.PurePT{},
		SamplerFactory:  sampler.RandomFactory{Seed: 1},
		TileSize:        8,
		NumWorkers:      2,
	})
	assert.Error(t, err)
}

func TestSplitIntoTilesCoversFrameExactlyOnce(t *testing.T) {
	tiles := splitIntoTiles(10, 7, 4)
	covered := make(map[[2]int]bool)
	for _, tile := range tiles {
		b := tile.Bounds
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				key := [2]int{x, y}
				require.False(t, covered[key], "pixel (%d,%d) covered by more than one tile", x, y)
				covered[key] = true
			}
		}
	}
	assert.Len(t, covered, 10*7)
}
