package scene

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

func newTestScene(t *testing.T) *Scene {
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

	s := &Scene{
		Camera:     cam,
		Primitives: []*primitive.Surface{surface},
		Lights:     []lights.Light{lights.Point{Position: hm.NewPoint3[hm.Render](0, 5, 5), Intensity: spectrum.Constant(10), Scale: 1}},
	}
	s.Build()
	return s
}

func TestSceneBuildAndIntersect(t *testing.T) {
	s := newTestScene(t)

	require.NotNil(t, s.BVH)
	require.NotNil(t, s.LightFactory)

	_, radius := s.SceneBounds()
	assert.True(t, radius > 0)

	r := hm.NewRayT[hm.Render](hm.NewPoint3[hm.Render](0, 0, 5), hm.NewVector3[hm.Render](0, 0, -1))
	hit, srf, ok := s.Intersect(r, 1e9)
	require.True(t, ok)
	assert.NotNil(t, srf)
	// Render space is the camera's eye space: the quad at world z=0 sits at
	// render z=-5, so a ray starting at render z=5 travels 10 to reach it.
	assert.InDelta(t, 10, hit.T, 1e-6)

	assert.True(t, s.IntersectP(r, 1e9))
	assert.False(t, s.IntersectP(r, 1))
}

func TestSceneIntersectMissesEmptySpace(t *testing.T) {
	s := newTestScene(t)
	r := hm.NewRayT[hm.Render](hm.NewPoint3[hm.Render](100, 100, 5), hm.NewVector3[hm.Render](0, 0, -1))
	_, _, ok := s.Intersect(r, 1e9)
	assert.False(t, ok)
}
