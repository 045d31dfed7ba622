package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/heropath/pkg/geometry"
	hm "github.com/lmarchetti/heropath/pkg/math"
)

func identityMatrix() [4][4]float64 {
	var m [4][4]float64
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

func translateZMatrix(z float64) ([4][4]float64, [4][4]float64) {
	m := identityMatrix()
	m[2][3] = z
	inv := identityMatrix()
	inv[2][3] = -z
	return m, inv
}

func singleTriangleMesh() *geometry.Mesh {
	return &geometry.Mesh{
		Positions: []hm.Point3[hm.Local]{
			hm.NewPoint3[hm.Local](-10, -10, 0),
			hm.NewPoint3[hm.Local](10, -10, 0),
			hm.NewPoint3[hm.Local](0, 10, 0),
		},
		Indices: []int32{0, 1, 2},
	}
}

func newSurface(t *testing.T, worldZ float64) *Surface {
	t.Helper()
	mesh := singleTriangleMesh()
	m, minv := translateZMatrix(worldZ)
	s := &Surface{
		Mesh:         mesh,
		BVH:          geometry.BuildBVH(mesh),
		LocalToWorld: hm.FromMatrix[hm.Local, hm.World](m, minv),
	}
	s.CacheTransform(hm.FromMatrix[hm.World, hm.Render](identityMatrix(), identityMatrix()))
	return s
}

func TestSurfaceIntersectHitsTransformedMesh(t *testing.T) {
	s := newSurface(t, 5)

	r := hm.NewRayT[hm.Render](hm.NewPoint3[hm.Render](0, 0, -1), hm.NewVector3[hm.Render](0, 0, 1))
	hit, ok := s.Intersect(r, 1e9)
	require.True(t, ok)
	assert.InDelta(t, 6, hit.T, 1e-9)
	assert.InDelta(t, 5, hit.P.Z, 1e-6)

	missRay := hm.NewRayT[hm.Render](hm.NewPoint3[hm.Render](100, 100, -1), hm.NewVector3[hm.Render](0, 0, 1))
	_, ok = s.Intersect(missRay, 1e9)
	assert.False(t, ok)
}

func TestSurfaceIntersectPShadowRay(t *testing.T) {
	s := newSurface(t, 5)

	r := hm.NewRayT[hm.Render](hm.NewPoint3[hm.Render](0, 0, -1), hm.NewVector3[hm.Render](0, 0, 1))
	assert.True(t, s.IntersectP(r, 1e9))
	assert.False(t, s.IntersectP(r, 3))
}

func TestSurfaceBoundsReflectsTransform(t *testing.T) {
	s := newSurface(t, 5)
	b := s.Bounds()
	assert.InDelta(t, 5, b.Min.Z, 1e-6)
	assert.InDelta(t, 5, b.Max.Z, 1e-6)
}
