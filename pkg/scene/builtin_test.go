package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinScenesAllBuild(t *testing.T) {
	for idx, builder := range BuiltinScenes {
		sc := builder()
		require.NotNil(t, sc, "scene %d", idx)
		assert.NotNil(t, sc.Camera, "scene %d", idx)
		assert.NotNil(t, sc.BVH, "scene %d", idx)
		assert.NotEmpty(t, sc.Primitives, "scene %d", idx)
	}
}

func TestCornellBoxSceneHasAreaLight(t *testing.T) {
	sc := NewCornellBoxScene()
	require.Len(t, sc.Lights, 1)
}

func TestDirectionalOnlySceneHasNoAreaLights(t *testing.T) {
	sc := NewDirectionalOnlyScene()
	require.Len(t, sc.Lights, 1)
	for _, p := range sc.Primitives {
		_, _, ok := sc.AreaLightFor(p)
		assert.False(t, ok)
	}
}

func TestMaterialShowcaseSceneHasFiveSurfaces(t *testing.T) {
	sc := NewMaterialShowcaseScene()
	assert.Len(t, sc.Primitives, 5)
}
