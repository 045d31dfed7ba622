package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/heropath/pkg/material"
)

const testPBRTScene = `
LookAt 0 0 5  0 0 0  0 1 0
Camera "perspective" "float fov" 40
Film "rgb" "integer xresolution" 200 "integer yresolution" 150

WorldBegin

Material "diffuse" "rgb reflectance" [0.7 0.2 0.2]

Shape "trianglemesh"
    "point3 P" [-1 -1 0  1 -1 0  1 1 0  -1 1 0]
    "integer indices" [0 1 2  0 2 3]

LightSource "point" "rgb I" [10 10 10] "point3 from" [0 5 0]

AttributeBegin
    Material "conductor" "rgb eta" [0.9 0.8 0.7] "float roughness" 0.1
    AreaLightSource "diffuse" "rgb L" [5 5 5]
    Shape "trianglemesh"
        "point3 P" [-0.5 -0.5 2  0.5 -0.5 2  0.5 0.5 2  -0.5 0.5 2]
        "integer indices" [0 1 2  0 2 3]
AttributeEnd

WorldEnd
`

func writeTempPBRT(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.pbrt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildSceneConvertsCameraMaterialsShapesAndLights(t *testing.T) {
	path := writeTempPBRT(t, testPBRTScene)

	sc, err := BuildScene(path)
	require.NoError(t, err)

	require.NotNil(t, sc.Camera)
	require.NotNil(t, sc.BVH)
	require.NotNil(t, sc.LightFactory)

	assert.Equal(t, 200, sc.SamplingConfig.Width)
	assert.Equal(t, 150, sc.SamplingConfig.Height)

	// one top-level quad + one attribute-block quad
	require.Len(t, sc.Primitives, 2)

	// the attribute-block quad's material should have been overridden to
	// an emissive radiator by its nested AreaLightSource, and wired into
	// Lights as an area light by Scene.Build.
	var foundEmissive bool
	for _, p := range sc.Primitives {
		if _, ok := p.Material.(material.Emissive); ok {
			foundEmissive = true
			_, _, ok := sc.AreaLightFor(p)
			assert.True(t, ok, "emissive surface should be wired into Lights")
		}
	}
	assert.True(t, foundEmissive, "AreaLightSource should override the shape's material to Emissive")

	// one explicit point light + one area light from the AttributeBegin block
	assert.Len(t, sc.Lights, 2)
}

func TestBuildSceneRejectsNonTriangleShapes(t *testing.T) {
	path := writeTempPBRT(t, `
WorldBegin
Material "diffuse" "rgb reflectance" [0.5 0.5 0.5]
Shape "sphere" "float radius" 1.0
WorldEnd
`)
	_, err := BuildScene(path)
	assert.Error(t, err)
}

func TestBuildSceneMissingFileErrors(t *testing.T) {
	_, err := BuildScene("does-not-exist.pbrt")
	assert.Error(t, err)
}
