package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcolor "github.com/lmarchetti/heropath/pkg/color"
)

func TestLoadImage(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.png")

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // top-left: white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // top-right: red
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})     // bottom-left: green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})     // bottom-right: blue

	f, err := os.Create(testFile)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	data, err := LoadImage(testFile)
	require.NoError(t, err)
	require.Equal(t, 2, data.Width)
	require.Equal(t, 2, data.Height)
	require.Len(t, data.Pixels, 4)

	const tol = 0.01
	checkColor := func(name string, got, want hcolor.RGB) {
		assert.InDelta(t, want.R, got.R, tol, name)
		assert.InDelta(t, want.G, got.G, tol, name)
		assert.InDelta(t, want.B, got.B, tol, name)
	}
	checkColor("top-left", data.Pixels[0], hcolor.RGB{R: 1, G: 1, B: 1})
	checkColor("top-right", data.Pixels[1], hcolor.RGB{R: 1})
	checkColor("bottom-left", data.Pixels[2], hcolor.RGB{G: 1})
	checkColor("bottom-right", data.Pixels[3], hcolor.RGB{B: 1})
}

func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	assert.Error(t, err)
}
