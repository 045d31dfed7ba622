package film

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcolor "github.com/lmarchetti/heropath/pkg/color"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

func TestFilmEmptyPixelResolvesToBlack(t *testing.T) {
	f := New(2, 2, 1, hcolor.SRGB, hcolor.SRGBEOTF{})
	img := f.ToImage()
	r, g, b, a := img.At(0, 0).RGBA()
	assert.EqualValues(t, 0, r)
	assert.EqualValues(t, 0, g)
	assert.EqualValues(t, 0, b)
	assert.EqualValues(t, 0xffff, a)
}

func TestFilmAddSampleProducesNonBlackPixel(t *testing.T) {
	f := New(1, 1, 1, hcolor.SRGB, hcolor.SRGBEOTF{})
	w := spectrum.SampleUniform(0.1)
	var s spectrum.Sampled
	for i := range s {
		s[i] = 2.0
	}
	f.AddSample(0, 0, w, s)

	img := f.ToImage()
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.True(t, r > 0 || g > 0 || b > 0, "expected a non-black pixel after a positive-radiance sample")
}

func TestFilmMergeEquivalentToDirectAccumulation(t *testing.T) {
	w := spectrum.SampleUniform(0.3)
	var s spectrum.Sampled
	for i := range s {
		s[i] = 1.5
	}

	direct := New(1, 1, 1, hcolor.SRGB, hcolor.SRGBEOTF{})
	direct.AddSample(0, 0, w, s)
	direct.AddSample(0, 0, w, s)

	a := New(1, 1, 1, hcolor.SRGB, hcolor.SRGBEOTF{})
	a.AddSample(0, 0, w, s)
	b := New(1, 1, 1, hcolor.SRGB, hcolor.SRGBEOTF{})
	b.AddSample(0, 0, w, s)
	a.Merge(b)

	require.Equal(t, direct.pixels[0].SampleCount, a.pixels[0].SampleCount)
	dx, dy, dz := direct.pixels[0].Spectrum.ToXYZ()
	ax, ay, az := a.pixels[0].Spectrum.ToXYZ()
	assert.InDelta(t, dx, ax, 1e-9)
	assert.InDelta(t, dy, ay, 1e-9)
	assert.InDelta(t, dz, az, 1e-9)
}

func TestExposureBrightensImage(t *testing.T) {
	w := spectrum.SampleUniform(0.5)
	var s spectrum.Sampled
	for i := range s {
		s[i] = 1.0
	}

	dim := New(1, 1, 0.5, hcolor.SRGB, hcolor.SRGBEOTF{})
	dim.AddSample(0, 0, w, s)
	bright := New(1, 1, 4.0, hcolor.SRGB, hcolor.SRGBEOTF{})
	bright.AddSample(0, 0, w, s)

	dr, _, _, _ := dim.ToImage().At(0, 0).RGBA()
	br, _, _, _ := bright.ToImage().At(0, 0).RGBA()
	assert.True(t, br >= dr, "higher exposure should not darken a pixel")
}
