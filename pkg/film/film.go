// Package film accumulates per-pixel spectral radiance and finalizes it to
// an 8-bit sRGB image, the last step of spec §4.8's Finalization stage.
// Grounded on the teacher's PixelStats/vec3ToColor
// (pkg/renderer/raytracer.go): same accumulate-then-average-then-tonemap
// shape, generalized from an RGB Vec3 accumulator to a per-pixel
// DenselySampledSpectrum so the exposure and tone map operate on the full
// spectral reconstruction rather than three color channels.
package film

import (
	"image"
	"image/color"

	hcolor "github.com/lmarchetti/heropath/pkg/color"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// Pixel tracks one pixel's accumulated spectrum and sample count.
type Pixel struct {
	Spectrum    *spectrum.DenselySampledSpectrum
	SampleCount int
}

// Film is the width x height grid of per-pixel spectral accumulators.
type Film struct {
	Width, Height int
	Exposure      float64
	Gamut         hcolor.Gamut
	EOTF          hcolor.EOTF

	pixels []Pixel
}

// New creates a Film with the given resolution, exposure (linear scale
// applied before tone mapping) and output transfer function; the caller
// always supplies the EOTF (the CLI driver passes the sRGB EOTF).
func New(width, height int, exposure float64, gamut hcolor.Gamut, eotf hcolor.EOTF) *Film {
	pixels := make([]Pixel, width*height)
	for i := range pixels {
		pixels[i].Spectrum = spectrum.NewDenselySampledSpectrum()
	}
	return &Film{Width: width, Height: height, Exposure: exposure, Gamut: gamut, EOTF: eotf, pixels: pixels}
}

func (f *Film) index(x, y int) int { return y*f.Width + x }

// AddSample folds one integrator sample into pixel (x, y), per spec §4.8's
// AddSample bin distribution.
func (f *Film) AddSample(x, y int, w spectrum.Wavelengths, s spectrum.Sampled) {
	p := &f.pixels[f.index(x, y)]
	p.Spectrum.AddSample(w, s)
	p.SampleCount++
}

// Merge folds another Film's accumulated samples into this one, pixel by
// pixel, for tile-parallel rendering (pkg/renderer's worker pool splats
// into per-tile films that are merged back into the final one).
func (f *Film) Merge(other *Film) {
	for i := range f.pixels {
		f.pixels[i].Spectrum.Merge(other.pixels[i].Spectrum)
		f.pixels[i].SampleCount += other.pixels[i].SampleCount
	}
}

// reinhard applies the classic Reinhard tone map (x / (1 + x)) to each
// channel independently, so it does not preserve luminance or hue, matching the teacher's single gamma-correct
// step generalized to also compress highlights before the EOTF encodes.
func reinhard(c hcolor.RGB) hcolor.RGB {
	return hcolor.RGB{
		R: c.R / (1 + c.R),
		G: c.G / (1 + c.G),
		B: c.B / (1 + c.B),
	}
}

// resolve converts one pixel's accumulated spectrum into an encoded,
// 8-bit-ready linear-to-nonlinear RGB triple: average -> XYZ -> gamut RGB
// -> exposure -> Reinhard -> clamp -> EOTF.
func (f *Film) resolve(p Pixel) hcolor.RGB {
	if p.SampleCount == 0 {
		return hcolor.RGB{}
	}
	avg := *p.Spectrum
	avg.ScaleInPlace(1 / float64(p.SampleCount))
	x, y, z := avg.ToXYZ()
	rgb := f.Gamut.FromXYZ(hcolor.XYZ{X: x, Y: y, Z: z})
	rgb = hcolor.RGB{R: rgb.R * f.Exposure, G: rgb.G * f.Exposure, B: rgb.B * f.Exposure}
	rgb = reinhard(rgb).Clamp01()
	return hcolor.ApplyToRGB(f.EOTF, rgb)
}

// ToImage resolves every pixel and quantizes to an *image.RGBA, the same
// final shape the teacher's assembleCurrentImage produces.
func (f *Film) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			rgb := f.resolve(f.pixels[f.index(x, y)])
			img.SetRGBA(x, y, color.RGBA{
				R: to8Bit(rgb.R),
				G: to8Bit(rgb.G),
				B: to8Bit(rgb.B),
				A: 255,
			})
		}
	}
	return img
}

func to8Bit(c float64) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c*255 + 0.5)
}
