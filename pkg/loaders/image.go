package loaders

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	hcolor "github.com/lmarchetti/heropath/pkg/color"
)

// MaxTextureDim caps the longer side of a loaded texture. Scene assets
// occasionally ship source art sized for print/video rather than a texel
// budget a path tracer's image cache wants to hold; anything larger is
// prefiltered down rather than paid for at full resolution on every At().
const MaxTextureDim = 4096

// ImageData holds a decoded image as row-major [0,1] RGB triples, encoded
// exactly as stored in the file (no EOTF applied yet — the caller decides
// whether this is a color texture, decoded sRGB->linear on sample, or a
// data texture, read as linear directly, per SPEC_FULL.md §4.1).
type ImageData struct {
	Width, Height int
	Pixels        []hcolor.RGB
}

// LoadImage decodes a PNG file into an ImageData. Per spec §6, only PNG
// textures are supported (EXR decoding is out of scope); grounded on the
// teacher's LoadImage (pkg/loaders/image.go), narrowed from PNG+JPEG
// auto-detection to PNG only. Images wider or taller than MaxTextureDim are
// prefiltered down to it with x/image/draw's Catmull-Rom resampler before
// conversion, so an oversized source asset still bilinear-samples cleanly
// at texture-evaluation time instead of aliasing against a single texel.
func LoadImage(path string) (*ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: open image %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loaders: decode PNG %q: %w", path, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > MaxTextureDim || height > MaxTextureDim {
		width, height = clampDim(width, height, MaxTextureDim)
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
		bounds = scaled.Bounds()
	}

	pixels := make([]hcolor.RGB, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*width+x] = hcolor.RGB{
				R: float64(r) / 65535.0,
				G: float64(g) / 65535.0,
				B: float64(b) / 65535.0,
			}
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}

// clampDim scales (w, h) down to fit within max on its longer side,
// preserving aspect ratio.
func clampDim(w, h, max int) (int, int) {
	if w >= h {
		return max, h * max / w
	}
	return w * max / h, max
}

// At returns the raw encoded pixel at (x, y), clamped to the image bounds.
func (d *ImageData) At(x, y int) hcolor.RGB {
	if x < 0 {
		x = 0
	}
	if x >= d.Width {
		x = d.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= d.Height {
		y = d.Height - 1
	}
	return d.Pixels[y*d.Width+x]
}
