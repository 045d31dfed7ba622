package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"go.uber.org/zap"

	hcolor "github.com/lmarchetti/heropath/pkg/color"
	"github.com/lmarchetti/heropath/pkg/film"
	"github.com/lmarchetti/heropath/pkg/integrator"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/renderer"
	"github.com/lmarchetti/heropath/pkg/sampler"
	"github.com/lmarchetti/heropath/pkg/scene"
)

// Config holds the driver's command-line configuration, the same shape
// the teacher's Config struct groups flags into (main.go), trimmed to the
// knobs spec §6's CLI surface actually names.
type Config struct {
	SceneIndex int
	SPP        int
	Width      int
	Height     int
	Renderer   string
	Sampler    string
	Filter     string
	MaxDepth   int
	Output     string
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	config, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sceneObj, err := createScene(config)
	if err != nil {
		logger.Error("failed to build scene", zap.Error(err))
		os.Exit(1)
	}

	startTime := time.Now()
	img, stats, err := render(config, sceneObj, logger)
	if err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}

	if err := saveImageToFile(img, config.Output); err != nil {
		logger.Error("failed to write output", zap.String("path", config.Output), zap.Error(err))
		os.Exit(1)
	}

	logger.Info("render complete",
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("totalPixels", stats.TotalPixels),
		zap.Int("totalSamples", stats.TotalSamples),
		zap.Float64("avgSamplesPerPixel", stats.AverageSamples()),
		zap.String("output", config.Output),
	)
}

// parseFlags parses the command-line surface spec §6 names verbatim.
func parseFlags() (Config, error) {
	config := Config{}
	flag.IntVar(&config.SceneIndex, "scene", 0, "which scene-builder to invoke")
	flag.IntVar(&config.SPP, "spp", 64, "samples per pixel")
	flag.IntVar(&config.Width, "width", 800, "image width")
	flag.IntVar(&config.Height, "height", 600, "image height")
	flag.StringVar(&config.Renderer, "renderer", "normal", "renderer strategy: normal, pt, nee, mis")
	flag.StringVar(&config.Sampler, "sampler", "random", "sampler: random, sobol")
	flag.StringVar(&config.Filter, "filter", "box", "reconstruction filter (only box is implemented)")
	flag.IntVar(&config.MaxDepth, "max-depth", 16, "maximum bounce depth")
	flag.IntVar(&config.MaxDepth, "d", 16, "maximum bounce depth (shorthand)")
	flag.StringVar(&config.Output, "output", "output.png", "output PNG path")
	flag.StringVar(&config.Output, "o", "output.png", "output PNG path (shorthand)")
	flag.Parse()

	switch config.Renderer {
	case "normal", "pt", "nee", "mis":
	default:
		return Config{}, fmt.Errorf("unknown renderer %q: must be one of normal, pt, nee, mis", config.Renderer)
	}
	switch config.Sampler {
	case "random", "sobol":
	default:
		return Config{}, fmt.Errorf("unknown sampler %q: must be one of random, sobol", config.Sampler)
	}
	if config.Filter != "box" {
		return Config{}, fmt.Errorf("unknown filter %q: only box is implemented", config.Filter)
	}
	if config.SPP <= 0 || config.Width <= 0 || config.Height <= 0 || config.MaxDepth <= 0 {
		return Config{}, fmt.Errorf("spp, width, height and max-depth must all be positive")
	}
	return config, nil
}

// createScene looks up config.SceneIndex in the built-in registry, per
// spec §6's "which scene-builder to invoke". There is no PBRT-path
// fallback here (unlike the teacher's string-typed --scene, which doubled
// as a file path): loaders.BuildScene remains reachable programmatically
// for anything that needs to load a PBRT file directly.
func createScene(config Config) (*scene.Scene, error) {
	builder, ok := scene.BuiltinScenes[config.SceneIndex]
	if !ok {
		return nil, fmt.Errorf("unknown scene index %d", config.SceneIndex)
	}
	sc := builder()
	sc.SamplingConfig.Width = config.Width
	sc.SamplingConfig.Height = config.Height
	sc.SamplingConfig.SamplesPerPixel = config.SPP
	sc.SamplingConfig.MaxDepth = config.MaxDepth
	return sc, nil
}

// render dispatches to the "normal"-visualization debug path or a full
// spectral renderer.Render pass, per spec §6's --renderer enum.
func render(config Config, sc *scene.Scene, logger *zap.Logger) (*image.RGBA, renderer.RenderStats, error) {
	if config.Renderer == "normal" {
		logger.Info("rendering surface normals", zap.Int("scene", config.SceneIndex))
		return renderNormals(sc, config.Width, config.Height), renderer.RenderStats{TotalPixels: config.Width * config.Height}, nil
	}

	strategy := strategyFor(config.Renderer)
	samplerFactory := samplerFactoryFor(config.Sampler, config.SPP, config.Width, config.Height)

	f := film.New(config.Width, config.Height, 1, hcolor.SRGB, hcolor.SRGBEOTF{})
	logger.Info("rendering",
		zap.String("renderer", config.Renderer),
		zap.String("sampler", config.Sampler),
		zap.Int("spp", config.SPP),
		zap.Int("width", config.Width),
		zap.Int("height", config.Height),
	)
	stats, err := renderer.Render(context.Background(), sc, f, renderer.Options{
		SamplesPerPixel: config.SPP,
		MaxDepth:        config.MaxDepth,
		RRMinBounces:    sc.SamplingConfig.RussianRouletteMinBounces,
		Strategy:        strategy,
		SamplerFactory:  samplerFactory,
	})
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	return f.ToImage(), stats, nil
}

func strategyFor(name string) integrator.Strategy {
	switch name {
	case "nee":
		return integrator.NEE{}
	case "mis":
		return integrator.MIS{}
	default:
		return integrator.PurePT{}
	}
}

func samplerFactoryFor(name string, spp, width, height int) sampler.Factory {
	if name == "sobol" {
		res := width
		if height > res {
			res = height
		}
		return sampler.ZSobolFactory{SPP: spp, Resolution: res, Seed: 1}
	}
	return sampler.RandomFactory{Seed: 1}
}

// renderNormals traces one primary ray per pixel and colors it by its
// shading normal (mapped from [-1,1] to [0,1]), bypassing the spectral
// pipeline entirely — a geometry/camera sanity check, not a light
// transport mode, which is why "normal" is the CLI's default.
func renderNormals(sc *scene.Scene, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	centerLensSample := hm.Point2{X: 0.5, Y: 0.5}
	for y := 0; y < height; y++ {
		t := 1 - (float64(y)+0.5)/float64(height)
		for x := 0; x < width; x++ {
			s := (float64(x) + 0.5) / float64(width)
			ray := sc.Camera.GenerateRay(s, t, centerLensSample)
			hit, _, ok := sc.Intersect(ray, 1e30)
			c := color.RGBA{A: 255}
			if ok {
				c.R = to8Bit(hit.Ns.X*0.5 + 0.5)
				c.G = to8Bit(hit.Ns.Y*0.5 + 0.5)
				c.B = to8Bit(hit.Ns.Z*0.5 + 0.5)
			}
			img.SetRGBA(x, y, c)
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

// saveImageToFile writes img as a PNG to filename.
func saveImageToFile(img *image.RGBA, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
