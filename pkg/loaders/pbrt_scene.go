package loaders

import (
	"fmt"
	"strconv"

	hcolor "github.com/lmarchetti/heropath/pkg/color"
	"github.com/lmarchetti/heropath/pkg/camera"
	"github.com/lmarchetti/heropath/pkg/geometry"
	"github.com/lmarchetti/heropath/pkg/lights"
	"github.com/lmarchetti/heropath/pkg/material"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/primitive"
	"github.com/lmarchetti/heropath/pkg/scene"
	"github.com/lmarchetti/heropath/pkg/spectrum"
	"github.com/lmarchetti/heropath/pkg/texture"
)

// BuildScene parses a PBRT-dialect scene file and converts it into a
// renderable *scene.Scene, grounded on the teacher's
// pkg/scene/pbrt_scene.go NewPBRTScene/convertCamera/convertMaterial/
// convertShape/convertLight/processAttributeBlock pipeline. Generalized
// from the teacher's RGB-only core.Vec3 shapes/materials to heropath's
// spectral material and texture-driven parameter model (SPEC_FULL.md
// §4.1); geometry stays triangle-mesh-only (spec §2), so a non-
// "trianglemesh" Shape statement is an error rather than silently
// skipped.
func BuildScene(filename string) (*scene.Scene, error) {
	pbrtScene, err := LoadPBRT(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load PBRT file: %w", err)
	}

	cfg := defaultSamplingConfig()
	cam, err := convertCamera(pbrtScene, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to convert camera: %w", err)
	}

	sc := &scene.Scene{Camera: cam, SamplingConfig: cfg}

	materials := make([]material.Material, len(pbrtScene.Materials))
	for i := range pbrtScene.Materials {
		mat, err := convertMaterial(&pbrtScene.Materials[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert material: %w", err)
		}
		materials[i] = mat
	}

	for i := range pbrtScene.Shapes {
		shapeStmt := &pbrtScene.Shapes[i]
		mat, err := materialFor(shapeStmt, materials)
		if err != nil {
			return nil, err
		}
		surf, err := convertShape(shapeStmt, mat)
		if err != nil {
			return nil, fmt.Errorf("failed to convert shape: %w", err)
		}
		sc.Primitives = append(sc.Primitives, surf)
	}

	worldToRender := cam.WorldToRender()

	for i := range pbrtScene.LightSources {
		light, err := convertLight(&pbrtScene.LightSources[i], worldToRender)
		if err != nil {
			return nil, fmt.Errorf("failed to convert light: %w", err)
		}
		sc.Lights = append(sc.Lights, light)
	}

	for i := range pbrtScene.Attributes {
		if err := processAttributeBlock(&pbrtScene.Attributes[i], sc, materials, worldToRender); err != nil {
			return nil, fmt.Errorf("failed to process attribute block: %w", err)
		}
	}

	sc.Build()
	return sc, nil
}

// defaultSamplingConfig mirrors spec §6's CLI defaults (--spp 64,
// --width 800, --height 600, --max-depth 16), overridden below by any
// Film statement present in the file.
func defaultSamplingConfig() scene.SamplingConfig {
	return scene.SamplingConfig{
		Width:                     800,
		Height:                    600,
		SamplesPerPixel:           64,
		MaxDepth:                  16,
		RussianRouletteMinBounces: 3,
	}
}

func convertCamera(pbrtScene *PBRTScene, cfg *scene.SamplingConfig) (*camera.Camera, error) {
	camCfg := camera.Config{
		LookFrom:      hm.NewPoint3[hm.World](0, 0, 0),
		LookAt:        hm.NewPoint3[hm.World](0, 0, -1),
		Up:            hm.NewVector3[hm.World](0, 1, 0),
		VFov:          90,
		AspectRatio:   float64(cfg.Width) / float64(cfg.Height),
		FocusDistance: 1,
	}

	if pbrtScene.LookAt != nil && pbrtScene.LookAtTo != nil && pbrtScene.LookAtUp != nil {
		camCfg.LookFrom = *pbrtScene.LookAt
		camCfg.LookAt = *pbrtScene.LookAtTo
		camCfg.Up = *pbrtScene.LookAtUp
	}

	if pbrtScene.Camera != nil && pbrtScene.Camera.Subtype == "perspective" {
		if fov, ok := pbrtScene.Camera.GetFloatParam("fov"); ok {
			if fov <= 0 || fov >= 180 {
				return nil, fmt.Errorf("invalid camera fov %f: must be between 0 and 180 degrees", fov)
			}
			camCfg.VFov = fov
		}
	}

	if pbrtScene.Film != nil {
		if width, ok := pbrtScene.Film.GetFloatParam("xresolution"); ok {
			if width <= 0 || width > 8192 {
				return nil, fmt.Errorf("invalid image width %f: must be between 1 and 8192", width)
			}
			cfg.Width = int(width)
		}
		if height, ok := pbrtScene.Film.GetFloatParam("yresolution"); ok {
			if height <= 0 || height > 8192 {
				return nil, fmt.Errorf("invalid image height %f: must be between 1 and 8192", height)
			}
			cfg.Height = int(height)
		}
		camCfg.AspectRatio = float64(cfg.Width) / float64(cfg.Height)
	}

	return camera.New(camCfg), nil
}

func rgbToSpectrum(c hcolor.RGB) spectrum.Spectrum {
	return spectrum.RGBToSpectrum([3]float64{c.R, c.G, c.B})
}

// convertMaterial maps a PBRT material statement to a texture-driven
// material.Material, defaulting every unset parameter the way the
// teacher's convertMaterial does.
func convertMaterial(stmt *PBRTStatement) (material.Material, error) {
	switch stmt.Subtype {
	case "diffuse", "matte":
		reflectance := hcolor.RGB{R: 0.7, G: 0.7, B: 0.7}
		if rgb, ok := stmt.GetRGBParam("reflectance"); ok {
			reflectance = *rgb
		}
		return material.DiffuseTextured{
			Reflectance: texture.ConstantSpectrum{Spectrum_: rgbToSpectrum(reflectance)},
		}, nil

	case "conductor":
		reflectance := hcolor.RGB{R: 0.7, G: 0.6, B: 0.5}
		if rgb, ok := stmt.GetRGBParam("eta"); ok {
			reflectance = *rgb
		}
		roughness := 0.0
		if r, ok := stmt.GetFloatParam("roughness"); ok {
			if r < 0 || r > 1 {
				return nil, fmt.Errorf("invalid conductor roughness %f: must be between 0 and 1", r)
			}
			roughness = r
		}
		return material.ConductorTextured{
			Reflectance: texture.ConstantSpectrum{Spectrum_: rgbToSpectrum(reflectance)},
			Roughness:   texture.ConstantFloat(roughness),
		}, nil

	case "dielectric":
		ior := 1.5
		if eta, ok := stmt.GetFloatParam("eta"); ok {
			if eta <= 0 {
				return nil, fmt.Errorf("invalid dielectric ior %f: must be positive", eta)
			}
			ior = eta
		}
		roughness := 0.0
		if r, ok := stmt.GetFloatParam("roughness"); ok {
			roughness = r
		}
		return material.DielectricTextured{Eta: ior, Roughness: texture.ConstantFloat(roughness)}, nil

	case "pbr", "substrate":
		baseColor := hcolor.RGB{R: 0.7, G: 0.7, B: 0.7}
		if rgb, ok := stmt.GetRGBParam("basecolor"); ok {
			baseColor = *rgb
		}
		metallic := 0.0
		if m, ok := stmt.GetFloatParam("metallic"); ok {
			metallic = m
		}
		ior := 1.5
		if eta, ok := stmt.GetFloatParam("eta"); ok {
			ior = eta
		}
		roughness := 0.5
		if r, ok := stmt.GetFloatParam("roughness"); ok {
			roughness = r
		}
		return material.PBRTextured{
			BaseColor: texture.ConstantSpectrum{Spectrum_: rgbToSpectrum(baseColor)},
			Metallic:  texture.ConstantFloat(metallic),
			IOR:       ior,
			Roughness: texture.ConstantFloat(roughness),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported material type: %s", stmt.Subtype)
	}
}

// materialFor resolves a shape statement's MaterialIndex against a
// materials slice, erroring the way the teacher's inline check does
// rather than silently defaulting.
func materialFor(stmt *PBRTStatement, materials []material.Material) (material.Material, error) {
	if stmt.MaterialIndex < 0 || stmt.MaterialIndex >= len(materials) {
		return nil, fmt.Errorf("shape has no valid material (MaterialIndex: %d)", stmt.MaterialIndex)
	}
	return materials[stmt.MaterialIndex], nil
}

// convertShape builds a *primitive.Surface from a "trianglemesh" Shape
// statement's inline P/indices parameters (and, when present, N/uv),
// matching the teacher's convertShape trianglemesh case exactly in how it
// reads the flat parameter arrays. Every other PBRT shape subtype
// (sphere, bilinearPatch, ...) has no SPEC_FULL.md surface to bind to —
// triangle meshes are the only renderable geometry (spec §2) — so it is
// an error rather than a silent skip.
func convertShape(stmt *PBRTStatement, mat material.Material) (*primitive.Surface, error) {
	if stmt.Subtype != "trianglemesh" {
		return nil, fmt.Errorf("unsupported shape type: %s (only trianglemesh is a renderable surface)", stmt.Subtype)
	}

	pParam, ok := stmt.Parameters["P"]
	if !ok || len(pParam.Values)%3 != 0 {
		return nil, fmt.Errorf("trianglemesh missing or invalid vertices")
	}
	positions := make([]hm.Point3[hm.Local], 0, len(pParam.Values)/3)
	for i := 0; i < len(pParam.Values); i += 3 {
		x, err1 := strconv.ParseFloat(pParam.Values[i], 64)
		y, err2 := strconv.ParseFloat(pParam.Values[i+1], 64)
		z, err3 := strconv.ParseFloat(pParam.Values[i+2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("invalid vertex coordinate in trianglemesh P")
		}
		positions = append(positions, hm.NewPoint3[hm.Local](x, y, z))
	}

	indicesParam, ok := stmt.Parameters["indices"]
	if !ok || len(indicesParam.Values)%3 != 0 {
		return nil, fmt.Errorf("trianglemesh missing or invalid indices")
	}
	indices := make([]int32, 0, len(indicesParam.Values))
	for _, s := range indicesParam.Values {
		idx, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid trianglemesh index %q: %w", s, err)
		}
		indices = append(indices, int32(idx))
	}

	mesh := &geometry.Mesh{Positions: positions, Indices: indices}

	if nParam, ok := stmt.Parameters["N"]; ok && len(nParam.Values) == len(pParam.Values) {
		mesh.Normals = make([]hm.Normal3[hm.Local], 0, len(positions))
		for i := 0; i < len(nParam.Values); i += 3 {
			x, _ := strconv.ParseFloat(nParam.Values[i], 64)
			y, _ := strconv.ParseFloat(nParam.Values[i+1], 64)
			z, _ := strconv.ParseFloat(nParam.Values[i+2], 64)
			mesh.Normals = append(mesh.Normals, hm.NewNormal3[hm.Local](x, y, z))
		}
	}
	if uvParam, ok := stmt.Parameters["uv"]; ok && len(uvParam.Values) == 2*len(positions) {
		mesh.UVs = make([]hm.Point2, 0, len(positions))
		for i := 0; i < len(uvParam.Values); i += 2 {
			u, _ := strconv.ParseFloat(uvParam.Values[i], 64)
			v, _ := strconv.ParseFloat(uvParam.Values[i+1], 64)
			mesh.UVs = append(mesh.UVs, hm.Point2{X: u, Y: v})
		}
		mesh.ComputeTangents()
	}

	return &primitive.Surface{
		Mesh:         mesh,
		BVH:          geometry.BuildBVH(mesh),
		Material:     mat,
		LocalToWorld: hm.FromMatrix[hm.Local, hm.World](identityMatrix4(), identityMatrix4()),
	}, nil
}

// identityMatrix4 is the identity Local->World transform every shape gets:
// per-shape Transform/Translate statements are not modeled (the teacher's
// own convertShape ignores them too), matching "keep HOW" at the
// granularity the teacher actually implemented it.
func identityMatrix4() [4][4]float64 {
	var m [4][4]float64
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// convertLight maps a top-level PBRT LightSource statement to a
// pkg/lights implementation, per the teacher's convertLight subtype
// switch. PBRT positions/directions are authored in World space;
// worldToRender places them in the Render space every light's fields
// expect, the same transform primitives cache in Scene.Build.
func convertLight(stmt *PBRTStatement, worldToRender hm.Transform[hm.World, hm.Render]) (lights.Light, error) {
	switch stmt.Subtype {
	case "point":
		intensity := hcolor.RGB{R: 10, G: 10, B: 10}
		if rgb, ok := stmt.GetRGBParam("I"); ok {
			intensity = *rgb
		}
		from := hm.NewPoint3[hm.World](0, 5, 0)
		if pos, ok := stmt.GetPoint3Param("from"); ok {
			from = *pos
		}
		return lights.Point{
			Position:  worldToRender.ApplyPoint(from),
			Intensity: rgbToSpectrum(intensity),
			Scale:     1,
		}, nil

	case "distant":
		radiance := hcolor.RGB{R: 3, G: 3, B: 3}
		if rgb, ok := stmt.GetRGBParam("L"); ok {
			radiance = *rgb
		}
		from := hm.NewPoint3[hm.World](0, 1, 0)
		to := hm.NewPoint3[hm.World](0, 0, 0)
		if p, ok := stmt.GetPoint3Param("from"); ok {
			from = *p
		}
		if p, ok := stmt.GetPoint3Param("to"); ok {
			to = *p
		}
		dirWorld := hm.NewVector3[hm.World](to.X-from.X, to.Y-from.Y, to.Z-from.Z).Normalized()
		dir := worldToRender.ApplyVector(dirWorld).Normalized()
		return &lights.Directional{Direction: dir, Radiance: rgbToSpectrum(radiance), Scale: 1}, nil

	case "infinite":
		radiance := hcolor.RGB{R: 1, G: 1, B: 1}
		if rgb, ok := stmt.GetRGBParam("L"); ok {
			radiance = *rgb
		}
		return &lights.Uniform{Radiance: rgbToSpectrum(radiance), Scale: 1}, nil

	default:
		return nil, fmt.Errorf("unsupported light type: %s", stmt.Subtype)
	}
}

// processAttributeBlock converts one AttributeBegin/AttributeEnd block,
// handling AreaLightSource's material override exactly as the teacher's
// processAttributeBlock does: an AreaLightSource nested with a shape
// replaces that shape's material with an Emissive radiator instead of
// producing a separate Light entry.
func processAttributeBlock(block *AttributeBlock, sc *scene.Scene, globalMaterials []material.Material, worldToRender hm.Transform[hm.World, hm.Render]) error {
	localMaterials := make([]material.Material, len(block.Materials))
	for i := range block.Materials {
		mat, err := convertMaterial(&block.Materials[i])
		if err != nil {
			return fmt.Errorf("failed to convert material in attribute block: %w", err)
		}
		localMaterials[i] = mat
	}

	for i := range block.Shapes {
		shapeStmt := &block.Shapes[i]
		var mat material.Material
		switch {
		case shapeStmt.MaterialIndex >= 0 && shapeStmt.MaterialIndex < len(localMaterials):
			mat = localMaterials[shapeStmt.MaterialIndex]
		case shapeStmt.MaterialIndex >= 0 && shapeStmt.MaterialIndex < len(globalMaterials):
			mat = globalMaterials[shapeStmt.MaterialIndex]
		default:
			return fmt.Errorf("shape has no valid material (MaterialIndex: %d)", shapeStmt.MaterialIndex)
		}

		for i := range block.LightSources {
			lightStmt := &block.LightSources[i]
			if lightStmt.Type != "AreaLightSource" {
				continue
			}
			if rgb, ok := lightStmt.GetRGBParam("L"); ok {
				mat = material.Emissive{Radiance: rgbToSpectrum(*rgb), Scale: 1}
			}
			break
		}

		surf, err := convertShape(shapeStmt, mat)
		if err != nil {
			return fmt.Errorf("failed to convert shape in attribute block: %w", err)
		}
		sc.Primitives = append(sc.Primitives, surf)
	}

	for i := range block.LightSources {
		lightStmt := &block.LightSources[i]
		if lightStmt.Type == "AreaLightSource" {
			continue
		}
		light, err := convertLight(lightStmt, worldToRender)
		if err != nil {
			return fmt.Errorf("failed to convert light in attribute block: %w", err)
		}
		sc.Lights = append(sc.Lights, light)
	}

	return nil
}
