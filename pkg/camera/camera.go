// Package camera generates primary rays directly in Render space: the
// camera defines Render space (eye at the origin, looking down -Z), so a
// generated ray needs no further transform before it reaches the scene's
// primitive BVH. Generalized from the teacher's fixed-viewport pinhole
// camera (pkg/renderer/camera.go's lowerLeftCorner/horizontal/vertical
// construction) into a configurable thin-lens perspective camera: look-at
// framing, vertical field of view, and an aperture/focus-distance lens
// model for depth of field, per spec §4.9.
package camera

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
)

// Config mirrors the teacher's CameraConfig knobs (look-from/at, fov),
// generalized with an aperture/focus pair for the thin-lens model.
type Config struct {
	LookFrom      hm.Point3[hm.World]
	LookAt        hm.Point3[hm.World]
	Up            hm.Vector3[hm.World]
	VFov          float64 // vertical field of view, degrees
	AspectRatio   float64
	Aperture      float64 // lens diameter; 0 disables depth of field
	FocusDistance float64
}

// Camera builds primary rays for screen coordinates in [0,1]^2. WorldToRender
// is the single transform every primitive.Surface caches against (spec
// §4.4), derived here as the inverse of the look-at framing.
type Camera struct {
	config Config

	origin                       hm.Point3[hm.Render]
	lowerLeftCorner              hm.Point3[hm.Render]
	horizontal, vertical         hm.Vector3[hm.Render]
	u, v, w                      hm.Vector3[hm.Render] // camera basis, expressed in itself: (1,0,0),(0,1,0),(0,0,-1)
	lensRadius                   float64
	worldToRender                hm.Transform[hm.World, hm.Render]
}

// New builds a Camera from cfg. Render space is defined as the camera's own
// eye space, so origin is always the Render-space zero point and u/v/w are
// always +X, +Y and -Z (the viewing direction); only worldToRender carries
// the look-at framing.
func New(cfg Config) *Camera {
	theta := cfg.VFov * gomath.Pi / 180
	halfHeight := gomath.Tan(theta / 2)
	halfWidth := cfg.AspectRatio * halfHeight

	forward := cfg.LookAt.Sub(cfg.LookFrom).Normalized()
	right := forward.Cross(cfg.Up).Normalized()
	up := right.Cross(forward)

	worldToRender := lookAtInverse(cfg.LookFrom, forward, right, up)

	focusDist := cfg.FocusDistance
	if focusDist <= 0 {
		focusDist = 1
	}

	uAxis := hm.NewVector3[hm.Render](1, 0, 0)
	vAxis := hm.NewVector3[hm.Render](0, 1, 0)
	wAxis := hm.NewVector3[hm.Render](0, 0, -1) // camera looks down -Z in its own space

	horizontal := uAxis.Scale(2 * halfWidth * focusDist)
	vertical := vAxis.Scale(2 * halfHeight * focusDist)
	origin := hm.Point3[hm.Render]{}
	lowerLeftCorner := origin.
		Offset(horizontal, -0.5).
		Offset(vertical, -0.5).
		Offset(wAxis, focusDist)

	return &Camera{
		config:          cfg,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               uAxis,
		v:               vAxis,
		w:               wAxis,
		lensRadius:      cfg.Aperture / 2,
		worldToRender:   worldToRender,
	}
}

// lookAtInverse builds World->Render directly: Render-space basis vectors
// are (right, up, -forward) expressed in World space, so the inverse
// (World->Render) has those as its rows, with translation -R*lookFrom.
func lookAtInverse(lookFrom hm.Point3[hm.World], forward, right, up hm.Vector3[hm.World]) hm.Transform[hm.World, hm.Render] {
	// Render->World matrix: columns are right, up, -forward, translation lookFrom.
	renderToWorld := [4][4]float64{
		{right.X, up.X, -forward.X, lookFrom.X},
		{right.Y, up.Y, -forward.Y, lookFrom.Y},
		{right.Z, up.Z, -forward.Z, lookFrom.Z},
		{0, 0, 0, 1},
	}
	worldToRenderM := invertRigid(right, up, forward, lookFrom)
	return hm.FromMatrix[hm.World, hm.Render](worldToRenderM, renderToWorld)
}

// invertRigid builds World->Render for a rigid (rotation+translation, no
// scale) look-at frame: the rotation's inverse is its transpose.
func invertRigid(right, up, forward hm.Vector3[hm.World], lookFrom hm.Point3[hm.World]) [4][4]float64 {
	tx := -(right.X*lookFrom.X + right.Y*lookFrom.Y + right.Z*lookFrom.Z)
	ty := -(up.X*lookFrom.X + up.Y*lookFrom.Y + up.Z*lookFrom.Z)
	tz := forward.X*lookFrom.X + forward.Y*lookFrom.Y + forward.Z*lookFrom.Z
	return [4][4]float64{
		{right.X, right.Y, right.Z, tx},
		{up.X, up.Y, up.Z, ty},
		{-forward.X, -forward.Y, -forward.Z, tz},
		{0, 0, 0, 1},
	}
}

// WorldToRender returns the transform every primitive.Surface caches
// against during Scene.Build, per spec §4.4.
func (c *Camera) WorldToRender() hm.Transform[hm.World, hm.Render] { return c.worldToRender }

// GenerateRay builds a primary ray for screen coordinates (s,t) in
// [0,1]^2, jittering the origin over the lens disk by lensSample when
// depth of field is enabled (spec §4.9).
func (c *Camera) GenerateRay(s, t float64, lensSample hm.Point2) hm.RayT[hm.Render] {
	origin := c.origin
	if c.lensRadius > 0 {
		d := hm.SampleUniformDiskConcentric(lensSample)
		offset := c.u.Scale(d.X * c.lensRadius).Add(c.v.Scale(d.Y * c.lensRadius))
		origin = origin.Offset(offset, 1)
	}

	target := c.lowerLeftCorner.
		Offset(c.horizontal, s).
		Offset(c.vertical, t)
	dir := target.Sub(origin)

	return hm.NewRayT(origin, dir)
}
