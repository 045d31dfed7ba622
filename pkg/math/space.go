// Package math provides the coordinate-tagged geometric primitives shared by
// every other package: points, vectors, normals, rays, bounds and the
// transforms between them. Every primitive carries its coordinate space as a
// Go generic type parameter, so a value built in Local space can never be
// passed where a Render-space value is expected without going through an
// explicit Transform.
package math

// Space is the marker interface every coordinate-space tag implements. Tags
// carry no data; they exist purely so the Go type checker can distinguish
// Point3[Local] from Point3[Render].
type Space interface {
	spaceTag()
}

// World is the space scene files are authored in.
type World struct{}

// Local is the per-object space a TriangleMesh's vertex data is stored in.
type Local struct{}

// Render is the camera-relative space rendering happens in: the camera's
// eye space, with the camera at the origin looking down -Z (see
// camera.New). It is rotated by the camera's look-at framing, so it is not
// axis-aligned with World unless the camera looks down World's -Z.
type Render struct{}

// ShadingNormalTangent is the per-hit tangent frame: Z is the shading
// normal, X is the tangent, Y is the bitangent.
type ShadingNormalTangent struct{}

// VertexNormalTangent is the per-vertex-normal tangent frame that normal
// maps are authored against, before the shading-normal frame is derived.
type VertexNormalTangent struct{}

func (World) spaceTag()                {}
func (Local) spaceTag()                {}
func (Render) spaceTag()               {}
func (ShadingNormalTangent) spaceTag() {}
func (VertexNormalTangent) spaceTag() {}
