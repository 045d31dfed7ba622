package lights

import (
	gomath "math"
	"sort"

	"github.com/lmarchetti/heropath/pkg/geometry"
	hm "github.com/lmarchetti/heropath/pkg/math"
	"github.com/lmarchetti/heropath/pkg/spectrum"
)

// EmissiveTriangleMesh turns a geometry.Mesh into an area light: every
// triangle emits Radiance from its front face. Per spec.md's own called-out
// inconsistency (design note 1, resolved in DESIGN.md), areas and the
// cumulative sampling table are computed once here in render space — not
// local space — so a non-uniform Local->Render scale never desyncs the PDF
// from the radiance it normalizes. Generalized from the teacher's
// per-triangle light wrapping (pkg/lights/quad_light.go's area-sampling
// shape) to an indexed mesh with a cumulative-area CDF.
type EmissiveTriangleMesh struct {
	positions [][3]hm.Point3[hm.Render] // per-triangle corners, render space
	normals   [][3]hm.Normal3[hm.Render]
	hasNormal bool

	cdf       []float64 // cumulative area fraction, length TriangleCount
	totalArea float64

	Radiance spectrum.Spectrum
	Scale    float64
	TwoSided bool
}

// NewEmissiveTriangleMesh transforms mesh into render space via toRender
// and precomputes its area-sampling table. mesh must outlive the call (its
// data is copied, not retained).
func NewEmissiveTriangleMesh(mesh *geometry.Mesh, toRender hm.Transform[hm.Local, hm.Render], radiance spectrum.Spectrum, scale float64, twoSided bool) *EmissiveTriangleMesh {
	n := mesh.TriangleCount()
	e := &EmissiveTriangleMesh{
		positions: make([][3]hm.Point3[hm.Render], n),
		normals:   make([][3]hm.Normal3[hm.Render], n),
		cdf:       make([]float64, n),
		Radiance:  radiance,
		Scale:     scale,
		TwoSided:  twoSided,
	}

	var cum float64
	for tri := 0; tri < n; tri++ {
		p0, p1, p2 := mesh.VertexPositions(tri)
		rp0, rp1, rp2 := toRender.ApplyPoint(p0), toRender.ApplyPoint(p1), toRender.ApplyPoint(p2)
		e.positions[tri] = [3]hm.Point3[hm.Render]{rp0, rp1, rp2}

		if n0, n1, n2, ok := mesh.VertexNormals(tri); ok {
			e.hasNormal = true
			e.normals[tri] = [3]hm.Normal3[hm.Render]{
				toRender.ApplyNormal(n0), toRender.ApplyNormal(n1), toRender.ApplyNormal(n2),
			}
		} else {
			gn := toRender.ApplyNormal(mesh.GeometricNormal(tri))
			e.normals[tri] = [3]hm.Normal3[hm.Render]{gn, gn, gn}
		}

		cum += triangleArea(rp0, rp1, rp2)
		e.cdf[tri] = cum
	}
	e.totalArea = cum
	if cum > 0 {
		for i := range e.cdf {
			e.cdf[i] /= cum
		}
	}
	return e
}

func triangleArea(p0, p1, p2 hm.Point3[hm.Render]) float64 {
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	return 0.5 * e1.Cross(e2).Length()
}

// sampleTriangle returns the index of the triangle whose cumulative-area
// bucket contains u, remapped to [0,1) within that bucket.
func (e *EmissiveTriangleMesh) sampleTriangle(u float64) (tri int, remapped float64) {
	tri = sort.Search(len(e.cdf), func(i int) bool { return e.cdf[i] > u })
	if tri >= len(e.cdf) {
		tri = len(e.cdf) - 1
	}
	lo := 0.0
	if tri > 0 {
		lo = e.cdf[tri-1]
	}
	hi := e.cdf[tri]
	if hi <= lo {
		return tri, 0.5
	}
	return tri, (u - lo) / (hi - lo)
}

func (e *EmissiveTriangleMesh) shadingNormal(tri int, b0, b1 float64) hm.Normal3[hm.Render] {
	n := e.normals[tri]
	b2 := 1 - b0 - b1
	x := n[0].X*b0 + n[1].X*b1 + n[2].X*b2
	y := n[0].Y*b0 + n[1].Y*b1 + n[2].Y*b2
	z := n[0].Z*b0 + n[1].Z*b1 + n[2].Z*b2
	return hm.NewNormal3[hm.Render](x, y, z).Normalized()
}

func (e *EmissiveTriangleMesh) surfacePoint(tri int, b0, b1 float64) hm.Point3[hm.Render] {
	p := e.positions[tri]
	b2 := 1 - b0 - b1
	x := p[0].X*b0 + p[1].X*b1 + p[2].X*b2
	y := p[0].Y*b0 + p[1].Y*b1 + p[2].Y*b2
	z := p[0].Z*b0 + p[1].Z*b1 + p[2].Z*b2
	return hm.Point3[hm.Render]{X: x, Y: y, Z: z}
}

func (e *EmissiveTriangleMesh) Phi(lambda spectrum.Wavelengths) spectrum.Sampled {
	l := spectrum.Sample(e.Radiance, lambda).Scale(e.Scale)
	area := e.totalArea
	if e.TwoSided {
		area *= 2
	}
	return l.Scale(gomath.Pi * area)
}

func (e *EmissiveTriangleMesh) emittedRadiance(cosLight float64, lambda spectrum.Wavelengths) (spectrum.Sampled, bool) {
	if cosLight == 0 || (cosLight < 0 && !e.TwoSided) {
		return spectrum.Sampled{}, false
	}
	return spectrum.Sample(e.Radiance, lambda).Scale(e.Scale), true
}

func (e *EmissiveTriangleMesh) Sample(p hm.Point3[hm.Render], _ hm.Normal3[hm.Render], u hm.Point2, lambda spectrum.Wavelengths) (Sample, bool) {
	if len(e.cdf) == 0 || e.totalArea <= 0 {
		return Sample{}, false
	}
	tri, remapped := e.sampleTriangle(u.X)
	b0, b1 := hm.SampleUniformTriangle(hm.Point2{X: remapped, Y: u.Y})

	lightP := e.surfacePoint(tri, b0, b1)
	lightN := e.shadingNormal(tri, b0, b1)

	d := lightP.Sub(p)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return Sample{}, false
	}
	dist := gomath.Sqrt(dist2)
	wi := d.Scale(1 / dist)

	cosLight := lightN.Dot(wi.Neg())
	l, ok := e.emittedRadiance(cosLight, lambda)
	if !ok {
		return Sample{}, false
	}

	pdfArea := 1 / e.totalArea
	if e.TwoSided {
		pdfArea /= 2
	}
	pdfSolidAngle := pdfArea * dist2 / gomath.Abs(cosLight)
	if gomath.IsInf(pdfSolidAngle, 1) || gomath.IsNaN(pdfSolidAngle) || pdfSolidAngle <= 0 {
		return Sample{}, false
	}

	return Sample{
		Wi:       wi,
		Distance: dist,
		L:        l,
		PDF:      pdfSolidAngle,
	}, true
}

// PDF recomputes the solid-angle density of wi for the MIS weight on a ray
// that hit this mesh via BSDF sampling rather than Sample: it re-intersects
// every triangle along the ray from p (the light carries no acceleration
// structure of its own — the scene's primitive BVH is what found the hit in
// the first place) and converts that triangle's area PDF the same way
// Sample does, so the two stay consistent.
func (e *EmissiveTriangleMesh) PDF(p hm.Point3[hm.Render], _ hm.Normal3[hm.Render], wi hm.Vector3[hm.Render]) float64 {
	if e.totalArea <= 0 {
		return 0
	}
	r := hm.NewRayT(p, wi)
	closestT := gomath.Inf(1)
	hitTri := -1
	var hitB0, hitB1 float64
	for tri, tv := range e.positions {
		hit, ok := hm.IntersectTriangle(r, tv[0], tv[1], tv[2], closestT)
		if !ok {
			continue
		}
		closestT = hit.T
		hitTri = tri
		hitB0, hitB1 = hit.B0, hit.B1
	}
	if hitTri < 0 {
		return 0
	}

	lightN := e.shadingNormal(hitTri, hitB0, hitB1)
	cosLight := lightN.Dot(wi.Neg())
	if cosLight <= 0 && !e.TwoSided {
		return 0
	}
	if cosLight == 0 {
		return 0
	}

	dist2 := closestT * closestT * wi.LengthSquared()
	pdfArea := 1 / e.totalArea
	if e.TwoSided {
		pdfArea /= 2
	}
	return pdfArea * dist2 / gomath.Abs(cosLight)
}

func (e *EmissiveTriangleMesh) IsDelta() bool { return false }

func (e *EmissiveTriangleMesh) Preprocess(hm.Point3[hm.Render], float64) {}
