// Package core holds the cross-cutting pieces shared by the rest of
// heropath: the Surface Area Heuristic BVH and the finite-bounds helper
// used to size the scene's bounding sphere.
package core

import (
	gomath "math"

	hm "github.com/lmarchetti/heropath/pkg/math"
)

// Item is anything a BVH can hold: a triangle inside a mesh-local BVH
// (space Local) or a primitive inside the scene-level BVH (space Render).
// Both levels described in spec §4.2 share this one generic implementation.
type Item[S hm.Space] interface {
	Bounds() hm.Bounds[S]
	Centroid() hm.Point3[S]
}

// Node is one node of the tree. Items is non-nil only on leaves.
type Node[S hm.Space, I Item[S]] struct {
	Bounds      hm.Bounds[S]
	Left, Right *Node[S, I]
	Items       []I
}

func (n *Node[S, I]) IsLeaf() bool { return n.Items != nil }

// BVH is a Surface Area Heuristic bounding volume hierarchy over a slice of
// Item values, built once and queried many times per spec §4.2.
type BVH[S hm.Space, I Item[S]] struct {
	Root *Node[S, I]
}

const (
	leafThreshold       = 4
	sahBuckets          = 12
	sahTraversalCost    = 1.0
	sahIntersectionCost = 1.0
)

// Build constructs a BVH over items. The input slice is copied first so the
// caller's slice is never reordered — the same discipline the teacher's
// median-split builder used for thread safety when multiple workers build
// BVHs concurrently.
func Build[S hm.Space, I Item[S]](items []I) *BVH[S, I] {
	if len(items) == 0 {
		return &BVH[S, I]{}
	}
	cp := make([]I, len(items))
	copy(cp, items)
	return &BVH[S, I]{Root: buildNode[S, I](cp)}
}

func buildNode[S hm.Space, I Item[S]](items []I) *Node[S, I] {
	bounds := items[0].Bounds()
	centroidBounds := hm.BoundsFromPoints(items[0].Centroid())
	for _, it := range items[1:] {
		bounds = bounds.Union(it.Bounds())
		centroidBounds = centroidBounds.UnionPoint(it.Centroid())
	}

	if len(items) <= leafThreshold {
		return &Node[S, I]{Bounds: bounds, Items: items}
	}

	axis, bucket, ok := findSAHSplit(items, bounds, centroidBounds)
	if !ok {
		return &Node[S, I]{Bounds: bounds, Items: items}
	}

	mid := partitionByBucket(items, axis, bucket, centroidBounds)
	if mid == 0 || mid == len(items) {
		// All items landed in one bucket (coincident centroids); avoid an
		// infinite recursion by falling back to a leaf.
		return &Node[S, I]{Bounds: bounds, Items: items}
	}

	return &Node[S, I]{
		Bounds: bounds,
		Left:   buildNode[S, I](items[:mid]),
		Right:  buildNode[S, I](items[mid:]),
	}
}

// findSAHSplit evaluates the binned SAH cost (Wald & Havran 2006) across
// all three axes and returns the cheapest split found, or ok=false if
// leaving the node as a single leaf is cheaper than splitting it.
func findSAHSplit[S hm.Space, I Item[S]](items []I, bounds, centroidBounds hm.Bounds[S]) (axis, bucket int, ok bool) {
	parentArea := bounds.SurfaceArea()
	if parentArea <= 0 {
		return 0, 0, false
	}

	bestCost := gomath.Inf(1)
	bestAxis, bestBucket := -1, -1

	for a := 0; a < 3; a++ {
		diag := centroidBounds.Diagonal()
		if diag.Component(a) <= 0 {
			continue
		}

		var bucketBounds [sahBuckets]hm.Bounds[S]
		var bucketCount [sahBuckets]int
		for i := range bucketBounds {
			bucketBounds[i] = hm.EmptyBounds[S]()
		}

		for _, it := range items {
			b := bucketIndex(it.Centroid(), centroidBounds, a)
			bucketCount[b]++
			bucketBounds[b] = bucketBounds[b].Union(it.Bounds())
		}

		var leftCount [sahBuckets - 1]int
		var leftArea [sahBuckets - 1]float64
		running := hm.EmptyBounds[S]()
		count := 0
		for i := 0; i < sahBuckets-1; i++ {
			running = running.Union(bucketBounds[i])
			count += bucketCount[i]
			leftCount[i] = count
			leftArea[i] = running.SurfaceArea()
		}

		running = hm.EmptyBounds[S]()
		count = 0
		for i := sahBuckets - 2; i >= 0; i-- {
			running = running.Union(bucketBounds[i+1])
			count += bucketCount[i+1]
			if leftCount[i] == 0 || count == 0 {
				continue
			}
			cost := sahTraversalCost + sahIntersectionCost*
				(leftArea[i]*float64(leftCount[i])+running.SurfaceArea()*float64(count))/parentArea
			if cost < bestCost {
				bestCost = cost
				bestAxis = a
				bestBucket = i
			}
		}
	}

	leafCost := sahIntersectionCost * float64(len(items))
	if bestAxis == -1 || bestCost >= leafCost {
		return 0, 0, false
	}
	return bestAxis, bestBucket, true
}

func bucketIndex[S hm.Space](centroid hm.Point3[S], centroidBounds hm.Bounds[S], axis int) int {
	offset := centroidBounds.Offset(centroid).Component(axis)
	b := int(offset * sahBuckets)
	if b < 0 {
		b = 0
	}
	if b >= sahBuckets {
		b = sahBuckets - 1
	}
	return b
}

// partitionByBucket reorders items in place so every item with bucket index
// <= bucket precedes every item with a higher bucket index, and returns the
// split point. This is a Hoare partition, not a stable sort — item order
// within each side is unspecified.
func partitionByBucket[S hm.Space, I Item[S]](items []I, axis, bucket int, centroidBounds hm.Bounds[S]) int {
	i, j := 0, len(items)-1
	for i <= j {
		for i <= j && bucketIndex(items[i].Centroid(), centroidBounds, axis) <= bucket {
			i++
		}
		for i <= j && bucketIndex(items[j].Centroid(), centroidBounds, axis) > bucket {
			j--
		}
		if i < j {
			items[i], items[j] = items[j], items[i]
			i++
			j--
		}
	}
	return i
}

// Hit walks the tree depth-first, visiting the left child before the right
// one (no near-child ordering), pruning
// subtrees whose bounds the ray misses, and returning the closest item hit
// along with the leaf-level hit test's own result value R (so callers can
// carry geometry-specific hit data, e.g. barycentric coordinates, without
// this package needing to know about triangles).
func Hit[S hm.Space, I Item[S], R any](bvh *BVH[S, I], r hm.RayT[S], tMax float64, test func(I, hm.RayT[S], float64) (R, float64, bool)) (R, bool) {
	var best R
	if bvh.Root == nil {
		return best, false
	}
	invDir := hm.NewVector3[S](invOrZero(r.Dir.X), invOrZero(r.Dir.Y), invOrZero(r.Dir.Z))
	found := false
	closest := tMax
	hitNode(bvh.Root, r, invDir, &closest, test, &best, &found)
	return best, found
}

func hitNode[S hm.Space, I Item[S], R any](n *Node[S, I], r hm.RayT[S], invDir hm.Vector3[S], closest *float64, test func(I, hm.RayT[S], float64) (R, float64, bool), best *R, found *bool) {
	if !n.Bounds.IntersectP(r, invDir, *closest) {
		return
	}
	if n.IsLeaf() {
		for _, item := range n.Items {
			if result, t, ok := test(item, r, *closest); ok {
				*closest = t
				*best = result
				*found = true
			}
		}
		return
	}
	hitNode(n.Left, r, invDir, closest, test, best, found)
	hitNode(n.Right, r, invDir, closest, test, best, found)
}

// HitP is the shadow-ray variant: it stops at the first occluder instead of
// finding the closest one, per design note (4) — every BVH traversal path
// offers both a full Hit and a boolean-only HitP.
func HitP[S hm.Space, I Item[S]](bvh *BVH[S, I], r hm.RayT[S], tMax float64, test func(I, hm.RayT[S], float64) bool) bool {
	if bvh.Root == nil {
		return false
	}
	invDir := hm.NewVector3[S](invOrZero(r.Dir.X), invOrZero(r.Dir.Y), invOrZero(r.Dir.Z))
	return hitNodeP(bvh.Root, r, invDir, tMax, test)
}

func hitNodeP[S hm.Space, I Item[S]](n *Node[S, I], r hm.RayT[S], invDir hm.Vector3[S], tMax float64, test func(I, hm.RayT[S], float64) bool) bool {
	if !n.Bounds.IntersectP(r, invDir, tMax) {
		return false
	}
	if n.IsLeaf() {
		for _, item := range n.Items {
			if test(item, r, tMax) {
				return true
			}
		}
		return false
	}
	return hitNodeP(n.Left, r, invDir, tMax, test) || hitNodeP(n.Right, r, invDir, tMax, test)
}

func invOrZero(v float64) float64 {
	if v == 0 {
		return gomath.Inf(1)
	}
	return 1 / v
}

// Stats reports basic structural statistics, useful for logging BVH build
// quality the way the teacher's progressive renderer logs render stats.
type Stats struct {
	TotalNodes, LeafNodes, MaxDepth, TotalItems int
	AvgLeafDepth                                float64
}

func CollectStats[S hm.Space, I Item[S]](bvh *BVH[S, I]) Stats {
	var s Stats
	if bvh.Root == nil {
		return s
	}
	collectStats(bvh.Root, 0, &s)
	if s.LeafNodes > 0 {
		s.AvgLeafDepth /= float64(s.LeafNodes)
	}
	return s
}

func collectStats[S hm.Space, I Item[S]](n *Node[S, I], depth int, s *Stats) {
	s.TotalNodes++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	if n.IsLeaf() {
		s.LeafNodes++
		s.TotalItems += len(n.Items)
		s.AvgLeafDepth += float64(depth)
		return
	}
	collectStats(n.Left, depth+1, s)
	collectStats(n.Right, depth+1, s)
}
