package geometry

import (
	"math"
	"sort"

	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/material"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

const (
	bvhLeafThreshold  = 4
	bvhBucketCount    = 12
	bvhTraversalCost  = 0.125
	bvhIntersectCost  = 1.0
)

// BVH is a bounding volume hierarchy over a fixed set of shapes, built
// once with the surface-area heuristic (spec §4.3) and queried many
// times during rendering. It is not itself a Shape: a BVH only
// accelerates Hit/BoundingBox queries, while area-light sampling holds
// direct references to the primitives it names.
type BVH struct {
	root  *bvhNode
	bound core.AABB
}

type bvhNode struct {
	bounds      core.AABB
	left, right *bvhNode
	shapes      []Shape // non-nil only on leaves
}

// NewBVH builds a BVH over shapes. An empty input yields a BVH whose
// Hit always misses and whose BoundingBox is the empty box.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{bound: core.EmptyAABB()}
	}
	items := make([]bvhItem, len(shapes))
	for i, s := range shapes {
		box := s.BoundingBox()
		items[i] = bvhItem{shape: s, bounds: box, centroid: box.Center()}
	}
	root := buildBVHNode(items)
	return &BVH{root: root, bound: root.bounds}
}

type bvhItem struct {
	shape    Shape
	bounds   core.AABB
	centroid vecmath.Vec3
}

// buildBVHNode recursively partitions items into a BVH node using
// binned SAH (spec §4.3): 12 buckets along the centroid bounds' longest
// axis, cost = c_trav + (count_L*SA(L) + count_R*SA(R))/SA(parent)
// compared against the cost of a single leaf.
func buildBVHNode(items []bvhItem) *bvhNode {
	bounds := core.EmptyAABB()
	centroidBounds := core.EmptyAABB()
	for _, it := range items {
		bounds = bounds.Union(it.bounds)
		centroidBounds = centroidBounds.UnionPoint(it.centroid)
	}

	makeLeaf := func() *bvhNode {
		shapes := make([]Shape, len(items))
		for i, it := range items {
			shapes[i] = it.shape
		}
		return &bvhNode{bounds: bounds, shapes: shapes}
	}

	if len(items) == 1 {
		return makeLeaf()
	}

	axis := centroidBounds.LongestAxis()
	axisMin := centroidBounds.AxisMin(axis)
	axisMax := centroidBounds.AxisMax(axis)

	// spec §4.3 step 3: N<=4, or every centroid collapses into one
	// bucket, means the binned-SAH loop below can't discriminate a
	// split; fall back to an equal-count median split and keep
	// recursing rather than leafing immediately (a leaf is only ever
	// forced here for N==1, above).
	if len(items) <= bvhLeafThreshold || axisMax-axisMin < 1e-12 {
		return medianSplit(items, axis)
	}

	type bucket struct {
		count int
		box   core.AABB
	}
	buckets := make([]bucket, bvhBucketCount)
	for i := range buckets {
		buckets[i].box = core.EmptyAABB()
	}
	bucketIndex := func(c vecmath.Vec3) int {
		b := int(bvhBucketCount * (axisValue(c, axis) - axisMin) / (axisMax - axisMin))
		if b < 0 {
			b = 0
		}
		if b >= bvhBucketCount {
			b = bvhBucketCount - 1
		}
		return b
	}
	for _, it := range items {
		b := bucketIndex(it.centroid)
		buckets[b].count++
		buckets[b].box = buckets[b].box.Union(it.bounds)
	}

	parentSA := bounds.SurfaceArea()
	bestCost := math.Inf(1)
	bestSplit := -1
	for split := 0; split < bvhBucketCount-1; split++ {
		leftBox, rightBox := core.EmptyAABB(), core.EmptyAABB()
		leftCount, rightCount := 0, 0
		for i := 0; i <= split; i++ {
			if buckets[i].count == 0 {
				continue
			}
			leftBox = leftBox.Union(buckets[i].box)
			leftCount += buckets[i].count
		}
		for i := split + 1; i < bvhBucketCount; i++ {
			if buckets[i].count == 0 {
				continue
			}
			rightBox = rightBox.Union(buckets[i].box)
			rightCount += buckets[i].count
		}
		if leftCount == 0 || rightCount == 0 {
			continue
		}
		cost := bvhTraversalCost + (float64(leftCount)*leftBox.SurfaceArea()+float64(rightCount)*rightBox.SurfaceArea())/parentSA
		if cost < bestCost {
			bestCost = cost
			bestSplit = split
		}
	}

	leafCost := bvhIntersectCost * float64(len(items))
	if bestSplit < 0 || leafCost < bestCost {
		return makeLeaf()
	}

	sort.Slice(items, func(i, j int) bool {
		return axisValue(items[i].centroid, axis) < axisValue(items[j].centroid, axis)
	})
	var mid int
	for i, it := range items {
		if bucketIndex(it.centroid) > bestSplit {
			mid = i
			break
		}
		mid = i + 1
	}
	if mid == 0 || mid == len(items) {
		mid = len(items) / 2
	}

	left := buildBVHNode(items[:mid])
	right := buildBVHNode(items[mid:])
	return &bvhNode{bounds: bounds, left: left, right: right}
}

// medianSplit partitions items into two equal-count halves by centroid
// position along axis and recurses into each (spec §4.3 step 3): used
// both for small leaves (N<=4) and when every centroid falls in one SAH
// bucket, where the binned cost loop below has nothing to discriminate.
func medianSplit(items []bvhItem, axis int) *bvhNode {
	bounds := core.EmptyAABB()
	for _, it := range items {
		bounds = bounds.Union(it.bounds)
	}
	sort.Slice(items, func(i, j int) bool {
		return axisValue(items[i].centroid, axis) < axisValue(items[j].centroid, axis)
	})
	mid := len(items) / 2
	left := buildBVHNode(items[:mid])
	right := buildBVHNode(items[mid:])
	return &bvhNode{bounds: bounds, left: left, right: right}
}

func axisValue(v vecmath.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Hit traverses the hierarchy, tightening tMax to the closest hit found
// so far so that sibling subtrees farther away are skipped entirely.
func (b *BVH) Hit(ray vecmath.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if b.root == nil {
		return nil, false
	}
	return hitNode(b.root, ray, tMin, tMax)
}

func hitNode(n *bvhNode, ray vecmath.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if !n.bounds.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if n.shapes != nil {
		var closest *material.SurfaceInteraction
		hitAny := false
		closestSoFar := tMax
		for _, s := range n.shapes {
			if hit, ok := s.Hit(ray, tMin, closestSoFar); ok {
				hitAny = true
				closestSoFar = hit.T
				closest = hit
			}
		}
		return closest, hitAny
	}

	leftHit, leftOK := hitNode(n.left, ray, tMin, tMax)
	newMax := tMax
	if leftOK {
		newMax = leftHit.T
	}
	rightHit, rightOK := hitNode(n.right, ray, tMin, newMax)
	if rightOK {
		return rightHit, true
	}
	return leftHit, leftOK
}

func (b *BVH) BoundingBox() core.AABB { return b.bound }
