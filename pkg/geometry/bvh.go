package geometry

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// indexedShape remembers the insertion order of a shape so ties resolve like CompoundShape
type indexedShape struct {
	shape Shape
	index int
}

// bvhNode represents a node in the Bounding Volume Hierarchy
type bvhNode struct {
	bbox        core.AABB
	left, right *bvhNode
	shapes      []indexedShape // Shapes of leaf nodes (nil for internal nodes)
}

// BVH is a Bounding Volume Hierarchy over shapes. It answers the same queries
// as a CompoundShape of the same shapes, including the tie rule, but only
// visits the nodes whose box the ray crosses before the best hit so far.
type BVH struct {
	root *bvhNode
	size int
}

// NewBVH constructs a BVH from shapes given in priority order
func NewBVH(shapes ...Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	indexed := make([]indexedShape, len(shapes))
	for i, shape := range shapes {
		indexed[i] = indexedShape{shape: shape, index: i}
	}
	return &BVH{root: buildBVH(indexed), size: len(shapes)}
}

// buildBVH recursively builds the BVH by splitting at the middle of the longest axis
func buildBVH(shapes []indexedShape) *bvhNode {
	bbox := core.EmptyAABB()
	for _, s := range shapes {
		bbox = bbox.Union(s.shape.BoundingBox())
	}

	leaf := &bvhNode{bbox: bbox, shapes: shapes}
	if len(shapes) <= leafThreshold {
		return leaf
	}

	axis := longestAxis(bbox)
	lo, hi := bbox.Min.Component(axis), bbox.Max.Component(axis)
	if !(hi > lo) {
		return leaf
	}
	split := (lo + hi) * 0.5

	var left, right []indexedShape
	for _, s := range shapes {
		if s.shape.BoundingBox().Center().Component(axis) < split {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}

	return &bvhNode{
		bbox:  bbox,
		left:  buildBVH(left),
		right: buildBVH(right),
	}
}

func longestAxis(bbox core.AABB) int {
	size := bbox.Size()
	switch {
	case size.X >= size.Y && size.X >= size.Z:
		return 0
	case size.Y >= size.Z:
		return 1
	default:
		return 2
	}
}

// Len returns the number of shapes in the hierarchy
func (b *BVH) Len() int {
	return b.size
}

// BoundingBox returns the box of the root node
func (b *BVH) BoundingBox() core.AABB {
	if b.root == nil {
		return core.EmptyAABB()
	}
	return b.root.bbox
}

// bvhHit is the best candidate found so far
type bvhHit struct {
	shape Shape
	index int
	date  float64
}

// better reports whether a hit at date by the shape of the given index beats the candidate
func (h *bvhHit) better(date float64, index int) bool {
	return h.shape == nil || date < h.date || (date == h.date && index < h.index)
}

func (b *BVH) nearest(ray core.Ray) bvhHit {
	var best bvhHit
	if b.root != nil {
		b.visit(b.root, ray, &best)
	}
	return best
}

// visit descends into the nodes whose box the ray enters no later than the best hit
func (b *BVH) visit(node *bvhNode, ray core.Ray, best *bvhHit) {
	entry, ok := node.bbox.CollisionDate(ray)
	if !ok || (best.shape != nil && entry > best.date) {
		return
	}

	if node.shapes != nil {
		for _, s := range node.shapes {
			if date, ok := s.shape.CollisionDate(ray); ok && best.better(date, s.index) {
				*best = bvhHit{shape: s.shape, index: s.index, date: date}
			}
		}
		return
	}

	b.visit(node.left, ray, best)
	b.visit(node.right, ray, best)
}

// CollisionDate returns the smallest date over all shapes
func (b *BVH) CollisionDate(ray core.Ray) (float64, bool) {
	best := b.nearest(ray)
	return best.date, best.shape != nil
}

// Collision delegates to the nearest shape
func (b *BVH) Collision(ray core.Ray) (Collision, bool) {
	best := b.nearest(ray)
	if best.shape == nil {
		return Collision{}, false
	}
	return best.shape.Collision(ray)
}
