package geometry

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// CompoundShape groups shapes behind a single bounding box. The nearest child
// wins and, on equal dates, the child added first wins.
type CompoundShape struct {
	children []Shape
	bbox     core.AABB
}

// NewCompoundShape creates a compound shape from the given children
func NewCompoundShape(children ...Shape) *CompoundShape {
	c := &CompoundShape{}
	for _, child := range children {
		c.Add(child)
	}
	return c
}

// Add appends a child and grows the cached bounding box
func (c *CompoundShape) Add(shape Shape) {
	c.children = append(c.children, shape)
	c.bbox = c.bbox.Union(shape.BoundingBox())
}

// Len returns the number of children
func (c *CompoundShape) Len() int {
	return len(c.children)
}

// Children returns the children in insertion order
func (c *CompoundShape) Children() []Shape {
	return c.children
}

// BoundingBox returns the union of the children's boxes
func (c *CompoundShape) BoundingBox() core.AABB {
	return c.bbox
}

// nearest returns the index and date of the child hit first
func (c *CompoundShape) nearest(ray core.Ray) (int, float64, bool) {
	if _, ok := c.bbox.CollisionDate(ray); !ok {
		return -1, 0, false
	}

	best := -1
	bestDate := 0.0
	for i, child := range c.children {
		date, ok := child.CollisionDate(ray)
		if ok && (best < 0 || date < bestDate) {
			best = i
			bestDate = date
		}
	}
	return best, bestDate, best >= 0
}

// CollisionDate returns the smallest date over all children
func (c *CompoundShape) CollisionDate(ray core.Ray) (float64, bool) {
	_, date, ok := c.nearest(ray)
	return date, ok
}

// Collision delegates to the nearest child
func (c *CompoundShape) Collision(ray core.Ray) (Collision, bool) {
	index, _, ok := c.nearest(ray)
	if !ok {
		return Collision{}, false
	}
	return c.children[index].Collision(ray)
}
