package primitive

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
)

// Primitive is a renderable object: a surface plus the material covering it
type Primitive interface {
	BoundingBox() core.AABB
	CollisionDate(ray core.Ray) (float64, bool)
	Collision(ray core.Ray) (geometry.Collision, bool)
	// MaterialAt returns the material at a collision previously reported by Collision
	MaterialAt(collision geometry.Collision) material.Material
}

// GeometricPrimitive binds a shape to a uniform material
type GeometricPrimitive struct {
	Shape    geometry.Shape
	Material material.Material
}

// NewGeometricPrimitive creates a primitive from a shape and a material
func NewGeometricPrimitive(shape geometry.Shape, mat material.Material) *GeometricPrimitive {
	return &GeometricPrimitive{Shape: shape, Material: mat}
}

// BoundingBox returns the shape's bounding box
func (p *GeometricPrimitive) BoundingBox() core.AABB {
	return p.Shape.BoundingBox()
}

// CollisionDate delegates to the shape
func (p *GeometricPrimitive) CollisionDate(ray core.Ray) (float64, bool) {
	return p.Shape.CollisionDate(ray)
}

// Collision delegates to the shape
func (p *GeometricPrimitive) Collision(ray core.Ray) (geometry.Collision, bool) {
	return p.Shape.Collision(ray)
}

// MaterialAt returns the same material everywhere
func (p *GeometricPrimitive) MaterialAt(geometry.Collision) material.Material {
	return p.Material
}
