package primitive

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
)

// TransformedPrimitive places a primitive in the world with an affine transform.
// Rays are moved to object space without renormalizing their direction, so
// dates are the same in both spaces.
type TransformedPrimitive struct {
	Primitive     Primitive
	ObjectToWorld core.Transform
	bbox          core.AABB
}

// NewTransformedPrimitive wraps a primitive with an object-to-world transform
func NewTransformedPrimitive(p Primitive, objectToWorld core.Transform) *TransformedPrimitive {
	return &TransformedPrimitive{
		Primitive:     p,
		ObjectToWorld: objectToWorld,
		bbox:          objectToWorld.ApplyAABB(p.BoundingBox()),
	}
}

// BoundingBox returns the world box around the transformed child box
func (p *TransformedPrimitive) BoundingBox() core.AABB {
	return p.bbox
}

// CollisionDate queries the child with the ray in object space
func (p *TransformedPrimitive) CollisionDate(ray core.Ray) (float64, bool) {
	return p.Primitive.CollisionDate(p.ObjectToWorld.ApplyInvRay(ray))
}

// Collision maps the child's collision back to world space
func (p *TransformedPrimitive) Collision(ray core.Ray) (geometry.Collision, bool) {
	collision, ok := p.Primitive.Collision(p.ObjectToWorld.ApplyInvRay(ray))
	if !ok {
		return geometry.Collision{}, false
	}

	return geometry.Collision{
		Date:     collision.Date,
		Position: p.ObjectToWorld.ApplyPoint(collision.Position),
		Normal:   p.ObjectToWorld.ApplyNormal(collision.Normal).Normalize(),
	}, true
}

// MaterialAt looks the material up on the child in object space
func (p *TransformedPrimitive) MaterialAt(collision geometry.Collision) material.Material {
	return p.Primitive.MaterialAt(geometry.Collision{
		Date:     collision.Date,
		Position: p.ObjectToWorld.ApplyInvPoint(collision.Position),
		Normal:   p.ObjectToWorld.ApplyInvNormal(collision.Normal).Normalize(),
	})
}
