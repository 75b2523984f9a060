package geometry

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// parallelEpsilon bounds |n·d| below which a ray is treated as parallel to the plane
const parallelEpsilon = 1e-12

// Triangle represents a single triangle defined by three vertices.
// The normal follows the winding order (V1-V0)×(V2-V0).
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	normal     core.Vec3 // Cached unnormalized face normal
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: v1.Subtract(v0).Cross(v2.Subtract(v0)),
		bbox:   core.NewAABBFromPoints(v0, v1, v2),
	}
}

// CollisionDate intersects the supporting plane, then checks that the point is
// on the inner side of all three edges
func (t *Triangle) CollisionDate(ray core.Ray) (float64, bool) {
	denominator := t.normal.Dot(ray.Direction)

	// Parallel ray or degenerate triangle
	if math.Abs(denominator) < parallelEpsilon {
		return 0, false
	}

	lambda := t.normal.Dot(t.V0.Subtract(ray.Origin)) / denominator
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return 0, false
	}

	m := ray.At(lambda)
	a, b, c := t.V0, t.V1, t.V2

	// M must be on the same side of each edge as the opposite vertex
	if b.Subtract(a).Cross(m.Subtract(a)).Dot(m.Subtract(a).Cross(c.Subtract(a))) >= 0 &&
		a.Subtract(b).Cross(m.Subtract(b)).Dot(m.Subtract(b).Cross(c.Subtract(b))) >= 0 &&
		a.Subtract(c).Cross(m.Subtract(c)).Dot(m.Subtract(c).Cross(b.Subtract(c))) >= 0 {
		return lambda, true
	}

	return 0, false
}

// Collision returns the hit record with the winding-order normal
func (t *Triangle) Collision(ray core.Ray) (Collision, bool) {
	date, ok := t.CollisionDate(ray)
	if !ok {
		return Collision{}, false
	}

	return Collision{
		Date:     date,
		Position: ray.At(date),
		Normal:   t.normal.Normalize(),
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's unit normal vector
func (t *Triangle) Normal() core.Vec3 {
	return t.normal.Normalize()
}
