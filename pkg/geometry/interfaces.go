package geometry

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// Collision describes where a ray meets a surface
type Collision struct {
	Date     float64   // Ray parameter of the hit, always > 0
	Position core.Vec3 // World position, equal to ray.At(Date)
	Normal   core.Vec3 // Outward unit normal at Position
}

// Shape interface for objects that can be hit by rays.
//
// Dates are ray parameters, so rays with non-unit directions are supported and
// a date designates the same point whatever the length of the direction.
// A date of zero or less is never reported.
type Shape interface {
	// BoundingBox returns a box enclosing the shape in its own frame
	BoundingBox() core.AABB
	// CollisionDate returns the smallest positive date at which the ray meets the surface
	CollisionDate(ray core.Ray) (float64, bool)
	// Collision returns the full record of the nearest forward intersection
	Collision(ray core.Ray) (Collision, bool)
}

// Container is implemented by closed shapes that can tell whether a point is inside them
type Container interface {
	Contains(point core.Vec3) bool
}
