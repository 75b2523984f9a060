package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray with a normalized direction.
// A zero direction is a programming error and panics.
func NewRay(origin, direction Vec3) Ray {
	if direction.IsZero() {
		panic("core: ray direction must be non-zero")
	}
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Advance returns the ray with its origin moved forward by t along the direction.
// Used to push secondary rays off a surface so they do not hit it again.
func (r Ray) Advance(t float64) Ray {
	return Ray{Origin: r.At(t), Direction: r.Direction}
}
