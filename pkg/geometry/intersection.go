package geometry

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

const (
	// csgNudge moves the ray past a crossing before querying again
	csgNudge = 1e-6
	// csgTieEpsilon under which two crossings are treated as simultaneous
	csgTieEpsilon = 1e-9
	// maxCrossings bounds how many boundaries a single query walks through
	maxCrossings = 1000
)

// Intersection is the constructive solid geometry AND of two closed shapes.
// A ray starting inside both shapes does not hit at date 0; the next
// crossing into the common volume is reported instead.
type Intersection struct {
	A, B Shape
	bbox core.AABB
}

// NewIntersection creates the intersection of two shapes
func NewIntersection(a, b Shape) *Intersection {
	return &Intersection{
		A:    a,
		B:    b,
		bbox: a.BoundingBox().Intersect(b.BoundingBox()),
	}
}

// BoundingBox returns the overlap of both children's boxes
func (s *Intersection) BoundingBox() core.AABB {
	return s.bbox
}

// CollisionDate returns the date of the first entry into the common volume
func (s *Intersection) CollisionDate(ray core.Ray) (float64, bool) {
	collision, ok := s.Collision(ray)
	return collision.Date, ok
}

// Collision walks the boundary crossings of both children, tracking for each
// one whether the ray is inside it, until it enters the region inside both.
func (s *Intersection) Collision(ray core.Ray) (Collision, bool) {
	if s.bbox.IsEmpty() {
		return Collision{}, false
	}

	shapes := [2]Shape{s.A, s.B}
	inside := [2]bool{startsInside(s.A, ray), startsInside(s.B, ray)}
	traveled := 0.0

	for crossing := 0; crossing < maxCrossings; crossing++ {
		dateA, okA := s.A.CollisionDate(ray)
		dateB, okB := s.B.CollisionDate(ray)

		var next int
		var date float64
		switch {
		case !okA && !okB:
			return Collision{}, false
		case okA && !okB:
			next, date = 0, dateA
		case !okA && okB:
			next, date = 1, dateB
		case math.Abs(dateA-dateB) <= csgTieEpsilon:
			// Both boundaries are crossed at once
			if !inside[0] && !inside[1] {
				return s.hit(shapes[0], ray, traveled)
			}
			inside[0], inside[1] = !inside[0], !inside[1]
			step := math.Max(dateA, dateB) + csgNudge
			ray = ray.Advance(step)
			traveled += step
			continue
		case dateA < dateB:
			next, date = 0, dateA
		default:
			next, date = 1, dateB
		}

		// Entering one child while already inside the other
		if !inside[next] && inside[1-next] {
			return s.hit(shapes[next], ray, traveled)
		}

		inside[next] = !inside[next]
		step := date + csgNudge
		ray = ray.Advance(step)
		traveled += step
	}

	return Collision{}, false
}

// hit queries the crossing child again and shifts the date back to the caller's ray
func (s *Intersection) hit(shape Shape, ray core.Ray, traveled float64) (Collision, bool) {
	collision, ok := shape.Collision(ray)
	if !ok {
		return Collision{}, false
	}
	collision.Date += traveled
	return collision, true
}

// Contains reports whether the point is inside both children
func (s *Intersection) Contains(point core.Vec3) bool {
	probe := core.Ray{Origin: point, Direction: core.NewVec3(0, 0, 1)}
	return startsInside(s.A, probe) && startsInside(s.B, probe)
}

// startsInside reports whether the ray origin is inside the shape. Shapes that
// are not a Container are resolved by the parity of the forward crossings.
func startsInside(shape Shape, ray core.Ray) bool {
	if container, ok := shape.(Container); ok {
		return container.Contains(ray.Origin)
	}

	crossings := 0
	for i := 0; i < maxCrossings; i++ {
		date, ok := shape.CollisionDate(ray)
		if !ok {
			break
		}
		crossings++
		ray = ray.Advance(date + csgNudge)
	}
	return crossings%2 == 1
}
