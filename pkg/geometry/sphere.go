package geometry

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// CollisionDate solves |o + t·d - c|² = r² and returns the smallest positive root
func (s *Sphere) CollisionDate(ray core.Ray) (float64, bool) {
	u := s.Center.Subtract(ray.Origin)
	v := ray.Direction

	uv := u.Dot(v)
	vv := v.Dot(v)
	delta := uv*uv + (s.Radius*s.Radius-u.Dot(u))*vv

	// Tangent rays count as misses
	if delta <= 0 {
		return 0, false
	}

	sqrtDelta := math.Sqrt(delta)

	// Try the closer intersection point first
	if root := (uv - sqrtDelta) / vv; root > 0 {
		return root, true
	}

	// The origin is inside the sphere
	if root := (uv + sqrtDelta) / vv; root > 0 {
		return root, true
	}

	// The sphere is behind the ray
	return 0, false
}

// Collision returns the hit record with the normal pointing away from the center
func (s *Sphere) Collision(ray core.Ray) (Collision, bool) {
	date, ok := s.CollisionDate(ray)
	if !ok {
		return Collision{}, false
	}

	position := ray.At(date)
	return Collision{
		Date:     date,
		Position: position,
		Normal:   position.Subtract(s.Center).Normalize(),
	}, true
}

// Contains reports whether the point is strictly inside the sphere
func (s *Sphere) Contains(point core.Vec3) bool {
	return point.Subtract(s.Center).LengthSquared() < s.Radius*s.Radius
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
