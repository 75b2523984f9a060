package geometry

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// Sphere tracing defaults
const (
	DefaultImplicitEpsilon  = 1e-5
	DefaultImplicitMaxDate  = 100.0
	DefaultImplicitMaxSteps = 10000
	gradientStep            = 1e-6
)

// DistanceEstimator returns a lower bound of the distance to a surface.
// Negative values are inside the surface.
type DistanceEstimator interface {
	Distance(point core.Vec3) float64
}

// SignedDistance describes a closed surface as the zero set of a distance function
type SignedDistance interface {
	DistanceEstimator
	// Gradient returns a vector pointing outward, it need not be normalized
	Gradient(point core.Vec3) core.Vec3
	// Bounds returns a box that encloses the whole surface
	Bounds() core.AABB
}

// ImplicitShape renders a signed distance function by sphere tracing
type ImplicitShape struct {
	SDF      SignedDistance
	Epsilon  float64 // Distance under which a point is on the surface
	MaxDate  float64 // Marching stops past this ray parameter
	MaxSteps int     // Upper bound on marching iterations
	bounds   core.AABB
}

// NewImplicitShape creates an implicit shape with the default marching settings
func NewImplicitShape(sdf SignedDistance) *ImplicitShape {
	return &ImplicitShape{
		SDF:      sdf,
		Epsilon:  DefaultImplicitEpsilon,
		MaxDate:  DefaultImplicitMaxDate,
		MaxSteps: DefaultImplicitMaxSteps,
		bounds:   sdf.Bounds(),
	}
}

// CollisionDate marches along the ray by the unsigned distance to the surface.
// A ray starting on the surface first steps off the epsilon shell, so date 0
// is never reported.
func (s *ImplicitShape) CollisionDate(ray core.Ray) (float64, bool) {
	margin := 10 * s.Epsilon
	entry, ok := s.bounds.Expand(margin).CollisionDate(ray)
	if !ok {
		return 0, false
	}

	invNorm := 1 / ray.Direction.Length()
	date := entry
	leftStart := false

	for step := 0; step < s.MaxSteps && date < s.MaxDate; step++ {
		distance := math.Abs(s.SDF.Distance(ray.At(date)))
		if distance < s.Epsilon {
			if leftStart {
				return date, true
			}
			distance = s.Epsilon
		} else {
			leftStart = true
		}
		date += distance * invNorm
	}

	return 0, false
}

// Collision returns the hit record with the normalized gradient as normal
func (s *ImplicitShape) Collision(ray core.Ray) (Collision, bool) {
	date, ok := s.CollisionDate(ray)
	if !ok {
		return Collision{}, false
	}

	position := ray.At(date)
	return Collision{
		Date:     date,
		Position: position,
		Normal:   s.SDF.Gradient(position).Normalize(),
	}, true
}

// Contains reports whether the distance function is negative at point
func (s *ImplicitShape) Contains(point core.Vec3) bool {
	return s.SDF.Distance(point) < 0
}

// BoundingBox returns the bounds of the distance function
func (s *ImplicitShape) BoundingBox() core.AABB {
	return s.bounds
}

// NumericalGradient estimates the gradient of a distance function by central differences
func NumericalGradient(sdf DistanceEstimator, point core.Vec3) core.Vec3 {
	dx := core.NewVec3(gradientStep, 0, 0)
	dy := core.NewVec3(0, gradientStep, 0)
	dz := core.NewVec3(0, 0, gradientStep)

	return core.NewVec3(
		sdf.Distance(point.Add(dx))-sdf.Distance(point.Subtract(dx)),
		sdf.Distance(point.Add(dy))-sdf.Distance(point.Subtract(dy)),
		sdf.Distance(point.Add(dz))-sdf.Distance(point.Subtract(dz)),
	).Multiply(1 / (2 * gradientStep))
}

// Cube is an axis-aligned cube centered on the origin
type Cube struct {
	HalfSize float64
}

// NewCube creates a cube spanning [-halfSize, halfSize] on each axis
func NewCube(halfSize float64) *Cube {
	return &Cube{HalfSize: halfSize}
}

// Distance uses the Chebyshev norm, which never overestimates the Euclidean distance
func (c *Cube) Distance(point core.Vec3) float64 {
	return math.Max(math.Abs(point.X), math.Max(math.Abs(point.Y), math.Abs(point.Z))) - c.HalfSize
}

// Gradient returns the signed axis of the dominant coordinate
func (c *Cube) Gradient(point core.Vec3) core.Vec3 {
	ax, ay, az := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	switch {
	case ax >= ay && ax >= az:
		return core.NewVec3(math.Copysign(1, point.X), 0, 0)
	case ay >= az:
		return core.NewVec3(0, math.Copysign(1, point.Y), 0)
	default:
		return core.NewVec3(0, 0, math.Copysign(1, point.Z))
	}
}

// Bounds returns the cube itself
func (c *Cube) Bounds() core.AABB {
	h := core.NewVec3(c.HalfSize, c.HalfSize, c.HalfSize)
	return core.NewAABB(h.Negate(), h)
}

// Torus lies in the XY plane around the Z axis
type Torus struct {
	MajorRadius float64 // Distance from the center to the tube center
	MinorRadius float64 // Radius of the tube
}

// NewTorus creates a torus centered on the origin
func NewTorus(majorRadius, minorRadius float64) *Torus {
	return &Torus{MajorRadius: majorRadius, MinorRadius: minorRadius}
}

// Distance returns the exact Euclidean signed distance
func (t *Torus) Distance(point core.Vec3) float64 {
	q := math.Hypot(point.X, point.Y) - t.MajorRadius
	return math.Hypot(q, point.Z) - t.MinorRadius
}

// Gradient is estimated numerically
func (t *Torus) Gradient(point core.Vec3) core.Vec3 {
	return NumericalGradient(t, point)
}

// Bounds returns the tightest box around the torus
func (t *Torus) Bounds() core.AABB {
	r := t.MajorRadius + t.MinorRadius
	return core.NewAABB(
		core.NewVec3(-r, -r, -t.MinorRadius),
		core.NewVec3(r, r, t.MinorRadius),
	)
}
