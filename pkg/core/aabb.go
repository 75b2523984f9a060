package core

import "math"

// parallelEpsilon is the direction magnitude below which a ray is treated as
// parallel to a pair of slabs.
const parallelEpsilon = 1e-12

// AABB represents an axis-aligned bounding box. The zero value is the empty box.
type AABB struct {
	Min      Vec3 // Minimum corner
	Max      Vec3 // Maximum corner
	nonEmpty bool
}

// EmptyAABB returns the box containing nothing
func EmptyAABB() AABB {
	return AABB{}
}

// FullAABB returns the box containing the whole space
func FullAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min:      NewVec3(-inf, -inf, -inf),
		Max:      NewVec3(inf, inf, inf),
		nonEmpty: true,
	}
}

// NewAABB creates a new AABB from min and max corners.
// Panics if min is greater than max on any axis.
func NewAABB(min, max Vec3) AABB {
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		panic("core: AABB min corner must not exceed max corner")
	}
	return AABB{Min: min, Max: max, nonEmpty: true}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box = box.AddPoint(point)
	}
	return box
}

// IsEmpty reports whether the box contains no point
func (aabb AABB) IsEmpty() bool {
	return !aabb.nonEmpty
}

// AddPoint returns the box extended to contain point
func (aabb AABB) AddPoint(point Vec3) AABB {
	if aabb.IsEmpty() {
		return AABB{Min: point, Max: point, nonEmpty: true}
	}
	return AABB{Min: aabb.Min.Min(point), Max: aabb.Max.Max(point), nonEmpty: true}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	switch {
	case aabb.IsEmpty():
		return other
	case other.IsEmpty():
		return aabb
	}
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max), nonEmpty: true}
}

// Intersect returns the AABB shared by both boxes; disjoint boxes give the empty box
func (aabb AABB) Intersect(other AABB) AABB {
	if aabb.IsEmpty() || other.IsEmpty() {
		return EmptyAABB()
	}

	min := aabb.Min.Max(other.Min)
	max := aabb.Max.Min(other.Max)
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return EmptyAABB()
	}
	return AABB{Min: min, Max: max, nonEmpty: true}
}

// Contains reports whether point lies inside the box grown by eps on every side
func (aabb AABB) Contains(point Vec3, eps float64) bool {
	if aabb.IsEmpty() {
		return false
	}
	return point.X >= aabb.Min.X-eps && point.X <= aabb.Max.X+eps &&
		point.Y >= aabb.Min.Y-eps && point.Y <= aabb.Max.Y+eps &&
		point.Z >= aabb.Min.Z-eps && point.Z <= aabb.Max.Z+eps
}

// CollisionDate returns the parameter at which the ray enters the box using the
// slab method. The date is clamped to 0 when the origin is already inside.
func (aabb AABB) CollisionDate(ray Ray) (float64, bool) {
	if aabb.IsEmpty() {
		return 0, false
	}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Component(axis)
		max := aabb.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		// Ray is parallel to this pair of slabs
		if math.Abs(direction) < parallelEpsilon {
			if origin < min || origin > max {
				return 0, false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}

	if tMin > tMax || tMax < 0 {
		return 0, false
	}
	return math.Max(tMin, 0), true
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	if aabb.IsEmpty() {
		return Vec3{}
	}
	return aabb.Max.Subtract(aabb.Min)
}

// Corners returns the eight corners of a non-empty box
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := range corners {
		corners[i] = Vec3{
			X: pick(i&1 != 0, aabb.Max.X, aabb.Min.X),
			Y: pick(i&2 != 0, aabb.Max.Y, aabb.Min.Y),
			Z: pick(i&4 != 0, aabb.Max.Z, aabb.Min.Z),
		}
	}
	return corners
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	if aabb.IsEmpty() {
		return aabb
	}
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min:      aabb.Min.Subtract(expansion),
		Max:      aabb.Max.Add(expansion),
		nonEmpty: true,
	}
}

func (aabb AABB) isUnbounded() bool {
	for axis := 0; axis < 3; axis++ {
		if math.IsInf(aabb.Min.Component(axis), 0) || math.IsInf(aabb.Max.Component(axis), 0) {
			return true
		}
	}
	return false
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
