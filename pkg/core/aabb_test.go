package core

import (
	"math"
	"testing"
)

func TestAABB_EmptyAndFull(t *testing.T) {
	empty := EmptyAABB()
	if !empty.IsEmpty() {
		t.Error("Expected empty box to be empty")
	}
	if !(AABB{}).IsEmpty() {
		t.Error("Expected zero value to be the empty box")
	}

	full := FullAABB()
	if full.IsEmpty() {
		t.Error("Expected full box to be non-empty")
	}
	if !full.Contains(NewVec3(1e300, -1e300, 0), 0) {
		t.Error("Expected full box to contain every point")
	}

	ray := NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if _, hit := empty.CollisionDate(ray); hit {
		t.Error("Expected no collision with the empty box")
	}
	if date, hit := full.CollisionDate(ray); !hit || date != 0 {
		t.Errorf("Expected full box hit at date 0, got %f (hit=%t)", date, hit)
	}
}

func TestAABB_AddPoint(t *testing.T) {
	box := EmptyAABB().AddPoint(NewVec3(1, 2, 3))
	if box.Min != NewVec3(1, 2, 3) || box.Max != NewVec3(1, 2, 3) {
		t.Errorf("Expected degenerate box at the point, got %+v", box)
	}

	box = box.AddPoint(NewVec3(-1, 5, 0))
	if box.Min != NewVec3(-1, 2, 0) || box.Max != NewVec3(1, 5, 3) {
		t.Errorf("Unexpected extended box %+v", box)
	}
}

func TestAABB_UnionLaws(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(2, -1, 0), NewVec3(3, 0.5, 4))

	if a.Union(b) != b.Union(a) {
		t.Error("Expected union to be commutative")
	}
	if a.Union(EmptyAABB()) != a || EmptyAABB().Union(a) != a {
		t.Error("Expected the empty box to be neutral for union")
	}

	u := a.Union(b)
	if u.Min != NewVec3(0, -1, 0) || u.Max != NewVec3(3, 1, 4) {
		t.Errorf("Unexpected union %+v", u)
	}
}

func TestAABB_IntersectLaws(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 2, 2))
	b := NewAABB(NewVec3(1, 1, 1), NewVec3(3, 3, 3))
	disjoint := NewAABB(NewVec3(5, 5, 5), NewVec3(6, 6, 6))

	if a.Intersect(a) != a {
		t.Error("Expected A ∩ A == A")
	}
	if a.Intersect(b) != b.Intersect(a) {
		t.Error("Expected intersection to be commutative")
	}

	i := a.Intersect(b)
	if i.Min != NewVec3(1, 1, 1) || i.Max != NewVec3(2, 2, 2) {
		t.Errorf("Unexpected intersection %+v", i)
	}
	if !a.Intersect(disjoint).IsEmpty() {
		t.Error("Expected disjoint boxes to intersect to the empty box")
	}
	if !a.Intersect(EmptyAABB()).IsEmpty() {
		t.Error("Expected intersection with the empty box to be empty")
	}
}

func TestAABB_CollisionDate(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name         string
		origin       Vec3
		direction    Vec3
		expectedHit  bool
		expectedDate float64
	}{
		{"hit from outside", NewVec3(5, 0, 0), NewVec3(-1, 0, 0), true, 4},
		{"origin inside", NewVec3(0, 0, 0), NewVec3(0, 1, 0), true, 0},
		{"pointing away", NewVec3(5, 0, 0), NewVec3(1, 0, 0), false, 0},
		{"miss", NewVec3(5, 3, 0), NewVec3(-1, 0, 0), false, 0},
		{"parallel inside slabs", NewVec3(0, 0.5, 5), NewVec3(0, 0, -1), true, 4},
		{"parallel outside slabs", NewVec3(0, 1.5, 5), NewVec3(0, 0, -1), false, 0},
		{"diagonal", NewVec3(3, 3, 3), NewVec3(-1, -1, -1), true, 2 * math.Sqrt(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, hit := box.CollisionDate(NewRay(tt.origin, tt.direction))
			if hit != tt.expectedHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectedHit, hit)
			}
			if hit && math.Abs(date-tt.expectedDate) > 1e-9 {
				t.Errorf("Expected date %f, got %f", tt.expectedDate, date)
			}
		})
	}
}

func TestAABB_NewAABBRejectsInvertedCorners(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for inverted corners")
		}
	}()
	NewAABB(NewVec3(1, 0, 0), NewVec3(0, 1, 1))
}
