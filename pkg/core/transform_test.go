package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransform_RoundTrip(t *testing.T) {
	transforms := []struct {
		name      string
		transform Transform
	}{
		{"identity", IdentityTransform()},
		{"translation", Translation(NewVec3(1, -2, 3))},
		{"uniform scaling", UniformScaling(2.5)},
		{"scaling", Scaling(1, 0.5, 4)},
		{"rotation x", RotationX(0.3)},
		{"rotation y", RotationY(-1.2)},
		{"rotation z", RotationZ(math.Pi / 3)},
		{"arbitrary axis", Rotation(NewVec3(1, 2, -1), 2.1)},
		{"composed", Scaling(2, 1, 3).
			Then(Rotation(NewVec3(0.3, -1, 0.2), 0.7)).
			Then(Translation(NewVec3(-4, 0.5, 9)))},
	}

	points := []Vec3{
		NewVec3(0, 0, 0),
		NewVec3(1, 2, 3),
		NewVec3(-7.5, 0.25, 100),
	}

	for _, tt := range transforms {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range points {
				roundTrip := tt.transform.ApplyInvPoint(tt.transform.ApplyPoint(p))
				if !roundTrip.ApproxEqual(p, 1e-4) {
					t.Errorf("Forward then inverse of %v gave %v", p, roundTrip)
				}
				roundTrip = tt.transform.Inverse().ApplyPoint(tt.transform.ApplyPoint(p))
				if !roundTrip.ApproxEqual(p, 1e-4) {
					t.Errorf("Forward then Inverse() of %v gave %v", p, roundTrip)
				}
			}
		})
	}
}

func TestTransform_Rotations(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		input     Vec3
		expected  Vec3
	}{
		{"90 degrees around z", RotationZ(math.Pi / 2), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"90 degrees around y", RotationY(math.Pi / 2), NewVec3(1, 0, 0), NewVec3(0, 0, -1)},
		{"90 degrees around x", RotationX(math.Pi / 2), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"120 degrees around diagonal", Rotation(NewVec3(1, 1, 1), 2*math.Pi/3), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transform.ApplyVector(tt.input)
			if !got.ApproxEqual(tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTransform_PointsAndVectors(t *testing.T) {
	tr := Translation(NewVec3(1, 2, 3))

	if got := tr.ApplyPoint(NewVec3(0, 0, 0)); got != NewVec3(1, 2, 3) {
		t.Errorf("Expected translated point, got %v", got)
	}
	// Directions ignore translations
	if got := tr.ApplyVector(NewVec3(0, 0, 1)); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected untouched vector, got %v", got)
	}
}

func TestTransform_ThenOrder(t *testing.T) {
	// Scale then translate differs from translate then scale
	scaleThenMove := UniformScaling(2).Then(Translation(NewVec3(1, 0, 0)))
	moveThenScale := Translation(NewVec3(1, 0, 0)).Then(UniformScaling(2))

	p := NewVec3(1, 0, 0)
	if got := scaleThenMove.ApplyPoint(p); !got.ApproxEqual(NewVec3(3, 0, 0), 1e-12) {
		t.Errorf("scale then move: expected (3,0,0), got %v", got)
	}
	if got := moveThenScale.ApplyPoint(p); !got.ApproxEqual(NewVec3(4, 0, 0), 1e-12) {
		t.Errorf("move then scale: expected (4,0,0), got %v", got)
	}
}

func TestTransform_NormalsStayPerpendicular(t *testing.T) {
	// Non-uniform scaling of the plane x + y = 0
	tr := Scaling(3, 1, 1)
	tangent := NewVec3(1, -1, 0)
	normal := NewVec3(1, 1, 0).Normalize()

	worldTangent := tr.ApplyVector(tangent)
	worldNormal := tr.ApplyNormal(normal)

	if d := worldTangent.Dot(worldNormal); math.Abs(d) > 1e-12 {
		t.Errorf("Expected transformed normal to stay perpendicular, dot=%g", d)
	}
	// Transforming the normal like a vector would break perpendicularity
	if d := worldTangent.Dot(tr.ApplyVector(normal)); math.Abs(d) < 1e-3 {
		t.Errorf("Expected naive vector transform to skew the normal, dot=%g", d)
	}
}

func TestTransform_LocalBasis(t *testing.T) {
	o := NewVec3(1, 2, 3)
	i := NewVec3(1, 1, 0).Normalize()
	j := NewVec3(-1, 1, 0).Normalize()
	k := NewVec3(0, 0, -1)

	v := NewVec3(-1, 2, 4)
	toLocal := WorldToLocal(o, i, j, k)

	expected := NewVec3(-math.Sqrt2, math.Sqrt2, -1)
	if got := toLocal.ApplyPoint(v); !got.ApproxEqual(expected, 1e-4) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if got := toLocal.ApplyPoint(toLocal.Inverse().ApplyPoint(v)); !got.ApproxEqual(v, 1e-4) {
		t.Errorf("Expected round trip to %v, got %v", v, got)
	}
}

func TestTransform_ApplyRayPreservesDates(t *testing.T) {
	tr := UniformScaling(2).Then(Translation(NewVec3(0, 0, 5)))
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 1, 0))

	objectRay := tr.ApplyInvRay(ray)
	for _, date := range []float64{0, 0.5, 3} {
		world := ray.At(date)
		object := tr.ApplyPoint(objectRay.At(date))
		if !world.ApproxEqual(object, 1e-12) {
			t.Errorf("Date %f: world %v and object %v disagree", date, world, object)
		}
	}
}

func TestTransform_ApplyAABB(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	moved := Translation(NewVec3(10, 0, 0)).ApplyAABB(box)

	if !moved.Min.ApproxEqual(NewVec3(9, -1, -1), 1e-12) || !moved.Max.ApproxEqual(NewVec3(11, 1, 1), 1e-12) {
		t.Errorf("Unexpected translated box %+v", moved)
	}

	rotated := RotationZ(math.Pi / 4).ApplyAABB(box)
	if !rotated.Max.ApproxEqual(NewVec3(math.Sqrt2, math.Sqrt2, 1), 1e-9) {
		t.Errorf("Unexpected rotated box %+v", rotated)
	}

	if full := Translation(NewVec3(1, 0, 0)).ApplyAABB(FullAABB()); full != FullAABB() {
		t.Errorf("Expected full box to stay full, got %+v", full)
	}
}

func TestTransform_MatrixLayout(t *testing.T) {
	tr := UniformScaling(2).Then(Translation(NewVec3(1, 2, 3)))
	expected := mgl64.Translate3D(1, 2, 3).Mul4(mgl64.Scale3D(2, 2, 2))

	if !tr.Matrix().ApproxEqualThreshold(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, tr.Matrix())
	}
	if got := tr.Matrix().At(0, 3); got != 1 {
		t.Errorf("Expected translation in the last column, got %g", got)
	}
	if !tr.Inverse().Matrix().Mul4(tr.Matrix()).ApproxEqualThreshold(mgl64.Ident4(), 1e-12) {
		t.Errorf("Expected inverse times forward to be the identity")
	}

	basis := LocalToWorld(NewVec3(1, 2, 3), NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0))
	if !basis.Inverse().Matrix().Mul4(basis.Matrix()).ApproxEqualThreshold(mgl64.Ident4(), 1e-12) {
		t.Errorf("Expected LocalToWorld inverse to undo the basis change")
	}
}
