package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

func TestIntersection_Lens(t *testing.T) {
	lens := NewIntersection(
		NewSphere(core.NewVec3(-0.5, 0, 0), 1),
		NewSphere(core.NewVec3(0.5, 0, 0), 1),
	)

	collision, hit := lens.Collision(core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0)))
	if !hit {
		t.Fatal("Expected to hit the lens")
	}
	if math.Abs(collision.Date-4.5) > 1e-6 {
		t.Errorf("Expected date 4.5, got %f", collision.Date)
	}
	if !collision.Normal.ApproxEqual(core.NewVec3(1, 0, 0), 1e-6) {
		t.Errorf("Expected normal (1,0,0), got %v", collision.Normal)
	}

	// A ray through only one of the spheres misses the lens
	if _, hit := lens.CollisionDate(core.NewRay(core.NewVec3(-1.2, 5, 0), core.NewVec3(0, -1, 0))); hit {
		t.Error("Expected a ray through one sphere only to miss")
	}
}

func TestIntersection_StartInsideBoth(t *testing.T) {
	lens := NewIntersection(
		NewSphere(core.NewVec3(-0.5, 0, 0), 1),
		NewSphere(core.NewVec3(0.5, 0, 0), 1),
	)

	// Leaving the common volume from inside is not an entry
	if date, hit := lens.CollisionDate(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))); hit {
		t.Errorf("Expected no hit from inside both shapes, got date %f", date)
	}
}

func TestIntersection_RoundedCube(t *testing.T) {
	rounded := NewIntersection(
		NewImplicitShape(NewCube(1)),
		NewSphere(core.Vec3{}, 1.3),
	)

	// Along an axis the cube face is reached first
	collision, hit := rounded.Collision(core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0)))
	if !hit {
		t.Fatal("Expected a hit along the axis")
	}
	if math.Abs(collision.Date-4) > 1e-4 {
		t.Errorf("Expected date 4, got %f", collision.Date)
	}

	// Toward a corner the sphere clips the cube
	diagonal := core.NewVec3(1, 1, 1).Normalize()
	collision, hit = rounded.Collision(core.NewRay(diagonal.Multiply(10), diagonal.Negate()))
	if !hit {
		t.Fatal("Expected a hit toward the corner")
	}
	if math.Abs(collision.Date-(10-1.3)) > 1e-4 {
		t.Errorf("Expected date %f, got %f", 10-1.3, collision.Date)
	}
	if !collision.Normal.ApproxEqual(diagonal, 1e-4) {
		t.Errorf("Expected normal %v, got %v", diagonal, collision.Normal)
	}
}

func TestShapes_CollisionConsistency(t *testing.T) {
	shapes := []struct {
		name  string
		shape Shape
	}{
		{"sphere", NewSphere(core.NewVec3(0.2, -0.1, 0.3), 1)},
		{"triangle", NewTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0.5), core.NewVec3(0, 1, -0.5))},
		{"compound", NewCompoundShape(NewSphere(core.NewVec3(-1, 0, 0), 0.7), NewSphere(core.NewVec3(1, 0, 0), 0.7))},
		{"cube", NewImplicitShape(NewCube(0.8))},
		{"torus", NewImplicitShape(NewTorus(1, 0.3))},
		{"intersection", NewIntersection(NewSphere(core.NewVec3(-0.5, 0, 0), 1), NewImplicitShape(NewCube(0.9)))},
	}

	random := rand.New(rand.NewSource(11))
	for _, tt := range shapes {
		t.Run(tt.name, func(t *testing.T) {
			box := tt.shape.BoundingBox().Expand(1e-4)
			hits := 0
			for i := 0; i < 300; i++ {
				origin := core.ToUniformSphere(core.NewVec2(random.Float64(), random.Float64())).Multiply(4)
				target := core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5)
				ray := core.NewRay(origin, target.Subtract(origin))

				date, hitDate := tt.shape.CollisionDate(ray)
				collision, hit := tt.shape.Collision(ray)
				if hit != hitDate {
					t.Fatalf("CollisionDate and Collision disagree on %v", ray)
				}
				if !hit {
					continue
				}
				hits++
				if math.Abs(date-collision.Date) > 1e-9 {
					t.Errorf("Expected date %f, got %f", date, collision.Date)
				}
				if date <= 0 {
					t.Errorf("Expected positive date, got %f", date)
				}
				if !collision.Position.ApproxEqual(ray.At(collision.Date), 1e-6) {
					t.Errorf("Position %v is not on the ray", collision.Position)
				}
				if !box.Contains(collision.Position, 0) {
					t.Errorf("Position %v is outside the bounding box", collision.Position)
				}
				if math.Abs(collision.Normal.Length()-1) > 1e-6 {
					t.Errorf("Expected unit normal, got length %f", collision.Normal.Length())
				}
			}
			if hits == 0 {
				t.Error("Expected some rays to hit")
			}
		})
	}
}
