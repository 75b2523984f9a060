package scene

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
	"github.com/df07/go-sdf-raytracer/pkg/primitive"
)

// Scene contains all the elements needed for rendering.
// A scene is frozen once built and may be shared by any number of goroutines.
type Scene struct {
	Camera     Camera
	primitives []primitive.Primitive
	lights     []lights.PointLight
}

// Primitives returns the objects in the scene
func (s *Scene) Primitives() []primitive.Primitive {
	return s.primitives
}

// Lights returns the point lights in the scene
func (s *Scene) Lights() []lights.PointLight {
	return s.lights
}

// BoundingBox returns the union of every primitive's bounding box
func (s *Scene) BoundingBox() core.AABB {
	box := core.EmptyAABB()
	for _, p := range s.primitives {
		box = box.Union(p.BoundingBox())
	}
	return box
}

// nearest returns the index and date of the first primitive hit by the ray
func (s *Scene) nearest(ray core.Ray) (int, float64) {
	best := -1
	bestDate := math.Inf(1)
	for i, p := range s.primitives {
		if date, ok := p.CollisionDate(ray); ok && date < bestDate {
			best = i
			bestDate = date
		}
	}
	return best, bestDate
}

// Collision returns the primitive hit first by the ray along with the full
// collision record. Only the winning primitive computes a full record.
func (s *Scene) Collision(ray core.Ray) (primitive.Primitive, geometry.Collision, bool) {
	index, _ := s.nearest(ray)
	if index < 0 {
		return nil, geometry.Collision{}, false
	}

	p := s.primitives[index]
	collision, ok := p.Collision(ray)
	if !ok {
		return nil, geometry.Collision{}, false
	}
	return p, collision, true
}

// CollisionDate returns the date of the nearest hit, or +Inf when nothing is hit
func (s *Scene) CollisionDate(ray core.Ray) float64 {
	_, date := s.nearest(ray)
	return date
}

// Visible reports whether nothing is hit along the ray before the given date
func (s *Scene) Visible(ray core.Ray, date float64) bool {
	return s.CollisionDate(ray) >= date
}

// Builder assembles a scene. The builder is not safe for concurrent use; the
// scene it builds is.
type Builder struct {
	camera     Camera
	primitives []primitive.Primitive
	lights     []lights.PointLight
}

// NewBuilder starts a scene seen through the given camera
func NewBuilder(camera Camera) *Builder {
	return &Builder{camera: camera}
}

// Add appends primitives to the scene
func (b *Builder) Add(primitives ...primitive.Primitive) *Builder {
	b.primitives = append(b.primitives, primitives...)
	return b
}

// AddLight appends point lights to the scene
func (b *Builder) AddLight(pointLights ...lights.PointLight) *Builder {
	b.lights = append(b.lights, pointLights...)
	return b
}

// Build freezes the scene. Later changes to the builder do not affect it.
func (b *Builder) Build() *Scene {
	return &Scene{
		Camera:     b.camera,
		primitives: append([]primitive.Primitive(nil), b.primitives...),
		lights:     append([]lights.PointLight(nil), b.lights...),
	}
}
