package lights

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// PointLight emits light uniformly from a single position
type PointLight struct {
	Position  core.Vec3
	Intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float64) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// Toward returns the unit direction from point to the light and the distance to it
func (l PointLight) Toward(point core.Vec3) (core.Vec3, float64) {
	offset := l.Position.Subtract(point)
	distance := offset.Length()
	if distance == 0 {
		return core.Vec3{}, 0
	}
	return offset.Multiply(1 / distance), distance
}
