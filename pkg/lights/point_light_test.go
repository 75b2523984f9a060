package lights

import (
	"math"
	"testing"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

func TestPointLight_Toward(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 0, 10), 0.8)

	direction, distance := light.Toward(core.NewVec3(0, 3, 6))
	if math.Abs(distance-5) > 1e-12 {
		t.Errorf("Expected distance 5, got %f", distance)
	}
	if !direction.ApproxEqual(core.NewVec3(0, -0.6, 0.8), 1e-12) {
		t.Errorf("Expected direction (0,-0.6,0.8), got %v", direction)
	}

	direction, distance = light.Toward(light.Position)
	if distance != 0 || !direction.IsZero() {
		t.Errorf("Expected zero direction at the light, got %v %f", direction, distance)
	}
}
