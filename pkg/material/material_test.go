package material

import (
	"testing"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

func TestMaterial_IsLight(t *testing.T) {
	tests := []struct {
		name     string
		material Material
		expected bool
	}{
		{"light", NewLight(), true},
		{"light color", NewMaterial(core.NewVec3(1, 0, 1)), true},
		{"red", NewMaterial(core.NewVec3(1, 0, 0)), false},
		{"almost light", NewMaterial(core.NewVec3(1, 0.001, 1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.material.IsLight(); got != tt.expected {
				t.Errorf("Expected IsLight()=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNewLight_ReturnsCopies(t *testing.T) {
	light := NewLight()
	light.Color = core.NewVec3(0, 0, 0)

	if light.IsLight() {
		t.Errorf("Expected a recolored light to stop being a light")
	}
	if !NewLight().IsLight() {
		t.Errorf("Expected recoloring one light to leave new lights untouched")
	}
}
