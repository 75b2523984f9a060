package material

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// lightColor marks a primitive as a light source for the Monte Carlo integrator
var lightColor = core.NewVec3(1, 0, 1)

// Material describes how a surface reflects light.
// It only carries a diffuse color for now.
type Material struct {
	Color core.Vec3
}

// NewMaterial creates a diffuse material with the given color
func NewMaterial(color core.Vec3) Material {
	return Material{Color: color}
}

// NewLight creates a material that is recognized as a light source
func NewLight() Material {
	return Material{Color: lightColor}
}

// IsLight returns true for materials carrying the light color
func (m Material) IsLight() bool {
	return m.Color == lightColor
}
