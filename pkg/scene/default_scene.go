package scene

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/primitive"
)

// NewSpheresScene creates spheres resting on a checkerboard, lit by two point lights
func NewSpheresScene(width, height int) *Scene {
	camera := NewCameraLookAt(core.NewVec3(-9, -2, 4), core.NewVec3(0, 0, 0.8), 1.2, width, height)

	board := primitive.NewCheckerboard(
		core.NewVec3(-6, -6, 0), 12, 12, 8, 8,
		core.NewVec3(0.9, 0.9, 0.9),
		core.NewVec3(0.2, 0.2, 0.25),
	)

	spheres := []struct {
		center core.Vec3
		radius float64
		color  core.Vec3
	}{
		{core.NewVec3(0, 0, 1), 1, core.NewVec3(0.9, 0.2, 0.2)},
		{core.NewVec3(1.5, 2.2, 0.7), 0.7, core.NewVec3(0.2, 0.8, 0.3)},
		{core.NewVec3(2, -2.4, 1.2), 1.2, core.NewVec3(0.2, 0.4, 0.9)},
		{core.NewVec3(-2, 1.5, 0.4), 0.4, core.NewVec3(0.95, 0.8, 0.2)},
	}

	builder := NewBuilder(camera).Add(board)
	for _, s := range spheres {
		builder.Add(primitive.NewGeometricPrimitive(
			geometry.NewSphere(s.center, s.radius),
			material.NewMaterial(s.color),
		))
	}

	return builder.
		AddLight(
			lights.NewPointLight(core.NewVec3(-4, -5, 8), 0.7),
			lights.NewPointLight(core.NewVec3(3, 6, 5), 0.4),
		).
		Build()
}
