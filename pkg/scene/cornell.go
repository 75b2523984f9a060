package scene

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/primitive"
)

// cornellSize is the edge length of the Cornell box
const cornellSize = 5.0

// NewCornellScene creates a Cornell box open toward -X, with a light panel
// under the ceiling. The light is recognized through its material.
func NewCornellScene(width, height int) *Scene {
	s := cornellSize
	camera := NewCamera(core.NewVec3(-6.5, 0, s/2), core.NewVec3(1, 0, 0), width, height)

	white := material.NewMaterial(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewMaterial(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewMaterial(core.NewVec3(0.12, 0.45, 0.15))

	// Box corners: x in [0, s], y in [-s/2, s/2], z in [0, s]
	p := func(x, y, z float64) core.Vec3 { return core.NewVec3(x, y, z) }
	h := s / 2

	floor := NewQuad(p(0, -h, 0), p(s, -h, 0), p(s, h, 0), p(0, h, 0))
	ceiling := NewQuad(p(0, -h, s), p(0, h, s), p(s, h, s), p(s, -h, s))
	back := NewQuad(p(s, -h, 0), p(s, -h, s), p(s, h, s), p(s, h, 0))
	left := NewQuad(p(0, h, 0), p(s, h, 0), p(s, h, s), p(0, h, s))
	right := NewQuad(p(0, -h, 0), p(0, -h, s), p(s, -h, s), p(s, -h, 0))

	// Light panel just below the ceiling, facing down
	panel := NewQuad(
		p(2, -0.6, s-0.01), p(2, 0.6, s-0.01),
		p(3.2, 0.6, s-0.01), p(3.2, -0.6, s-0.01),
	)

	tallBlock := primitive.NewTransformedPrimitive(
		primitive.NewGeometricPrimitive(geometry.NewImplicitShape(geometry.NewCube(1)), white),
		core.Scaling(0.75, 0.75, 1.5).
			Then(core.RotationZ(math.Pi/9)).
			Then(core.Translation(core.NewVec3(3.4, 1, 1.5))),
	)

	return NewBuilder(camera).
		Add(
			primitive.NewGeometricPrimitive(floor, white),
			primitive.NewGeometricPrimitive(ceiling, white),
			primitive.NewGeometricPrimitive(back, white),
			primitive.NewGeometricPrimitive(left, red),
			primitive.NewGeometricPrimitive(right, green),
			primitive.NewGeometricPrimitive(panel, material.NewLight()),
			primitive.NewGeometricPrimitive(geometry.NewSphere(core.NewVec3(2.2, -1.1, 0.9), 0.9), white),
			tallBlock,
		).
		Build()
}
