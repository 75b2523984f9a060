package scene

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/primitive"
)

// NewCSGScene creates a scene of implicit surfaces: a cube rounded by a sphere,
// a tilted torus and a small rotated cube
func NewCSGScene(width, height int) *Scene {
	camera := NewCameraLookAt(core.NewVec3(-8, -3, 4), core.NewVec3(0, 0, 0.8), 1.2, width, height)

	board := primitive.NewCheckerboard(
		core.NewVec3(-6, -6, 0), 12, 12, 6, 6,
		core.NewVec3(0.85, 0.85, 0.8),
		core.NewVec3(0.3, 0.3, 0.35),
	)

	// Rounded cube: unit cube clipped by a slightly larger sphere
	rounded := geometry.NewIntersection(
		geometry.NewImplicitShape(geometry.NewCube(1)),
		geometry.NewSphere(core.Vec3{}, 1.35),
	)
	roundedCube := primitive.NewTransformedPrimitive(
		primitive.NewGeometricPrimitive(rounded, material.NewMaterial(core.NewVec3(0.9, 0.25, 0.2))),
		core.RotationZ(math.Pi/6).Then(core.Translation(core.NewVec3(0, 0, 1))),
	)

	torus := primitive.NewTransformedPrimitive(
		primitive.NewGeometricPrimitive(
			geometry.NewImplicitShape(geometry.NewTorus(1, 0.3)),
			material.NewMaterial(core.NewVec3(0.2, 0.6, 0.9)),
		),
		core.RotationX(math.Pi/3).Then(core.Translation(core.NewVec3(1, 2.8, 1.2))),
	)

	smallCube := primitive.NewTransformedPrimitive(
		primitive.NewGeometricPrimitive(
			geometry.NewImplicitShape(geometry.NewCube(1)),
			material.NewMaterial(core.NewVec3(0.95, 0.85, 0.3)),
		),
		core.UniformScaling(0.5).
			Then(core.Rotation(core.NewVec3(1, 1, 0), math.Pi/5)).
			Then(core.Translation(core.NewVec3(1.5, -2.5, 0.8))),
	)

	return NewBuilder(camera).
		Add(board, roundedCube, torus, smallCube).
		AddLight(
			lights.NewPointLight(core.NewVec3(-5, -4, 9), 0.75),
			lights.NewPointLight(core.NewVec3(4, 5, 6), 0.35),
		).
		Build()
}
