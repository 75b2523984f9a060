package scene

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/primitive"
)

// Shadow scene layout
var (
	ShadowLightPosition = core.NewVec3(0, 0, 6)
	ShadowOccluder      = geometry.NewSphere(core.NewVec3(0, 0, 2), 1)
)

// NewShadowScene creates a plane at z = 0 with a sphere hanging between it and a single point light
func NewShadowScene(width, height int) *Scene {
	camera := NewCameraLookAt(core.NewVec3(-7, 0, 3), core.NewVec3(0, 0, 0.5), 1, width, height)

	return NewBuilder(camera).
		Add(
			primitive.NewGeometricPrimitive(NewGroundQuad(core.Vec3{}, 20), material.NewMaterial(core.NewVec3(0.8, 0.8, 0.8))),
			primitive.NewGeometricPrimitive(ShadowOccluder, material.NewMaterial(core.NewVec3(0.9, 0.3, 0.1))),
		).
		AddLight(lights.NewPointLight(ShadowLightPosition, 1)).
		Build()
}
