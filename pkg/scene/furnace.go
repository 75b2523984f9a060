package scene

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/primitive"
)

// FurnaceAlbedo is the color of the plane in the furnace scene
var FurnaceAlbedo = core.NewVec3(0.5, 0.6, 0.7)

// NewFurnaceScene creates a diffuse plane inside a large emissive sphere. Every
// bounce off the plane reaches the light, so each pixel that sees the plane has
// radiance emitted/π · FurnaceAlbedo.
func NewFurnaceScene(width, height int) *Scene {
	camera := NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), width, height)

	return NewBuilder(camera).
		Add(
			primitive.NewGeometricPrimitive(NewGroundQuad(core.Vec3{}, 100), material.NewMaterial(FurnaceAlbedo)),
			primitive.NewGeometricPrimitive(geometry.NewSphere(core.Vec3{}, 100), material.NewLight()),
		).
		Build()
}
