package scene

import (
	"math"
	"sort"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/primitive"
)

// meshPalette colors loaded mesh groups in name order
var meshPalette = []core.Vec3{
	core.NewVec3(0.8, 0.8, 0.8),
	core.NewVec3(0.85, 0.3, 0.25),
	core.NewVec3(0.3, 0.65, 0.35),
	core.NewVec3(0.3, 0.45, 0.85),
	core.NewVec3(0.9, 0.75, 0.3),
}

// FromOBJ builds a scene around triangle mesh groups, each one behind a BVH.
// The camera looks at the meshes from the -X side, and two point lights are
// placed above it.
func FromOBJ(groups map[string]*geometry.CompoundShape, width, height int) *Scene {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	bounds := core.EmptyAABB()
	var primitives []primitive.Primitive
	for i, name := range names {
		mesh := groups[name]
		if mesh.Len() == 0 {
			continue
		}
		bounds = bounds.Union(mesh.BoundingBox())
		primitives = append(primitives, primitive.NewGeometricPrimitive(
			geometry.NewBVH(mesh.Children()...),
			material.NewMaterial(meshPalette[i%len(meshPalette)]),
		))
	}

	if bounds.IsEmpty() {
		bounds = core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	}

	center := bounds.Center()
	size := bounds.Size()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	if extent == 0 {
		extent = 1
	}

	position := center.Add(core.NewVec3(-1.8*extent, -0.4*extent, 0.6*extent))
	camera := NewCameraLookAt(position, center, 1, width, height)

	return NewBuilder(camera).
		Add(primitives...).
		AddLight(
			lights.NewPointLight(position.Add(core.NewVec3(0, -extent, extent)), 0.8),
			lights.NewPointLight(center.Add(core.NewVec3(0, 2*extent, extent)), 0.3),
		).
		Build()
}
