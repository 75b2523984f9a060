package scene

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
)

// NewQuad builds a planar quad from four corners given in winding order
func NewQuad(a, b, c, d core.Vec3) *geometry.CompoundShape {
	return geometry.NewCompoundShape(
		geometry.NewTriangle(a, b, c),
		geometry.NewTriangle(a, c, d),
	)
}

// NewGroundQuad creates a horizontal square centered at center with normal +Z
func NewGroundQuad(center core.Vec3, size float64) *geometry.CompoundShape {
	h := size / 2
	return NewQuad(
		center.Add(core.NewVec3(-h, -h, 0)),
		center.Add(core.NewVec3(h, -h, 0)),
		center.Add(core.NewVec3(h, h, 0)),
		center.Add(core.NewVec3(-h, h, 0)),
	)
}
