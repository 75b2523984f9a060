package primitive

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
)

// Checkerboard is a horizontal board facing +Z. It spans Width along X and
// Height along Y from Origin, split into Lines rows along Y and Columns along X.
type Checkerboard struct {
	Origin  core.Vec3
	Width   float64
	Height  float64
	Lines   int
	Columns int
	Colors  [2]core.Vec3
}

// NewCheckerboard creates a checkerboard alternating between two colors
func NewCheckerboard(origin core.Vec3, width, height float64, lines, columns int, color1, color2 core.Vec3) *Checkerboard {
	return &Checkerboard{
		Origin:  origin,
		Width:   width,
		Height:  height,
		Lines:   lines,
		Columns: columns,
		Colors:  [2]core.Vec3{color1, color2},
	}
}

// BoundingBox returns the flat box covering the board
func (c *Checkerboard) BoundingBox() core.AABB {
	return core.NewAABB(c.Origin, c.Origin.Add(core.NewVec3(c.Width, c.Height, 0)))
}

// CollisionDate returns the date of the hit on the board
func (c *Checkerboard) CollisionDate(ray core.Ray) (float64, bool) {
	collision, ok := c.Collision(ray)
	return collision.Date, ok
}

// Collision intersects the plane z = Origin.Z and keeps the hit if it lies on the board
func (c *Checkerboard) Collision(ray core.Ray) (geometry.Collision, bool) {
	if math.Abs(ray.Direction.Z) < 1e-12 {
		return geometry.Collision{}, false
	}

	date := (c.Origin.Z - ray.Origin.Z) / ray.Direction.Z
	if date <= 0 {
		return geometry.Collision{}, false
	}

	position := ray.At(date)
	if position.X < c.Origin.X || position.X > c.Origin.X+c.Width ||
		position.Y < c.Origin.Y || position.Y > c.Origin.Y+c.Height {
		return geometry.Collision{}, false
	}

	return geometry.Collision{
		Date:     date,
		Position: position,
		Normal:   core.NewVec3(0, 0, 1),
	}, true
}

// MaterialAt picks the color of the cell containing the collision
func (c *Checkerboard) MaterialAt(collision geometry.Collision) material.Material {
	column := int((collision.Position.X - c.Origin.X) / c.Width * float64(c.Columns))
	line := int((collision.Position.Y - c.Origin.Y) / c.Height * float64(c.Lines))

	// The far edges belong to the last cell
	column = min(max(column, 0), c.Columns-1)
	line = min(max(line, 0), c.Lines-1)

	return material.NewMaterial(c.Colors[(column+line)%2])
}
