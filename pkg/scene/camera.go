package scene

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// Camera is a pinhole camera with the Z axis pointing up
type Camera struct {
	Position  core.Vec3 // Focus point
	Direction core.Vec3 // Viewing direction, its length is the focal distance
	Width     int       // Image width in pixels
	Height    int       // Image height in pixels

	right core.Vec3 // Unit horizontal axis of the sensor
	up    core.Vec3 // Unit vertical axis of the sensor
	scale float64   // Sensor units per pixel
}

// NewCamera creates a camera looking along direction from position
func NewCamera(position, direction core.Vec3, width, height int) Camera {
	right := direction.Cross(core.NewVec3(0, 0, 1)).Normalize()
	if right.IsZero() {
		// Looking straight up or down
		right = direction.Cross(core.NewVec3(0, 1, 0)).Normalize()
	}
	up := right.Cross(direction).Normalize()

	return Camera{
		Position:  position,
		Direction: direction,
		Width:     width,
		Height:    height,
		right:     right,
		up:        up,
		scale:     1 / float64(min(width, height)),
	}
}

// NewCameraLookAt creates a camera at position aimed at target with the given focal distance
func NewCameraLookAt(position, target core.Vec3, focal float64, width, height int) Camera {
	return NewCamera(position, target.Subtract(position).Normalize().Multiply(focal), width, height)
}

// GenerateRay returns the primary ray through the center of pixel (x, y).
// Pixel (0, 0) is the bottom left corner of the image.
func (c Camera) GenerateRay(x, y int) core.Ray {
	u := (float64(x) + 0.5 - float64(c.Width)/2) * c.scale
	v := (float64(y) + 0.5 - float64(c.Height)/2) * c.scale

	direction := c.Direction.
		Add(c.right.Multiply(u)).
		Add(c.up.Multiply(v))

	return core.NewRay(c.Position, direction)
}

// FieldOfView returns the angle covered by the smaller image dimension, in degrees
func (c Camera) FieldOfView() float64 {
	return 2 * math.Atan(0.5/c.Direction.Length()) * 180 / math.Pi
}
