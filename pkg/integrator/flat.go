package integrator

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/sampler"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// FlatIntegrator shows the material color of the first surface hit, without lighting
type FlatIntegrator struct {
	Background core.Vec3
}

// NewFlatIntegrator creates a flat integrator with the given background color
func NewFlatIntegrator(background core.Vec3) *FlatIntegrator {
	return &FlatIntegrator{Background: background}
}

// Name returns "flat"
func (f *FlatIntegrator) Name() string {
	return KindFlat
}

// RayColor returns the color of the surface hit by the ray
func (f *FlatIntegrator) RayColor(ray core.Ray, s *scene.Scene, _ sampler.Sampler) core.Vec3 {
	p, collision, ok := s.Collision(ray)
	if !ok {
		return f.Background
	}
	return p.MaterialAt(collision).Color
}
