package integrator

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/sampler"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// WhittedConfig configures the direct lighting integrator
type WhittedConfig struct {
	ShadowOffset float64   // Distance shadow rays start away from the surface
	Background   core.Vec3 // Color of rays that escape the scene
}

// DefaultWhittedConfig returns the default direct lighting settings
func DefaultWhittedConfig() WhittedConfig {
	return WhittedConfig{
		ShadowOffset: 1e-4,
		Background:   core.Vec3{},
	}
}

// WhittedIntegrator computes direct lighting from point lights with hard shadows
type WhittedIntegrator struct {
	config WhittedConfig
}

// NewWhittedIntegrator creates a new direct lighting integrator
func NewWhittedIntegrator(config WhittedConfig) *WhittedIntegrator {
	return &WhittedIntegrator{config: config}
}

// Name returns "whitted"
func (w *WhittedIntegrator) Name() string {
	return KindWhitted
}

// RayColor sums the unoccluded contribution of every light and tints it with the surface color
func (w *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene, _ sampler.Sampler) core.Vec3 {
	p, collision, ok := s.Collision(ray)
	if !ok {
		return w.config.Background
	}

	mat := p.MaterialAt(collision)
	normal := faceForward(collision.Normal, ray.Direction)

	intensity := 0.0
	for _, light := range s.Lights() {
		toLight, distance := light.Toward(collision.Position)
		if distance <= w.config.ShadowOffset {
			continue
		}

		cosine := toLight.Dot(normal)
		if cosine <= 0 {
			continue
		}

		shadowRay := core.Ray{Origin: collision.Position, Direction: toLight}.Advance(w.config.ShadowOffset)
		if s.Visible(shadowRay, distance-w.config.ShadowOffset) {
			intensity += light.Intensity * cosine
		}
	}

	return mat.Color.Multiply(intensity)
}
