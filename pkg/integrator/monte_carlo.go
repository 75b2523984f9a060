package integrator

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/sampler"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// MonteCarloConfig configures the one-bounce path sampling integrator
type MonteCarloConfig struct {
	SamplesPerPixel  int       // Bounces averaged per pixel and per pass
	EmittedRadiance  float64   // Radiance of light primitives
	AmbientOcclusion core.Vec3 // Returned for bounces that escape the scene
	BounceOffset     float64   // Distance bounce rays start away from the surface
	LightColor       core.Vec3 // Returned when the primary ray hits a light
}

// DefaultMonteCarloConfig returns the default Monte Carlo settings
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		SamplesPerPixel:  16,
		EmittedRadiance:  50,
		AmbientOcclusion: core.Vec3{},
		BounceOffset:     1e-3,
		LightColor:       core.NewVec3(1, 1, 1),
	}
}

// MonteCarloIntegrator estimates the light reaching a diffuse surface from
// light primitives with one cosine-weighted bounce per sample
type MonteCarloIntegrator struct {
	config MonteCarloConfig
}

// NewMonteCarloIntegrator creates a new Monte Carlo integrator
func NewMonteCarloIntegrator(config MonteCarloConfig) *MonteCarloIntegrator {
	return &MonteCarloIntegrator{config: config}
}

// Name returns "montecarlo"
func (mc *MonteCarloIntegrator) Name() string {
	return KindMonteCarlo
}

// SampleBudget draws one 2D value per bounce
func (mc *MonteCarloIntegrator) SampleBudget() sampler.Budget {
	return sampler.Budget{Dims2D: 1, SamplesPerPixel: mc.config.SamplesPerPixel}
}

// RayColor averages SamplesPerPixel one-bounce estimates
func (mc *MonteCarloIntegrator) RayColor(ray core.Ray, s *scene.Scene, smp sampler.Sampler) core.Vec3 {
	p, collision, ok := s.Collision(ray)
	if !ok {
		return core.Vec3{}
	}

	mat := p.MaterialAt(collision)
	if mat.IsLight() {
		return mc.config.LightColor
	}

	normal := faceForward(collision.Normal, ray.Direction)

	sum := core.Vec3{}
	for i := 0; i < mc.config.SamplesPerPixel; i++ {
		smp.NewSample()
		sum = sum.Add(mc.bounce(collision, normal, mat, s, smp.Get2D()))
	}

	return sum.Multiply(1 / float64(mc.config.SamplesPerPixel))
}

// bounce casts one cosine-weighted ray from the collision. The cosine in the
// rendering equation cancels with the sampling density, leaving radiance/π · albedo.
func (mc *MonteCarloIntegrator) bounce(collision geometry.Collision, normal core.Vec3, mat material.Material, s *scene.Scene, sample core.Vec2) core.Vec3 {
	direction := core.SampleCosineHemisphere(normal, sample)
	next := core.Ray{Origin: collision.Position, Direction: direction}.Advance(mc.config.BounceOffset)

	p, nextCollision, ok := s.Collision(next)
	if !ok {
		return mc.config.AmbientOcclusion
	}
	if !p.MaterialAt(nextCollision).IsLight() {
		return core.Vec3{}
	}

	return mat.Color.Multiply(mc.config.EmittedRadiance / math.Pi)
}
