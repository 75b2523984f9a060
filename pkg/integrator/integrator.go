package integrator

import (
	"errors"
	"fmt"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/sampler"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// ErrUnknownIntegrator is returned for integrator names that are not recognized
var ErrUnknownIntegrator = errors.New("unknown integrator")

// Integrator names
const (
	KindFlat       = "flat"
	KindWhitted    = "whitted"
	KindMonteCarlo = "montecarlo"
)

// Integrator defines the interface for light transport algorithms.
// RayColor must only read the scene; all mutable state lives in the sampler.
type Integrator interface {
	// Name identifies the integrator in logs and metrics
	Name() string
	// RayColor computes the color seen along a primary ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler sampler.Sampler) core.Vec3
}

// Stochastic is implemented by integrators that draw random samples. Their
// estimates are refined by averaging several passes.
type Stochastic interface {
	Integrator
	// SampleBudget returns what each pixel draws from its sampler
	SampleBudget() sampler.Budget
}

// New creates the named integrator. The Monte Carlo configuration is only used
// by the Monte Carlo integrator.
func New(kind string, monteCarlo MonteCarloConfig) (Integrator, error) {
	switch kind {
	case KindFlat:
		return NewFlatIntegrator(core.Vec3{}), nil
	case KindWhitted:
		return NewWhittedIntegrator(DefaultWhittedConfig()), nil
	case KindMonteCarlo:
		return NewMonteCarloIntegrator(monteCarlo), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, kind)
	}
}

// faceForward flips the normal so that it faces the incoming ray
func faceForward(normal, incoming core.Vec3) core.Vec3 {
	if normal.Dot(incoming) > 0 {
		return normal.Negate()
	}
	return normal
}
