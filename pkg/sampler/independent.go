package sampler

import (
	"math/rand"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// IndependentSampler draws every value independently from a random generator
type IndependentSampler struct {
	random *rand.Rand
}

// NewIndependentSampler creates a sampler from a Go random generator
func NewIndependentSampler(random *rand.Rand) *IndependentSampler {
	return &IndependentSampler{random: random}
}

// Prepare accepts any budget
func (s *IndependentSampler) Prepare(Budget) error {
	return nil
}

// NewSample has nothing to reset
func (s *IndependentSampler) NewSample() {}

// Get1D returns a uniform value in [0, 1)
func (s *IndependentSampler) Get1D() float64 {
	return s.random.Float64()
}

// Get2D returns two independent uniform values in [0, 1)
func (s *IndependentSampler) Get2D() core.Vec2 {
	return core.Vec2{X: s.random.Float64(), Y: s.random.Float64()}
}
