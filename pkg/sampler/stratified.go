package sampler

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// regularOffset places non-jittered samples slightly off the cell center so
// rays are never exactly parallel to axis-aligned walls
const regularOffset = 0.501

// StratifiedSampler splits the unit square into a √N × √N grid and draws one
// sample per cell. It supports a single 2D dimension and any number of 1D
// dimensions, each made of N shuffled strata.
type StratifiedSampler struct {
	random    *rand.Rand
	jitter    bool
	budget    Budget
	samples1D [][]float64 // [dimension][sample]
	samples2D []core.Vec2 // [sample]
	current   int         // Current sample index
	dim1D     int         // 1D values consumed by the current sample
	dim2D     int         // 2D values consumed by the current sample
}

// NewStratifiedSampler creates a jittered stratified sampler
func NewStratifiedSampler(random *rand.Rand) *StratifiedSampler {
	return &StratifiedSampler{random: random, jitter: true}
}

// NewRegularSampler creates a stratified sampler that always uses the same point of each cell
func NewRegularSampler(random *rand.Rand) *StratifiedSampler {
	return &StratifiedSampler{random: random, jitter: false}
}

// Prepare regenerates the sample table for one pixel
func (s *StratifiedSampler) Prepare(budget Budget) error {
	if budget.Dims2D > 1 || budget.Dims1D < 0 || budget.Dims2D < 0 {
		return fmt.Errorf("%w: stratified sampler supports one 2D dimension, got %d 1D and %d 2D",
			ErrUnsupportedDimensions, budget.Dims1D, budget.Dims2D)
	}
	root, ok := squareRoot(budget.SamplesPerPixel)
	if !ok || root == 0 {
		return fmt.Errorf("%w: %d", ErrNotSquare, budget.SamplesPerPixel)
	}

	n := budget.SamplesPerPixel
	s.budget = budget
	s.current = 0
	s.dim1D = 0
	s.dim2D = 0

	s.samples2D = s.samples2D[:0]
	if budget.Dims2D == 1 {
		for i := 0; i < root; i++ {
			for j := 0; j < root; j++ {
				dx, dy := s.offset(), s.offset()
				s.samples2D = append(s.samples2D, core.Vec2{
					X: (float64(i) + dx) / float64(root),
					Y: (float64(j) + dy) / float64(root),
				})
			}
		}
	}

	s.samples1D = s.samples1D[:0]
	for d := 0; d < budget.Dims1D; d++ {
		strata := make([]float64, n)
		for k := range strata {
			strata[k] = (float64(k) + s.offset()) / float64(n)
		}
		s.random.Shuffle(n, func(a, b int) { strata[a], strata[b] = strata[b], strata[a] })
		s.samples1D = append(s.samples1D, strata)
	}

	return nil
}

// offset returns the position of a sample inside its cell
func (s *StratifiedSampler) offset() float64 {
	if s.jitter {
		return s.random.Float64()
	}
	return regularOffset
}

// NewSample moves to the next sample once the current one has drawn a value
func (s *StratifiedSampler) NewSample() {
	if s.dim1D != 0 || s.dim2D != 0 {
		s.current++
		s.dim1D = 0
		s.dim2D = 0
	}
}

// Get1D returns the current sample's next 1D stratum
func (s *StratifiedSampler) Get1D() float64 {
	if s.dim1D >= s.budget.Dims1D || s.current >= s.budget.SamplesPerPixel {
		panic(fmt.Sprintf("sampler: 1D dimension %d of sample %d was not prepared (budget %+v)", s.dim1D, s.current, s.budget))
	}
	value := s.samples1D[s.dim1D][s.current]
	s.dim1D++
	return value
}

// Get2D returns the current sample's grid cell
func (s *StratifiedSampler) Get2D() core.Vec2 {
	if s.dim2D >= s.budget.Dims2D || s.current >= s.budget.SamplesPerPixel {
		panic(fmt.Sprintf("sampler: 2D dimension %d of sample %d was not prepared (budget %+v)", s.dim2D, s.current, s.budget))
	}
	value := s.samples2D[s.current]
	s.dim2D++
	return value
}
