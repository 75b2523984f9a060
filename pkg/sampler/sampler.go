package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

var (
	// ErrNotSquare is returned when a grid sampler is asked for a sample count that is not a perfect square
	ErrNotSquare = errors.New("samples per pixel must be a perfect square")
	// ErrUnsupportedDimensions is returned when a sampler cannot provide the requested dimensions
	ErrUnsupportedDimensions = errors.New("unsupported sample dimensions")
	// ErrUnknownSampler is returned for sampler names that are not recognized
	ErrUnknownSampler = errors.New("unknown sampler")
)

// Sampler kinds
const (
	KindIndependent = "independent"
	KindStratified  = "stratified"
	KindRegular     = "regular"
)

// Budget states how many random values each sample of a pixel draws
type Budget struct {
	Dims1D          int // Number of Get1D calls per sample
	Dims2D          int // Number of Get2D calls per sample
	SamplesPerPixel int // Number of samples drawn for one pixel
}

// Sampler provides random sample values for one pixel at a time.
// A sampler is owned by a single goroutine.
type Sampler interface {
	// Prepare must be called before sampling a pixel
	Prepare(budget Budget) error
	// NewSample moves to the next sample of the pixel
	NewSample()
	// Get1D returns a value in [0, 1)
	Get1D() float64
	// Get2D returns two values in [0, 1)
	Get2D() core.Vec2
}

// Factory creates the sampler owned by the given worker
type Factory func(worker int) Sampler

// NewFactory returns a factory for the named sampler kind. Each worker gets its
// own seed derived from seed and the worker id.
func NewFactory(kind string, seed int64) (Factory, error) {
	var create func(random *rand.Rand) Sampler
	switch kind {
	case KindIndependent:
		create = func(random *rand.Rand) Sampler { return NewIndependentSampler(random) }
	case KindStratified:
		create = func(random *rand.Rand) Sampler { return NewStratifiedSampler(random) }
	case KindRegular:
		create = func(random *rand.Rand) Sampler { return NewRegularSampler(random) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSampler, kind)
	}

	return func(worker int) Sampler {
		return create(rand.New(rand.NewSource(seed + int64(worker) + 42))) // +42 to avoid seed 0
	}, nil
}

// Validate checks at setup time that a sampler kind supports the sample count
func Validate(kind string, samplesPerPixel int) error {
	if samplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", samplesPerPixel)
	}
	switch kind {
	case KindIndependent:
		return nil
	case KindStratified, KindRegular:
		if _, ok := squareRoot(samplesPerPixel); !ok {
			return fmt.Errorf("%w: %d", ErrNotSquare, samplesPerPixel)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSampler, kind)
	}
}

// squareRoot returns the integer square root of n when n is a perfect square
func squareRoot(n int) (int, bool) {
	root := int(math.Round(math.Sqrt(float64(n))))
	return root, root*root == n
}
