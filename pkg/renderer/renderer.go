package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/integrator"
	"github.com/df07/go-sdf-raytracer/pkg/sampler"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
	"github.com/df07/go-sdf-raytracer/pkg/telemetry"
)

// Config contains configuration for progressive rendering
type Config struct {
	Passes     int                // Number of passes averaged by stochastic integrators
	NumWorkers int                // Number of parallel workers (0 = use CPU count)
	Samplers   sampler.Factory    // Creates the sampler owned by each worker (nil = independent)
	Metrics    *telemetry.Metrics // Records pass measurements when not nil
	SceneName  string             // Labels traces and measurements

	// Progress is called from the rendering goroutine at most once per second
	// with the number of pixels computed so far in the current pass
	Progress func(pass, done, total int)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Passes:     1,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// PassResult contains the result of a single pass. The images belong to the
// renderer and are only valid until the callback returns.
type PassResult struct {
	PassNumber int
	Image      *Image // Running average of all passes so far
	Pass       *Image // Estimate computed during this pass alone
	Stats      PassStats
	IsLast     bool
}

// PassCallback is invoked after each pass with the accumulated image.
// Returning an error stops the render.
type PassCallback func(ctx context.Context, result PassResult) error

// Renderer drives an integrator over the whole image, pass after pass
type Renderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config

	stochastic bool
	budget     sampler.Budget
	samplers   []sampler.Sampler // Indexed by worker id
	pool       *WorkerPool
	progress   *rate.Limiter
}

// NewRenderer prepares a render of the scene's camera image. Sampler
// configurations that cannot serve the integrator are rejected here.
func NewRenderer(sc *scene.Scene, integ integrator.Integrator, config Config) (*Renderer, error) {
	if config.Passes <= 0 {
		return nil, fmt.Errorf("passes must be positive, got %d", config.Passes)
	}
	if sc.Camera.Width <= 0 || sc.Camera.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", sc.Camera.Width, sc.Camera.Height)
	}

	r := &Renderer{
		scene:      sc,
		integrator: integ,
		config:     config,
		progress:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
	r.pool = NewWorkerPool(config.NumWorkers, r.computePixel)

	stochastic, ok := integ.(integrator.Stochastic)
	if !ok {
		// Deterministic integrators converge in one pass
		r.config.Passes = 1
		return r, nil
	}

	factory := config.Samplers
	if factory == nil {
		var err error
		if factory, err = sampler.NewFactory(sampler.KindIndependent, 0); err != nil {
			return nil, fmt.Errorf("while creating default sampler factory: %w", err)
		}
	}

	r.stochastic = true
	r.budget = stochastic.SampleBudget()
	r.samplers = make([]sampler.Sampler, r.pool.NumWorkers())
	for worker := range r.samplers {
		r.samplers[worker] = factory(worker)
		if err := r.samplers[worker].Prepare(r.budget); err != nil {
			return nil, fmt.Errorf("while preparing sampler of worker %d: %w", worker, err)
		}
	}
	return r, nil
}

// Passes returns the number of passes the render will run
func (r *Renderer) Passes() int {
	return r.config.Passes
}

// NumWorkers returns the number of workers used by each pass
func (r *Renderer) NumWorkers() int {
	return r.pool.NumWorkers()
}

// SamplesPerPass returns the samples each pass adds to a pixel
func (r *Renderer) SamplesPerPass() int {
	if !r.stochastic {
		return 1
	}
	return r.budget.SamplesPerPixel
}

// computePixel runs on worker goroutines and only reads shared state
func (r *Renderer) computePixel(worker, x, y int) core.Vec3 {
	ray := r.scene.Camera.GenerateRay(x, y)

	var s sampler.Sampler
	if r.stochastic {
		s = r.samplers[worker]
		if err := s.Prepare(r.budget); err != nil {
			panic(err)
		}
	}
	return r.integrator.RayColor(ray, r.scene, s)
}

// Render runs every pass, calling callback after each of them, and returns the
// final running average.
func (r *Renderer) Render(ctx context.Context, callback PassCallback) (_ *Image, err error) {
	ctx = telemetry.WithLabels(ctx, r.integrator.Name(), r.config.SceneName)
	ctx, span := telemetry.Tracer().Start(ctx, "Renderer.Render")
	defer func() { telemetry.EndSpan(span, err) }()

	width, height := r.scene.Camera.Width, r.scene.Camera.Height
	span.SetAttributes(
		attribute.String("integrator", r.integrator.Name()),
		attribute.String("scene", r.config.SceneName),
		attribute.Int("width", width),
		attribute.Int("height", height),
		attribute.Int("passes", r.config.Passes),
		attribute.Int("workers", r.pool.NumWorkers()),
	)

	glog.Infof("Rendering %dx%d with the %s integrator: %d passes, %d workers",
		width, height, r.integrator.Name(), r.config.Passes, r.pool.NumWorkers())

	accumulated := NewImage(width, height)
	for pass := 1; pass <= r.config.Passes; pass++ {
		// Check for cancellation before starting this pass
		select {
		case <-ctx.Done():
			glog.Infof("Rendering cancelled before pass %d", pass)
			return nil, ctx.Err()
		default:
		}

		passImage, stats, err := r.renderPass(ctx, pass)
		if err != nil {
			return nil, fmt.Errorf("while rendering pass %d: %w", pass, err)
		}

		// Every worker has been joined, the pass is complete
		accumulated.Accumulate(passImage, pass-1)

		glog.V(1).Infof("Pass %d completed in %v (%d samples/pixel, %.0f pixels/s, average luminance %.4f)",
			pass, stats.Duration, stats.Samples, stats.PixelsPerSecond(), accumulated.AverageLuminance())

		if callback != nil {
			result := PassResult{
				PassNumber: pass,
				Image:      accumulated,
				Pass:       passImage,
				Stats:      stats,
				IsLast:     pass == r.config.Passes,
			}
			if err := callback(ctx, result); err != nil {
				return nil, fmt.Errorf("while handling pass %d: %w", pass, err)
			}
		}
	}

	return accumulated, nil
}

// renderPass computes one full image estimate
func (r *Renderer) renderPass(ctx context.Context, pass int) (_ *Image, _ PassStats, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "Renderer.renderPass")
	defer func() { telemetry.EndSpan(span, err) }()
	span.SetAttributes(attribute.Int("pass", pass))

	width, height := r.scene.Camera.Width, r.scene.Camera.Height
	total := width * height
	img := NewImage(width, height)
	done := 0
	start := time.Now()

	perWorker, err := r.pool.RunPass(ctx, width, height, func(x, y int, c core.Vec3) {
		img.Set(x, y, c)
		done++
		if r.progress.Allow() {
			glog.V(2).Infof("Pass %d: %d/%d pixels", pass, done, total)
			if r.config.Progress != nil {
				r.config.Progress(pass, done, total)
			}
		}
	})
	if err != nil {
		return nil, PassStats{}, err
	}

	stats := PassStats{
		Pass:      pass,
		Samples:   pass * r.SamplesPerPass(),
		Pixels:    done,
		Duration:  time.Since(start),
		PerWorker: perWorker,
	}
	span.SetAttributes(attribute.Int64("pixels", int64(done)))

	if r.config.Metrics != nil {
		r.config.Metrics.RecordPixels(ctx, int64(done))
		r.config.Metrics.RecordPass(ctx, stats.Duration)
	}
	return img, stats, nil
}

// RenderProgressive renders with channel-based communication.
// Returns channels for events. The caller should read from the pass channel
// until it is closed, then read the error channel.
func (r *Renderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		defer close(passChan)

		_, err := r.Render(ctx, func(ctx context.Context, result PassResult) error {
			// The renderer keeps updating its images after the callback
			result.Image = result.Image.Clone()
			result.Pass = result.Pass.Clone()

			select {
			case passChan <- result:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errChan <- err
		}
	}()

	return passChan, errChan
}
