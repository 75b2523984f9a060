package renderer

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/integrator"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/primitive"
	"github.com/df07/go-sdf-raytracer/pkg/sampler"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// noiseIntegrator returns one uniform value per pixel, so every pass differs
type noiseIntegrator struct {
	budget sampler.Budget
}

func (n *noiseIntegrator) Name() string { return "noise" }

func (n *noiseIntegrator) SampleBudget() sampler.Budget { return n.budget }

func (n *noiseIntegrator) RayColor(ray core.Ray, s *scene.Scene, smp sampler.Sampler) core.Vec3 {
	smp.NewSample()
	v := smp.Get1D()
	return core.NewVec3(v, v*v, 1-v)
}

func emptyScene(width, height int) *scene.Scene {
	camera := scene.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), width, height)
	return scene.NewBuilder(camera).Build()
}

func TestRenderer_RunningAverageIsExact(t *testing.T) {
	sc := emptyScene(5, 4)
	config := DefaultConfig()
	config.Passes = 6
	config.NumWorkers = 3

	r, err := NewRenderer(sc, &noiseIntegrator{budget: sampler.Budget{Dims1D: 1, SamplesPerPixel: 1}}, config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	previous := NewImage(5, 4)
	passes := 0
	final, err := r.Render(context.Background(), func(ctx context.Context, result PassResult) error {
		n := float64(result.PassNumber - 1)
		for x := 0; x < 5; x++ {
			for y := 0; y < 4; y++ {
				sum := previous.At(x, y).Multiply(n).Add(result.Pass.At(x, y))
				expected := core.NewVec3(sum.X/(n+1), sum.Y/(n+1), sum.Z/(n+1))
				if got := result.Image.At(x, y); got != expected {
					t.Errorf("Pass %d pixel (%d, %d): expected %v, got %v", result.PassNumber, x, y, expected, got)
				}
			}
		}
		previous = result.Image.Clone()
		passes++

		if result.IsLast != (result.PassNumber == 6) {
			t.Errorf("Pass %d: unexpected IsLast %v", result.PassNumber, result.IsLast)
		}
		if result.Stats.Pixels != 20 {
			t.Errorf("Pass %d: expected 20 pixels, got %d", result.PassNumber, result.Stats.Pixels)
		}
		if result.Stats.Samples != result.PassNumber {
			t.Errorf("Pass %d: expected %d samples, got %d", result.PassNumber, result.PassNumber, result.Stats.Samples)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if passes != 6 {
		t.Errorf("Expected 6 passes, got %d", passes)
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 4; y++ {
			if final.At(x, y) != previous.At(x, y) {
				t.Errorf("Final image differs from the last pass at (%d, %d)", x, y)
			}
		}
	}
}

func TestRenderer_DeterministicIntegratorRunsOnePass(t *testing.T) {
	color := core.NewVec3(0.2, 0.4, 0.6)
	camera := scene.NewCamera(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0), 4, 4)
	sc := scene.NewBuilder(camera).
		Add(primitive.NewGeometricPrimitive(geometry.NewSphere(core.Vec3{}, 1), material.NewMaterial(color))).
		Build()

	config := DefaultConfig()
	config.Passes = 10

	r, err := NewRenderer(sc, integrator.NewFlatIntegrator(core.Vec3{}), config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if r.Passes() != 1 {
		t.Errorf("Expected a single pass, got %d", r.Passes())
	}

	calls := 0
	img, err := r.Render(context.Background(), func(ctx context.Context, result PassResult) error {
		calls++
		if !result.IsLast {
			t.Error("Expected the only pass to be the last")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected one callback, got %d", calls)
	}

	// The central pixels look straight at the sphere
	if got := img.At(2, 2); got != color {
		t.Errorf("Expected %v at the center, got %v", color, got)
	}
}

func TestRenderer_FurnaceScene(t *testing.T) {
	sc, err := scene.New("furnace", 6, 6)
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}

	mcConfig := integrator.DefaultMonteCarloConfig()
	mcConfig.SamplesPerPixel = 4
	factory, err := sampler.NewFactory(sampler.KindStratified, 7)
	if err != nil {
		t.Fatalf("NewFactory failed: %v", err)
	}

	config := DefaultConfig()
	config.Passes = 3
	config.NumWorkers = 4
	config.Samplers = factory

	r, err := NewRenderer(sc, integrator.NewMonteCarloIntegrator(mcConfig), config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	img, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := scene.FurnaceAlbedo.Multiply(mcConfig.EmittedRadiance / math.Pi)
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			if got := img.At(x, y); !got.ApproxEqual(expected, 1e-9) {
				t.Errorf("Pixel (%d, %d): expected %v, got %v", x, y, expected, got)
			}
		}
	}
}

func TestRenderer_RejectsNonSquareStratifiedBudget(t *testing.T) {
	factory, err := sampler.NewFactory(sampler.KindStratified, 0)
	if err != nil {
		t.Fatalf("NewFactory failed: %v", err)
	}

	config := DefaultConfig()
	config.NumWorkers = 2
	config.Samplers = factory

	_, err = NewRenderer(emptyScene(2, 2), &noiseIntegrator{budget: sampler.Budget{Dims2D: 1, SamplesPerPixel: 3}}, config)
	if !errors.Is(err, sampler.ErrNotSquare) {
		t.Errorf("Expected ErrNotSquare, got %v", err)
	}
}

func TestNewRenderer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		scene  *scene.Scene
		passes int
	}{
		{"zero passes", emptyScene(2, 2), 0},
		{"empty image", emptyScene(0, 2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Passes = tt.passes
			if _, err := NewRenderer(tt.scene, integrator.NewFlatIntegrator(core.Vec3{}), config); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestRenderer_CallbackErrorStopsRender(t *testing.T) {
	config := DefaultConfig()
	config.Passes = 5

	r, err := NewRenderer(emptyScene(3, 3), &noiseIntegrator{budget: sampler.Budget{Dims1D: 1, SamplesPerPixel: 1}}, config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	errDisk := errors.New("disk full")
	calls := 0
	_, err = r.Render(context.Background(), func(ctx context.Context, result PassResult) error {
		calls++
		if result.PassNumber == 2 {
			return errDisk
		}
		return nil
	})
	if !errors.Is(err, errDisk) {
		t.Errorf("Expected the callback error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected the render to stop after 2 passes, got %d", calls)
	}
}

func TestRenderer_Cancellation(t *testing.T) {
	config := DefaultConfig()
	config.Passes = 100

	r, err := NewRenderer(emptyScene(8, 8), &noiseIntegrator{budget: sampler.Budget{Dims1D: 1, SamplesPerPixel: 1}}, config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	passes := 0
	_, err = r.Render(ctx, func(ctx context.Context, result PassResult) error {
		passes++
		if passes == 3 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if passes != 3 {
		t.Errorf("Expected 3 passes before cancellation, got %d", passes)
	}
}

func TestRenderer_WorkerPanicIsFatal(t *testing.T) {
	config := DefaultConfig()
	config.Passes = 2

	// The noise integrator draws a 1D value the budget does not provide
	factory, err := sampler.NewFactory(sampler.KindStratified, 0)
	if err != nil {
		t.Fatalf("NewFactory failed: %v", err)
	}
	config.Samplers = factory

	r, err := NewRenderer(emptyScene(2, 2), &noiseIntegrator{budget: sampler.Budget{SamplesPerPixel: 1}}, config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	_, err = r.Render(context.Background(), nil)
	if !errors.Is(err, ErrWorkerPanic) {
		t.Errorf("Expected ErrWorkerPanic, got %v", err)
	}
}

func TestRenderer_RenderProgressive(t *testing.T) {
	config := DefaultConfig()
	config.Passes = 4
	config.NumWorkers = 2

	r, err := NewRenderer(emptyScene(3, 2), &noiseIntegrator{budget: sampler.Budget{Dims1D: 1, SamplesPerPixel: 1}}, config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	passChan, errChan := r.RenderProgressive(context.Background())

	var results []PassResult
	for result := range passChan {
		results = append(results, result)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("Expected 4 passes, got %d", len(results))
	}
	for i, result := range results {
		if result.PassNumber != i+1 {
			t.Errorf("Expected pass %d, got %d", i+1, result.PassNumber)
		}
		if result.IsLast != (i == 3) {
			t.Errorf("Pass %d: unexpected IsLast %v", result.PassNumber, result.IsLast)
		}
	}

	// Images sent on the channel are snapshots
	if results[0].Image.At(0, 0) != results[0].Pass.At(0, 0) {
		t.Errorf("Expected the first average to equal the first pass, got %v and %v",
			results[0].Image.At(0, 0), results[0].Pass.At(0, 0))
	}
}

func TestRenderer_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	config := DefaultConfig()
	config.Passes = 3

	r, err := NewRenderer(emptyScene(2, 2), &noiseIntegrator{budget: sampler.Budget{Dims1D: 1, SamplesPerPixel: 1}}, config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if _, err := r.Render(context.Background(), nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	counts := make(map[string]int)
	for _, span := range recorder.Ended() {
		counts[span.Name()]++
	}
	if counts["Renderer.Render"] != 1 || counts["Renderer.renderPass"] != 3 {
		t.Errorf("Unexpected spans %v", counts)
	}
}
