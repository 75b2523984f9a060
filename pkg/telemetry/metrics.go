package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// Tag keys attached to every render measurement
var (
	KeyIntegrator = tag.MustNewKey("integrator")
	KeyScene      = tag.MustNewKey("scene")
)

// Metrics records render progress as OpenCensus measurements
type Metrics struct {
	pixelCount  *stats.Int64Measure
	passLatency *stats.Float64Measure

	pixelCountView  *view.View
	passLatencyView *view.View
}

// NewMetrics creates the render measures and their views
func NewMetrics() *Metrics {
	m := &Metrics{}

	m.pixelCount = stats.Int64("raytracer/pixels", "Pixels computed by workers", stats.UnitDimensionless)
	m.pixelCountView = &view.View{
		Name:        "raytracer/pixels",
		Description: "Counter of pixels computed by render workers",

		TagKeys: []tag.Key{KeyIntegrator, KeyScene},

		Measure:     m.pixelCount,
		Aggregation: view.Sum(),
	}

	m.passLatency = stats.Float64("raytracer/pass_latency", "Duration of a render pass", stats.UnitMilliseconds)
	m.passLatencyView = &view.View{
		Name:        "raytracer/pass_latency",
		Description: "Distribution of render pass durations",

		TagKeys: []tag.Key{KeyIntegrator, KeyScene},

		Measure:     m.passLatency,
		Aggregation: view.Distribution(10, 50, 100, 500, 1000, 5000, 10000, 60000, 300000),
	}

	return m
}

// RegisterMetrics registers the views so that measurements are aggregated
func (m *Metrics) RegisterMetrics() error {
	if err := view.Register(m.pixelCountView, m.passLatencyView); err != nil {
		return fmt.Errorf("while registering render views: %w", err)
	}
	return nil
}

// UnregisterMetrics stops aggregating the render views
func (m *Metrics) UnregisterMetrics() {
	view.Unregister(m.pixelCountView, m.passLatencyView)
}

// WithLabels returns a context tagged with the integrator and scene names
func WithLabels(ctx context.Context, integrator, scene string) context.Context {
	tagged, err := tag.New(ctx,
		tag.Upsert(KeyIntegrator, integrator),
		tag.Upsert(KeyScene, scene),
	)
	if err != nil {
		return ctx
	}
	return tagged
}

// RecordPixels records that n pixels were computed
func (m *Metrics) RecordPixels(ctx context.Context, n int64) {
	stats.Record(ctx, m.pixelCount.M(n))
}

// RecordPass records the duration of a finished pass
func (m *Metrics) RecordPass(ctx context.Context, duration time.Duration) {
	stats.RecordWithOptions(
		ctx,
		stats.WithMeasurements(m.passLatency.M(float64(duration)/float64(time.Millisecond))))
}

// PixelCountView returns the name of the pixel counter view
func (m *Metrics) PixelCountView() string {
	return m.pixelCountView.Name
}

// PassLatencyView returns the name of the pass latency view
func (m *Metrics) PassLatencyView() string {
	return m.passLatencyView.Name
}
