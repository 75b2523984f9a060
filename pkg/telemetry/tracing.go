package telemetry

import (
	"context"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used by every span of the renderer
const TracerName = "sdf-raytracer"

// Tracer returns the renderer's tracer from the global provider
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// EndSpan marks the span as failed when err is not nil, then ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// glogExporter writes finished spans to the glog info log
type glogExporter struct{}

// ExportSpans logs one line per span
func (glogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		glog.Infof("span %s duration=%v status=%s attributes=%v",
			span.Name(), span.EndTime().Sub(span.StartTime()), span.Status().Code, span.Attributes())
	}
	return nil
}

// Shutdown has nothing to flush
func (glogExporter) Shutdown(ctx context.Context) error {
	return nil
}

// InstallGlogTracing installs a global tracer provider that logs spans with
// glog. The returned function flushes and uninstalls it.
func InstallGlogTracing() func(context.Context) error {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(glogExporter{}),
	)
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)

	return func(ctx context.Context) error {
		otel.SetTracerProvider(previous)
		return provider.Shutdown(ctx)
	}
}
