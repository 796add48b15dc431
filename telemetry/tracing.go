package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ShutdownFunc flushes and releases whatever tracing resources Init set up.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init installs a TracerProvider tagged with serviceName/version and
// returns a Tracer plus a shutdown hook. No exporter is attached: spans are
// created and recorded in-process (so --trace still lets callers inspect
// span timings) but nothing leaves the process, since shipping telemetry
// to a collector is an external-collaborator concern this repo doesn't own.
func Init(serviceName, version string) (trace.Tracer, ShutdownFunc, error) {
	res, err := sdkresource.New(context.Background(),
		sdkresource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version),
		),
	)
	if err != nil {
		return nil, noopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)

	shutdown := func(ctx context.Context) error {
		return tp.Shutdown(ctx)
	}

	return tp.Tracer(serviceName), shutdown, nil
}
