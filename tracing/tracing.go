// Package tracing builds the OpenTelemetry tracer provider used by the daemon.
package tracing

import (
	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const DefaultServiceName = "greeremote"

type Options struct {
	// GCloudProject exports spans to Cloud Trace in this project when set.
	GCloudProject string
	ServiceName   string
	// Extra span processors, mostly for tests.
	Processors []sdktrace.SpanProcessor
}

// New returns a provider that samples every span. Without a project the spans
// are only visible to opts.Processors, but still carry real trace IDs for the
// logs.
func New(opts Options) (*sdktrace.TracerProvider, error) {
	name := opts.ServiceName
	if name == "" {
		name = DefaultServiceName
	}
	sdkOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
	}
	if opts.GCloudProject != "" {
		exporter, err := texporter.New(texporter.WithProjectID(opts.GCloudProject))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create Cloud Trace exporter")
		}
		sdkOpts = append(sdkOpts, sdktrace.WithBatcher(exporter))
	}
	for _, p := range opts.Processors {
		sdkOpts = append(sdkOpts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(sdkOpts...), nil
}
