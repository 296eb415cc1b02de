package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
)

const serviceName = "argocd-mcp-server"

// Exporter names accepted by Setup
const (
	ExporterNone    = "none"
	ExporterConsole = "console"
)

// Setup installs the global tracer provider. With ExporterNone (or an empty
// exporter) the OTel no-op provider stays in place. Spans are written to out,
// which must not be the MCP stdio channel.
func Setup(ctx context.Context, exporter, version string, out io.Writer) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	switch exporter {
	case "", ExporterNone:
		return noop, nil
	case ExporterConsole:
	default:
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported traces exporter %q", exporter), nil)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(out), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
