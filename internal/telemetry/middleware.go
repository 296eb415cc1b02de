package telemetry

import (
	"context"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "argocd-mcp-server/tools"

// ToolTracing wraps every tool call in a span named mcp.tool.<name>
func ToolTracing() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			toolName := request.Params.Name
			ctx, span := otel.Tracer(tracerName).Start(ctx, "mcp.tool."+toolName,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attribute.String("mcp.tool.name", toolName)),
			)
			defer span.End()

			// argument values are never recorded
			if args := request.GetArguments(); len(args) > 0 {
				names := make([]string, 0, len(args))
				for k := range args {
					names = append(names, k)
				}
				sort.Strings(names)
				span.SetAttributes(attribute.StringSlice("mcp.request.argument_names", names))
			}

			start := time.Now()
			result, err := next(ctx, request)
			span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", time.Since(start).Seconds()))

			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case result != nil && result.IsError:
				span.SetAttributes(attribute.Bool("mcp.result.is_error", true))
				span.SetStatus(codes.Error, "tool returned an error result")
			default:
				span.SetAttributes(attribute.Bool("mcp.result.is_error", false))
				span.SetStatus(codes.Ok, "")
			}
			return result, err
		}
	}
}
