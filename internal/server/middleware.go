package server

import (
	"context"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcp_server "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/argocd-mcp/argocd-mcp-server/internal/logging"
	"github.com/argocd-mcp/argocd-mcp-server/internal/metrics"
)

// ToolLogging logs one line per tool call. Only argument names are logged.
func ToolLogging() mcp_server.ToolHandlerMiddleware {
	return func(next mcp_server.ToolHandlerFunc) mcp_server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, request)

			argNames := make([]string, 0, len(request.GetArguments()))
			for k := range request.GetArguments() {
				argNames = append(argNames, k)
			}
			sort.Strings(argNames)

			entry := logging.WithFields(logrus.Fields{
				"tool":      request.Params.Name,
				"arguments": argNames,
				"duration":  time.Since(start).String(),
				"is_error":  err != nil || (result != nil && result.IsError),
			})
			switch {
			case err != nil:
				entry.WithError(err).Error("Tool call failed")
			case result != nil && result.IsError:
				entry.Warn("Tool call returned an error result")
			default:
				entry.Info("Tool call completed")
			}
			return result, err
		}
	}
}

// ToolMetrics counts tool invocations and failures
func ToolMetrics() mcp_server.ToolHandlerMiddleware {
	return func(next mcp_server.ToolHandlerFunc) mcp_server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			toolName := request.Params.Name
			metrics.ToolInvocationsTotal.WithLabelValues(toolName).Inc()

			result, err := next(ctx, request)
			if err != nil || (result != nil && result.IsError) {
				metrics.ToolFailuresTotal.WithLabelValues(toolName).Inc()
			}
			return result, err
		}
	}
}
