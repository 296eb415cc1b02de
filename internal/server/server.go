package server

import (
	mcp_server "github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/telemetry"
)

// Name is the server name reported during MCP initialization
const Name = "argocd-mcp-server"

// New creates and returns a new MCP server instance. Every tool call passes
// through panic recovery, logging, metrics and tracing, then through any
// extra middlewares in the order given.
func New(version string, middlewares ...mcp_server.ToolHandlerMiddleware) *mcp_server.MCPServer {
	opts := []mcp_server.ServerOption{
		mcp_server.WithToolCapabilities(false),
		// Add recovery middleware to protect server from panics in handlers
		mcp_server.WithRecovery(),
		mcp_server.WithToolHandlerMiddleware(ToolLogging()),
		mcp_server.WithToolHandlerMiddleware(ToolMetrics()),
		mcp_server.WithToolHandlerMiddleware(telemetry.ToolTracing()),
	}
	for _, mw := range middlewares {
		opts = append(opts, mcp_server.WithToolHandlerMiddleware(mw))
	}

	return mcp_server.NewMCPServer(Name, version, opts...)
}
