package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

type registration struct {
	tool    mcp.Tool
	handler func(argoClient client.Interface) server.ToolHandlerFunc
}

// registry is the complete tool surface. Tools are never added at runtime.
var registry = []registration{
	{ListAppsTool, NewListApplicationsHandler},
	{GetAppTool, NewGetApplicationHandler},
	{SyncAppTool, NewSyncApplicationHandler},
	{GetAppHealthTool, NewGetApplicationHealthHandler},
	{GetSyncHistoryTool, NewGetSyncHistoryHandler},
	{GetAppParametersTool, NewGetApplicationParametersHandler},
	{SetAppParametersTool, NewSetApplicationParametersHandler},
	{RollbackAppTool, NewRollbackApplicationHandler},
	{GetAppManifestsTool, NewGetApplicationManifestsHandler},
	{ListProjectsTool, NewListProjectsHandler},
	{ListClustersTool, NewListClustersHandler},
	{DeleteAppTool, NewDeleteApplicationHandler},
}

// RegisterAll registers all defined tools with the MCP server
func RegisterAll(s *server.MCPServer, argoClient client.Interface) {
	for _, r := range registry {
		s.AddTool(r.tool, r.handler(argoClient))
	}
}

// Tools returns the definitions of every registered tool
func Tools() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.tool)
	}
	return out
}
