package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// GetSyncHistoryTool defines the get_sync_history tool schema
var GetSyncHistoryTool = mcp.NewTool("get_sync_history",
	mcp.WithDescription("Lists the recorded deployments of an ArgoCD application, newest first. History ids can be passed to rollback_application."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("The name of the application."),
	),
)

// NewGetSyncHistoryHandler returns the get_sync_history handler bound to argoClient
func NewGetSyncHistoryHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appName, err := requiredString(request, "name")
		if err != nil {
			return errorResult(err), nil
		}

		history, err := argoClient.GetSyncHistory(ctx, appName)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(history)
	}
}
