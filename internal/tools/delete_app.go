package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// DeleteAppTool defines the delete_application tool schema
var DeleteAppTool = mcp.NewTool("delete_application",
	mcp.WithDescription("Deletes an ArgoCD application. Use with caution as this operation is destructive. The request is sent once and never retried."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithIdempotentHintAnnotation(false),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("The name of the application to delete."),
	),
	mcp.WithBoolean("cascade",
		mcp.Description("Whether to perform a cascading delete to remove the application's resources from the cluster (default: true)."),
	),
)

// NewDeleteApplicationHandler returns the delete_application handler bound to argoClient
func NewDeleteApplicationHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appName, err := requiredString(request, "name")
		if err != nil {
			return errorResult(err), nil
		}
		cascade, err := boolOrDefault(request, "cascade", true)
		if err != nil {
			return errorResult(err), nil
		}
		return deleteApplicationHandler(ctx, argoClient, appName, cascade)
	}
}

// deleteApplicationHandler handles the core logic for deleting an application.
func deleteApplicationHandler(
	ctx context.Context,
	argoClient client.Interface,
	appName string,
	cascade bool,
) (*mcp.CallToolResult, error) {
	result, err := argoClient.DeleteApplication(ctx, appName, cascade)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result)
}
