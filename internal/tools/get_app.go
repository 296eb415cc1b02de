package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// GetAppTool defines the get_application tool schema
var GetAppTool = mcp.NewTool("get_application",
	mcp.WithDescription("Retrieves detailed information about a specific ArgoCD application, including source, destination, parameters and resource status."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("The name of the application to retrieve."),
	),
)

// NewGetApplicationHandler returns the get_application handler bound to argoClient
func NewGetApplicationHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appName, err := requiredString(request, "name")
		if err != nil {
			return errorResult(err), nil
		}
		return getApplicationHandler(ctx, argoClient, appName)
	}
}

func getApplicationHandler(
	ctx context.Context,
	argoClient client.Interface,
	appName string,
) (*mcp.CallToolResult, error) {
	app, err := argoClient.GetApplication(ctx, appName)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(app)
}
