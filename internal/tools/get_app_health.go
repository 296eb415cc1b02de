package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// GetAppHealthTool defines the get_application_health tool schema
var GetAppHealthTool = mcp.NewTool("get_application_health",
	mcp.WithDescription("Reports the aggregated health of an ArgoCD application and the health of each managed resource."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("The name of the application."),
	),
)

// NewGetApplicationHealthHandler returns the get_application_health handler bound to argoClient
func NewGetApplicationHealthHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appName, err := requiredString(request, "name")
		if err != nil {
			return errorResult(err), nil
		}

		report, err := argoClient.GetHealth(ctx, appName)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(report)
	}
}
