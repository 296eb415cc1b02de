package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// ListAppsTool defines the list_applications tool schema
var ListAppsTool = mcp.NewTool("list_applications",
	mcp.WithDescription("Lists ArgoCD applications with their sync and health status, with optional filters."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithString("project",
		mcp.Description("Filter applications by project name."),
	),
	mcp.WithString("selector",
		mcp.Description("Filter applications by a label selector (e.g., 'key=value')."),
	),
)

// NewListApplicationsHandler returns the list_applications handler bound to argoClient
func NewListApplicationsHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		project, err := optionalString(request, "project")
		if err != nil {
			return errorResult(err), nil
		}
		selector, err := optionalString(request, "selector")
		if err != nil {
			return errorResult(err), nil
		}
		return listApplicationsHandler(ctx, argoClient, argocd.ListOptions{Project: project, Selector: selector})
	}
}

// listApplicationsHandler handles the core logic for listing applications.
func listApplicationsHandler(
	ctx context.Context,
	argoClient client.Interface,
	opts argocd.ListOptions,
) (*mcp.CallToolResult, error) {
	apps, err := argoClient.ListApplications(ctx, opts)
	if err != nil {
		return errorResult(err), nil
	}
	if apps == nil {
		apps = []argocd.ApplicationSummary{}
	}
	return jsonResult(apps)
}
