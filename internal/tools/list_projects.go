package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// ListProjectsTool defines the list_projects tool schema
var ListProjectsTool = mcp.NewTool("list_projects",
	mcp.WithDescription("Lists all ArgoCD projects. Use name_only=true to get just project names for a compact view."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithBoolean("name_only",
		mcp.Description("If true, returns only project names. Useful for getting a quick list of project names."),
	),
)

// NewListProjectsHandler returns the list_projects handler bound to argoClient
func NewListProjectsHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nameOnly, err := optionalBool(request, "name_only")
		if err != nil {
			return errorResult(err), nil
		}
		return listProjectsHandler(ctx, argoClient, nameOnly)
	}
}

func listProjectsHandler(
	ctx context.Context,
	argoClient client.Interface,
	nameOnly bool,
) (*mcp.CallToolResult, error) {
	projects, err := argoClient.ListProjects(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	if nameOnly {
		names := make([]string, 0, len(projects))
		for _, p := range projects {
			names = append(names, p.Name)
		}
		return jsonResult(names)
	}
	return jsonResult(projects)
}
