package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// GetAppManifestsTool defines the get_application_manifests tool schema
var GetAppManifestsTool = mcp.NewTool("get_application_manifests",
	mcp.WithDescription("Retrieves the rendered Kubernetes manifests for an ArgoCD application. This shows what resources will be applied to the cluster."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("The name of the application to retrieve manifests for."),
	),
	mcp.WithString("revision",
		mcp.Description("The git revision to retrieve manifests for. If not specified, uses the currently deployed revision."),
	),
)

// NewGetApplicationManifestsHandler returns the get_application_manifests handler bound to argoClient
func NewGetApplicationManifestsHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appName, err := requiredString(request, "name")
		if err != nil {
			return errorResult(err), nil
		}
		revision, err := optionalString(request, "revision")
		if err != nil {
			return errorResult(err), nil
		}
		return getApplicationManifestsHandler(ctx, argoClient, appName, revision)
	}
}

func getApplicationManifestsHandler(
	ctx context.Context,
	argoClient client.Interface,
	appName string,
	revision string,
) (*mcp.CallToolResult, error) {
	manifests, err := argoClient.GetManifests(ctx, appName, revision)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(manifests)
}
