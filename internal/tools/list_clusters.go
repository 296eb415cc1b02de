package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// ListClustersTool defines the list_clusters tool schema
var ListClustersTool = mcp.NewTool("list_clusters",
	mcp.WithDescription("Lists all clusters ArgoCD deploys to, with their connection state. Use name_only=true to get just cluster names and servers for a compact view."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithBoolean("name_only",
		mcp.Description("If true, returns only cluster names and servers."),
	),
)

// ClusterIdentifier contains minimal cluster identification
type ClusterIdentifier struct {
	Name   string `json:"name"`
	Server string `json:"server"`
}

// NewListClustersHandler returns the list_clusters handler bound to argoClient
func NewListClustersHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nameOnly, err := optionalBool(request, "name_only")
		if err != nil {
			return errorResult(err), nil
		}
		return listClustersHandler(ctx, argoClient, nameOnly)
	}
}

func listClustersHandler(
	ctx context.Context,
	argoClient client.Interface,
	nameOnly bool,
) (*mcp.CallToolResult, error) {
	clusters, err := argoClient.ListClusters(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	if nameOnly {
		ids := make([]ClusterIdentifier, 0, len(clusters))
		for _, c := range clusters {
			ids = append(ids, ClusterIdentifier{Name: c.Name, Server: c.Server})
		}
		return jsonResult(ids)
	}
	return jsonResult(clusters)
}
