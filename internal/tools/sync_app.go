package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// SyncAppTool defines the sync_application tool schema
var SyncAppTool = mcp.NewTool("sync_application",
	mcp.WithDescription("Triggers a sync operation for a specific ArgoCD application. The request is sent once and never retried."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithIdempotentHintAnnotation(false),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("The name of the application to sync."),
	),
	mcp.WithString("revision",
		mcp.Description("The git revision to sync to. Defaults to the application's target revision."),
	),
	mcp.WithBoolean("prune",
		mcp.Description("Whether to delete resources that are no longer defined in the source (default: false)."),
	),
	mcp.WithBoolean("dry_run",
		mcp.Description("Preview the sync operation without making actual changes (default: false)."),
	),
)

// NewSyncApplicationHandler returns the sync_application handler bound to argoClient
func NewSyncApplicationHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appName, err := requiredString(request, "name")
		if err != nil {
			return errorResult(err), nil
		}
		revision, err := optionalString(request, "revision")
		if err != nil {
			return errorResult(err), nil
		}
		prune, err := optionalBool(request, "prune")
		if err != nil {
			return errorResult(err), nil
		}
		dryRun, err := optionalBool(request, "dry_run")
		if err != nil {
			return errorResult(err), nil
		}

		return syncApplicationHandler(ctx, argoClient, argocd.SyncRequest{
			Name:     appName,
			Revision: revision,
			Prune:    prune,
			DryRun:   dryRun,
		})
	}
}

// syncApplicationHandler handles the core logic for syncing an application.
func syncApplicationHandler(
	ctx context.Context,
	argoClient client.Interface,
	req argocd.SyncRequest,
) (*mcp.CallToolResult, error) {
	result, err := argoClient.SyncApplication(ctx, req)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result)
}
