package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
)

// RollbackAppTool defines the rollback_application tool schema
var RollbackAppTool = mcp.NewTool("rollback_application",
	mcp.WithDescription("Rolls an ArgoCD application back to a recorded deployment. Identify the target by history_id or by revision, as listed by get_sync_history. The request is sent once and never retried."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithIdempotentHintAnnotation(false),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("The name of the application to roll back."),
	),
	mcp.WithNumber("history_id",
		mcp.Description("The id of the history entry to roll back to."),
	),
	mcp.WithString("revision",
		mcp.Description("The revision to roll back to. Resolved to the newest history entry with this revision."),
	),
	mcp.WithBoolean("prune",
		mcp.Description("Whether to delete resources that are not part of the target revision (default: false)."),
	),
	mcp.WithBoolean("dry_run",
		mcp.Description("Preview the rollback without making actual changes (default: false)."),
	),
)

// NewRollbackApplicationHandler returns the rollback_application handler bound to argoClient
func NewRollbackApplicationHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appName, err := requiredString(request, "name")
		if err != nil {
			return errorResult(err), nil
		}
		historyID, hasID, err := optionalID(request, "history_id")
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

		switch {
		case hasID && revision != "":
			return errorResult(errors.NewValidationError("specify either history_id or revision, not both", nil)), nil
		case !hasID && revision == "":
			return errorResult(errors.NewValidationError("history_id or revision is required", nil)), nil
		}

		return rollbackApplicationHandler(ctx, argoClient, argocd.RollbackRequest{
			Name:      appName,
			HistoryID: historyID,
			Prune:     prune,
			DryRun:    dryRun,
		}, revision)
	}
}

// rollbackApplicationHandler resolves revision to a history id when given,
// then issues the rollback.
func rollbackApplicationHandler(
	ctx context.Context,
	argoClient client.Interface,
	req argocd.RollbackRequest,
	revision string,
) (*mcp.CallToolResult, error) {
	if revision != "" {
		id, err := resolveHistoryID(ctx, argoClient, req.Name, revision)
		if err != nil {
			return errorResult(err), nil
		}
		req.HistoryID = id
	}

	result, err := argoClient.RollbackApplication(ctx, req)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result)
}

func resolveHistoryID(ctx context.Context, argoClient client.Interface, appName, revision string) (int64, error) {
	history, err := argoClient.GetSyncHistory(ctx, appName)
	if err != nil {
		return 0, err
	}
	// entries are newest first
	for _, e := range history.Entries {
		if e.Revision == revision {
			return e.ID, nil
		}
	}
	return 0, errors.NewNotFoundError(
		fmt.Sprintf("revision %q not found in history of application %q", revision, appName),
		map[string]interface{}{"application": appName, "revision": revision},
	)
}
