package client

import (
	"context"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
)

//go:generate mockgen -source=interface.go -destination=mock/mock_client.go -package=mock

// Interface defines the contract for ArgoCD client operations.
// Every call is a fresh round trip; nothing is cached.
type Interface interface {
	// Application operations
	ListApplications(ctx context.Context, opts argocd.ListOptions) ([]argocd.ApplicationSummary, error)
	GetApplication(ctx context.Context, name string) (*argocd.ApplicationDetail, error)
	SyncApplication(ctx context.Context, req argocd.SyncRequest) (*argocd.SyncResult, error)
	GetHealth(ctx context.Context, name string) (*argocd.HealthReport, error)
	GetSyncHistory(ctx context.Context, name string) (*argocd.SyncHistory, error)
	GetParameters(ctx context.Context, name string) ([]argocd.Parameter, error)
	SetParameters(ctx context.Context, name string, params []argocd.Parameter) ([]argocd.Parameter, error)
	RollbackApplication(ctx context.Context, req argocd.RollbackRequest) (*argocd.SyncResult, error)
	GetManifests(ctx context.Context, name string, revision string) (*argocd.ManifestSet, error)
	DeleteApplication(ctx context.Context, name string, cascade bool) (*argocd.DeleteResult, error)

	// Project operations
	ListProjects(ctx context.Context) ([]argocd.ProjectSummary, error)

	// Cluster operations
	ListClusters(ctx context.Context) ([]argocd.ClusterSummary, error)
}

// Ensure Client implements Interface
var _ Interface = (*Client)(nil)
