package argocd

import (
	"time"

	"github.com/argoproj/argo-cd/v2/pkg/apis/application/v1alpha1"
	"github.com/argoproj/gitops-engine/pkg/health"
	synccommon "github.com/argoproj/gitops-engine/pkg/sync/common"
)

// ApplicationSummary is the subset of an Application returned by list operations
type ApplicationSummary struct {
	Name           string                  `json:"name"`
	Namespace      string                  `json:"namespace,omitempty"`
	Project        string                  `json:"project"`
	RepoURL        string                  `json:"repoURL,omitempty"`
	Path           string                  `json:"path,omitempty"`
	TargetRevision string                  `json:"targetRevision,omitempty"`
	Destination    Destination             `json:"destination"`
	SyncStatus     v1alpha1.SyncStatusCode `json:"syncStatus"`
	HealthStatus   health.HealthStatusCode `json:"healthStatus"`
}

// Destination defines the cluster and namespace where the application is deployed
type Destination struct {
	Server    string `json:"server,omitempty"`
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// ApplicationDetail is the fuller view returned by get_application
type ApplicationDetail struct {
	ApplicationSummary
	Sources      []v1alpha1.ApplicationSource `json:"sources"`
	Parameters   []Parameter                  `json:"parameters"`
	SyncRevision string                       `json:"syncRevision,omitempty"`
	Resources    []ResourceStatus             `json:"resources,omitempty"`
	Operation    *OperationSummary            `json:"lastOperation,omitempty"`
	Application  *v1alpha1.Application        `json:"application"`
}

// ResourceStatus is the live state of one managed resource
type ResourceStatus struct {
	Group        string                  `json:"group,omitempty"`
	Kind         string                  `json:"kind"`
	Namespace    string                  `json:"namespace,omitempty"`
	Name         string                  `json:"name"`
	SyncStatus   v1alpha1.SyncStatusCode `json:"syncStatus,omitempty"`
	HealthStatus health.HealthStatusCode `json:"healthStatus,omitempty"`
	Message      string                  `json:"message,omitempty"`
}

// Parameter is a Helm parameter override on the application source
type Parameter struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	ForceString bool   `json:"forceString,omitempty"`
}

// SyncRequest holds the inputs of a sync operation
type SyncRequest struct {
	Name     string
	Revision string
	Prune    bool
	DryRun   bool
}

// RollbackRequest holds the inputs of a rollback operation
type RollbackRequest struct {
	Name      string
	HistoryID int64
	Prune     bool
	DryRun    bool
}

// SyncResult is the outcome of a sync or rollback request as acknowledged by ArgoCD
type SyncResult struct {
	Application string                    `json:"application"`
	Accepted    bool                      `json:"accepted"`
	Phase       synccommon.OperationPhase `json:"phase"`
	Message     string                    `json:"message,omitempty"`
	Revision    string                    `json:"revision,omitempty"`
	HistoryID   int64                     `json:"historyId,omitempty"`
	DryRun      bool                      `json:"dryRun"`
	Prune       bool                      `json:"prune"`
}

// HealthReport is the aggregated and per-resource health of an application
type HealthReport struct {
	Application string                  `json:"application"`
	Status      health.HealthStatusCode `json:"status"`
	Message     string                  `json:"message,omitempty"`
	Resources   []ResourceStatus        `json:"resources,omitempty"`
}

// HistoryEntry is one recorded deployment of an application
type HistoryEntry struct {
	ID              int64      `json:"id"`
	Revision        string     `json:"revision"`
	DeployedAt      time.Time  `json:"deployedAt"`
	DeployStartedAt *time.Time `json:"deployStartedAt,omitempty"`
	RepoURL         string     `json:"repoURL,omitempty"`
	Path            string     `json:"path,omitempty"`
	Outcome         string     `json:"outcome"`
}

// OutcomeSucceeded is the outcome of every entry ArgoCD records in history
const OutcomeSucceeded = "Succeeded"

// OperationSummary describes the most recent operation on an application
type OperationSummary struct {
	Phase      synccommon.OperationPhase `json:"phase"`
	Message    string                    `json:"message,omitempty"`
	Revision   string                    `json:"revision,omitempty"`
	StartedAt  time.Time                 `json:"startedAt"`
	FinishedAt *time.Time                `json:"finishedAt,omitempty"`
}

// SyncHistory lists deployments newest first
type SyncHistory struct {
	Application   string            `json:"application"`
	Entries       []HistoryEntry    `json:"entries"`
	LastOperation *OperationSummary `json:"lastOperation,omitempty"`
}

// ListOptions filters list_applications
type ListOptions struct {
	Project  string
	Selector string
}

// ProjectSummary is the subset of an AppProject returned by list_projects
type ProjectSummary struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	SourceRepos  []string      `json:"sourceRepos,omitempty"`
	Destinations []Destination `json:"destinations,omitempty"`
}

// ManifestSet holds the rendered manifests of an application
type ManifestSet struct {
	Application string   `json:"application"`
	Revision    string   `json:"revision,omitempty"`
	SourceType  string   `json:"sourceType,omitempty"`
	Manifests   []string `json:"manifests"`
}

// ClusterSummary is the subset of a Cluster returned by list_clusters
type ClusterSummary struct {
	Name             string                    `json:"name"`
	Server           string                    `json:"server"`
	ServerVersion    string                    `json:"serverVersion,omitempty"`
	ConnectionStatus v1alpha1.ConnectionStatus `json:"connectionStatus,omitempty"`
	Message          string                    `json:"message,omitempty"`
	Namespaces       []string                  `json:"namespaces,omitempty"`
	Project          string                    `json:"project,omitempty"`
}

// DeleteResult reports an accepted application deletion
type DeleteResult struct {
	Application string `json:"application"`
	Cascade     bool   `json:"cascade"`
	Deleted     bool   `json:"deleted"`
}
