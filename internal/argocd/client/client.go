package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/argoproj/argo-cd/v2/pkg/apis/application/v1alpha1"
	repoapiclient "github.com/argoproj/argo-cd/v2/reposerver/apiclient"
	synccommon "github.com/argoproj/gitops-engine/pkg/sync/common"

	"github.com/argocd-mcp/argocd-mcp-server/internal/api"
	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
	"github.com/argocd-mcp/argocd-mcp-server/internal/config"
	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
)

// Client provides typed access to the ArgoCD REST API
type Client struct {
	api *api.Client
}

// New creates a new ArgoCD client with the provided configuration.
// The returned client is safe for concurrent use.
func New(cfg *config.Config) (*Client, error) {
	apiClient, err := api.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{api: apiClient}, nil
}

func applicationPath(name string, suffix string) string {
	return "/applications/" + url.PathEscape(name) + suffix
}

func requireName(name string) error {
	if name == "" {
		return errors.NewValidationError("application name is required", nil)
	}
	return nil
}

// notFoundApplication rewrites a bare not-found into one naming the application
func notFoundApplication(err error, name string) error {
	if errors.IsNotFoundError(err) {
		return errors.NewNotFoundError(fmt.Sprintf("application %q not found", name), map[string]interface{}{
			"application": name,
			"upstream":    err.Error(),
		})
	}
	return err
}

func decode(body []byte, v interface{}, what string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return errors.NewParsingError("failed to unmarshal "+what, err, nil)
	}
	return nil
}

// Application operations

func (c *Client) fetchApplication(ctx context.Context, name string) (*v1alpha1.Application, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	body, err := c.api.Get(ctx, applicationPath(name, ""))
	if err != nil {
		return nil, notFoundApplication(err, name)
	}
	var app v1alpha1.Application
	if err := decode(body, &app, "application"); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplications retrieves application summaries in the order ArgoCD returns them
func (c *Client) ListApplications(ctx context.Context, opts argocd.ListOptions) ([]argocd.ApplicationSummary, error) {
	params := url.Values{}
	if opts.Project != "" {
		params.Add("projects", opts.Project)
	}
	if opts.Selector != "" {
		params.Add("selector", opts.Selector)
	}

	path := "/applications"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	var list v1alpha1.ApplicationList
	if err := decode(body, &list, "applications list"); err != nil {
		return nil, err
	}

	summaries := make([]argocd.ApplicationSummary, 0, len(list.Items))
	for i := range list.Items {
		summaries = append(summaries, summarize(&list.Items[i]))
	}
	return summaries, nil
}

// GetApplication retrieves details of a single application
func (c *Client) GetApplication(ctx context.Context, name string) (*argocd.ApplicationDetail, error) {
	app, err := c.fetchApplication(ctx, name)
	if err != nil {
		return nil, err
	}
	return detail(app), nil
}

// syncRequestBody is the ApplicationSyncRequest payload
type syncRequestBody struct {
	Name     string `json:"name"`
	Revision string `json:"revision,omitempty"`
	Prune    bool   `json:"prune"`
	DryRun   bool   `json:"dryRun"`
}

// SyncApplication triggers a sync operation. It issues exactly one request.
func (c *Client) SyncApplication(ctx context.Context, req argocd.SyncRequest) (*argocd.SyncResult, error) {
	if err := requireName(req.Name); err != nil {
		return nil, err
	}

	body, err := c.api.Post(ctx, applicationPath(req.Name, "/sync"), syncRequestBody{
		Name:     req.Name,
		Revision: req.Revision,
		Prune:    req.Prune,
		DryRun:   req.DryRun,
	})
	if err != nil {
		return nil, notFoundApplication(err, req.Name)
	}

	var app v1alpha1.Application
	if err := decode(body, &app, "sync response"); err != nil {
		return nil, err
	}

	result := operationResult(&app, req.Name)
	result.Prune = req.Prune
	result.DryRun = req.DryRun
	if result.Revision == "" {
		result.Revision = req.Revision
	}
	return result, nil
}

// GetHealth reports the aggregated and per-resource health of an application
func (c *Client) GetHealth(ctx context.Context, name string) (*argocd.HealthReport, error) {
	app, err := c.fetchApplication(ctx, name)
	if err != nil {
		return nil, err
	}
	return &argocd.HealthReport{
		Application: app.Name,
		Status:      app.Status.Health.Status,
		Message:     app.Status.Health.Message,
		Resources:   resourceStatuses(app),
	}, nil
}

// GetSyncHistory returns the recorded deployments, newest first
func (c *Client) GetSyncHistory(ctx context.Context, name string) (*argocd.SyncHistory, error) {
	app, err := c.fetchApplication(ctx, name)
	if err != nil {
		return nil, err
	}

	entries := make([]argocd.HistoryEntry, 0, len(app.Status.History))
	for _, h := range app.Status.History {
		entry := argocd.HistoryEntry{
			ID:         h.ID,
			Revision:   h.Revision,
			DeployedAt: h.DeployedAt.Time,
			RepoURL:    h.Source.RepoURL,
			Path:       h.Source.Path,
			Outcome:    argocd.OutcomeSucceeded,
		}
		if h.DeployStartedAt != nil {
			t := h.DeployStartedAt.Time
			entry.DeployStartedAt = &t
		}
		if entry.Revision == "" && len(h.Revisions) > 0 {
			entry.Revision = h.Revisions[0]
		}
		if entry.RepoURL == "" && len(h.Sources) > 0 {
			entry.RepoURL = h.Sources[0].RepoURL
			entry.Path = h.Sources[0].Path
		}
		entries = append(entries, entry)
	}

	// IDs grow monotonically; deployment time breaks ties for imported history
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ID != entries[j].ID {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].DeployedAt.After(entries[j].DeployedAt)
	})

	return &argocd.SyncHistory{
		Application:   app.Name,
		Entries:       entries,
		LastOperation: lastOperation(app),
	}, nil
}

// GetParameters returns the Helm parameter overrides of the primary source
func (c *Client) GetParameters(ctx context.Context, name string) ([]argocd.Parameter, error) {
	app, err := c.fetchApplication(ctx, name)
	if err != nil {
		return nil, err
	}
	source := app.Spec.GetSource()
	return helmParameters(&source), nil
}

// SetParameters merges params into the Helm overrides of the primary source
// and writes the spec back. The write is issued once and never retried.
func (c *Client) SetParameters(ctx context.Context, name string, params []argocd.Parameter) ([]argocd.Parameter, error) {
	if len(params) == 0 {
		return nil, errors.NewValidationError("at least one parameter is required", nil)
	}

	app, err := c.fetchApplication(ctx, name)
	if err != nil {
		return nil, err
	}

	source := primarySource(&app.Spec)
	if source == nil {
		return nil, errors.NewValidationError(fmt.Sprintf("application %q has no source", name), nil)
	}
	if !isHelmSource(app, source) {
		return nil, errors.NewValidationError("parameters can only be set on Helm sources", map[string]interface{}{
			"application": name,
			"sourceType":  string(app.Status.SourceType),
		})
	}
	if source.Helm == nil {
		source.Helm = &v1alpha1.ApplicationSourceHelm{}
	}
	for _, p := range params {
		setHelmParameter(source.Helm, v1alpha1.HelmParameter{
			Name:        p.Name,
			Value:       p.Value,
			ForceString: p.ForceString,
		})
	}

	body, err := c.api.Put(ctx, applicationPath(name, "/spec"), app.Spec)
	if err != nil {
		return nil, notFoundApplication(err, name)
	}

	var spec v1alpha1.ApplicationSpec
	if err := decode(body, &spec, "application spec"); err != nil {
		return nil, err
	}
	updated := spec.GetSource()
	return helmParameters(&updated), nil
}

// rollbackRequestBody is the ApplicationRollbackRequest payload
type rollbackRequestBody struct {
	Name   string `json:"name"`
	ID     int64  `json:"id"`
	Prune  bool   `json:"prune"`
	DryRun bool   `json:"dryRun"`
}

// RollbackApplication reverts an application to a recorded history entry.
// It issues exactly one request.
func (c *Client) RollbackApplication(ctx context.Context, req argocd.RollbackRequest) (*argocd.SyncResult, error) {
	if err := requireName(req.Name); err != nil {
		return nil, err
	}

	body, err := c.api.Post(ctx, applicationPath(req.Name, "/rollback"), rollbackRequestBody{
		Name:   req.Name,
		ID:     req.HistoryID,
		Prune:  req.Prune,
		DryRun: req.DryRun,
	})
	if err != nil {
		if errors.IsNotFoundError(err) || isMissingDeployment(err) {
			return nil, errors.NewNotFoundError(
				fmt.Sprintf("application %q or history id %d not found", req.Name, req.HistoryID),
				map[string]interface{}{
					"application": req.Name,
					"historyId":   req.HistoryID,
					"upstream":    err.Error(),
				})
		}
		return nil, err
	}

	var app v1alpha1.Application
	if err := decode(body, &app, "rollback response"); err != nil {
		return nil, err
	}

	result := operationResult(&app, req.Name)
	result.HistoryID = req.HistoryID
	result.Prune = req.Prune
	result.DryRun = req.DryRun
	if result.Revision == "" {
		for _, h := range app.Status.History {
			if h.ID == req.HistoryID {
				result.Revision = h.Revision
			}
		}
	}
	return result, nil
}

// isMissingDeployment matches ArgoCD's InvalidArgument reply to a rollback
// naming a history id the application never recorded
func isMissingDeployment(err error) bool {
	return errors.IsUpstreamError(err) && strings.Contains(err.Error(), "does not have deployment with id")
}

// GetManifests returns the rendered manifests for an application
func (c *Client) GetManifests(ctx context.Context, name string, revision string) (*argocd.ManifestSet, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}

	path := applicationPath(name, "/manifests")
	if revision != "" {
		path += "?" + url.Values{"revision": []string{revision}}.Encode()
	}

	body, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, notFoundApplication(err, name)
	}

	var resp repoapiclient.ManifestResponse
	if err := decode(body, &resp, "manifests"); err != nil {
		return nil, err
	}

	manifests := resp.Manifests
	if manifests == nil {
		manifests = []string{}
	}
	return &argocd.ManifestSet{
		Application: name,
		Revision:    resp.Revision,
		SourceType:  resp.SourceType,
		Manifests:   manifests,
	}, nil
}

// DeleteApplication deletes an application. With cascade the controller also
// removes its cluster resources. The request is issued once.
func (c *Client) DeleteApplication(ctx context.Context, name string, cascade bool) (*argocd.DeleteResult, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}

	path := applicationPath(name, "") + "?" + url.Values{"cascade": []string{strconv.FormatBool(cascade)}}.Encode()
	if _, err := c.api.Delete(ctx, path); err != nil {
		return nil, notFoundApplication(err, name)
	}
	return &argocd.DeleteResult{
		Application: name,
		Cascade:     cascade,
		Deleted:     true,
	}, nil
}

// Project operations

// ListProjects retrieves all ArgoCD projects
func (c *Client) ListProjects(ctx context.Context) ([]argocd.ProjectSummary, error) {
	body, err := c.api.Get(ctx, "/projects")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var list v1alpha1.AppProjectList
	if err := decode(body, &list, "projects list"); err != nil {
		return nil, err
	}

	projects := make([]argocd.ProjectSummary, 0, len(list.Items))
	for _, p := range list.Items {
		summary := argocd.ProjectSummary{
			Name:        p.Name,
			Description: p.Spec.Description,
			SourceRepos: p.Spec.SourceRepos,
		}
		for _, d := range p.Spec.Destinations {
			summary.Destinations = append(summary.Destinations, argocd.Destination{
				Server:    d.Server,
				Name:      d.Name,
				Namespace: d.Namespace,
			})
		}
		projects = append(projects, summary)
	}
	return projects, nil
}

// Cluster operations

// ListClusters retrieves the clusters ArgoCD deploys to
func (c *Client) ListClusters(ctx context.Context) ([]argocd.ClusterSummary, error) {
	body, err := c.api.Get(ctx, "/clusters")
	if err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	var list v1alpha1.ClusterList
	if err := decode(body, &list, "clusters list"); err != nil {
		return nil, err
	}

	clusters := make([]argocd.ClusterSummary, 0, len(list.Items))
	for _, cl := range list.Items {
		clusters = append(clusters, argocd.ClusterSummary{
			Name:             cl.Name,
			Server:           cl.Server,
			ServerVersion:    cl.Info.ServerVersion,
			ConnectionStatus: cl.Info.ConnectionState.Status,
			Message:          cl.Info.ConnectionState.Message,
			Namespaces:       cl.Namespaces,
			Project:          cl.Project,
		})
	}
	return clusters, nil
}

// operationResult shapes the application returned by sync/rollback.
// A freshly queued operation shows up in app.Operation before the
// controller has written any OperationState.
func operationResult(app *v1alpha1.Application, name string) *argocd.SyncResult {
	result := &argocd.SyncResult{
		Application: name,
		Accepted:    true,
		Phase:       synccommon.OperationRunning,
		Message:     "operation queued",
	}
	if app.Name != "" {
		result.Application = app.Name
	}
	if app.Operation != nil && app.Operation.Sync != nil {
		result.Revision = app.Operation.Sync.Revision
		return result
	}
	if state := app.Status.OperationState; state != nil {
		result.Phase = state.Phase
		result.Message = state.Message
		if state.SyncResult != nil {
			result.Revision = state.SyncResult.Revision
		}
	}
	return result
}
