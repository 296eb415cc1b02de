package client

import (
	"github.com/argoproj/argo-cd/v2/pkg/apis/application/v1alpha1"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
)

func summarize(app *v1alpha1.Application) argocd.ApplicationSummary {
	source := app.Spec.GetSource()
	return argocd.ApplicationSummary{
		Name:           app.Name,
		Namespace:      app.Namespace,
		Project:        app.Spec.Project,
		RepoURL:        source.RepoURL,
		Path:           source.Path,
		TargetRevision: source.TargetRevision,
		Destination: argocd.Destination{
			Server:    app.Spec.Destination.Server,
			Name:      app.Spec.Destination.Name,
			Namespace: app.Spec.Destination.Namespace,
		},
		SyncStatus:   app.Status.Sync.Status,
		HealthStatus: app.Status.Health.Status,
	}
}

func detail(app *v1alpha1.Application) *argocd.ApplicationDetail {
	source := app.Spec.GetSource()
	sources := []v1alpha1.ApplicationSource(app.Spec.GetSources())
	if sources == nil {
		sources = []v1alpha1.ApplicationSource{}
	}
	return &argocd.ApplicationDetail{
		ApplicationSummary: summarize(app),
		Sources:            sources,
		Parameters:         helmParameters(&source),
		SyncRevision:       app.Status.Sync.Revision,
		Resources:          resourceStatuses(app),
		Operation:          lastOperation(app),
		Application:        app,
	}
}

func resourceStatuses(app *v1alpha1.Application) []argocd.ResourceStatus {
	if len(app.Status.Resources) == 0 {
		return nil
	}
	out := make([]argocd.ResourceStatus, 0, len(app.Status.Resources))
	for _, r := range app.Status.Resources {
		rs := argocd.ResourceStatus{
			Group:      r.Group,
			Kind:       r.Kind,
			Namespace:  r.Namespace,
			Name:       r.Name,
			SyncStatus: r.Status,
		}
		if r.Health != nil {
			rs.HealthStatus = r.Health.Status
			rs.Message = r.Health.Message
		}
		out = append(out, rs)
	}
	return out
}

func lastOperation(app *v1alpha1.Application) *argocd.OperationSummary {
	state := app.Status.OperationState
	if state == nil {
		return nil
	}
	op := &argocd.OperationSummary{
		Phase:     state.Phase,
		Message:   state.Message,
		StartedAt: state.StartedAt.Time,
	}
	if state.FinishedAt != nil {
		t := state.FinishedAt.Time
		op.FinishedAt = &t
	}
	if state.SyncResult != nil {
		op.Revision = state.SyncResult.Revision
	}
	return op
}

// helmParameters never returns nil so tools render an empty list, not null
func helmParameters(source *v1alpha1.ApplicationSource) []argocd.Parameter {
	params := []argocd.Parameter{}
	if source == nil || source.Helm == nil {
		return params
	}
	for _, p := range source.Helm.Parameters {
		params = append(params, argocd.Parameter{
			Name:        p.Name,
			Value:       p.Value,
			ForceString: p.ForceString,
		})
	}
	return params
}

// primarySource returns a pointer into spec so edits are written back
func primarySource(spec *v1alpha1.ApplicationSpec) *v1alpha1.ApplicationSource {
	if len(spec.Sources) > 0 {
		return &spec.Sources[0]
	}
	return spec.Source
}

// setHelmParameter replaces a parameter with the same name or appends it
func setHelmParameter(helm *v1alpha1.ApplicationSourceHelm, p v1alpha1.HelmParameter) {
	for i := range helm.Parameters {
		if helm.Parameters[i].Name == p.Name {
			helm.Parameters[i] = p
			return
		}
	}
	helm.Parameters = append(helm.Parameters, p)
}

// isHelmSource reports whether source is rendered by Helm. A source without
// a type block is auto-detected by ArgoCD, so only a detected Helm type counts.
func isHelmSource(app *v1alpha1.Application, source *v1alpha1.ApplicationSource) bool {
	if source.Kustomize != nil || source.Directory != nil || source.Plugin != nil {
		return false
	}
	if source.Helm != nil || source.Chart != "" {
		return true
	}
	return app.Status.SourceType == v1alpha1.ApplicationSourceTypeHelm
}
