// Package mock provides an in-process stub of the ArgoCD REST API for tests.
package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/argoproj/argo-cd/v2/pkg/apis/application/v1alpha1"
	repoapiclient "github.com/argoproj/argo-cd/v2/reposerver/apiclient"
	"github.com/argoproj/gitops-engine/pkg/health"
	synccommon "github.com/argoproj/gitops-engine/pkg/sync/common"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/argocd-mcp/argocd-mcp-server/internal/config"
)

// Token is the only bearer token the stub accepts
const Token = "test-token"

// Operation names counted by the stub
const (
	OpList       = "list"
	OpGet        = "get"
	OpSync       = "sync"
	OpRollback   = "rollback"
	OpUpdateSpec = "update_spec"
	OpManifests  = "manifests"
	OpProjects   = "projects"
	OpDelete     = "delete"
	OpClusters   = "clusters"
)

// Server is a stub ArgoCD API server backed by httptest
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	apps     []*v1alpha1.Application
	projects []v1alpha1.AppProject
	clusters []v1alpha1.Cluster
	cascades []string
	delays   map[string]time.Duration
	failures map[string]failure

	calls map[string]*atomic.Int64
}

type failure struct {
	status int
	code   int
	msg    string
}

// NewServer starts a stub serving apps in the given order. It is closed
// when the test ends.
func NewServer(t testing.TB, apps ...v1alpha1.Application) *Server {
	t.Helper()

	s := &Server{
		projects: DefaultProjects(),
		clusters: DefaultClusters(),
		delays:   map[string]time.Duration{},
		failures: map[string]failure{},
		calls:    map[string]*atomic.Int64{},
	}
	for _, op := range []string{OpList, OpGet, OpSync, OpRollback, OpUpdateSpec, OpManifests, OpProjects, OpDelete, OpClusters} {
		s.calls[op] = &atomic.Int64{}
	}
	for i := range apps {
		app := apps[i].DeepCopy()
		s.apps = append(s.apps, app)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/applications", s.handle(OpList, s.list))
	mux.HandleFunc("GET /api/v1/applications/{name}", s.handle(OpGet, s.get))
	mux.HandleFunc("POST /api/v1/applications/{name}/sync", s.handle(OpSync, s.sync))
	mux.HandleFunc("POST /api/v1/applications/{name}/rollback", s.handle(OpRollback, s.rollback))
	mux.HandleFunc("PUT /api/v1/applications/{name}/spec", s.handle(OpUpdateSpec, s.updateSpec))
	mux.HandleFunc("GET /api/v1/applications/{name}/manifests", s.handle(OpManifests, s.manifests))
	mux.HandleFunc("DELETE /api/v1/applications/{name}", s.handle(OpDelete, s.deleteApp))
	mux.HandleFunc("GET /api/v1/projects", s.handle(OpProjects, s.listProjects))
	mux.HandleFunc("GET /api/v1/clusters", s.handle(OpClusters, s.listClusters))

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// Config returns a configuration pointing at the stub
func (s *Server) Config() *config.Config {
	return &config.Config{
		ServerURL: s.URL,
		AuthToken: Token,
		Timeout:   5 * time.Second,
		Transport: config.TransportStdio,
		Host:      config.DefaultHost,
		Port:      config.DefaultPort,
	}
}

// Calls returns how many authenticated requests reached op
func (s *Server) Calls(op string) int64 {
	return s.calls[op].Load()
}

// TotalCalls returns the number of authenticated requests across all operations
func (s *Server) TotalCalls() int64 {
	var n int64
	for _, c := range s.calls {
		n += c.Load()
	}
	return n
}

// SetDelay makes op wait d before answering
func (s *Server) SetDelay(op string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[op] = d
}

// FailWith makes op answer with an ArgoCD style error body
func (s *Server) FailWith(op string, status, grpcCode int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = failure{status: status, code: grpcCode, msg: msg}
}

// Application returns a copy of the stored application
func (s *Server) Application(name string) *v1alpha1.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app := s.find(name); app != nil {
		return app.DeepCopy()
	}
	return nil
}

// Cascades returns the cascade query value of every delete request, in order
func (s *Server) Cascades() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cascades...)
}

func (s *Server) handle(op string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeError(w, http.StatusUnauthorized, 16, "invalid session: token is invalid")
			return
		}
		s.calls[op].Add(1)

		s.mu.Lock()
		delay := s.delays[op]
		fail, failing := s.failures[op]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			writeError(w, fail.status, fail.code, fail.msg)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   msg,
		"code":    code,
		"message": msg,
	})
}

func notFound(w http.ResponseWriter, name string) {
	writeError(w, http.StatusNotFound, 5, fmt.Sprintf("applications.argoproj.io %q not found", name))
}

// find must be called with s.mu held
func (s *Server) find(name string) *v1alpha1.Application {
	for _, app := range s.apps {
		if app.Name == name {
			return app
		}
	}
	return nil
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	projects := r.URL.Query()["projects"]
	selector := r.URL.Query().Get("selector")

	s.mu.Lock()
	defer s.mu.Unlock()

	items := []v1alpha1.Application{}
	for _, app := range s.apps {
		if len(projects) > 0 && !contains(projects, app.Spec.Project) {
			continue
		}
		if selector != "" && !matchesSelector(app.Labels, selector) {
			continue
		}
		items = append(items, *app.DeepCopy())
	}
	writeJSON(w, v1alpha1.ApplicationList{Items: items})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.find(name)
	if app == nil {
		notFound(w, name)
		return
	}
	writeJSON(w, app)
}

func (s *Server) sync(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var req struct {
		Revision string `json:"revision"`
		Prune    bool   `json:"prune"`
		DryRun   bool   `json:"dryRun"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, 3, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.find(name)
	if app == nil {
		notFound(w, name)
		return
	}
	revision := req.Revision
	if revision == "" {
		revision = app.Spec.GetSource().TargetRevision
	}
	resp := app.DeepCopy()
	resp.Operation = &v1alpha1.Operation{
		Sync: &v1alpha1.SyncOperation{
			Revision: revision,
			Prune:    req.Prune,
			DryRun:   req.DryRun,
		},
		InitiatedBy: v1alpha1.OperationInitiator{Username: "admin"},
	}
	if !req.DryRun {
		app.Operation = resp.Operation.DeepCopy()
	}
	writeJSON(w, resp)
}

func (s *Server) rollback(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var req struct {
		ID     int64 `json:"id"`
		Prune  bool  `json:"prune"`
		DryRun bool  `json:"dryRun"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, 3, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.find(name)
	if app == nil {
		notFound(w, name)
		return
	}
	var target *v1alpha1.RevisionHistory
	for i := range app.Status.History {
		if app.Status.History[i].ID == req.ID {
			target = &app.Status.History[i]
		}
	}
	if target == nil {
		writeError(w, http.StatusBadRequest, 3, fmt.Sprintf("application %s does not have deployment with id %v", name, req.ID))
		return
	}

	resp := app.DeepCopy()
	resp.Operation = &v1alpha1.Operation{
		Sync: &v1alpha1.SyncOperation{
			Revision: target.Revision,
			Prune:    req.Prune,
			DryRun:   req.DryRun,
		},
	}
	writeJSON(w, resp)
}

func (s *Server) updateSpec(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var spec v1alpha1.ApplicationSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, 3, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.find(name)
	if app == nil {
		notFound(w, name)
		return
	}
	app.Spec = spec
	writeJSON(w, app.Spec)
}

func (s *Server) manifests(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.find(name)
	if app == nil {
		notFound(w, name)
		return
	}
	revision := r.URL.Query().Get("revision")
	if revision == "" {
		revision = app.Status.Sync.Revision
	}
	writeJSON(w, repoapiclient.ManifestResponse{
		Manifests: []string{
			fmt.Sprintf(`{"apiVersion":"v1","kind":"Service","metadata":{"name":%q}}`, name),
			fmt.Sprintf(`{"apiVersion":"apps/v1","kind":"Deployment","metadata":{"name":%q}}`, name),
		},
		Revision:   revision,
		SourceType: "Directory",
	})
}

func (s *Server) listProjects(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, v1alpha1.AppProjectList{Items: s.projects})
}

func (s *Server) deleteApp(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cascades = append(s.cascades, r.URL.Query().Get("cascade"))
	for i, app := range s.apps {
		if app.Name == name {
			s.apps = append(s.apps[:i], s.apps[i+1:]...)
			writeJSON(w, map[string]interface{}{})
			return
		}
	}
	notFound(w, name)
}

func (s *Server) listClusters(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, v1alpha1.ClusterList{Items: s.clusters})
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// matchesSelector supports comma separated key=value terms
func matchesSelector(labels map[string]string, selector string) bool {
	for _, term := range strings.Split(selector, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(term), "=")
		if !ok || labels[k] != v {
			return false
		}
	}
	return true
}

func ts(minutes int) metav1.Time {
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	return metav1.NewTime(base.Add(time.Duration(minutes) * time.Minute))
}

// DefaultApplications returns two fixtures: a healthy Helm application
// with three history entries (stored oldest first, as ArgoCD does) and a
// degraded Kustomize application.
func DefaultApplications() []v1alpha1.Application {
	started := ts(-1)
	finished := ts(31)
	return []v1alpha1.Application{
		{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "guestbook",
				Namespace: "argocd",
				Labels:    map[string]string{"env": "dev"},
			},
			Spec: v1alpha1.ApplicationSpec{
				Project: "default",
				Source: &v1alpha1.ApplicationSource{
					RepoURL:        "https://github.com/argoproj/argocd-example-apps",
					Path:           "helm-guestbook",
					TargetRevision: "HEAD",
					Helm: &v1alpha1.ApplicationSourceHelm{
						Parameters: []v1alpha1.HelmParameter{
							{Name: "replicaCount", Value: "1"},
							{Name: "image.tag", Value: "v1"},
						},
					},
				},
				Destination: v1alpha1.ApplicationDestination{
					Server:    "https://kubernetes.default.svc",
					Namespace: "guestbook",
				},
			},
			Status: v1alpha1.ApplicationStatus{
				Sync: v1alpha1.SyncStatus{
					Status:   v1alpha1.SyncStatusCodeSynced,
					Revision: "ccc333",
				},
				Health: v1alpha1.HealthStatus{
					Status:  health.HealthStatusHealthy,
					Message: "All resources are healthy",
				},
				Resources: []v1alpha1.ResourceStatus{
					{
						Kind:      "Service",
						Version:   "v1",
						Namespace: "guestbook",
						Name:      "guestbook-ui",
						Status:    v1alpha1.SyncStatusCodeSynced,
						Health:    &v1alpha1.HealthStatus{Status: health.HealthStatusHealthy},
					},
					{
						Group:     "apps",
						Kind:      "Deployment",
						Version:   "v1",
						Namespace: "guestbook",
						Name:      "guestbook-ui",
						Status:    v1alpha1.SyncStatusCodeSynced,
						Health:    &v1alpha1.HealthStatus{Status: health.HealthStatusHealthy},
					},
				},
				History: v1alpha1.RevisionHistories{
					{ID: 0, Revision: "aaa111", DeployedAt: ts(0), DeployStartedAt: &started},
					{ID: 1, Revision: "bbb222", DeployedAt: ts(15)},
					{ID: 2, Revision: "ccc333", DeployedAt: ts(30)},
				},
				OperationState: &v1alpha1.OperationState{
					Phase:      synccommon.OperationSucceeded,
					Message:    "successfully synced (all tasks run)",
					StartedAt:  ts(30),
					FinishedAt: &finished,
					SyncResult: &v1alpha1.SyncOperationResult{Revision: "ccc333"},
				},
			},
		},
		{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "kustomize-guestbook",
				Namespace: "argocd",
				Labels:    map[string]string{"env": "prod"},
			},
			Spec: v1alpha1.ApplicationSpec{
				Project: "production",
				Source: &v1alpha1.ApplicationSource{
					RepoURL:        "https://github.com/argoproj/argocd-example-apps",
					Path:           "kustomize-guestbook",
					TargetRevision: "main",
					Kustomize:      &v1alpha1.ApplicationSourceKustomize{NamePrefix: "prod-"},
				},
				Destination: v1alpha1.ApplicationDestination{
					Server:    "https://prod-cluster.example.com",
					Namespace: "production",
				},
			},
			Status: v1alpha1.ApplicationStatus{
				Sync: v1alpha1.SyncStatus{
					Status:   v1alpha1.SyncStatusCodeOutOfSync,
					Revision: "ddd444",
				},
				Health: v1alpha1.HealthStatus{
					Status:  health.HealthStatusDegraded,
					Message: "Deployment has not progressed",
				},
				Resources: []v1alpha1.ResourceStatus{
					{
						Group:     "apps",
						Kind:      "Deployment",
						Version:   "v1",
						Namespace: "production",
						Name:      "prod-guestbook-ui",
						Status:    v1alpha1.SyncStatusCodeOutOfSync,
						Health: &v1alpha1.HealthStatus{
							Status:  health.HealthStatusDegraded,
							Message: "Deployment \"prod-guestbook-ui\" exceeded its progress deadline",
						},
					},
				},
			},
		},
	}
}

// DefaultProjects returns the projects the stub lists
func DefaultProjects() []v1alpha1.AppProject {
	return []v1alpha1.AppProject{
		{
			ObjectMeta: metav1.ObjectMeta{Name: "default", Namespace: "argocd"},
			Spec: v1alpha1.AppProjectSpec{
				SourceRepos:  []string{"*"},
				Destinations: []v1alpha1.ApplicationDestination{{Server: "*", Namespace: "*"}},
			},
		},
		{
			ObjectMeta: metav1.ObjectMeta{Name: "production", Namespace: "argocd"},
			Spec: v1alpha1.AppProjectSpec{
				Description: "Production workloads",
				SourceRepos: []string{"https://github.com/argoproj/argocd-example-apps"},
				Destinations: []v1alpha1.ApplicationDestination{
					{Server: "https://prod-cluster.example.com", Namespace: "production"},
				},
			},
		},
	}
}

// DefaultClusters returns the in-cluster destination and an unreachable
// production cluster
func DefaultClusters() []v1alpha1.Cluster {
	return []v1alpha1.Cluster{
		{
			Name:   "in-cluster",
			Server: "https://kubernetes.default.svc",
			Info: v1alpha1.ClusterInfo{
				ConnectionState: v1alpha1.ConnectionState{Status: v1alpha1.ConnectionStatusSuccessful},
				ServerVersion:   "1.31",
			},
		},
		{
			Name:       "production",
			Server:     "https://prod-cluster.example.com",
			Namespaces: []string{"production"},
			Project:    "production",
			Info: v1alpha1.ClusterInfo{
				ConnectionState: v1alpha1.ConnectionState{
					Status:  v1alpha1.ConnectionStatusFailed,
					Message: "dial tcp: i/o timeout",
				},
			},
		},
	}
}
