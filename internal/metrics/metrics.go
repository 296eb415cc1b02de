package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ArgoCD MCP server metrics definition
var (
	ServerInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "argocd_mcp_server_info",
			Help: "Information about the MCP server including version and transport",
		},
		[]string{"version", "transport"},
	)

	ToolInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argocd_mcp_tool_invocations_total",
			Help: "Total number of MCP tool invocations",
		},
		[]string{"tool_name"},
	)

	ToolFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argocd_mcp_tool_failures_total",
			Help: "Total number of MCP tool invocations that returned an error result",
		},
		[]string{"tool_name"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "argocd_mcp_upstream_request_duration_seconds",
			Help:    "Latency of HTTP requests to the ArgoCD API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

// NewRegistry returns a registry holding the server metrics plus Go
// runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry.MustRegister(ServerInfo)
	registry.MustRegister(ToolInvocationsTotal)
	registry.MustRegister(ToolFailuresTotal)
	registry.MustRegister(UpstreamRequestDuration)

	return registry
}
