package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_GathersServerMetrics(t *testing.T) {
	registry := NewRegistry()

	ServerInfo.WithLabelValues("test", "stdio").Set(1)
	ToolInvocationsTotal.WithLabelValues("list_applications").Inc()
	ToolFailuresTotal.WithLabelValues("sync_application").Inc()
	UpstreamRequestDuration.WithLabelValues("GET", "200").Observe(0.1)

	families, err := registry.Gather()
	require.NoError(t, err)

	for _, name := range []string{
		"argocd_mcp_server_info",
		"argocd_mcp_tool_invocations_total",
		"argocd_mcp_tool_failures_total",
		"argocd_mcp_upstream_request_duration_seconds",
		"go_goroutines",
	} {
		assert.NotNil(t, findMetricFamily(families, name), "metric %s not gathered", name)
	}

	invocations := findMetricFamily(families, "argocd_mcp_tool_invocations_total")
	require.NotNil(t, invocations)
	require.NotEmpty(t, invocations.GetMetric())
	assert.GreaterOrEqual(t, invocations.GetMetric()[0].GetCounter().GetValue(), 1.0)
}

// findMetricFamily finds a metric family by name from a gathered slice
func findMetricFamily(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}
