package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client/mock"
)

var expectedTools = []string{
	"list_applications",
	"get_application",
	"sync_application",
	"get_application_health",
	"get_sync_history",
	"get_application_parameters",
	"set_application_parameters",
	"rollback_application",
	"get_application_manifests",
	"list_projects",
	"list_clusters",
	"delete_application",
}

func TestTools(t *testing.T) {
	names := make([]string, 0, len(registry))
	for _, tool := range Tools() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type, tool.Name)
	}
	assert.Equal(t, expectedTools, names)
}

func TestRegisterAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(false))
	RegisterAll(s, mock.NewMockInterface(ctrl))

	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	got := make([]string, 0, len(body.Result.Tools))
	for _, tool := range body.Result.Tools {
		got = append(got, tool.Name)
	}
	assert.ElementsMatch(t, expectedTools, got)
}
