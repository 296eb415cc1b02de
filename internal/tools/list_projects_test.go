package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client/mock"
	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
)

func TestListProjectsTool_Schema(t *testing.T) {
	assert.Equal(t, "list_projects", ListProjectsTool.Name)
	assert.Contains(t, ListProjectsTool.InputSchema.Properties, "name_only")
}

func TestHandleListProjects(t *testing.T) {
	projects := []argocd.ProjectSummary{
		{Name: "default", SourceRepos: []string{"*"}},
		{Name: "production", Description: "Production workloads"},
	}

	t.Run("full summaries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mock.NewMockInterface(ctrl)
		mockClient.EXPECT().ListProjects(gomock.Any()).Return(projects, nil)

		result, err := NewListProjectsHandler(mockClient)(context.Background(), newRequest("list_projects", nil))
		require.NoError(t, err)

		var got []argocd.ProjectSummary
		decodeSuccess(t, result, &got)
		assert.Equal(t, projects, got)
	})

	t.Run("names only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mock.NewMockInterface(ctrl)
		mockClient.EXPECT().ListProjects(gomock.Any()).Return(projects, nil)

		result, err := NewListProjectsHandler(mockClient)(context.Background(),
			newRequest("list_projects", map[string]interface{}{"name_only": true}))
		require.NoError(t, err)

		var got []string
		decodeSuccess(t, result, &got)
		assert.Equal(t, []string{"default", "production"}, got)
	})

	t.Run("permission denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mock.NewMockInterface(ctrl)
		mockClient.EXPECT().ListProjects(gomock.Any()).
			Return(nil, errors.NewAuthenticationError("permission denied", nil))

		result, err := NewListProjectsHandler(mockClient)(context.Background(), newRequest("list_projects", nil))
		require.NoError(t, err)
		assert.Equal(t, errors.ErrorTypeAuthentication, decodeFailure(t, result).Type)
	})
}
