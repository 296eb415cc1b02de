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

func TestGetAppManifestsTool_Schema(t *testing.T) {
	assert.Equal(t, "get_application_manifests", GetAppManifestsTool.Name)
	assert.Contains(t, GetAppManifestsTool.InputSchema.Properties, "revision")
	assert.Equal(t, []string{"name"}, GetAppManifestsTool.InputSchema.Required)
}

func TestHandleGetApplicationManifests(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		setupMock func(*mock.MockInterface)
		wantType  errors.ErrorType
		wantCount int
	}{
		{
			name: "current revision",
			args: map[string]interface{}{"name": "test-app"},
			setupMock: func(m *mock.MockInterface) {
				m.EXPECT().GetManifests(gomock.Any(), "test-app", "").Return(&argocd.ManifestSet{
					Application: "test-app",
					Revision:    "abc123",
					Manifests:   []string{`{"kind":"Service"}`, `{"kind":"Deployment"}`},
				}, nil)
			},
			wantCount: 2,
		},
		{
			name: "explicit revision",
			args: map[string]interface{}{"name": "test-app", "revision": "v1.0.0"},
			setupMock: func(m *mock.MockInterface) {
				m.EXPECT().GetManifests(gomock.Any(), "test-app", "v1.0.0").Return(&argocd.ManifestSet{
					Application: "test-app",
					Revision:    "v1.0.0",
					Manifests:   []string{`{"kind":"ConfigMap"}`},
				}, nil)
			},
			wantCount: 1,
		},
		{
			name:      "missing name",
			args:      map[string]interface{}{"revision": "v1.0.0"},
			setupMock: func(m *mock.MockInterface) {},
			wantType:  errors.ErrorTypeValidation,
		},
		{
			name: "client error",
			args: map[string]interface{}{"name": "test-app"},
			setupMock: func(m *mock.MockInterface) {
				m.EXPECT().GetManifests(gomock.Any(), "test-app", "").
					Return(nil, errors.NewUpstreamError("unable to resolve revision", nil, nil))
			},
			wantType: errors.ErrorTypeUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mock.NewMockInterface(ctrl)
			tt.setupMock(mockClient)

			result, err := NewGetApplicationManifestsHandler(mockClient)(context.Background(),
				newRequest("get_application_manifests", tt.args))
			require.NoError(t, err)

			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, decodeFailure(t, result).Type)
				return
			}

			var got argocd.ManifestSet
			decodeSuccess(t, result, &got)
			assert.Len(t, got.Manifests, tt.wantCount)
		})
	}
}
