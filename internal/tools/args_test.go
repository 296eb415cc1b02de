package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
)

func TestOptionalID(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    int64
		present bool
		wantErr bool
	}{
		{name: "absent", args: map[string]interface{}{}},
		{name: "null", args: map[string]interface{}{"id": nil}},
		{name: "json number", args: map[string]interface{}{"id": 4.0}, want: 4, present: true},
		{name: "int", args: map[string]interface{}{"id": 4}, want: 4, present: true},
		{name: "numeric string", args: map[string]interface{}{"id": " 12 "}, want: 12, present: true},
		{name: "fraction", args: map[string]interface{}{"id": 4.2}, wantErr: true},
		{name: "negative", args: map[string]interface{}{"id": -3.0}, wantErr: true},
		{name: "word", args: map[string]interface{}{"id": "three"}, wantErr: true},
		{name: "bool", args: map[string]interface{}{"id": true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := optionalID(newRequest("t", tt.args), "id")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				assert.Equal(t, "id", errors.GetErrorDetails(err)["argument"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.present, present)
		})
	}
}

func TestParameterMap(t *testing.T) {
	params, err := parameterMap(newRequest("t", map[string]interface{}{
		"p": map[string]interface{}{
			"b":        false,
			"a":        "x",
			"c.weight": 0.25,
		},
	}), "p")
	require.NoError(t, err)
	assert.Equal(t, []argocd.Parameter{
		{Name: "a", Value: "x"},
		{Name: "b", Value: "false"},
		{Name: "c.weight", Value: "0.25"},
	}, params)

	_, err = parameterMap(newRequest("t", map[string]interface{}{
		"p": map[string]interface{}{"list": []interface{}{"a"}},
	}), "p")
	require.Error(t, err)
	assert.Equal(t, "list", errors.GetErrorDetails(err)["parameter"])

	_, err = parameterMap(newRequest("t", map[string]interface{}{
		"p": map[string]interface{}{" ": "x"},
	}), "p")
	assert.True(t, errors.IsValidationError(err))
}

func TestRequiredString(t *testing.T) {
	v, err := requiredString(newRequest("t", map[string]interface{}{"name": "  app  "}), "name")
	require.NoError(t, err)
	assert.Equal(t, "app", v)

	_, err = requiredString(newRequest("t", map[string]interface{}{"name": 1}), "name")
	assert.True(t, errors.IsValidationError(err))
}
