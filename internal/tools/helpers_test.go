package tools

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

func newRequest(tool string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      tool,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return textContent.Text
}

// decodeFailure asserts result is a failure and returns its body
func decodeFailure(t *testing.T, result *mcp.CallToolResult) failure {
	t.Helper()
	require.True(t, result.IsError, "expected error result, got %s", resultText(t, result))
	var body failureBody
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &body))
	return body.Error
}

// decodeSuccess asserts result is a success and unmarshals it into v
func decodeSuccess(t *testing.T, result *mcp.CallToolResult, v interface{}) {
	t.Helper()
	text := resultText(t, result)
	require.False(t, result.IsError, "unexpected error result: %s", text)
	require.NoError(t, json.Unmarshal([]byte(text), v))
}
