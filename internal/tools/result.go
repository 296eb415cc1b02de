package tools

import (
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
	"github.com/argocd-mcp/argocd-mcp-server/internal/logging"
)

type failureBody struct {
	Error failure `json:"error"`
}

type failure struct {
	Type    errors.ErrorType       `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// jsonResult renders v as indented JSON text
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(errors.NewInternalError("failed to format response", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// errorResult converts err into a failure result the caller can branch on
func errorResult(err error) *mcp.CallToolResult {
	f := failure{
		Type:    errors.TypeOf(err),
		Message: err.Error(),
		Details: errors.GetErrorDetails(err),
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		f.Message = appErr.Message
	}

	jsonData, mErr := json.Marshal(failureBody{Error: f})
	if mErr != nil {
		logging.WithError(mErr).Error("Failed to encode failure result")
		return mcp.NewToolResultError(f.Message)
	}
	return mcp.NewToolResultError(string(jsonData))
}
