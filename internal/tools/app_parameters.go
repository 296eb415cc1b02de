package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
)

// GetAppParametersTool defines the get_application_parameters tool schema
var GetAppParametersTool = mcp.NewTool("get_application_parameters",
	mcp.WithDescription("Returns the Helm parameter overrides of an ArgoCD application's primary source."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("The name of the application."),
	),
)

// SetAppParametersTool defines the set_application_parameters tool schema
var SetAppParametersTool = mcp.NewTool("set_application_parameters",
	mcp.WithDescription("Sets Helm parameter overrides on an ArgoCD application. Existing overrides with other names are kept. The update is sent once and never retried."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithIdempotentHintAnnotation(false),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("The name of the application."),
	),
	mcp.WithObject("parameters",
		mcp.Required(),
		mcp.Description("Parameter names mapped to string, number or boolean values (e.g., {\"image.tag\": \"v2\"})."),
	),
)

// NewGetApplicationParametersHandler returns the get_application_parameters handler bound to argoClient
func NewGetApplicationParametersHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appName, err := requiredString(request, "name")
		if err != nil {
			return errorResult(err), nil
		}

		params, err := argoClient.GetParameters(ctx, appName)
		if err != nil {
			return errorResult(err), nil
		}
		return parametersResult(appName, params)
	}
}

// NewSetApplicationParametersHandler returns the set_application_parameters handler bound to argoClient
func NewSetApplicationParametersHandler(argoClient client.Interface) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appName, err := requiredString(request, "name")
		if err != nil {
			return errorResult(err), nil
		}
		params, err := parameterMap(request, "parameters")
		if err != nil {
			return errorResult(err), nil
		}

		updated, err := argoClient.SetParameters(ctx, appName, params)
		if err != nil {
			return errorResult(err), nil
		}
		return parametersResult(appName, updated)
	}
}

func parametersResult(appName string, params []argocd.Parameter) (*mcp.CallToolResult, error) {
	if params == nil {
		params = []argocd.Parameter{}
	}
	return jsonResult(map[string]interface{}{
		"application": appName,
		"parameters":  params,
	})
}
