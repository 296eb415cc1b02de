package tools

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd"
	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
)

func invalidArgument(key, msg string) error {
	return errors.NewValidationError(msg, map[string]interface{}{"argument": key})
}

// requiredString returns a non-blank string argument
func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	v, err := request.RequireString(key)
	if err != nil {
		return "", invalidArgument(key, fmt.Sprintf("%s is required and must be a string", key))
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", invalidArgument(key, fmt.Sprintf("%s must not be empty", key))
	}
	return v, nil
}

func optionalString(request mcp.CallToolRequest, key string) (string, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return "", nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", invalidArgument(key, fmt.Sprintf("%s must be a string", key))
	}
	return strings.TrimSpace(v), nil
}

func optionalBool(request mcp.CallToolRequest, key string) (bool, error) {
	return boolOrDefault(request, key, false)
}

// boolOrDefault returns def when key is absent
func boolOrDefault(request mcp.CallToolRequest, key string, def bool) (bool, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return def, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return def, invalidArgument(key, fmt.Sprintf("%s must be a boolean", key))
	}
	return v, nil
}

// optionalID parses a non-negative integer argument. JSON numbers arrive
// as float64.
func optionalID(request mcp.CallToolRequest, key string) (int64, bool, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return 0, false, nil
	}

	var id int64
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 {
			return 0, false, invalidArgument(key, fmt.Sprintf("%s must be an integer", key))
		}
		id = int64(v)
	case int:
		id = int64(v)
	case int64:
		id = v
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false, invalidArgument(key, fmt.Sprintf("%s must be an integer", key))
		}
		id = n
	default:
		return 0, false, invalidArgument(key, fmt.Sprintf("%s must be an integer", key))
	}

	if id < 0 {
		return 0, false, invalidArgument(key, fmt.Sprintf("%s must not be negative", key))
	}
	return id, true, nil
}

// parameterMap reads an object of scalar values into parameters sorted by name
func parameterMap(request mcp.CallToolRequest, key string) ([]argocd.Parameter, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return nil, invalidArgument(key, fmt.Sprintf("%s is required", key))
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, invalidArgument(key, fmt.Sprintf("%s must be an object of name/value pairs", key))
	}
	if len(obj) == 0 {
		return nil, invalidArgument(key, fmt.Sprintf("%s must not be empty", key))
	}

	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]argocd.Parameter, 0, len(obj))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, invalidArgument(key, "parameter names must not be empty")
		}
		var value string
		switch v := obj[name].(type) {
		case string:
			value = v
		case bool:
			value = strconv.FormatBool(v)
		case float64:
			value = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return nil, errors.NewValidationError(
				fmt.Sprintf("parameter %q must be a string, number or boolean", name),
				map[string]interface{}{"argument": key, "parameter": name},
			)
		}
		params = append(params, argocd.Parameter{Name: name, Value: value})
	}
	return params, nil
}
