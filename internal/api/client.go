package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/argocd-mcp/argocd-mcp-server/internal/config"
	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
	"github.com/argocd-mcp/argocd-mcp-server/internal/logging"
	"github.com/argocd-mcp/argocd-mcp-server/internal/metrics"
)

// maxReadAttempts bounds GET requests: one try plus one retry on timeout.
const maxReadAttempts = 2

// Client represents an ArgoCD REST API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      config.Secret
	logger     *logrus.Logger
}

// NewClient creates a new ArgoCD API client from the startup configuration
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("configuration is required", nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		httpClient: cfg.NewHTTPClient(),
		baseURL:    cfg.ServerURL + "/api/v1",
		token:      cfg.AuthToken,
		logger:     logging.GetLogger(),
	}, nil
}

// doRequest performs an HTTP request with authentication. Only GET is
// retried, and only once, when the first attempt timed out.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.NewInternalError("failed to marshal request body", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = maxReadAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := c.roundTrip(ctx, method, path, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !errors.IsTimeoutError(err) || ctx.Err() != nil {
			break
		}
		if attempt < attempts {
			c.logger.WithFields(logrus.Fields{
				"method":  method,
				"path":    path,
				"attempt": attempt,
			}).Warn("ArgoCD request timed out, retrying once")
		}
	}
	return nil, lastErr
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, errors.NewInternalError("failed to create request", err)
	}

	// Set common headers
	req.Header.Set("Authorization", "Bearer "+string(c.token))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
	}).Debug("Making API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		if isTimeout(err) {
			return nil, errors.NewTimeoutError(fmt.Sprintf("request to ArgoCD timed out (%s %s)", method, path), err)
		}
		return nil, errors.NewUpstreamError("failed to execute request", err, map[string]interface{}{
			"method": method,
			"path":   path,
		})
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	metrics.UpstreamRequestDuration.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		if isTimeout(err) {
			return nil, errors.NewTimeoutError("timed out reading ArgoCD response", err)
		}
		return nil, errors.NewInternalError("failed to read response body", err)
	}

	// Check for non-2xx status codes
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := classifyError(resp.StatusCode, path, responseBody)
		entry := c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"path":   path,
			"type":   errors.TypeOf(apiErr),
		})
		if errors.IsNotFoundError(apiErr) {
			entry.Debug("API request failed")
		} else {
			entry.WithField("body", string(responseBody)).Error("API request failed")
		}
		return nil, apiErr
	}

	return responseBody, nil
}

// classifyError maps an ArgoCD failure response to a typed error. ArgoCD's
// gateway encodes failures as a google.rpc.Status; its code takes
// precedence over the HTTP status when present.
func classifyError(statusCode int, path string, body []byte) error {
	message := strings.TrimSpace(string(body))
	code := codes.Unknown

	var st spb.Status
	if err := (protojson.UnmarshalOptions{DiscardUnknown: true}).Unmarshal(body, &st); err == nil {
		s := status.FromProto(&st)
		code = s.Code()
		if s.Message() != "" {
			message = s.Message()
		}
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}

	details := map[string]interface{}{
		"path":   path,
		"status": statusCode,
	}
	cause := fmt.Errorf("status code: %d", statusCode)

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden ||
		code == codes.Unauthenticated || code == codes.PermissionDenied:
		return errors.NewAuthenticationError(message, cause)
	case statusCode == http.StatusNotFound || code == codes.NotFound:
		return errors.NewNotFoundError(message, details)
	case statusCode == http.StatusGatewayTimeout || code == codes.DeadlineExceeded:
		return errors.NewTimeoutError(message, cause)
	default:
		details["body"] = string(body)
		return errors.NewUpstreamError(message, cause, details)
	}
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request. Like other writes it is never retried.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.doRequest(ctx, http.MethodDelete, path, nil)
}
