package config

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
)

// Transport names accepted by MCP_TRANSPORT and --transport
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultHost    = "0.0.0.0"
	DefaultPort    = 8080
)

// Secret holds a credential that must never reach logs or error messages.
type Secret string

// String implements fmt.Stringer
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// GoString keeps %#v from leaking the value
func (s Secret) GoString() string {
	return s.String()
}

// Config holds every setting read from the process environment.
// It is built once by Load and never mutated afterwards.
type Config struct {
	// ServerURL is the ArgoCD base URL including the scheme, without /api/v1
	ServerURL string
	AuthToken Secret
	Insecure  bool
	PlainText bool
	Timeout   time.Duration

	LogLevel  string
	LogFormat string

	Transport string
	Host      string
	Port      int

	TracesExporter string
}

// Load builds a Config from getenv, usually os.Getenv.
// A missing server or token is a configuration error.
func Load(getenv func(string) string) (*Config, error) {
	server := strings.TrimSpace(getenv("ARGOCD_SERVER"))
	if server == "" {
		return nil, errors.NewConfigurationError("ARGOCD_SERVER environment variable is required", nil)
	}

	token := strings.TrimSpace(getenv("ARGOCD_TOKEN"))
	if token == "" {
		token = strings.TrimSpace(getenv("ARGOCD_AUTH_TOKEN"))
	}
	if token == "" {
		return nil, errors.NewConfigurationError("ARGOCD_TOKEN environment variable is required", nil)
	}

	cfg := &Config{
		AuthToken:      Secret(token),
		Insecure:       parseBool(getenv("ARGOCD_INSECURE")),
		PlainText:      parseBool(getenv("ARGOCD_PLAINTEXT")),
		Timeout:        DefaultTimeout,
		LogLevel:       getenv("LOG_LEVEL"),
		LogFormat:      getenv("LOG_FORMAT"),
		Transport:      TransportStdio,
		Host:           DefaultHost,
		Port:           DefaultPort,
		TracesExporter: strings.ToLower(getenv("OTEL_TRACES_EXPORTER")),
	}
	cfg.ServerURL = normalizeServer(server, cfg.PlainText)

	if v := getenv("ARGOCD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, errors.NewConfigurationError(fmt.Sprintf("ARGOCD_TIMEOUT must be a positive duration, got %q", v), err)
		}
		cfg.Timeout = d
	}

	if v := getenv("MCP_TRANSPORT"); v != "" {
		cfg.Transport = strings.ToLower(v)
	}
	if v := getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.NewConfigurationError(fmt.Sprintf("PORT must be a number, got %q", v), err)
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that may also be overridden by flags after Load.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.NewConfigurationError("server address is required", nil)
	}
	if c.AuthToken == "" {
		return errors.NewConfigurationError("auth token is required", nil)
	}
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return errors.NewConfigurationError(fmt.Sprintf("unsupported transport %q (supported: %s, %s)", c.Transport, TransportStdio, TransportHTTP), nil)
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.NewConfigurationError(fmt.Sprintf("port %d out of range", c.Port), nil)
	}
	switch c.TracesExporter {
	case "", "none", "console":
	default:
		return errors.NewConfigurationError(fmt.Sprintf("unsupported OTEL_TRACES_EXPORTER %q (supported: none, console)", c.TracesExporter), nil)
	}
	return nil
}

// ListenAddr returns the host:port the HTTP transport binds to
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogFields returns the settings worth logging at startup. The token is omitted.
func (c *Config) LogFields() logrus.Fields {
	return logrus.Fields{
		"server":    c.ServerURL,
		"insecure":  c.Insecure,
		"timeout":   c.Timeout.String(),
		"transport": c.Transport,
	}
}

// NewHTTPClient creates the pooled HTTP client shared by all upstream calls
func (c *Config) NewHTTPClient() *http.Client {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: c.Insecure, //nolint:gosec // opt-in via ARGOCD_INSECURE
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig
	transport.MaxIdleConnsPerHost = 16

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// parseBool treats anything other than a recognised true value as false
func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	return b
}

func normalizeServer(server string, plainText bool) string {
	server = strings.TrimSuffix(server, "/")
	server = strings.TrimSuffix(server, "/api/v1")
	if strings.HasPrefix(server, "http://") || strings.HasPrefix(server, "https://") {
		return server
	}
	if plainText {
		return "http://" + server
	}
	return "https://" + server
}
