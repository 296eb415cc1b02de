package main

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argocd-mcp/argocd-mcp-server/internal/config"
	"github.com/argocd-mcp/argocd-mcp-server/internal/errors"
	"github.com/argocd-mcp/argocd-mcp-server/internal/metrics"
	"github.com/argocd-mcp/argocd-mcp-server/internal/server"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// resetFlags restores the root command flags once the test ends
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		for name, def := range map[string]string{
			"transport": config.TransportStdio,
			"host":      config.DefaultHost,
			"port":      strconv.Itoa(config.DefaultPort),
		} {
			_ = rootCmd.Flags().Set(name, def)
			rootCmd.Flags().Lookup(name).Changed = false
		}
	})
}

func TestLoadConfig(t *testing.T) {
	resetFlags(t)
	env := envFrom(map[string]string{
		"ARGOCD_SERVER": "argocd.example.com",
		"ARGOCD_TOKEN":  "secret-token",
		"MCP_TRANSPORT": "stdio",
		"PORT":          "8081",
	})

	cfg, err := loadConfig(rootCmd, env)
	require.NoError(t, err)
	assert.Equal(t, config.TransportStdio, cfg.Transport)
	assert.Equal(t, 8081, cfg.Port)

	require.NoError(t, rootCmd.Flags().Set("transport", "http"))
	require.NoError(t, rootCmd.Flags().Set("port", "9090"))

	cfg, err = loadConfig(rootCmd, env)
	require.NoError(t, err)
	assert.Equal(t, config.TransportHTTP, cfg.Transport)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, config.DefaultHost, cfg.Host)

	require.NoError(t, rootCmd.Flags().Set("transport", "smoke-signals"))
	_, err = loadConfig(rootCmd, env)
	assert.True(t, errors.IsConfigurationError(err))

	_, err = loadConfig(rootCmd, envFrom(map[string]string{"ARGOCD_SERVER": "argocd.example.com"}))
	assert.True(t, errors.IsConfigurationError(err))
}

func TestHTTPHandler(t *testing.T) {
	registry := metrics.NewRegistry()
	metrics.ServerInfo.WithLabelValues("test", config.TransportHTTP).Set(1)

	ts := httptest.NewServer(newHTTPHandler(server.New("test"), registry))
	defer ts.Close()

	t.Run("server info", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var info serverInfo
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
		assert.Equal(t, server.Name, info.Name)
		assert.Equal(t, Version, info.Version)
		assert.Equal(t, "/mcp", info.Endpoints["mcp"])
		assert.Equal(t, "/health", info.Endpoints["health"])
	})

	t.Run("unknown path", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "OK", string(body))
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "argocd_mcp_server_info")
	})
}

func TestRun_ReturnsServeErrors(t *testing.T) {
	resetFlags(t)

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	t.Setenv("ARGOCD_SERVER", "argocd.example.com")
	t.Setenv("ARGOCD_TOKEN", "secret-token")
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	require.NoError(t, rootCmd.Flags().Set("transport", config.TransportHTTP))
	require.NoError(t, rootCmd.Flags().Set("host", "127.0.0.1"))
	require.NoError(t, rootCmd.Flags().Set("port", strconv.Itoa(busy.Addr().(*net.TCPAddr).Port)))

	err = run(rootCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP server failed")
}

func TestRun_ConfigurationErrorIsReturned(t *testing.T) {
	resetFlags(t)

	t.Setenv("ARGOCD_SERVER", "")
	t.Setenv("ARGOCD_TOKEN", "")
	t.Setenv("ARGOCD_AUTH_TOKEN", "")

	err := run(rootCmd, nil)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}
