package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcp_server "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
	"github.com/argocd-mcp/argocd-mcp-server/internal/config"
	apperrors "github.com/argocd-mcp/argocd-mcp-server/internal/errors"
	"github.com/argocd-mcp/argocd-mcp-server/internal/logging"
	"github.com/argocd-mcp/argocd-mcp-server/internal/metrics"
	"github.com/argocd-mcp/argocd-mcp-server/internal/server"
	"github.com/argocd-mcp/argocd-mcp-server/internal/telemetry"
	"github.com/argocd-mcp/argocd-mcp-server/internal/tools"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

const shutdownTimeout = 5 * time.Second

var (
	transport   string
	host        string
	port        int
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:          "argocd-mcp-server",
	Short:        "MCP server exposing ArgoCD applications as tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "Transport to serve MCP over: stdio or http (overrides MCP_TRANSPORT)")
	rootCmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to bind the HTTP transport to (overrides HOST)")
	rootCmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to bind the HTTP transport to (overrides PORT)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information and exit")

	// if found .env file, load it
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

func main() {
	// Fatal only runs after run has flushed traces in its defers
	if err := rootCmd.Execute(); err != nil {
		logging.WithError(err).Fatal("ArgoCD MCP Server failed")
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if showVersion {
		fmt.Printf("%s %s (%s %s/%s)\n", server.Name, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	}

	log := logging.GetLogger()

	cfg, err := loadConfig(cmd, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Configure(cfg.LogLevel, cfg.LogFormat)

	log.WithFields(logrus.Fields{
		"version": Version,
		"pid":     os.Getpid(),
	}).WithFields(cfg.LogFields()).Info("Starting ArgoCD MCP Server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.TracesExporter, Version, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.WithError(err).Warn("Failed to flush traces")
		}
	}()

	argoClient, err := client.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create ArgoCD client: %w", err)
	}

	log.Debug("Creating MCP server instance")
	s := server.New(Version)

	log.Debug("Registering tools")
	tools.RegisterAll(s, argoClient)
	log.WithField("count", len(tools.Tools())).Info("All tools registered successfully")

	registry := metrics.NewRegistry()
	metrics.ServerInfo.WithLabelValues(Version, cfg.Transport).Set(1)

	switch cfg.Transport {
	case config.TransportHTTP:
		return serveHTTP(ctx, cfg, s, registry)
	default:
		return serveStdio(ctx, s)
	}
}

// loadConfig reads the environment and applies flags the user set explicitly
func loadConfig(cmd *cobra.Command, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(getenv)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Transport = transport
	}
	if flags.Changed("host") {
		cfg.Host = host
	}
	if flags.Changed("port") {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serveStdio(ctx context.Context, s *mcp_server.MCPServer) error {
	logging.GetLogger().Info("ArgoCD MCP Server started. Waiting for requests on stdin...")
	stdioServer := mcp_server.NewStdioServer(s)
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// serverInfo is served at the root of the HTTP transport
type serverInfo struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

// newHTTPHandler routes /mcp to the streamable HTTP transport next to
// server info, liveness and Prometheus endpoints.
func newHTTPHandler(s *mcp_server.MCPServer, registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(serverInfo{
			Name:        server.Name,
			Version:     Version,
			Description: "ArgoCD MCP Server with stdio and streamable HTTP transports",
			Endpoints: map[string]string{
				"mcp":     "/mcp",
				"health":  "/health",
				"metrics": "/metrics",
			},
		}); err != nil {
			logging.WithError(err).Error("Failed to write server info")
		}
	})
	mux.Handle("/mcp", mcp_server.NewStreamableHTTPServer(s,
		mcp_server.WithEndpointPath("/mcp"),
		mcp_server.WithHeartbeatInterval(30*time.Second),
	))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logging.WithError(err).Error("Failed to write health response")
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

func serveHTTP(ctx context.Context, cfg *config.Config, s *mcp_server.MCPServer, registry *prometheus.Registry) error {
	log := logging.GetLogger()
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           newHTTPHandler(s, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.ListenAddr()).Info("ArgoCD MCP Server listening on /mcp")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.NewInternalError("HTTP server failed", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server shutdown complete")
	return nil
}
