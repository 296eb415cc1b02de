package mockargocde2e

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	mcp_server "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"

	"github.com/argocd-mcp/argocd-mcp-server/internal/argocd/client"
	"github.com/argocd-mcp/argocd-mcp-server/internal/config"
	"github.com/argocd-mcp/argocd-mcp-server/internal/server"
	"github.com/argocd-mcp/argocd-mcp-server/internal/tools"
	"github.com/argocd-mcp/argocd-mcp-server/test/mock"
)

// harness wires the real client, tools and MCP server to a stub ArgoCD
type harness struct {
	argocd    *mock.Server
	mcp       *mcp_server.MCPServer
	idCounter atomic.Int64
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	stub := mock.NewServer(t, mock.DefaultApplications()...)
	return newHarnessWithConfig(t, stub, stub.Config())
}

func newHarnessWithConfig(t *testing.T, stub *mock.Server, cfg *config.Config) *harness {
	t.Helper()

	argoClient, err := client.New(cfg)
	require.NoError(t, err)

	s := server.New("e2e")
	tools.RegisterAll(s, argoClient)

	return &harness{argocd: stub, mcp: s}
}

type toolResult struct {
	Text    string
	IsError bool
}

type rpcResponse struct {
	ID     int64 `json:"id"`
	Result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (h *harness) request(method string, params interface{}) ([]byte, int64) {
	id := h.idCounter.Add(1)
	msg, _ := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	return msg, id
}

// callTool is safe to use from several goroutines
func (h *harness) callTool(t *testing.T, name string, args map[string]interface{}) toolResult {
	t.Helper()

	msg, id := h.request("tools/call", map[string]interface{}{"name": name, "arguments": args})
	raw, err := json.Marshal(h.mcp.HandleMessage(context.Background(), msg))
	require.NoError(t, err)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.Nil(t, resp.Error, "unexpected JSON-RPC error: %s", raw)
	require.Equal(t, id, resp.ID)
	require.NotEmpty(t, resp.Result.Content)
	require.Equal(t, "text", resp.Result.Content[0].Type)

	return toolResult{Text: resp.Result.Content[0].Text, IsError: resp.Result.IsError}
}

func (r toolResult) decode(t *testing.T, v interface{}) {
	t.Helper()
	require.False(t, r.IsError, "unexpected error result: %s", r.Text)
	require.NoError(t, json.Unmarshal([]byte(r.Text), v))
}

type failure struct {
	Error struct {
		Type    string                 `json:"type"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func (r toolResult) failure(t *testing.T) failure {
	t.Helper()
	require.True(t, r.IsError, "expected error result, got: %s", r.Text)
	var f failure
	require.NoError(t, json.Unmarshal([]byte(r.Text), &f))
	return f
}

// stdioSession drives the stdio transport over in-memory pipes
type stdioSession struct {
	mu      sync.Mutex
	stdin   io.WriteCloser
	decoder *json.Decoder
}

func newStdioSession(t *testing.T, h *harness) *stdioSession {
	t.Helper()

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = mcp_server.NewStdioServer(h.mcp).Listen(ctx, inR, outW)
	}()
	t.Cleanup(func() {
		cancel()
		_ = inW.Close()
		_ = outR.Close()
		<-done
	})

	return &stdioSession{stdin: inW, decoder: json.NewDecoder(outR)}
}

func (s *stdioSession) send(t *testing.T, msg []byte) map[string]interface{} {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.stdin.Write(append(msg, '\n'))
	require.NoError(t, err)

	var resp map[string]interface{}
	require.NoError(t, s.decoder.Decode(&resp))
	return resp
}
