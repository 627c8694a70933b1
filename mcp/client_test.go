package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-bridge/mcp-bridge/logger"
	"github.com/mcp-bridge/mcp-bridge/mcp"
)

// newStubMCPServer answers the JSON-RPC methods the client issues over
// the HTTP transport.
func newStubMCPServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var req struct {
			ID     int64  `json:"id"`
			Method string `json:"method"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var result string
		switch req.Method {
		case "initialize":
			result = `{"capabilities":{},"protocolVersion":"1.0","serverInfo":{"name":"stub","version":"0.0.1"}}`
		case "tools/list":
			result = `{"tools":[{"name":"calculator","description":"Adds two numbers","inputSchema":{"type":"object","properties":{}}}]}`
		case "tools/call":
			result = `{"content":[{"type":"text","text":"4"}]}`
		default:
			result = `{}`
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
	}))
}

func TestClientListToolsConcurrentLazyInit(t *testing.T) {
	server := newStubMCPServer(t)
	defer server.Close()

	// The startup handshake never ran; every caller hits the lazy
	// initialization path at once.
	client := mcp.NewClient([]string{server.URL}, logger.NewNoOpLogger())
	assert.False(t, client.IsInitialized())

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	counts := make([]int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tools, err := client.ListTools(context.Background())
			errs[i] = err
			counts[i] = len(tools)
			client.IsInitialized()
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 1, counts[i])
	}
	assert.True(t, client.IsInitialized())
}

func TestClientListToolsDescriptors(t *testing.T) {
	server := newStubMCPServer(t)
	defer server.Close()

	client := mcp.NewClient([]string{server.URL}, logger.NewNoOpLogger())
	require.NoError(t, client.Initialize(context.Background()))

	tools, err := client.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "calculator", tools[0].Name)
	assert.Equal(t, "Adds two numbers", tools[0].Description)
	assert.Equal(t, server.URL, tools[0].ServerURL)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(tools[0].InputSchema))
}

func TestClientCallToolFlattensText(t *testing.T) {
	server := newStubMCPServer(t)
	defer server.Close()

	client := mcp.NewClient([]string{server.URL}, logger.NewNoOpLogger())
	require.NoError(t, client.Initialize(context.Background()))

	content, err := client.CallTool(context.Background(), server.URL, "calculator", map[string]interface{}{"a": 2, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, "4", content)

	_, err = client.CallTool(context.Background(), "http://unknown:1", "calculator", nil)
	assert.Error(t, err)
}

func TestClientInitializeNoReachableServer(t *testing.T) {
	// An empty stdio spec fails transport creation before any network
	// traffic.
	client := mcp.NewClient([]string{"stdio:"}, logger.NewNoOpLogger())

	err := client.Initialize(context.Background())
	assert.Error(t, err)
	assert.False(t, client.IsInitialized())

	_, err = client.ListTools(context.Background())
	assert.Error(t, err)
}
