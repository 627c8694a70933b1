package providers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-bridge/mcp-bridge/providers"
)

func TestOllamaComplete(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Empty(t, r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		_, _ = w.Write([]byte(`{
			"model": "test-model",
			"message": {
				"role": "assistant",
				"content": "",
				"tool_calls": [
					{"function": {"name": "calculator", "arguments": {"a": 2, "b": 2}}},
					{"function": {"name": "clock", "arguments": {}}}
				]
			},
			"done": true
		}`))
	}))
	defer server.Close()

	p := newTestProvider(t, providers.OllamaID, server.URL, "")
	turn, err := p.Complete(context.Background(), []providers.Message{
		{Role: providers.MessageRoleUser, Content: "What is 2+2?"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "/api/chat", gotPath)
	assert.Equal(t, false, gotBody["stream"])

	// Ollama returns no call ids, so they are synthesized in order.
	require.Len(t, turn.ToolCalls, 2)
	assert.Equal(t, "call_0", turn.ToolCalls[0].ID)
	assert.Equal(t, "calculator", turn.ToolCalls[0].Name)
	assert.JSONEq(t, `{"a":2,"b":2}`, string(turn.ToolCalls[0].Arguments))
	assert.Equal(t, "call_1", turn.ToolCalls[1].ID)
	assert.JSONEq(t, `{}`, string(turn.ToolCalls[1].Arguments))
}

func TestOllamaCompleteFinalAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model":"test-model","message":{"role":"assistant","content":"2+2 is 4."},"done":true}`))
	}))
	defer server.Close()

	p := newTestProvider(t, providers.OllamaID, server.URL, "")
	turn, err := p.Complete(context.Background(), []providers.Message{
		{Role: providers.MessageRoleUser, Content: "What is 2+2?"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "2+2 is 4.", turn.Content)
	assert.Empty(t, turn.ToolCalls)
}
