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

	"github.com/mcp-bridge/mcp-bridge/config"
	"github.com/mcp-bridge/mcp-bridge/logger"
	"github.com/mcp-bridge/mcp-bridge/mcp"
	"github.com/mcp-bridge/mcp-bridge/providers"
)

func newTestProvider(t *testing.T, id, url, token string) providers.Provider {
	t.Helper()
	cfg := testConfig()
	pc := &config.ProviderConfig{URL: url, Token: token, Model: "test-model"}
	switch id {
	case providers.OpenaiID:
		cfg.Openai = pc
	case providers.AnthropicID:
		cfg.Anthropic = pc
	case providers.GroqID:
		cfg.Groq = pc
	case providers.OllamaID:
		cfg.Ollama = pc
	}
	p, err := providers.NewProvider(cfg, id, "", providers.NewHTTPClient(), logger.NewNoOpLogger())
	require.NoError(t, err)
	return p
}

func TestOpenaiComplete(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "test-model",
			"choices": [{
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{
						"id": "call_abc",
						"type": "function",
						"function": {"name": "calculator", "arguments": "{\"a\":2,\"b\":2}"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`))
	}))
	defer server.Close()

	p := newTestProvider(t, providers.OpenaiID, server.URL, "sk-test")
	tools := []mcp.ToolDescriptor{{
		Name:        "calculator",
		Description: "Adds two numbers",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"a":{"type":"number"},"b":{"type":"number"}}}`),
	}}

	turn, err := p.Complete(context.Background(), []providers.Message{
		{Role: providers.MessageRoleSystem, Content: "You are a helpful assistant."},
		{Role: providers.MessageRoleUser, Content: "What is 2+2?"},
	}, tools)

	require.NoError(t, err)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, false, gotBody["stream"])
	assert.Len(t, gotBody["tools"], 1)
	assert.Len(t, gotBody["messages"], 2)

	require.Len(t, turn.ToolCalls, 1)
	assert.Equal(t, "call_abc", turn.ToolCalls[0].ID)
	assert.Equal(t, "calculator", turn.ToolCalls[0].Name)
	assert.JSONEq(t, `{"a":2,"b":2}`, string(turn.ToolCalls[0].Arguments))
}

func TestGroqUsesOpenaiFormat(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`))
	}))
	defer server.Close()

	p := newTestProvider(t, providers.GroqID, server.URL, "gsk-test")
	turn, err := p.Complete(context.Background(), []providers.Message{
		{Role: providers.MessageRoleUser, Content: "hello"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "/openai/v1/chat/completions", gotPath)
	assert.Equal(t, "hi", turn.Content)
	assert.Empty(t, turn.ToolCalls)
}

func TestOpenaiCompleteErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantRetryable bool
	}{
		{name: "rate limited is retryable", status: http.StatusTooManyRequests, body: `{"error":"rate limit"}`, wantRetryable: true},
		{name: "server error is retryable", status: http.StatusInternalServerError, body: `oops`, wantRetryable: true},
		{name: "bad request is fatal", status: http.StatusBadRequest, body: `{"error":"bad"}`, wantRetryable: false},
		{name: "unauthorized is fatal", status: http.StatusUnauthorized, body: `{"error":"key"}`, wantRetryable: false},
		{name: "malformed body is fatal", status: http.StatusOK, body: `{"choices":`, wantRetryable: false},
		{name: "no choices is fatal", status: http.StatusOK, body: `{"choices":[]}`, wantRetryable: false},
		{name: "tool call without id is fatal", status: http.StatusOK, body: `{"choices":[{"message":{"tool_calls":[{"type":"function","function":{"name":"calculator","arguments":"{}"}}]}}]}`, wantRetryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := newTestProvider(t, providers.OpenaiID, server.URL, "sk-test")
			_, err := p.Complete(context.Background(), []providers.Message{
				{Role: providers.MessageRoleUser, Content: "hello"},
			}, nil)

			require.Error(t, err)
			assert.True(t, providers.IsProviderError(err))
			assert.Equal(t, tt.wantRetryable, providers.IsRetryable(err))
		})
	}
}

func TestOpenaiCompleteLossySchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the backend when translation fails")
	}))
	defer server.Close()

	p := newTestProvider(t, providers.OpenaiID, server.URL, "sk-test")
	_, err := p.Complete(context.Background(), []providers.Message{
		{Role: providers.MessageRoleUser, Content: "hello"},
	}, []mcp.ToolDescriptor{{
		Name:        "lossy",
		InputSchema: json.RawMessage(`{"type":"array"}`),
	}})

	require.Error(t, err)
	assert.True(t, providers.IsSchemaTranslation(err))
}

func TestOpenaiCompleteCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestProvider(t, providers.OpenaiID, server.URL, "sk-test")
	_, err := p.Complete(ctx, []providers.Message{
		{Role: providers.MessageRoleUser, Content: "hello"},
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
