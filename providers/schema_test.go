package providers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcp-bridge/mcp-bridge/mcp"
)

func TestTranslateToolSchema(t *testing.T) {
	tests := []struct {
		name        string
		desc        mcp.ToolDescriptor
		wantSchema  string
		expectError bool
	}{
		{
			name: "object schema passes through unchanged",
			desc: mcp.ToolDescriptor{
				Name:        "calculator",
				InputSchema: json.RawMessage(`{"type":"object","properties":{"a":{"type":"number"},"b":{"type":"number"}},"required":["a","b"]}`),
			},
			wantSchema: `{"type":"object","properties":{"a":{"type":"number"},"b":{"type":"number"}},"required":["a","b"]}`,
		},
		{
			name:       "missing schema becomes empty object schema",
			desc:       mcp.ToolDescriptor{Name: "ping"},
			wantSchema: `{"type":"object","properties":{}}`,
		},
		{
			name: "non-object top level fails closed",
			desc: mcp.ToolDescriptor{
				Name:        "lossy",
				InputSchema: json.RawMessage(`{"type":"array","items":{"type":"string"}}`),
			},
			expectError: true,
		},
		{
			name: "schema without a type fails closed",
			desc: mcp.ToolDescriptor{
				Name:        "untyped",
				InputSchema: json.RawMessage(`{"properties":{}}`),
			},
			expectError: true,
		},
		{
			name: "malformed schema fails closed",
			desc: mcp.ToolDescriptor{
				Name:        "broken",
				InputSchema: json.RawMessage(`{"type":`),
			},
			expectError: true,
		},
		{
			name:        "empty tool name fails closed",
			desc:        mcp.ToolDescriptor{InputSchema: json.RawMessage(`{"type":"object"}`)},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := translateToolSchema(OpenaiID, tt.desc)
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, IsSchemaTranslation(err))
				return
			}
			assert.NoError(t, err)
			assert.JSONEq(t, tt.wantSchema, string(schema))
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	retryable := []int{http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable}
	for _, code := range retryable {
		assert.True(t, retryableStatus(code), "status %d should be retryable", code)
	}

	fatal := []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound}
	for _, code := range fatal {
		assert.False(t, retryableStatus(code), "status %d should not be retryable", code)
	}
}
