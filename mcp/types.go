package mcp

import "encoding/json"

// ToolDescriptor describes one tool exposed by an MCP server. Names are
// unique within a session; InputSchema is a JSON Schema for the accepted
// arguments.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema,omitempty"`
	ServerURL   string          `json:"-"`
}

// ToolCallRequest is a model-declared request to execute a tool. The ID
// is unique within one model turn.
type ToolCallRequest struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolCallResult answers exactly one ToolCallRequest. IsError marks a
// failure description instead of a success payload; either way a result
// is always produced, never dropped.
type ToolCallResult struct {
	CallID  string `json:"call_id"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}
