package providers

import (
	"github.com/mcp-bridge/mcp-bridge/mcp"
)

// The authentication type of the specific provider
const (
	AuthTypeBearer  = "bearer"
	AuthTypeXheader = "xheader"
	AuthTypeNone    = "none"
)

// The default base URLs of each provider
const (
	AnthropicDefaultBaseURL = "https://api.anthropic.com"
	GroqDefaultBaseURL      = "https://api.groq.com"
	OllamaDefaultBaseURL    = "http://localhost:11434"
	OpenaiDefaultBaseURL    = "https://api.openai.com"
)

// The ID's of each provider
const (
	AnthropicID = "anthropic"
	GroqID      = "groq"
	OllamaID    = "ollama"
	OpenaiID    = "openai"
)

// Display names for providers
const (
	AnthropicDisplayName = "Anthropic"
	GroqDisplayName      = "Groq"
	OllamaDisplayName    = "Ollama"
	OpenaiDisplayName    = "Openai"
)

// Message roles
const (
	MessageRoleSystem    = "system"
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleTool      = "tool"
)

// Message is one entry of the conversation history. Messages are
// append-only; a tool-role message answers the tool call identified by
// ToolCallID.
type Message struct {
	Role       string                `json:"role"`
	Content    string                `json:"content"`
	ToolCalls  []mcp.ToolCallRequest `json:"tool_calls,omitempty"`
	ToolCallID string                `json:"tool_call_id,omitempty"`
}

// ModelTurn is the fully assembled result of one model call: assistant
// text (possibly empty) and zero or more tool-call requests.
type ModelTurn struct {
	Content   string                `json:"content"`
	ToolCalls []mcp.ToolCallRequest `json:"tool_calls,omitempty"`
}
