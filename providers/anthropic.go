package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mcp-bridge/mcp-bridge/config"
	"github.com/mcp-bridge/mcp-bridge/logger"
	"github.com/mcp-bridge/mcp-bridge/mcp"
)

// Extra headers for the Anthropic provider
var anthropicExtraHeaders = map[string]string{
	"anthropic-version": "2023-06-01",
}

const anthropicMaxTokens = 4096

// anthropicProvider speaks the Anthropic messages API. System prompts
// live in a dedicated request field, tool calls arrive as tool_use
// content blocks and tool results go back as tool_result blocks inside
// a user message.
type anthropicProvider struct {
	model    string
	endpoint endpoint
	logger   logger.Logger
}

// Ensure the adapter implements Provider at compile time
var _ Provider = (*anthropicProvider)(nil)

func newAnthropicProvider(cfg *config.ProviderConfig, model string, client *http.Client, log logger.Logger) Provider {
	url := AnthropicDefaultBaseURL
	if cfg != nil && cfg.URL != "" {
		url = cfg.URL
	}
	token := ""
	if cfg != nil {
		token = cfg.Token
	}
	return &anthropicProvider{
		model: model,
		endpoint: endpoint{
			id:           AnthropicID,
			url:          url,
			token:        token,
			authType:     AuthTypeXheader,
			extraHeaders: anthropicExtraHeaders,
			client:       client,
		},
		logger: log,
	}
}

type anthropicContentBlock struct {
	Type string `json:"type"`

	// type == "text"
	Text string `json:"text,omitempty"`

	// type == "tool_use"
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// type == "tool_result"
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

type anthropicMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentBlock `json:"content"`
}

type anthropicTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	Tools     []anthropicTool    `json:"tools,omitempty"`
}

type anthropicResponse struct {
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason"`
	Model      string                  `json:"model"`
}

func (p *anthropicProvider) GetID() string    { return AnthropicID }
func (p *anthropicProvider) GetName() string  { return AnthropicDisplayName }
func (p *anthropicProvider) GetModel() string { return p.model }

func (p *anthropicProvider) Complete(ctx context.Context, messages []Message, tools []mcp.ToolDescriptor) (ModelTurn, error) {
	request := anthropicRequest{
		Model:     p.model,
		MaxTokens: anthropicMaxTokens,
	}

	system, converted, err := toAnthropicMessages(messages)
	if err != nil {
		return ModelTurn{}, err
	}
	request.System = system
	request.Messages = converted

	for _, desc := range tools {
		schema, err := translateToolSchema(AnthropicID, desc)
		if err != nil {
			return ModelTurn{}, err
		}
		request.Tools = append(request.Tools, anthropicTool{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: schema,
		})
	}

	var response anthropicResponse
	if err := p.endpoint.postJSON(ctx, "/v1/messages", request, &response); err != nil {
		return ModelTurn{}, err
	}

	var text strings.Builder
	var turn ModelTurn
	for _, block := range response.Content {
		switch block.Type {
		case "text":
			text.WriteString(block.Text)
		case "tool_use":
			if block.ID == "" {
				return ModelTurn{}, &ProviderError{Provider: AnthropicID, Message: "tool_use block missing id"}
			}
			args := block.Input
			if len(args) == 0 {
				args = json.RawMessage("{}")
			}
			turn.ToolCalls = append(turn.ToolCalls, mcp.ToolCallRequest{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: args,
			})
		}
	}
	turn.Content = text.String()

	p.logger.Debug("Provider turn complete", "provider", AnthropicID, "stopReason", response.StopReason, "toolCalls", len(turn.ToolCalls))
	return turn, nil
}

// toAnthropicMessages maps the common history onto the messages API:
// system turns are hoisted into the system field, assistant tool calls
// become tool_use blocks and tool results become tool_result blocks in
// a user turn. Consecutive tool results are folded into one user
// message, which the API requires.
func toAnthropicMessages(messages []Message) (string, []anthropicMessage, error) {
	var system []string
	var out []anthropicMessage

	for _, m := range messages {
		switch m.Role {
		case MessageRoleSystem:
			system = append(system, m.Content)

		case MessageRoleUser:
			out = append(out, anthropicMessage{
				Role:    "user",
				Content: []anthropicContentBlock{{Type: "text", Text: m.Content}},
			})

		case MessageRoleAssistant:
			var blocks []anthropicContentBlock
			if m.Content != "" {
				blocks = append(blocks, anthropicContentBlock{Type: "text", Text: m.Content})
			}
			for _, call := range m.ToolCalls {
				args := call.Arguments
				if len(args) == 0 {
					args = json.RawMessage("{}")
				}
				blocks = append(blocks, anthropicContentBlock{
					Type:  "tool_use",
					ID:    call.ID,
					Name:  call.Name,
					Input: args,
				})
			}
			if len(blocks) == 0 {
				blocks = append(blocks, anthropicContentBlock{Type: "text", Text: ""})
			}
			out = append(out, anthropicMessage{Role: "assistant", Content: blocks})

		case MessageRoleTool:
			block := anthropicContentBlock{
				Type:      "tool_result",
				ToolUseID: m.ToolCallID,
				Content:   m.Content,
			}
			if n := len(out); n > 0 && out[n-1].Role == "user" && len(out[n-1].Content) > 0 && out[n-1].Content[0].Type == "tool_result" {
				out[n-1].Content = append(out[n-1].Content, block)
			} else {
				out = append(out, anthropicMessage{Role: "user", Content: []anthropicContentBlock{block}})
			}

		default:
			return "", nil, &ProviderError{Provider: AnthropicID, Message: "unsupported message role: " + m.Role}
		}
	}

	return strings.Join(system, "\n\n"), out, nil
}
