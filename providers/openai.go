package providers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mcp-bridge/mcp-bridge/config"
	"github.com/mcp-bridge/mcp-bridge/logger"
	"github.com/mcp-bridge/mcp-bridge/mcp"
)

// openaiCompatible implements the OpenAI chat-completions wire format
// with function tools. Groq speaks the same format behind a different
// endpoint, so it reuses this adapter.
type openaiCompatible struct {
	id       string
	name     string
	model    string
	path     string
	endpoint endpoint
	logger   logger.Logger
}

// Ensure the adapter implements Provider at compile time
var _ Provider = (*openaiCompatible)(nil)

func newOpenaiProvider(cfg *config.ProviderConfig, model string, client *http.Client, log logger.Logger) Provider {
	url := OpenaiDefaultBaseURL
	if cfg != nil && cfg.URL != "" {
		url = cfg.URL
	}
	token := ""
	if cfg != nil {
		token = cfg.Token
	}
	return &openaiCompatible{
		id:    OpenaiID,
		name:  OpenaiDisplayName,
		model: model,
		path:  "/v1/chat/completions",
		endpoint: endpoint{
			id:       OpenaiID,
			url:      url,
			token:    token,
			authType: AuthTypeBearer,
			client:   client,
		},
		logger: log,
	}
}

type openaiMessage struct {
	Role       string           `json:"role"`
	Content    string           `json:"content"`
	ToolCalls  []openaiToolCall `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

type openaiToolCall struct {
	ID       string             `json:"id,omitempty"`
	Type     string             `json:"type"`
	Function openaiFunctionCall `json:"function"`
}

type openaiFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type openaiTool struct {
	Type     string            `json:"type"`
	Function openaiFunctionDef `json:"function"`
}

type openaiFunctionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

type openaiChatRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
	Tools    []openaiTool    `json:"tools,omitempty"`
	Stream   bool            `json:"stream"`
}

type openaiChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role      string           `json:"role"`
			Content   string           `json:"content"`
			ToolCalls []openaiToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (p *openaiCompatible) GetID() string    { return p.id }
func (p *openaiCompatible) GetName() string  { return p.name }
func (p *openaiCompatible) GetModel() string { return p.model }

func (p *openaiCompatible) Complete(ctx context.Context, messages []Message, tools []mcp.ToolDescriptor) (ModelTurn, error) {
	request := openaiChatRequest{
		Model:    p.model,
		Messages: toOpenaiMessages(messages),
		Stream:   false,
	}

	for _, desc := range tools {
		schema, err := translateToolSchema(p.id, desc)
		if err != nil {
			return ModelTurn{}, err
		}
		request.Tools = append(request.Tools, openaiTool{
			Type: "function",
			Function: openaiFunctionDef{
				Name:        desc.Name,
				Description: desc.Description,
				Parameters:  schema,
			},
		})
	}

	var response openaiChatResponse
	if err := p.endpoint.postJSON(ctx, p.path, request, &response); err != nil {
		return ModelTurn{}, err
	}

	if len(response.Choices) == 0 {
		return ModelTurn{}, &ProviderError{Provider: p.id, Message: "response contains no choices"}
	}

	msg := response.Choices[0].Message
	turn := ModelTurn{Content: msg.Content}
	for _, call := range msg.ToolCalls {
		if call.ID == "" {
			return ModelTurn{}, &ProviderError{Provider: p.id, Message: "tool call missing id"}
		}
		turn.ToolCalls = append(turn.ToolCalls, mcp.ToolCallRequest{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}

	p.logger.Debug("Provider turn complete", "provider", p.id, "toolCalls", len(turn.ToolCalls))
	return turn, nil
}

func toOpenaiMessages(messages []Message) []openaiMessage {
	out := make([]openaiMessage, 0, len(messages))
	for _, m := range messages {
		msg := openaiMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, call := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openaiToolCall{
				ID:   call.ID,
				Type: "function",
				Function: openaiFunctionCall{
					Name:      call.Name,
					Arguments: string(call.Arguments),
				},
			})
		}
		out = append(out, msg)
	}
	return out
}
