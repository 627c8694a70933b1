package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mcp-bridge/mcp-bridge/config"
	"github.com/mcp-bridge/mcp-bridge/logger"
	"github.com/mcp-bridge/mcp-bridge/mcp"
)

// ollamaProvider speaks the Ollama /api/chat endpoint. Tool
// declarations follow the OpenAI function shape, but tool calls come
// back with object-valued arguments and without call ids, so ids are
// synthesized per turn.
type ollamaProvider struct {
	model    string
	endpoint endpoint
	logger   logger.Logger
}

// Ensure the adapter implements Provider at compile time
var _ Provider = (*ollamaProvider)(nil)

func newOllamaProvider(cfg *config.ProviderConfig, model string, client *http.Client, log logger.Logger) Provider {
	url := OllamaDefaultBaseURL
	if cfg != nil && cfg.URL != "" {
		url = cfg.URL
	}
	return &ollamaProvider{
		model: model,
		endpoint: endpoint{
			id:       OllamaID,
			url:      url,
			authType: AuthTypeNone,
			client:   client,
		},
		logger: log,
	}
}

type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []ollamaToolCall `json:"tool_calls,omitempty"`
}

type ollamaToolCall struct {
	Function ollamaFunctionCall `json:"function"`
}

type ollamaFunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Tools    []openaiTool    `json:"tools,omitempty"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

func (p *ollamaProvider) GetID() string    { return OllamaID }
func (p *ollamaProvider) GetName() string  { return OllamaDisplayName }
func (p *ollamaProvider) GetModel() string { return p.model }

func (p *ollamaProvider) Complete(ctx context.Context, messages []Message, tools []mcp.ToolDescriptor) (ModelTurn, error) {
	request := ollamaChatRequest{
		Model:    p.model,
		Messages: toOllamaMessages(messages),
		Stream:   false,
	}

	for _, desc := range tools {
		schema, err := translateToolSchema(OllamaID, desc)
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

	var response ollamaChatResponse
	if err := p.endpoint.postJSON(ctx, "/api/chat", request, &response); err != nil {
		return ModelTurn{}, err
	}

	turn := ModelTurn{Content: response.Message.Content}
	for i, call := range response.Message.ToolCalls {
		args := call.Function.Arguments
		if len(args) == 0 {
			args = json.RawMessage("{}")
		}
		turn.ToolCalls = append(turn.ToolCalls, mcp.ToolCallRequest{
			ID:        fmt.Sprintf("call_%d", i),
			Name:      call.Function.Name,
			Arguments: args,
		})
	}

	p.logger.Debug("Provider turn complete", "provider", OllamaID, "toolCalls", len(turn.ToolCalls))
	return turn, nil
}

func toOllamaMessages(messages []Message) []ollamaMessage {
	out := make([]ollamaMessage, 0, len(messages))
	for _, m := range messages {
		msg := ollamaMessage{Role: m.Role, Content: m.Content}
		for _, call := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, ollamaToolCall{
				Function: ollamaFunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		out = append(out, msg)
	}
	return out
}
