package providers

import (
	"net/http"

	"github.com/mcp-bridge/mcp-bridge/config"
	"github.com/mcp-bridge/mcp-bridge/logger"
)

// Groq serves the OpenAI chat-completions format under /openai/v1.
func newGroqProvider(cfg *config.ProviderConfig, model string, client *http.Client, log logger.Logger) Provider {
	url := GroqDefaultBaseURL
	if cfg != nil && cfg.URL != "" {
		url = cfg.URL
	}
	token := ""
	if cfg != nil {
		token = cfg.Token
	}
	return &openaiCompatible{
		id:    GroqID,
		name:  GroqDisplayName,
		model: model,
		path:  "/openai/v1/chat/completions",
		endpoint: endpoint{
			id:       GroqID,
			url:      url,
			token:    token,
			authType: AuthTypeBearer,
			client:   client,
		},
		logger: log,
	}
}
