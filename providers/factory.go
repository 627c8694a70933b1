package providers

import (
	"net/http"

	"github.com/mcp-bridge/mcp-bridge/config"
	"github.com/mcp-bridge/mcp-bridge/logger"
)

// SupportedProviders enumerates the provider identifiers the factory
// accepts.
var SupportedProviders = []string{AnthropicID, GroqID, OllamaID, OpenaiID}

// NewProvider constructs the adapter for the given provider id. The
// model override, when set, is accepted verbatim: providers ship new
// model names faster than this layer should track them. Unknown ids
// fail with a ConfigurationError. All adapters share the pooled HTTP
// client.
func NewProvider(cfg *config.Config, id string, modelOverride string, client *http.Client, log logger.Logger) (Provider, error) {
	providerCfg, err := providerConfig(cfg, id)
	if err != nil {
		return nil, err
	}

	model := modelOverride
	if model == "" && providerCfg != nil {
		model = providerCfg.Model
	}
	if model == "" {
		return nil, &ConfigurationError{Provider: id, Reason: "no model configured and no override given"}
	}

	switch id {
	case AnthropicID:
		return newAnthropicProvider(providerCfg, model, client, log), nil
	case GroqID:
		return newGroqProvider(providerCfg, model, client, log), nil
	case OllamaID:
		return newOllamaProvider(providerCfg, model, client, log), nil
	case OpenaiID:
		return newOpenaiProvider(providerCfg, model, client, log), nil
	}

	// unreachable: providerConfig already rejects unknown ids
	return nil, &ConfigurationError{Provider: id, Reason: "unsupported provider"}
}

func providerConfig(cfg *config.Config, id string) (*config.ProviderConfig, error) {
	switch id {
	case AnthropicID:
		return cfg.Anthropic, nil
	case GroqID:
		return cfg.Groq, nil
	case OllamaID:
		return cfg.Ollama, nil
	case OpenaiID:
		return cfg.Openai, nil
	}
	return nil, &ConfigurationError{Provider: id, Reason: "unsupported provider"}
}
