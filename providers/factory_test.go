package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcp-bridge/mcp-bridge/config"
	"github.com/mcp-bridge/mcp-bridge/logger"
	"github.com/mcp-bridge/mcp-bridge/providers"
)

func testConfig() *config.Config {
	return &config.Config{
		Ollama:    &config.ProviderConfig{Model: "llama3.2"},
		Openai:    &config.ProviderConfig{Token: "sk-test", Model: "gpt-4o"},
		Anthropic: &config.ProviderConfig{Token: "sk-ant", Model: "claude-sonnet-4-0"},
		Groq:      &config.ProviderConfig{Token: "gsk-test"},
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		modelOverride string
		wantModel     string
		expectError   bool
	}{
		{name: "openai with configured model", id: providers.OpenaiID, wantModel: "gpt-4o"},
		{name: "anthropic with configured model", id: providers.AnthropicID, wantModel: "claude-sonnet-4-0"},
		{name: "ollama with configured model", id: providers.OllamaID, wantModel: "llama3.2"},
		{name: "override wins over configured model", id: providers.OpenaiID, modelOverride: "gpt-4o-mini", wantModel: "gpt-4o-mini"},
		{name: "groq without model fails", id: providers.GroqID, expectError: true},
		{name: "groq with override succeeds", id: providers.GroqID, modelOverride: "llama-3.3-70b-versatile", wantModel: "llama-3.3-70b-versatile"},
		{name: "unknown provider fails", id: "cohere", expectError: true},
		{name: "empty provider fails", id: "", expectError: true},
	}

	client := providers.NewHTTPClient()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := providers.NewProvider(testConfig(), tt.id, tt.modelOverride, client, logger.NewNoOpLogger())
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, providers.IsConfigurationError(err))
				assert.Nil(t, p)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.id, p.GetID())
			assert.Equal(t, tt.wantModel, p.GetModel())
		})
	}
}
