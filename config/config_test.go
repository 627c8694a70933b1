package config_test

import (
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"

	"github.com/mcp-bridge/mcp-bridge/config"
)

func TestLoadDefaults(t *testing.T) {
	var cfg config.Config
	loaded, err := cfg.Load(envconfig.MapLookuper(map[string]string{}))

	assert.NoError(t, err)
	assert.Equal(t, "mcp-bridge", loaded.ApplicationName)
	assert.Equal(t, "production", loaded.Environment)
	assert.False(t, loaded.EnableTelemetry)
	assert.Equal(t, "openai", loaded.DefaultProvider)

	assert.Equal(t, "0.0.0.0", loaded.Server.Host)
	assert.Equal(t, "8080", loaded.Server.Port)
	assert.Equal(t, 30*time.Second, loaded.Server.ReadTimeout)

	assert.Empty(t, loaded.MCP.Servers)
	assert.Equal(t, 30*time.Second, loaded.MCP.ToolCallTimeout)
	assert.Equal(t, 10*time.Second, loaded.MCP.InitTimeout)

	assert.Equal(t, 10, loaded.Agent.MaxTurns)
	assert.Equal(t, 3, loaded.Agent.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, loaded.Agent.InitialBackoff)
	assert.Equal(t, 120*time.Second, loaded.Agent.ProviderTimeout)
}

func TestLoadOverrides(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want func(t *testing.T, cfg config.Config)
	}{
		{
			name: "server and environment",
			env: map[string]string{
				"ENVIRONMENT": "development",
				"SERVER_PORT": "9090",
			},
			want: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, "9090", cfg.Server.Port)
			},
		},
		{
			name: "mcp servers list",
			env: map[string]string{
				"MCP_SERVERS":           "http://mcp-a:3000,stdio:python server.py",
				"MCP_TOOL_CALL_TIMEOUT": "5s",
			},
			want: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, []string{"http://mcp-a:3000", "stdio:python server.py"}, cfg.MCP.Servers)
				assert.Equal(t, 5*time.Second, cfg.MCP.ToolCallTimeout)
			},
		},
		{
			name: "agent loop bounds",
			env: map[string]string{
				"AGENT_MAX_TURNS":   "5",
				"AGENT_MAX_RETRIES": "1",
			},
			want: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, 5, cfg.Agent.MaxTurns)
				assert.Equal(t, 1, cfg.Agent.MaxRetries)
			},
		},
		{
			name: "provider credentials",
			env: map[string]string{
				"DEFAULT_PROVIDER":  "anthropic",
				"ANTHROPIC_API_KEY": "sk-test",
				"ANTHROPIC_MODEL":   "claude-sonnet-4-0",
				"OLLAMA_API_URL":    "http://ollama:11434",
			},
			want: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "anthropic", cfg.DefaultProvider)
				assert.Equal(t, "sk-test", cfg.Anthropic.Token)
				assert.Equal(t, "claude-sonnet-4-0", cfg.Anthropic.Model)
				assert.Equal(t, "http://ollama:11434", cfg.Ollama.URL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config.Config
			loaded, err := cfg.Load(envconfig.MapLookuper(tt.env))
			assert.NoError(t, err)
			tt.want(t, loaded)
		})
	}
}
