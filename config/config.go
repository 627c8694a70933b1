package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the configuration for the MCP bridge.
type Config struct {
	// General settings
	ApplicationName string `env:"APPLICATION_NAME, default=mcp-bridge" description:"The name of the application"`
	Environment     string `env:"ENVIRONMENT, default=production" description:"The environment"`
	EnableTelemetry bool   `env:"ENABLE_TELEMETRY, default=false" description:"Enable telemetry"`

	// Default provider used for sessions that do not request one
	DefaultProvider string `env:"DEFAULT_PROVIDER, default=openai" description:"Provider used when a session does not request one"`

	// Server settings
	Server *ServerConfig `env:", prefix=SERVER_" description:"Server configuration"`

	// MCP settings
	MCP *MCPConfig `env:", prefix=MCP_" description:"MCP client configuration"`

	// Agent loop settings
	Agent *AgentConfig `env:", prefix=AGENT_" description:"Tool-invocation loop configuration"`

	// Provider settings
	Ollama    *ProviderConfig `env:", prefix=OLLAMA_" description:"Ollama configuration"`
	Openai    *ProviderConfig `env:", prefix=OPENAI_" description:"OpenAI configuration"`
	Anthropic *ProviderConfig `env:", prefix=ANTHROPIC_" description:"Anthropic configuration"`
	Groq      *ProviderConfig `env:", prefix=GROQ_" description:"Groq configuration"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host         string        `env:"HOST, default=0.0.0.0" description:"Server host"`
	Port         string        `env:"PORT, default=8080" description:"Server port"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=30s" description:"Read timeout"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=300s" description:"Write timeout"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT, default=120s" description:"Idle timeout"`
}

// MCPConfig holds the MCP collaborator settings.
type MCPConfig struct {
	// Comma separated list of MCP server URLs
	Servers         []string      `env:"SERVERS" description:"Comma separated MCP server URLs"`
	ToolCallTimeout time.Duration `env:"TOOL_CALL_TIMEOUT, default=30s" description:"Timeout per tool invocation"`
	InitTimeout     time.Duration `env:"INIT_TIMEOUT, default=10s" description:"Timeout for handshake and discovery"`
}

// AgentConfig bounds the tool-invocation loop.
type AgentConfig struct {
	MaxTurns        int           `env:"MAX_TURNS, default=10" description:"Maximum model calls per user turn"`
	MaxRetries      int           `env:"MAX_RETRIES, default=3" description:"Retry budget for retryable provider errors"`
	InitialBackoff  time.Duration `env:"INITIAL_BACKOFF, default=500ms" description:"Initial retry backoff, doubles per attempt"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT, default=120s" description:"Timeout per provider call"`
}

// ProviderConfig holds credentials and connection parameters for one
// provider. Values are opaque to the core and passed through.
type ProviderConfig struct {
	URL   string `env:"API_URL" description:"Provider base URL"`
	Token string `env:"API_KEY" type:"secret" description:"Provider API key"`
	Model string `env:"MODEL" description:"Default model identifier"`
}

// Load populates the configuration from the given lookuper.
func (cfg *Config) Load(lookuper envconfig.Lookuper) (Config, error) {
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, err
	}
	return *cfg, nil
}
