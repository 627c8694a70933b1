package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	mcpgolang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport"
	mcphttp "github.com/metoro-io/mcp-golang/transport/http"
	"github.com/metoro-io/mcp-golang/transport/stdio"

	"github.com/mcp-bridge/mcp-bridge/logger"
)

// ClientInterface defines the MCP collaborator primitives the bridge
// consumes: a tool-listing primitive and a tool-execution primitive.
//
//go:generate mockgen -source=client.go -destination=../tests/mocks/mcp_client.go -package=mocks
type ClientInterface interface {
	// Initialize performs the MCP handshake with all configured servers
	Initialize(ctx context.Context) error

	// IsInitialized returns whether at least one server completed the handshake
	IsInitialized() bool

	// ListTools queries every connected server for its tool descriptors
	ListTools(ctx context.Context) ([]ToolDescriptor, error)

	// CallTool executes a tool on the server that exposes it and returns
	// the flattened text content of the response
	CallTool(ctx context.Context, serverURL string, name string, arguments map[string]interface{}) (string, error)
}

// Client connects to one or more MCP servers. Server addresses are
// either HTTP URLs or "stdio:<command>" specs that spawn the server as
// a subprocess and speak over its pipes.
type Client struct {
	serverURLs []string
	logger     logger.Logger

	// mu guards clients and initialized: a failed startup handshake is
	// retried lazily from ListTools, which concurrent HTTP handlers may
	// reach at the same time.
	mu          sync.Mutex
	clients     map[string]*mcpgolang.Client
	initialized bool
}

// Ensure Client implements ClientInterface at compile time
var _ ClientInterface = (*Client)(nil)

// NewClient creates an MCP client for the given server addresses.
var NewClient = func(serverURLs []string, log logger.Logger) ClientInterface {
	return &Client{
		serverURLs: serverURLs,
		clients:    make(map[string]*mcpgolang.Client),
		logger:     log,
	}
}

func (c *Client) createTransport(serverURL string) (transport.Transport, error) {
	if cmdline, ok := strings.CutPrefix(serverURL, "stdio:"); ok {
		parts := strings.Fields(cmdline)
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty stdio command")
		}
		cmd := exec.Command(parts[0], parts[1:]...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("stdin pipe: %w", err)
		}
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("stdout pipe: %w", err)
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("start %s: %w", parts[0], err)
		}
		return stdio.NewStdioServerTransportWithIO(stdout, stdin), nil
	}

	return mcphttp.NewHTTPClientTransport(serverURL), nil
}

// Initialize follows the MCP initialization handshake with all
// configured servers. Servers that fail the handshake are skipped;
// initialization fails only when no server is reachable.
func (c *Client) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initializeLocked(ctx)
}

// initializeLocked performs the handshake. Callers hold c.mu.
func (c *Client) initializeLocked(ctx context.Context) error {
	for _, serverURL := range c.serverURLs {
		t, err := c.createTransport(serverURL)
		if err != nil {
			c.logger.Error("Failed to create transport", err, "server", serverURL)
			continue
		}

		client := mcpgolang.NewClient(t)
		if _, err := client.Initialize(ctx); err != nil {
			c.logger.Error("Failed to initialize MCP server", err, "server", serverURL)
			continue
		}

		c.clients[serverURL] = client
		c.logger.Info("MCP server initialized", "server", serverURL)
	}

	if len(c.clients) == 0 {
		return fmt.Errorf("failed to initialize any MCP servers")
	}

	c.initialized = true
	return nil
}

// IsInitialized returns whether the client has been successfully initialized
func (c *Client) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// ListTools queries each connected server for its tools. The returned
// descriptors carry the server the tool lives on. A failed startup
// handshake is retried here, serialized by the lock.
func (c *Client) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	c.mu.Lock()
	if !c.initialized {
		if err := c.initializeLocked(ctx); err != nil {
			c.mu.Unlock()
			return nil, err
		}
	}
	clients := make(map[string]*mcpgolang.Client, len(c.clients))
	for serverURL, client := range c.clients {
		clients[serverURL] = client
	}
	c.mu.Unlock()

	var descriptors []ToolDescriptor
	for serverURL, client := range clients {
		resp, err := client.ListTools(ctx, nil)
		if err != nil {
			c.logger.Error("Failed to list tools", err, "server", serverURL)
			continue
		}

		for _, tool := range resp.Tools {
			desc := ToolDescriptor{
				Name:      tool.Name,
				ServerURL: serverURL,
			}
			if tool.Description != nil {
				desc.Description = *tool.Description
			}
			if tool.InputSchema != nil {
				raw, err := json.Marshal(tool.InputSchema)
				if err != nil {
					c.logger.Error("Failed to marshal tool schema", err, "tool", tool.Name)
					continue
				}
				desc.InputSchema = raw
			}
			descriptors = append(descriptors, desc)
		}
	}

	if len(descriptors) == 0 {
		return nil, fmt.Errorf("no tools discovered from any MCP server")
	}

	return descriptors, nil
}

// CallTool executes a tool and flattens the response content blocks to
// a single text payload.
func (c *Client) CallTool(ctx context.Context, serverURL string, name string, arguments map[string]interface{}) (string, error) {
	c.mu.Lock()
	client, ok := c.clients[serverURL]
	c.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("no client found for server: %s", serverURL)
	}

	response, err := client.CallTool(ctx, name, arguments)
	if err != nil {
		return "", fmt.Errorf("tool execution error: %w", err)
	}

	if response == nil || len(response.Content) == 0 {
		return "null", nil
	}

	var parts []string
	for _, content := range response.Content {
		if content.TextContent != nil {
			parts = append(parts, content.TextContent.Text)
			continue
		}
		raw, err := json.Marshal(content)
		if err != nil {
			continue
		}
		parts = append(parts, string(raw))
	}

	return strings.Join(parts, "\n"), nil
}
