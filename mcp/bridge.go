package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mcp-bridge/mcp-bridge/logger"
)

// Bridge discovers the tools exposed by the MCP collaborator and
// executes model-declared tool calls against them. Model-declared calls
// are untrusted input: names are resolved exactly and arguments are
// validated against the descriptor schema before any server contact.
//
//go:generate mockgen -source=bridge.go -destination=../tests/mocks/bridge.go -package=mocks
type ToolBridge interface {
	Discover(ctx context.Context) ([]ToolDescriptor, error)
	Refresh(ctx context.Context) ([]ToolDescriptor, error)
	Invoke(ctx context.Context, call ToolCallRequest) ToolCallResult
}

type toolEntry struct {
	descriptor ToolDescriptor
	schema     *jsonschema.Schema
}

// Bridge is the concrete ToolBridge over an MCP client.
type Bridge struct {
	client  ClientInterface
	logger  logger.Logger
	timeout time.Duration

	mu     sync.RWMutex
	tools  []ToolDescriptor
	byName map[string]toolEntry
}

// Ensure Bridge implements ToolBridge at compile time
var _ ToolBridge = (*Bridge)(nil)

// NewBridge creates a tool bridge. timeout bounds each individual tool
// invocation, independent of the loop's turn budget.
func NewBridge(client ClientInterface, timeout time.Duration, log logger.Logger) *Bridge {
	return &Bridge{
		client:  client,
		logger:  log,
		timeout: timeout,
		byName:  make(map[string]toolEntry),
	}
}

// Discover returns the cached tool descriptors, querying the servers on
// first use. Re-running Discover against an unchanged tool set yields
// the same descriptors.
func (b *Bridge) Discover(ctx context.Context) ([]ToolDescriptor, error) {
	b.mu.RLock()
	if b.tools != nil {
		tools := b.tools
		b.mu.RUnlock()
		return tools, nil
	}
	b.mu.RUnlock()

	return b.Refresh(ctx)
}

// Refresh re-queries the servers and replaces the cached descriptor
// set. Descriptors whose schema does not compile are dropped from the
// set so a model is never shown a tool the bridge cannot validate.
func (b *Bridge) Refresh(ctx context.Context) ([]ToolDescriptor, error) {
	discovered, err := b.client.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	tools := make([]ToolDescriptor, 0, len(discovered))
	byName := make(map[string]toolEntry, len(discovered))
	for _, desc := range discovered {
		if _, exists := byName[desc.Name]; exists {
			b.logger.Error("Duplicate tool name discovered, keeping first", nil, "tool", desc.Name, "server", desc.ServerURL)
			continue
		}

		schema, err := compileSchema(desc.InputSchema)
		if err != nil {
			b.logger.Error("Dropping tool with invalid input schema", err, "tool", desc.Name)
			continue
		}

		tools = append(tools, desc)
		byName[desc.Name] = toolEntry{descriptor: desc, schema: schema}
	}

	b.mu.Lock()
	b.tools = tools
	b.byName = byName
	b.mu.Unlock()

	b.logger.Info("Discovered MCP tools", "count", len(tools))
	return tools, nil
}

// Invoke executes one tool call. It always produces a ToolCallResult:
// per-call failures (unknown name, invalid arguments, execution errors)
// are carried in the result so the model can self-correct, never raised
// past the loop boundary.
func (b *Bridge) Invoke(ctx context.Context, call ToolCallRequest) ToolCallResult {
	b.mu.RLock()
	entry, ok := b.byName[call.Name]
	b.mu.RUnlock()

	if !ok {
		err := &UnknownToolError{Tool: call.Name}
		b.logger.Error("Tool call for unknown tool", err, "call", call.ID)
		return failureResult(call.ID, err)
	}

	args, err := decodeArguments(call.Arguments)
	if err != nil {
		verr := &ArgumentValidationError{Tool: call.Name, Cause: err}
		b.logger.Error("Tool call with malformed arguments", verr, "call", call.ID)
		return failureResult(call.ID, verr)
	}

	if entry.schema != nil {
		if err := entry.schema.Validate(args); err != nil {
			verr := &ArgumentValidationError{Tool: call.Name, Cause: err}
			b.logger.Error("Tool call arguments rejected by schema", verr, "call", call.ID)
			return failureResult(call.ID, verr)
		}
	}

	callCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	b.logger.Debug("Executing tool call", "call", call.ID, "tool", call.Name)
	content, err := b.client.CallTool(callCtx, entry.descriptor.ServerURL, call.Name, args)
	if err != nil {
		b.logger.Error("Tool execution failed", err, "call", call.ID, "tool", call.Name)
		return failureResult(call.ID, err)
	}

	return ToolCallResult{CallID: call.ID, Content: content}
}

func failureResult(callID string, err error) ToolCallResult {
	return ToolCallResult{
		CallID:  callID,
		Content: fmt.Sprintf("Error: %v", err),
		IsError: true,
	}
}

// decodeArguments parses the raw argument payload. An empty payload is
// treated as an empty object so tools without parameters stay callable.
func decodeArguments(raw json.RawMessage) (map[string]interface{}, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]interface{}{}, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("arguments are not a JSON object: %w", err)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return args, nil
}

// compileSchema compiles a descriptor's input schema. A missing schema
// compiles to nil, meaning any arguments are accepted.
func compileSchema(raw json.RawMessage) (*jsonschema.Schema, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("schema resource: %w", err)
	}
	schema, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
