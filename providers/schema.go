package providers

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mcp-bridge/mcp-bridge/mcp"
)

// defaultInputSchema is used for tools that declare no parameters.
var defaultInputSchema = json.RawMessage(`{"type":"object","properties":{}}`)

// translateToolSchema checks that a descriptor can be expressed in the
// backend's function-declaration format without losing constraints and
// returns the schema to put on the wire. Every supported backend
// declares tool parameters as a top-level object schema, so anything
// else fails closed with a SchemaTranslationError instead of silently
// dropping constraints.
func translateToolSchema(providerID string, desc mcp.ToolDescriptor) (json.RawMessage, error) {
	if desc.Name == "" {
		return nil, &SchemaTranslationError{Provider: providerID, Tool: desc.Name, Reason: "tool name is empty"}
	}

	raw := desc.InputSchema
	if len(bytes.TrimSpace(raw)) == 0 {
		return defaultInputSchema, nil
	}

	var top struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, &SchemaTranslationError{Provider: providerID, Tool: desc.Name, Reason: "input schema is not a JSON object: " + err.Error()}
	}
	if top.Type != "object" {
		return nil, &SchemaTranslationError{Provider: providerID, Tool: desc.Name, Reason: "input schema must declare a top-level object type, got " + stringOr(top.Type, "none")}
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return nil, &SchemaTranslationError{Provider: providerID, Tool: desc.Name, Reason: "schema resource: " + err.Error()}
	}
	if _, err := c.Compile("schema.json"); err != nil {
		return nil, &SchemaTranslationError{Provider: providerID, Tool: desc.Name, Reason: "schema does not compile: " + err.Error()}
	}

	return raw, nil
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
