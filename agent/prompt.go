package agent

import (
	"strings"

	"github.com/mcp-bridge/mcp-bridge/mcp"
)

// SystemPrompt builds the default system prompt for a new session,
// naming the tools the model may call. Tool schemas travel separately
// in the provider's tool-declaration format.
func SystemPrompt(tools []mcp.ToolDescriptor) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant.")

	if len(tools) == 0 {
		return b.String()
	}

	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}

	b.WriteString(" You can call the following tools when they help answer the user: ")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(". Only call tools that are listed; never invent tool names or arguments. ")
	b.WriteString("If no tool is needed, answer directly.")
	return b.String()
}
