package mcp

import (
	"errors"
	"fmt"
)

// UnknownToolError reports a tool name that resolves to no discovered
// descriptor. Names are matched exactly, never fuzzily.
type UnknownToolError struct {
	Tool string
}

func (e *UnknownToolError) Error() string {
	return "unknown tool: " + e.Tool
}

// IsUnknownTool reports whether err is an UnknownToolError.
func IsUnknownTool(err error) bool {
	var e *UnknownToolError
	return errors.As(err, &e)
}

// ArgumentValidationError reports arguments that do not satisfy the
// tool's input schema. Raised before the server is contacted.
type ArgumentValidationError struct {
	Tool  string
	Cause error
}

func (e *ArgumentValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid arguments for tool %s: %v", e.Tool, e.Cause)
	}
	return "invalid arguments for tool " + e.Tool
}

func (e *ArgumentValidationError) Unwrap() error { return e.Cause }

// IsArgumentValidation reports whether err is an ArgumentValidationError.
func IsArgumentValidation(err error) bool {
	var e *ArgumentValidationError
	return errors.As(err, &e)
}
