package agent

import (
	"errors"
	"fmt"
)

// FailureKind names the reason a loop reached the FAILED state. It is
// always surfaced to the caller of SendUserMessage, never swallowed.
type FailureKind string

const (
	// FailureProvider is a non-retryable provider error or an
	// exhausted retry budget.
	FailureProvider FailureKind = "provider_error"
	// FailureLoopBudgetExceeded is the protective turn-count ceiling.
	FailureLoopBudgetExceeded FailureKind = "loop_budget_exceeded"
	// FailureCancelled is a caller-aborted exchange; partially
	// collected tool results are released.
	FailureCancelled FailureKind = "cancelled"
	// FailureProtocol is a provider response that violates the
	// tool-call contract, e.g. duplicate call ids in one turn.
	FailureProtocol FailureKind = "protocol_violation"
)

// LoopError is the terminal failure of one user turn, carrying a
// distinguishable kind.
type LoopError struct {
	Kind  FailureKind
	Cause error
}

func (e *LoopError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("loop failed (%s): %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("loop failed (%s)", e.Kind)
}

func (e *LoopError) Unwrap() error { return e.Cause }

// FailureKindOf extracts the failure kind from err, or "" when err is
// not a LoopError.
func FailureKindOf(err error) FailureKind {
	var e *LoopError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsLoopBudgetExceeded reports whether err is the turn-count ceiling.
func IsLoopBudgetExceeded(err error) bool {
	return FailureKindOf(err) == FailureLoopBudgetExceeded
}

// IsCancelled reports whether err is a cancelled exchange.
func IsCancelled(err error) bool {
	return FailureKindOf(err) == FailureCancelled
}
