package agent

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mcp-bridge/mcp-bridge/config"
	"github.com/mcp-bridge/mcp-bridge/logger"
	"github.com/mcp-bridge/mcp-bridge/mcp"
	"github.com/mcp-bridge/mcp-bridge/otel"
	"github.com/mcp-bridge/mcp-bridge/providers"
	"github.com/mcp-bridge/mcp-bridge/session"
)

// State is the tool-invocation loop state for one user exchange.
type State string

const (
	StateAwaitingUserInput State = "AWAITING_USER_INPUT"
	StateModelCallPending  State = "MODEL_CALL_PENDING"
	StateToolsPending      State = "TOOLS_PENDING"
	StateDone              State = "DONE"
	StateFailed            State = "FAILED"
)

// Agent drives repeated model-call / tool-execution cycles until the
// model produces a final answer.
//
//go:generate mockgen -source=agent.go -destination=../tests/mocks/agent.go -package=mocks
type Agent interface {
	// SendUserMessage appends the user turn and blocks until the loop
	// reaches DONE or FAILED, returning the final assistant text.
	// Failures carry a LoopError with a distinguishable kind.
	SendUserMessage(ctx context.Context, sess *session.Session, text string) (string, error)
}

// Ensure agentImpl implements Agent at compile time
var _ Agent = (*agentImpl)(nil)

type agentImpl struct {
	logger    logger.Logger
	bridge    mcp.ToolBridge
	cfg       config.AgentConfig
	telemetry otel.OpenTelemetry
}

// NewAgent creates an agent over the given tool bridge. telemetry may
// be nil when metrics are disabled.
func NewAgent(log logger.Logger, bridge mcp.ToolBridge, cfg config.AgentConfig, telemetry otel.OpenTelemetry) Agent {
	return &agentImpl{
		logger:    log,
		bridge:    bridge,
		cfg:       cfg,
		telemetry: telemetry,
	}
}

func (a *agentImpl) SendUserMessage(ctx context.Context, sess *session.Session, text string) (string, error) {
	sess.LockExchange()
	defer sess.UnlockExchange()

	provider := sess.Provider()

	if err := sess.Append(providers.Message{Role: providers.MessageRoleUser, Content: text}); err != nil {
		return "", err
	}
	a.transition(sess, StateAwaitingUserInput, StateModelCallPending)

	// The descriptor set is captured once per exchange so a concurrent
	// refresh never changes the tools a model was shown mid-turn.
	tools, err := a.bridge.Discover(ctx)
	if err != nil {
		a.logger.Error("Tool discovery failed, continuing without tools", err)
		tools = nil
	}

	// The session counter is monotonic across exchanges; the budget
	// bounds the turns of this exchange only.
	startTurns := sess.Turns()

	state := StateModelCallPending
	for {
		if turnCount := sess.BeginTurn(); turnCount-startTurns > a.cfg.MaxTurns {
			a.transition(sess, state, StateFailed)
			err := &LoopError{Kind: FailureLoopBudgetExceeded, Cause: errors.New("turn budget exhausted")}
			a.recordOutcome(ctx, provider, StateFailed)
			a.logger.Error("Loop reached maximum turns", err, "maxTurns", a.cfg.MaxTurns, "session", sess.ID())
			return "", err
		}

		turn, err := a.completeTurn(ctx, provider, sess.History(), &tools)
		if err != nil {
			a.transition(sess, state, StateFailed)
			a.recordOutcome(ctx, provider, StateFailed)
			if ctx.Err() != nil {
				return "", &LoopError{Kind: FailureCancelled, Cause: ctx.Err()}
			}
			return "", &LoopError{Kind: FailureProvider, Cause: err}
		}

		if len(turn.ToolCalls) == 0 {
			if err := sess.Append(providers.Message{Role: providers.MessageRoleAssistant, Content: turn.Content}); err != nil {
				return "", err
			}
			a.transition(sess, state, StateDone)
			a.recordOutcome(ctx, provider, StateDone)
			a.logger.Debug("Loop completed", "session", sess.ID(), "turns", sess.Turns()-startTurns)
			return turn.Content, nil
		}

		if err := uniqueCallIDs(turn.ToolCalls); err != nil {
			a.transition(sess, state, StateFailed)
			a.recordOutcome(ctx, provider, StateFailed)
			return "", &LoopError{Kind: FailureProtocol, Cause: err}
		}

		if err := sess.Append(providers.Message{
			Role:      providers.MessageRoleAssistant,
			Content:   turn.Content,
			ToolCalls: turn.ToolCalls,
		}); err != nil {
			return "", err
		}

		a.transition(sess, state, StateToolsPending)
		state = StateToolsPending

		results, err := a.executeTools(ctx, turn.ToolCalls)
		if err != nil {
			a.transition(sess, state, StateFailed)
			a.recordOutcome(ctx, provider, StateFailed)
			return "", &LoopError{Kind: FailureCancelled, Cause: err}
		}

		// Every request gets exactly one result appended before the
		// next model call, in call-id order.
		for _, result := range results {
			if err := sess.Append(providers.Message{
				Role:       providers.MessageRoleTool,
				Content:    result.Content,
				ToolCallID: result.CallID,
			}); err != nil {
				return "", err
			}
		}

		a.transition(sess, state, StateModelCallPending)
		state = StateModelCallPending
	}
}

// completeTurn issues one model call with the retry policy. Retryable
// provider errors are retried with exponential backoff within the
// configured budget. A SchemaTranslationError removes the offending
// tool from this exchange's descriptor set and re-issues the call: the
// tool is unavailable for the turn, the session survives.
func (a *agentImpl) completeTurn(ctx context.Context, provider providers.Provider, history []providers.Message, tools *[]mcp.ToolDescriptor) (providers.ModelTurn, error) {
	for {
		turn, err := a.completeWithRetry(ctx, provider, history, *tools)

		var ste *providers.SchemaTranslationError
		if errors.As(err, &ste) {
			remaining, removed := removeTool(*tools, ste.Tool)
			if !removed {
				return providers.ModelTurn{}, err
			}
			a.logger.Error("Tool unavailable for this turn", ste, "tool", ste.Tool, "provider", provider.GetID())
			*tools = remaining
			continue
		}

		return turn, err
	}
}

func (a *agentImpl) completeWithRetry(ctx context.Context, provider providers.Provider, history []providers.Message, tools []mcp.ToolDescriptor) (providers.ModelTurn, error) {
	backoff := a.cfg.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= a.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return providers.ModelTurn{}, ctx.Err()
			case <-timer.C:
			}
			backoff *= 2
		}

		callCtx := ctx
		var cancel context.CancelFunc
		if a.cfg.ProviderTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, a.cfg.ProviderTimeout)
		}

		start := time.Now()
		turn, err := provider.Complete(callCtx, history, tools)
		if cancel != nil {
			cancel()
		}
		a.recordModelCall(ctx, provider, time.Since(start), err != nil)

		if err == nil {
			return turn, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return providers.ModelTurn{}, ctx.Err()
		}

		// A per-call timeout with a live parent context is treated like
		// a timeout status from the backend.
		timedOut := errors.Is(err, context.DeadlineExceeded)
		if !providers.IsRetryable(err) && !timedOut {
			return providers.ModelTurn{}, err
		}

		a.logger.Debug("Retrying provider call", "provider", provider.GetID(), "attempt", attempt+1, "backoff", backoff.String(), "error", err.Error())
	}

	return providers.ModelTurn{}, lastErr
}

// executeTools dispatches the turn's tool calls concurrently and waits
// for all of them: a fan-out/fan-in barrier, not a pipeline. Results
// come back in call-id order. The only error is cancellation, which
// releases the partially collected results.
func (a *agentImpl) executeTools(ctx context.Context, calls []mcp.ToolCallRequest) ([]mcp.ToolCallResult, error) {
	results := make([]mcp.ToolCallResult, len(calls))

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call mcp.ToolCallRequest) {
			defer wg.Done()
			start := time.Now()
			result := a.bridge.Invoke(ctx, call)
			a.recordToolCall(ctx, call.Name, time.Since(start), result.IsError)
			results[i] = result
		}(i, call)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	sort.Slice(results, func(i, j int) bool { return results[i].CallID < results[j].CallID })
	return results, nil
}

func (a *agentImpl) transition(sess *session.Session, from, to State) {
	a.logger.Debug("Loop state transition", "session", sess.ID(), "from", string(from), "to", string(to))
}

func (a *agentImpl) recordModelCall(ctx context.Context, provider providers.Provider, d time.Duration, failed bool) {
	if a.telemetry == nil {
		return
	}
	a.telemetry.RecordModelCall(ctx, provider.GetID(), provider.GetModel(), float64(d.Milliseconds()), failed)
}

func (a *agentImpl) recordToolCall(ctx context.Context, tool string, d time.Duration, failed bool) {
	if a.telemetry == nil {
		return
	}
	a.telemetry.RecordToolCall(ctx, tool, float64(d.Milliseconds()), failed)
}

func (a *agentImpl) recordOutcome(ctx context.Context, provider providers.Provider, state State) {
	if a.telemetry == nil {
		return
	}
	a.telemetry.RecordTurnOutcome(ctx, provider.GetID(), string(state))
}

func uniqueCallIDs(calls []mcp.ToolCallRequest) error {
	seen := make(map[string]struct{}, len(calls))
	for _, call := range calls {
		if _, ok := seen[call.ID]; ok {
			return errors.New("duplicate tool call id in one turn: " + call.ID)
		}
		seen[call.ID] = struct{}{}
	}
	return nil
}

func removeTool(tools []mcp.ToolDescriptor, name string) ([]mcp.ToolDescriptor, bool) {
	out := make([]mcp.ToolDescriptor, 0, len(tools))
	removed := false
	for _, t := range tools {
		if t.Name == name {
			removed = true
			continue
		}
		out = append(out, t)
	}
	return out, removed
}
