package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/mcp-bridge/mcp-bridge/mcp"
)

// Provider normalizes one LLM backend's chat-completion and
// tool-calling semantics into the common request/response shape. The
// returned ModelTurn is always fully assembled; the loop operates on
// complete turns only.
//
//go:generate mockgen -source=provider.go -destination=../tests/mocks/provider.go -package=mocks
type Provider interface {
	GetID() string
	GetName() string
	GetModel() string
	Complete(ctx context.Context, messages []Message, tools []mcp.ToolDescriptor) (ModelTurn, error)
}

// NewHTTPClient builds the pooled HTTP client shared by all adapters.
// The pool is the only cross-session shared resource; net/http
// serializes handle reuse internally.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// endpoint carries everything needed to issue one provider call.
type endpoint struct {
	id           string
	url          string
	token        string
	authType     string
	extraHeaders map[string]string
	client       *http.Client
}

// postJSON issues the chat-completion request and decodes the response
// into out. Backend failures come back as ProviderError with the
// retryable flag set for rate limiting, timeouts and server-side
// errors; the adapter itself never retries.
func (e *endpoint) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &ProviderError{Provider: e.id, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url+path, bytes.NewReader(body))
	if err != nil {
		return &ProviderError{Provider: e.id, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("Content-Type", "application/json")
	switch e.authType {
	case AuthTypeBearer:
		req.Header.Set("Authorization", "Bearer "+e.token)
	case AuthTypeXheader:
		req.Header.Set("x-api-key", e.token)
	}
	for k, v := range e.extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ProviderError{Provider: e.id, Retryable: true, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ProviderError{
			Provider:   e.id,
			StatusCode: resp.StatusCode,
			Retryable:  retryableStatus(resp.StatusCode),
			Message:    fmt.Sprintf("unexpected status: %s", bytes.TrimSpace(raw)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Provider: e.id, Message: "malformed response body", Cause: err}
	}

	return nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return code >= 500
}
