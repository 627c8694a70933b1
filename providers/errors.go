package providers

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a bad provider selection or missing
// credentials. It is fatal and never retried.
type ConfigurationError struct {
	Provider string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Provider == "" {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error for provider %s: %s", e.Provider, e.Reason)
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

// ProviderError surfaces a backend failure (network, auth, rate limit,
// malformed response). Retryable marks whether the loop may retry the
// call; the adapter itself never retries.
type ProviderError struct {
	Provider   string
	StatusCode int
	Retryable  bool
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s: status %d: %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, msg)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// IsRetryable reports whether err is a retryable ProviderError.
func IsRetryable(err error) bool {
	var e *ProviderError
	return errors.As(err, &e) && e.Retryable
}

// IsProviderError reports whether err is a ProviderError.
func IsProviderError(err error) bool {
	var e *ProviderError
	return errors.As(err, &e)
}

// SchemaTranslationError reports a tool descriptor that cannot be
// expressed in the backend's tool-declaration format. Translation fails
// closed rather than silently dropping constraints.
type SchemaTranslationError struct {
	Provider string
	Tool     string
	Reason   string
}

func (e *SchemaTranslationError) Error() string {
	return fmt.Sprintf("cannot translate tool %q for provider %s: %s", e.Tool, e.Provider, e.Reason)
}

// IsSchemaTranslation reports whether err is a SchemaTranslationError.
func IsSchemaTranslation(err error) bool {
	var e *SchemaTranslationError
	return errors.As(err, &e)
}
