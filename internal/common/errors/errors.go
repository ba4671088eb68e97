// internal/common/errors/errors.go

// Package errors provides the closed error taxonomy for the chat pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a provider failure into a closed set. Classification
// happens once, at the adapter boundary; nothing downstream inspects
// error message text.
type Kind string

const (
	// KindAuthConfig marks failures caused by missing or invalid provider
	// credentials. A deployment problem, not a caller problem.
	KindAuthConfig Kind = "AUTH_CONFIG"

	// KindRateLimited marks quota or rate-limit rejections by the provider.
	KindRateLimited Kind = "RATE_LIMITED"

	// KindOther marks every failure the adapter could not classify.
	KindOther Kind = "OTHER"
)

// ChatError represents a classified pipeline error.
type ChatError struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Err       error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("ChatError[%s]: %s", e.Kind, e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

// ==========================
// Constructors
// ==========================

// NewAuthConfigError wraps a provider credential/configuration failure.
func NewAuthConfigError(err error) *ChatError {
	return &ChatError{
		Kind:      KindAuthConfig,
		Message:   "LLM provider rejected the configured credentials",
		Err:       err,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError wraps a provider quota or rate-limit rejection.
func NewRateLimitedError(err error) *ChatError {
	return &ChatError{
		Kind:      KindRateLimited,
		Message:   "LLM provider quota or rate limit exceeded",
		Err:       err,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationError wraps any other generation failure.
func NewGenerationError(err error) *ChatError {
	return &ChatError{
		Kind:      KindOther,
		Message:   "LLM generation failed",
		Err:       err,
		Timestamp: time.Now().UTC(),
	}
}

// KindOf extracts the classification of err, or KindOther when err carries
// no ChatError in its chain.
func KindOf(err error) Kind {
	var ce *ChatError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindOther
}
