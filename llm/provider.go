// Package llm provides LLM provider abstractions.
//
// LLM Provider interface - the abstract interface for streaming chat backends.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific streaming protocol

package llm

import (
	"context"
)

// Provider defines the abstract interface for LLM backends.
// Implementations hide provider-specific details while exposing
// a consistent streaming interface.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// StreamChat streams a chat completion, sending text deltas to the
	// provided channel. The caller owns the channel; StreamChat never
	// closes it. Returns token usage when the backend reports it.
	// An error may arrive before any delta or after several; deltas
	// already sent remain valid either way.
	StreamChat(ctx context.Context, messages []ChatMessage, chunks chan<- string) (*TokenUsage, error)
}
